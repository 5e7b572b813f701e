package core

import (
	"context"
	"fmt"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"go.uber.org/zap"
)

// GameLoop steps the server at a fixed rate. Tick durations are whole
// milliseconds; over a second they add up to exactly 1000.
type GameLoop struct {
	server   *Server
	tickRate int
	ticks    uint64
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
	}
}

// Run ticks until the race is over, a tick fails or ctx is done.
func (g *GameLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log := g.server.log
	log.Info("Game loop started", zap.Int("tickRate", g.tickRate))

	for {
		select {
		case <-ctx.Done():
			log.Info("Game loop stopped", zap.Uint64("ticks", g.ticks))
			return nil
		case <-ticker.C:
			done, err := g.tick()
			if err != nil {
				return fmt.Errorf("tick %d: %w", g.ticks, err)
			}
			if done {
				log.Info("Race over", zap.Uint64("ticks", g.ticks))
				return nil
			}
		}
	}
}

// duration returns the length in ms of the next tick.
func (g *GameLoop) duration() int32 {
	n := g.ticks % uint64(g.tickRate)
	rate := uint64(g.tickRate)
	return int32((n+1)*1000/rate - n*1000/rate)
}

func (g *GameLoop) tick() (bool, error) {
	d := g.duration()
	g.ticks++

	g.server.ProcessCommands()
	done, err := g.server.advance(d)
	if err != nil {
		return false, err
	}

	if err := srvsync.DoSync(); err != nil {
		g.server.log.Warn("Sync error", zap.Error(err))
	}
	return done, nil
}
