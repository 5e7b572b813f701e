// Command hoverrace-mp joins a race server and flies a craft with the
// autopilot, predicting it locally like a pilot's client would. It is used
// to fill grids and to load test servers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/automoto/hoverrace-mp/network"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/logging"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/automoto/hoverrace-mp/shared/protocol"
	"github.com/automoto/hoverrace-mp/systems"
	"go.uber.org/zap"
)

const joinTimeout = 10 * time.Second

type options struct {
	address  string
	track    string
	name     string
	model    int
	logLevel string
}

func main() {
	var opts options
	flag.StringVar(&opts.address, "server", "localhost:8080", "Race server host:port")
	flag.StringVar(&opts.track, "track", "assets/tracks/classic.tmx", "Track file the server races on")
	flag.StringVar(&opts.name, "name", "autopilot", "Pilot name")
	flag.IntVar(&opts.model, "model", 0, "Craft model")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	log, err := logging.New(opts.logLevel, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := protocol.RegisterComponents(); err != nil {
		return fmt.Errorf("register components: %w", err)
	}
	track, err := leveldata.LoadTrack(os.DirFS(filepath.Dir(opts.track)), filepath.Base(opts.track))
	if err != nil {
		return fmt.Errorf("load track: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := network.NewClient(log)
	client.Connect(opts.address, opts.name, opts.model)
	defer client.Disconnect()

	join, err := waitForJoin(ctx, client)
	if err != nil {
		return err
	}
	replica, err := network.NewReplica(track, join, network.ReplicaOptions{Log: log})
	if err != nil {
		return err
	}
	return race(ctx, client, replica, systems.NewAutopilot(track), join.TickRate, log)
}

func waitForJoin(ctx context.Context, client *network.Client) (network.JoinInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, joinTimeout)
	defer cancel()

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		switch client.State() {
		case network.StateJoinedGame:
			return client.Join(), nil
		case network.StateError:
			return network.JoinInfo{}, client.LastError()
		}
		select {
		case <-ctx.Done():
			return network.JoinInfo{}, fmt.Errorf("join: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

func race(ctx context.Context, client *network.Client, replica *network.Replica, pilot *systems.Autopilot, tickRate int, log *zap.Logger) error {
	if tickRate <= 0 {
		tickRate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			d := int32(now.Sub(last).Milliseconds())
			last = now

			if snap := client.LatestSnapshot(); snap != nil {
				if err := replica.Apply(*snap); err != nil {
					return fmt.Errorf("apply snapshot: %w", err)
				}
			}
			for _, evt := range client.DrainRaceEvents() {
				log.Debug("Race event", zap.Stringer("event", evt.Event), zap.Int("hoverId", evt.HoverID), zap.Int32("time", evt.Time))
			}
			for _, change := range client.DrainStateChanges() {
				log.Info("Race state", zap.Stringer("state", change.NewState), zap.Int32("clock", change.Clock))
				if change.NewState == netconfig.RaceFinished {
					for _, r := range replica.Results() {
						log.Info("Result", zap.Int("hoverId", r.HoverID), zap.Bool("finished", r.Finished),
							zap.Int32("total", r.TotalTime), zap.Int32("bestLap", r.BestLap))
					}
					return nil
				}
			}
			if client.State() != network.StateJoinedGame {
				if err := client.LastError(); err != nil {
					return err
				}
				return errors.New("disconnected from server")
			}

			var controls craft.Control
			if c, ok := replica.LocalCraft(); ok && replica.State() == netconfig.RaceRunning {
				controls = pilot.Controls(c, d)
			}
			in, err := replica.Update(d, controls)
			if err != nil {
				return err
			}
			if err := client.SendInput(in); err != nil {
				log.Warn("Failed to send input", zap.Error(err))
			}
		}
	}
}
