// Package core runs one race on a dedicated server: it owns the world,
// admits pilots and steps the simulation at a fixed tick rate.
package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/logging"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/automoto/hoverrace-mp/shared/replay"
	"github.com/automoto/hoverrace-mp/systems"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// peer is the part of a network client the server talks to.
type peer interface {
	Id() string
	SendMessage(msg any) error
}

var _ peer = (*router.NetworkClient)(nil)

// pilot is a joined player. peer is nil while they are disconnected.
type pilot struct {
	token   string
	peer    peer
	entity  donburi.Entity
	slot    int
	hoverID int
	name    string
}

// Server manages the race and client connections. Router callbacks only
// queue commands; the loop goroutine owns the world.
type Server struct {
	settings config.ServerSettings
	track    *leveldata.Track
	log      *zap.Logger
	world    donburi.World
	loop     *GameLoop
	session  string
	records  *systems.Records

	mu       sync.Mutex
	commands []func()
	peers    map[peer]*pilot
	pilots   map[string]*pilot // by reconnect token

	nextHover int
	lobbyMs   int // time since the first join, -1 before it
	resultsMs int // time since the race finished
	recording *replay.Recording
	done      bool
}

// NewServer builds the race for track. records may be nil to skip lap
// records.
func NewServer(settings config.ServerSettings, track *leveldata.Track, records *systems.Records, log *zap.Logger) (*Server, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	world := donburi.NewWorld()
	srvsync.UseEsync(world)

	s := &Server{
		settings: settings,
		track:    track,
		log:      logging.Component(log, "server"),
		world:    world,
		session:  uuid.NewString(),
		records:  records,
		peers:    make(map[peer]*pilot),
		pilots:   make(map[string]*pilot),
		lobbyMs:  -1,
	}
	if err := s.setupRace(); err != nil {
		return nil, fmt.Errorf("new server: %w", err)
	}
	s.loop = NewGameLoop(s, settings.TickRate)
	return s, nil
}

// Run serves the race until it is over or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.setupRouterCallbacks()
	defer router.ResetRouter()

	s.log.Info("Race ready",
		zap.String("session", s.session),
		zap.String("track", s.track.Name),
		zap.Int("laps", s.settings.Laps),
		zap.Int("grid", s.gridSize()),
	)
	return s.loop.Run(ctx)
}

// Listen accepts WebSocket clients on the configured port. It blocks.
func (s *Server) Listen() error {
	t := transports.NewWsServerTransport(uint(s.settings.Port), "", nil)
	s.log.Info("Listening", zap.Int("port", s.settings.Port))
	return t.Start()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.log.Debug("Client connected", zap.String("client", client.Id()))
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			s.log.Info("Client disconnected", zap.String("client", client.Id()), zap.Error(err))
		} else {
			s.log.Info("Client disconnected", zap.String("client", client.Id()))
		}
		s.enqueue(func() { s.leave(client) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.join(client, req) })
	})

	router.On(func(client *router.NetworkClient, input messages.CraftInput) {
		s.enqueue(func() { s.input(client, input) })
	})

	router.On(func(client *router.NetworkClient, sel messages.CraftSelect) {
		s.enqueue(func() { s.selectCraft(client, sel) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warn("Client error", zap.Error(err))
	})
}

func (s *Server) enqueue(cmd func()) {
	s.mu.Lock()
	s.commands = append(s.commands, cmd)
	s.mu.Unlock()
}

// ProcessCommands runs the commands queued by the router since the last
// tick, in arrival order.
func (s *Server) ProcessCommands() {
	s.mu.Lock()
	cmds := s.commands
	s.commands = nil
	s.mu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

// broadcast sends msg to every connected pilot.
func (s *Server) broadcast(msg any) {
	s.mu.Lock()
	peers := make([]peer, 0, len(s.peers))
	for p := range s.peers {
		peers = append(peers, p)
	}
	s.mu.Unlock()

	for _, p := range peers {
		if err := p.SendMessage(msg); err != nil {
			s.log.Debug("Send failed", zap.String("client", p.Id()), zap.Error(err))
		}
	}
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Session identifies this race in replays and records.
func (s *Server) Session() string {
	return s.session
}

// PlayerCount returns the number of connected players
func (s *Server) PlayerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// State returns the current race state.
func (s *Server) State() netconfig.RaceStateID {
	return components.Race.Get(components.Race.MustFirst(s.world)).State
}

func (s *Server) gridSize() int {
	return min(s.settings.MaxPlayers, len(s.track.Starts))
}

func (s *Server) version() string {
	if s.settings.Version != "" {
		return s.settings.Version
	}
	return netconfig.ProtocolVersion
}
