package core

import (
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netcomponents"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/automoto/hoverrace-mp/systems/factory"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Reasons sent with JoinRejected
const (
	RejectVersion = "version mismatch"
	RejectStarted = "race already started"
	RejectFull    = "race is full"
	RejectJoined  = "already joined"
	RejectFailed  = "could not create craft"
)

const maxPilotName = 32

func (s *Server) join(p peer, req messages.JoinRequest) {
	log := s.log.With(zap.String("client", p.Id()))

	if req.Version != s.version() {
		log.Info("Join rejected", zap.String("reason", RejectVersion), zap.String("version", req.Version))
		s.reject(p, RejectVersion)
		return
	}
	s.mu.Lock()
	_, joined := s.peers[p]
	s.mu.Unlock()
	if joined {
		s.reject(p, RejectJoined)
		return
	}

	if pl := s.pilots[req.ReconnectToken]; req.ReconnectToken != "" && pl != nil && pl.peer == nil && s.world.Valid(pl.entity) {
		s.mu.Lock()
		pl.peer = p
		s.peers[p] = pl
		s.mu.Unlock()
		log.Info("Pilot reconnected", zap.String("pilot", pl.name), zap.Int("slot", pl.slot))
		s.accept(pl)
		return
	}

	race := components.Race.Get(components.Race.MustFirst(s.world))
	if race.State != netconfig.RaceWaiting && race.State != netconfig.RaceCountdown {
		s.reject(p, RejectStarted)
		return
	}
	slot := s.freeSlot()
	if slot < 0 {
		s.reject(p, RejectFull)
		return
	}

	name := req.PilotName
	if len(name) > maxPilotName {
		name = name[:maxPilotName]
	}
	s.nextHover++
	entry, err := factory.CreateCraft(s.world, factory.CraftSpec{
		Slot:    slot,
		HoverID: s.nextHover,
		Model:   req.Model,
		Name:    name,
	}, netcomponents.NetCraft, netcomponents.NetPilot)
	if err != nil {
		log.Error("Failed to create craft", zap.Error(err))
		s.reject(p, RejectFailed)
		return
	}
	entity := entry.Entity()
	if err := srvsync.NetworkSync(s.world, &entity, netcomponents.NetCraft, netcomponents.NetPilot); err != nil {
		log.Error("Failed to setup network sync for craft", zap.Error(err))
		_ = factory.RemoveCraft(s.world, entry)
		s.reject(p, RejectFailed)
		return
	}

	pl := &pilot{
		token:   uuid.NewString(),
		peer:    p,
		entity:  entity,
		slot:    slot,
		hoverID: s.nextHover,
		name:    name,
	}
	s.mu.Lock()
	s.peers[p] = pl
	s.mu.Unlock()
	s.pilots[pl.token] = pl
	if s.lobbyMs < 0 {
		s.lobbyMs = 0
	}

	log.Info("Pilot joined", zap.String("pilot", name), zap.Int("slot", slot), zap.Int("hoverId", pl.hoverID))
	s.accept(pl)
}

func (s *Server) accept(pl *pilot) {
	msg := messages.JoinAccepted{
		ReconnectToken: pl.token,
		ServerName:     s.settings.Name,
		SessionID:      s.session,
		TickRate:       s.settings.TickRate,
		Track:          s.track.Name,
		Options:        int(s.settings.Options()),
		Slot:           pl.slot,
		HoverID:        pl.hoverID,
	}
	if id := esync.GetNetworkId(s.world.Entry(pl.entity)); id != nil {
		msg.NetworkID = *id
	}
	if err := pl.peer.SendMessage(msg); err != nil {
		s.log.Warn("Failed to send join acceptance", zap.String("client", pl.peer.Id()), zap.Error(err))
	}
}

func (s *Server) reject(p peer, reason string) {
	if err := p.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		s.log.Debug("Failed to send join rejection", zap.String("client", p.Id()), zap.Error(err))
	}
}

// leave drops a disconnected client. Before the start its craft leaves the
// grid; once racing the craft stays for a reconnect.
func (s *Server) leave(p peer) {
	s.mu.Lock()
	pl, ok := s.peers[p]
	delete(s.peers, p)
	s.mu.Unlock()
	if !ok {
		return
	}
	pl.peer = nil

	switch s.State() {
	case netconfig.RaceWaiting, netconfig.RaceCountdown:
		delete(s.pilots, pl.token)
		if s.world.Valid(pl.entity) {
			if err := factory.RemoveCraft(s.world, s.world.Entry(pl.entity)); err != nil {
				s.log.Warn("Failed to remove craft", zap.Int("slot", pl.slot), zap.Error(err))
			}
		}
		s.log.Info("Pilot left the grid", zap.String("pilot", pl.name), zap.Int("slot", pl.slot))
	default:
		// Controls are released so the craft coasts until the pilot is back.
		if s.world.Valid(pl.entity) {
			components.Input.Get(s.world.Entry(pl.entity)).Controls = 0
		}
		s.log.Info("Pilot dropped", zap.String("pilot", pl.name), zap.Int("slot", pl.slot))
	}
}

// input stores the controls of the newest input; stale or duplicate
// sequences are ignored.
func (s *Server) input(p peer, in messages.CraftInput) {
	entry, ok := s.entryOf(p)
	if !ok {
		return
	}
	inp := components.Input.Get(entry)
	if in.Sequence <= inp.LastSequence && inp.LastSequence != 0 {
		return
	}
	inp.Controls = in.Controls & craft.AllControls
	inp.LastSequence = in.Sequence
}

// selectCraft picks a model directly while the race has not started.
func (s *Server) selectCraft(p peer, sel messages.CraftSelect) {
	entry, ok := s.entryOf(p)
	if !ok {
		return
	}
	switch s.State() {
	case netconfig.RaceWaiting, netconfig.RaceCountdown:
	default:
		return
	}
	race := components.Race.Get(components.Race.MustFirst(s.world))
	model, err := craft.NextAllowedCraft(race.Options, min(max(sel.Model, 0), 3)-1, 1)
	if err != nil {
		return
	}
	components.Craft.Get(entry).Craft.SetModel(model)
}

func (s *Server) entryOf(p peer) (*donburi.Entry, bool) {
	s.mu.Lock()
	pl, ok := s.peers[p]
	s.mu.Unlock()
	if !ok || !s.world.Valid(pl.entity) {
		return nil, false
	}
	return s.world.Entry(pl.entity), true
}

// freeSlot returns the lowest grid slot without a craft, or -1.
func (s *Server) freeSlot() int {
	taken := make([]bool, s.gridSize())
	components.Craft.Each(s.world, func(e *donburi.Entry) {
		if slot := components.Craft.Get(e).Slot; slot < len(taken) {
			taken[slot] = true
		}
	})
	for i, t := range taken {
		if !t {
			return i
		}
	}
	return -1
}
