package core

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netcomponents"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/automoto/hoverrace-mp/shared/replay"
	"github.com/automoto/hoverrace-mp/systems"
	"github.com/automoto/hoverrace-mp/systems/factory"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// LoadTrack reads the TMX track at path from the local disk.
func LoadTrack(path string) (*leveldata.Track, error) {
	track, err := leveldata.LoadTrack(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load track: %w", err)
	}
	return track, nil
}

// setupRace creates the race and marks its replicated entities for sync.
func (s *Server) setupRace() error {
	_, err := factory.CreateRace(s.world, s.track, factory.RaceOptions{
		Options:      s.settings.Options(),
		Laps:         s.settings.Laps,
		Countdown:    int32(s.settings.PregameMs),
		RaceExtra:    []donburi.IComponentType{netcomponents.NetRace},
		PermExtra:    []donburi.IComponentType{netcomponents.NetPermElement},
		MissileExtra: []donburi.IComponentType{netcomponents.NetMissile},
		OnMissile: func(e *donburi.Entry) {
			entity := e.Entity()
			if err := srvsync.NetworkSync(s.world, &entity, srvsync.WithInterp(netcomponents.NetMissile)); err != nil {
				s.log.Warn("Failed to sync missile", zap.Error(err))
			}
		},
	})
	if err != nil {
		return err
	}

	raceEntity := components.Race.MustFirst(s.world).Entity()
	if err := srvsync.NetworkSync(s.world, &raceEntity, netcomponents.NetRace); err != nil {
		return fmt.Errorf("sync race: %w", err)
	}

	var perms []donburi.Entity
	components.PermElement.Each(s.world, func(e *donburi.Entry) {
		perms = append(perms, e.Entity())
	})
	for i := range perms {
		if err := srvsync.NetworkSync(s.world, &perms[i], netcomponents.NetPermElement); err != nil {
			return fmt.Errorf("sync element: %w", err)
		}
	}
	return nil
}

// advance runs one tick of d ms: the lobby timer, the simulation and the
// results display. It reports true once the server is done.
func (s *Server) advance(d int32) (bool, error) {
	race := components.Race.Get(components.Race.MustFirst(s.world))
	crafts := 0
	components.Craft.Each(s.world, func(*donburi.Entry) { crafts++ })
	before := race.State

	switch race.State {
	case netconfig.RaceWaiting:
		if crafts == 0 {
			s.lobbyMs = -1
			break
		}
		if s.lobbyMs >= 0 {
			s.lobbyMs += int(d)
		}
		if crafts >= s.gridSize() || s.lobbyMs >= s.settings.LobbyMs {
			if err := factory.StartCountdown(s.world); err != nil {
				return false, err
			}
			s.log.Info("Countdown started", zap.Int("crafts", crafts), zap.Int32("clock", race.Clock))
		}
	case netconfig.RaceCountdown, netconfig.RaceRunning:
		if s.PlayerCount() == 0 {
			s.log.Warn("Race abandoned", zap.Int32("clock", race.Clock))
			return true, nil
		}
	}

	// Nothing can join or pick a model once this tick starts the clock.
	if s.recording == nil && s.settings.ReplayDir != "" && s.startsNow(race, d) {
		s.startRecording()
	}

	var controls []uint16
	if s.recording != nil {
		controls = systems.Controls(s.world)
	}
	if err := systems.Step(s.world, d); err != nil {
		return false, err
	}
	if s.recording != nil {
		s.recording.Record(d, controls, systems.Digest(s.world))
	}

	for _, e := range race.DrainEvents() {
		s.log.Debug("Race event", zap.Stringer("event", e.Event), zap.Int("hoverId", e.HoverID), zap.Int("by", e.By))
		s.broadcast(e)
	}
	if race.State != before {
		s.log.Info("Race state changed", zap.Stringer("state", race.State), zap.Int32("clock", race.Clock))
		s.broadcast(messages.RaceStateChangeEvent{NewState: race.State, Clock: race.Clock})
		if race.State == netconfig.RaceFinished {
			s.finishRace()
		}
	}
	systems.SyncNetState(s.world)

	if race.State == netconfig.RaceFinished {
		s.resultsMs += int(d)
		return s.resultsMs >= s.settings.ResultsMs, nil
	}
	return false, nil
}

// startsNow reports whether the race clock reaches zero during a tick of d.
func (s *Server) startsNow(race *components.RaceData, d int32) bool {
	switch race.State {
	case netconfig.RaceCountdown:
		return race.Clock+d >= 0
	case netconfig.RaceRunning:
		return race.Clock == 0
	}
	return false
}

// startRecording snapshots the grid as the race is about to start.
func (s *Server) startRecording() {
	race := components.Race.Get(components.Race.MustFirst(s.world))
	rec := &replay.Recording{
		Session:   s.session,
		Track:     s.track.Name,
		Options:   int(s.settings.Options()),
		Laps:      s.settings.Laps,
		Countdown: -race.Clock,
	}
	components.Craft.Each(s.world, func(e *donburi.Entry) {
		cd := components.Craft.Get(e)
		rec.Crafts = append(rec.Crafts, replay.Craft{
			Slot:     cd.Slot,
			HoverID:  cd.Craft.HoverID(),
			Model:    cd.Craft.Model(),
			Pilot:    components.Pilot.Get(e).Name,
			Controls: uint16(cd.Craft.Controls()),
		})
	})
	slices.SortFunc(rec.Crafts, func(a, b replay.Craft) int { return a.Slot - b.Slot })
	s.recording = rec
	s.log.Info("Recording race", zap.Int("crafts", len(rec.Crafts)))
}

// saveRecording writes the replay to the replay directory.
func (s *Server) saveRecording() error {
	if s.recording == nil {
		return nil
	}
	if err := os.MkdirAll(s.settings.ReplayDir, 0o755); err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	path := filepath.Join(s.settings.ReplayDir, s.session+".yaml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save replay: %w", err)
	}
	defer f.Close()

	if err := s.recording.Save(f); err != nil {
		return fmt.Errorf("save replay %s: %w", path, err)
	}
	s.log.Info("Saved replay", zap.String("path", path), zap.Int("ticks", len(s.recording.Ticks)))
	return nil
}

// finishRace runs once when every craft has finished.
func (s *Server) finishRace() {
	for _, r := range systems.Results(s.world) {
		s.log.Info("Result",
			zap.Int("hoverId", r.HoverID),
			zap.Int("laps", r.Laps),
			zap.Int32("bestLap", r.BestLap),
			zap.Int32("totalTime", r.TotalTime),
			zap.Bool("finished", r.Finished),
		)
	}
	if err := s.saveRecording(); err != nil {
		s.log.Error("Failed to save replay", zap.Error(err))
	}
	if s.records != nil {
		if _, err := s.records.Submit(s.world, s.session); err != nil {
			s.log.Error("Failed to save lap record", zap.Error(err))
		}
	}
}
