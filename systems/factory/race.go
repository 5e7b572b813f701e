package factory

import (
	"errors"
	"fmt"

	"github.com/automoto/hoverrace-mp/archetypes"
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

var (
	ErrNoRace    = errors.New("world has no race")
	ErrGridFull  = errors.New("no start position for slot")
	ErrSlotTaken = errors.New("slot already has a craft")
)

// RaceOptions configures a new race.
type RaceOptions struct {
	Options   config.GameOptions
	Laps      int
	Countdown int32 // pregame ms

	// Extra components for entities the server replicates.
	RaceExtra    []donburi.IComponentType
	PermExtra    []donburi.IComponentType
	MissileExtra []donburi.IComponentType
	// OnMissile runs for every missile entity spawned during the race.
	OnMissile func(*donburi.Entry)
}

// CreateRace builds the level, race and permanent element entities for a
// track. The race waits for StartCountdown.
func CreateRace(w donburi.World, track *leveldata.Track, opts RaceOptions) (*donburi.Entry, error) {
	maze, err := track.Maze()
	if err != nil {
		return nil, fmt.Errorf("create race: %w", err)
	}

	lvl := archetypes.Level.Spawn(w)
	components.Level.SetValue(lvl, components.LevelData{
		Track: track,
		Maze:  maze,
		Projectiles: &MissileSpawner{
			World:   w,
			Extra:   opts.MissileExtra,
			OnSpawn: opts.OnMissile,
		},
	})

	for _, el := range track.Elements {
		pe := archetypes.PermElement.Spawn(w, opts.PermExtra...)
		components.PermElement.SetValue(pe, components.PermElementData{ID: el.ID})
	}

	race := archetypes.Race.Spawn(w, opts.RaceExtra...)
	components.Race.SetValue(race, components.RaceData{
		State:   netconfig.RaceWaiting,
		Clock:   -opts.Countdown,
		Laps:    opts.Laps,
		Options: opts.Options,
	})
	return race, nil
}

// StartCountdown lets the race clock run.
func StartCountdown(w donburi.World) error {
	entry, ok := components.Race.First(w)
	if !ok {
		return ErrNoRace
	}
	race := components.Race.Get(entry)
	if race.State != netconfig.RaceWaiting {
		return nil
	}
	if race.Clock >= 0 {
		race.SetState(netconfig.RaceRunning)
	} else {
		race.SetState(netconfig.RaceCountdown)
	}
	return nil
}
