package factory

import (
	"fmt"

	"github.com/automoto/hoverrace-mp/archetypes"
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// CraftSpec describes a pilot taking a place on the grid.
type CraftSpec struct {
	Slot    int
	HoverID int
	Model   int
	Name    string
	Options []craft.Option
}

// CreateCraft places a master craft on the start position of its slot and
// hooks its race signals to the lap counters.
func CreateCraft(w donburi.World, spec CraftSpec, extra ...donburi.IComponentType) (*donburi.Entry, error) {
	raceEntry, ok := components.Race.First(w)
	if !ok {
		return nil, ErrNoRace
	}
	lvlEntry, ok := components.Level.First(w)
	if !ok {
		return nil, ErrNoRace
	}
	race := components.Race.Get(raceEntry)
	lvl := components.Level.Get(lvlEntry)

	starts := lvl.Track.Starts
	if spec.Slot < 0 || spec.Slot >= len(starts) {
		return nil, fmt.Errorf("slot %d: %w", spec.Slot, ErrGridFull)
	}
	taken := false
	components.Craft.Each(w, func(e *donburi.Entry) {
		if components.Craft.Get(e).Slot == spec.Slot {
			taken = true
		}
	})
	if taken {
		return nil, fmt.Errorf("slot %d: %w", spec.Slot, ErrSlotTaken)
	}

	options := []craft.Option{craft.WithHoverID(spec.HoverID), craft.WithProjectiles(lvl.Projectiles)}
	c, err := craft.New(spec.Slot, race.Options, append(options, spec.Options...)...)
	if err != nil {
		return nil, fmt.Errorf("slot %d: %w", spec.Slot, err)
	}
	model, err := craft.NextAllowedCraft(race.Options, min(max(spec.Model, 0), 3)-1, 1)
	if err != nil {
		return nil, fmt.Errorf("slot %d: %w", spec.Slot, err)
	}
	c.SetModel(model)

	start := starts[spec.Slot]
	c.Place(start.Pos, start.Room, start.Orientation)
	c.SetSimulationTime(race.Clock)
	lvl.Maze.InsertElement(c, start.Room, false)

	entry := archetypes.Craft.Spawn(w, extra...)
	components.Craft.SetValue(entry, components.CraftData{Craft: c, Slot: spec.Slot})
	components.Pilot.SetValue(entry, components.PilotData{Name: spec.Name})
	connectLaps(w, entry.Entity(), c)
	return entry, nil
}

// RemoveCraft takes a craft out of the maze and the world.
func RemoveCraft(w donburi.World, entry *donburi.Entry) error {
	c := components.Craft.Get(entry).Craft
	if lvlEntry, ok := components.Level.First(w); ok {
		components.Level.Get(lvlEntry).Maze.RemoveElement(c)
	}
	err := c.Close()
	w.Remove(entry.Entity())
	return err
}

func connectLaps(w donburi.World, entity donburi.Entity, c *craft.Craft) {
	race := func() *components.RaceData {
		return components.Race.Get(components.Race.MustFirst(w))
	}

	c.OnCheckpoint(func(c *craft.Craft, n int) {
		race().Emit(messages.RaceEvent{Event: netconfig.EventCheckpoint, HoverID: c.HoverID(), By: n})
	})
	// The craft updates its lap times after these handlers return, so the
	// times are taken from the race clock.
	c.OnFinishLine(func(c *craft.Craft) {
		r := race()
		lap := components.Lap.Get(w.Entry(entity))
		lap.Laps++
		r.Emit(messages.RaceEvent{Event: netconfig.EventLap, HoverID: c.HoverID(), By: lap.Laps, LapTime: r.Clock - c.LastLapCompletion()})
		if r.Laps > 0 && lap.Laps >= r.Laps {
			c.Finish()
		}
	})
	c.OnFinished(func(c *craft.Craft) {
		r := race()
		lap := components.Lap.Get(w.Entry(entity))
		r.Finishers++
		lap.Finished = true
		lap.Place = r.Finishers
		r.Emit(messages.RaceEvent{Event: netconfig.EventFinished, HoverID: c.HoverID(), By: lap.Place, LapTime: r.Clock})
	})
}
