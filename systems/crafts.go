package systems

import (
	"slices"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/yohamta/donburi"
)

// craftEntries returns the craft entities in slot order, which is the
// simulation order.
func craftEntries(w donburi.World) []*donburi.Entry {
	var entries []*donburi.Entry
	components.Craft.Each(w, func(e *donburi.Entry) {
		entries = append(entries, e)
	})
	slices.SortFunc(entries, func(a, b *donburi.Entry) int {
		return components.Craft.Get(a).Slot - components.Craft.Get(b).Slot
	})
	return entries
}

func maze(w donburi.World) (*level.Maze, bool) {
	entry, ok := components.Level.First(w)
	if !ok {
		return nil, false
	}
	return components.Level.Get(entry).Maze, true
}

// UpdateCrafts feeds each master craft its controls and simulates every
// craft for the racing time of the tick.
func UpdateCrafts(w donburi.World) error {
	raceEntry, ok := components.Race.First(w)
	if !ok {
		return nil
	}
	race := components.Race.Get(raceEntry)
	m, ok := maze(w)
	if !ok {
		return nil
	}

	for _, e := range craftEntries(w) {
		c := components.Craft.Get(e).Craft
		c.SetSimulationTime(race.Clock)
		if !c.IsMaster() {
			// Replicas extrapolate from the last net state.
			if race.Step > 0 {
				room, err := c.Simulate(race.Step, m, m.ElementRoom(c))
				if err != nil {
					return err
				}
				m.MoveElement(c, room)
			}
			continue
		}
		controls := components.Input.Get(e).Controls
		if race.Step == 0 {
			// Before the start controls only pick the model.
			c.SetControls(controls &^ craft.Fire)
			continue
		}
		c.SetControls(controls)

		room, err := c.Simulate(race.Step, m, m.ElementRoom(c))
		if err != nil {
			return err
		}
		m.MoveElement(c, room)
	}
	return nil
}
