package systems

import (
	"slices"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netcomponents"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// UpdateStandings reports who hit whom and ends the race once every craft
// has finished.
func UpdateStandings(w donburi.World) {
	raceEntry, ok := components.Race.First(w)
	if !ok {
		return
	}
	race := components.Race.Get(raceEntry)

	entries := craftEntries(w)
	finished := len(entries) > 0
	for _, e := range entries {
		c := components.Craft.Get(e).Craft
		for {
			by, ok := c.PopHit()
			if !ok {
				break
			}
			race.Emit(messages.RaceEvent{Event: netconfig.EventHit, HoverID: c.HoverID(), By: by})
		}
		if !components.Lap.Get(e).Finished {
			finished = false
		}
	}

	if finished && race.State == netconfig.RaceRunning {
		race.SetState(netconfig.RaceFinished)
	}
}

// Results returns the standings: finishers in finishing order, then the
// others by laps completed.
func Results(w donburi.World) []netcomponents.NetResult {
	type row struct {
		result netcomponents.NetResult
		place  int
		slot   int
	}
	var rows []row
	for _, e := range craftEntries(w) {
		cd := components.Craft.Get(e)
		lap := components.Lap.Get(e)
		rows = append(rows, row{
			result: netcomponents.NetResult{
				HoverID:   cd.Craft.HoverID(),
				Laps:      lap.Laps,
				BestLap:   cd.Craft.BestLapDuration(),
				TotalTime: cd.Craft.TotalTime(),
				Finished:  lap.Finished,
			},
			place: lap.Place,
			slot:  cd.Slot,
		})
	}
	slices.SortStableFunc(rows, func(a, b row) int {
		switch {
		case a.result.Finished && b.result.Finished:
			return a.place - b.place
		case a.result.Finished != b.result.Finished:
			if a.result.Finished {
				return -1
			}
			return 1
		case a.result.Laps != b.result.Laps:
			return b.result.Laps - a.result.Laps
		}
		return a.slot - b.slot
	})

	out := make([]netcomponents.NetResult, len(rows))
	for i, r := range rows {
		out[i] = r.result
	}
	return out
}
