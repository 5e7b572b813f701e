package systems

import (
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// UpdateRace advances the race clock by duration ms and sets how much racing
// time the crafts simulate this tick.
func UpdateRace(w donburi.World, duration int32) {
	raceEntry, ok := components.Race.First(w)
	if !ok {
		return
	}
	race := components.Race.Get(raceEntry)
	race.StateChanged = false
	race.Tick++

	switch race.State {
	case netconfig.RaceWaiting:
		race.Step = 0

	case netconfig.RaceCountdown:
		race.Clock += duration
		race.Step = 0
		if race.Clock >= 0 {
			// Only the part of the tick past the start is raced.
			race.Step = race.Clock
			race.SetState(netconfig.RaceRunning)
		}

	case netconfig.RaceRunning, netconfig.RaceFinished:
		race.Clock += duration
		race.Step = duration
	}
}
