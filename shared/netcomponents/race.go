package netcomponents

import (
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetResult is one line of the standings.
type NetResult struct {
	HoverID   int
	Laps      int
	BestLap   int32
	TotalTime int32
	Finished  bool
}

type NetRaceData struct {
	Track   string
	State   netconfig.RaceStateID
	Clock   int32 // ms since the start, negative during the countdown
	Laps    int   // laps to finish
	Results []NetResult
}

var NetRace = donburi.NewComponentType[NetRaceData]()
