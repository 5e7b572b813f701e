package components

import "github.com/yohamta/donburi"

type LapData struct {
	Laps     int // finish lines crossed in order
	Finished bool
	Place    int // 1-based once finished
}

var Lap = donburi.NewComponentType[LapData]()
