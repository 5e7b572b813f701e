package components

import "github.com/yohamta/donburi"

type PilotData struct {
	Name string
}

var Pilot = donburi.NewComponentType[PilotData]()
