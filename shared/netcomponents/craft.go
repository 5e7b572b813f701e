package netcomponents

import (
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/yohamta/donburi"
)

// NetCraftData is the replicated part of a craft: its packed net state plus
// what the owning client needs for prediction.
type NetCraftData struct {
	State        craft.NetState
	Slot         int
	HoverID      int
	Laps         int
	LastSequence uint32 // Last input sequence applied by the server
	IsLocal      bool   // Client-side only, not synced
}

var NetCraft = donburi.NewComponentType[NetCraftData]()

// NetPilotData names the pilot of a craft. It changes rarely.
type NetPilotData struct {
	Name string
}

var NetPilot = donburi.NewComponentType[NetPilotData]()
