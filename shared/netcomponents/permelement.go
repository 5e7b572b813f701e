package netcomponents

import (
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// NetPermElementData is a mine or power-up can. Room -1 means a craft is
// carrying it and it should not be drawn.
type NetPermElementData struct {
	ID      int
	Kind    netconfig.PermKindID
	Room    int
	X, Y, Z float64
}

var NetPermElement = donburi.NewComponentType[NetPermElementData]()
