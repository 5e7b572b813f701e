package components

import (
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/yohamta/donburi"
)

// CraftData links an entity to its simulated craft. Slot is the grid
// position and the simulation order.
type CraftData struct {
	Craft *craft.Craft
	Slot  int
}

var Craft = donburi.NewComponentType[CraftData]()
