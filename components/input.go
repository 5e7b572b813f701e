package components

import (
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/yohamta/donburi"
)

// InputData stores the latest controls received for a craft. The tick
// applies Controls before simulating.
type InputData struct {
	Controls     craft.Control
	LastSequence uint32 // Last input sequence applied (for client reconciliation)
}

var Input = donburi.NewComponentType[InputData]()
