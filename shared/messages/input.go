package messages

import "github.com/automoto/hoverrace-mp/shared/craft"

// CraftInput is sent from client to server each frame with the pilot's
// control bits. The server applies the latest one it received before each
// tick; Sequence lets the client reconcile its prediction.
type CraftInput struct {
	Sequence  uint32        // Incrementing ID for reconciliation
	Controls  craft.Control // MotorOn, Left, Right, Jump, Fire, ...
	Timestamp int64         // Client timestamp (Unix ms)
}

// NewCraftInput creates a CraftInput for the given controls.
func NewCraftInput(seq uint32, controls craft.Control) CraftInput {
	return CraftInput{
		Sequence: seq,
		Controls: controls,
	}
}
