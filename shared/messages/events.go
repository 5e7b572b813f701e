package messages

import "github.com/automoto/hoverrace-mp/shared/netconfig"

// RaceEvent is broadcast when something happens that clients cannot derive
// from replicated state alone.
type RaceEvent struct {
	Event   netconfig.EventID
	HoverID int   // craft the event is about
	By      int   // hitting craft for EventHit, checkpoint number for EventCheckpoint
	Time    int32 // race clock
	LapTime int32 // EventLap and EventFinished
}

// RaceStateChangeEvent is broadcast when the race state changes
type RaceStateChangeEvent struct {
	NewState netconfig.RaceStateID
	Clock    int32
}

// CraftSelect is sent during the countdown to pick a craft model directly.
type CraftSelect struct {
	Model int
}
