package components

import (
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// RaceData stores the race clock, rules and pending events.
// This is a singleton component - only one race exists per world.
type RaceData struct {
	State        netconfig.RaceStateID
	StateChanged bool  // set by the tick that changed State
	Clock        int32 // ms since the start, negative during the countdown
	Step         int32 // racing ms simulated by the current tick
	Tick         uint64
	Laps         int // laps to finish, 0 races forever
	Options      config.GameOptions
	Finishers    int // crafts that finished so far

	Events []messages.RaceEvent
}

var Race = donburi.NewComponentType[RaceData]()

// Emit queues an event for the server to broadcast.
func (r *RaceData) Emit(e messages.RaceEvent) {
	e.Time = r.Clock
	r.Events = append(r.Events, e)
}

// DrainEvents returns and clears the queued events.
func (r *RaceData) DrainEvents() []messages.RaceEvent {
	ev := r.Events
	r.Events = nil
	return ev
}

// SetState changes the race state and flags the change for this tick.
func (r *RaceData) SetState(s netconfig.RaceStateID) {
	if r.State == s {
		return
	}
	r.State = s
	r.StateChanged = true
}
