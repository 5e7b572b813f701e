// Package netconfig defines lightweight types shared between client and server
// for network serialization. It must have zero dependencies on graphics
// libraries so the dedicated server binary stays headless.
package netconfig

// ProtocolVersion is compared during the join handshake.
const ProtocolVersion = "hoverrace-mp/1"

// RaceStateID represents the current state of a race.
type RaceStateID int

const (
	RaceWaiting   RaceStateID = iota // Waiting for pilots
	RaceCountdown                    // Pregame, crafts can still be cycled
	RaceRunning                      // Clock is running
	RaceFinished                     // Every craft crossed the last finish line
)

func (s RaceStateID) String() string {
	switch s {
	case RaceWaiting:
		return "waiting"
	case RaceCountdown:
		return "countdown"
	case RaceRunning:
		return "running"
	case RaceFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// EventID identifies a race event broadcast to every client.
type EventID int

const (
	EventCheckpoint EventID = iota
	EventLap
	EventFinished
	EventHit
	EventMissileBounce
)

func (e EventID) String() string {
	switch e {
	case EventCheckpoint:
		return "checkpoint"
	case EventLap:
		return "lap"
	case EventFinished:
		return "finished"
	case EventHit:
		return "hit"
	case EventMissileBounce:
		return "missile_bounce"
	default:
		return "unknown"
	}
}

// PermKindID mirrors level.PermKind on the wire.
type PermKindID int

const (
	PermMine PermKindID = iota
	PermPowerUp
)
