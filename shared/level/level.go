// Package level defines what moving elements need from the track they race
// on, plus Maze, a resolv-backed track used by the server and by tests.
package level

import (
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// NoRoom is the room of elements that are not in the maze, such as mines
// carried by a craft.
const NoRoom = -1

// Level is the world a craft collides against. Implementations are not safe
// for concurrent use; crafts of one race are simulated serially.
type Level interface {
	Gravity() float64

	// ObstacleContact reports how s, placed in or near room, touches the
	// level's obstacles. self is never reported as an obstacle.
	ObstacleContact(s shape.Shape, room int, self Element) Report

	// InsertElement adds a free element such as a missile. beginning puts it
	// first in the room's simulation order.
	InsertElement(e Element, room int, beginning bool)

	// SetPermElementPos moves a permanent element. Room NoRoom takes it off
	// the level.
	SetPermElementPos(permID, room int, pos shape.Coordinate)
}

// Report is the outcome of one obstacle query. It is only meaningful for
// the shape position that produced it.
type Report struct {
	// InMaze is false when the shape left every room.
	InMaze      bool
	HaveContact bool
	Room        int

	// StepHeight is how far the shape must rise to clear what it touches.
	StepHeight int32
	// CeilingStepHeight is how far it must sink to clear what it touches.
	CeilingStepHeight int32

	SpaceToCeiling int32
	SpaceToFloor   int32
}

// Element is anything placed in the maze that other elements can touch.
type Element interface {
	// ObstacleShape blocks other elements' movement. Nil means the element
	// can be passed through.
	ObstacleShape() shape.Shape
	// ContactShape is where the element's effects reach.
	ContactShape() shape.Shape
	EffectList() []effect.Effect
}

// Receiver is an element that reacts to the effects it touches.
type Receiver interface {
	Element
	ReceivingShape() shape.Shape
	ApplyEffect(e effect.Effect, time, duration int32, validDirection bool, direction gamemath.Angle, lvl Level)
}

// Contact is one effect reaching a receiver. Direction points from the
// receiver toward the source and is only set when ValidDirection is true.
type Contact struct {
	Effect         effect.Effect
	ValidDirection bool
	Direction      gamemath.Angle
	// Source is the free element that carried the effect, nil for features
	// and permanent elements.
	Source Element
}
