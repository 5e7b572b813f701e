// Package missile implements the free element fired by crafts.
package missile

import (
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// Missile flies straight along its orientation, bouncing off walls, until it
// hits a craft, leaves the maze or burns out.
type Missile struct {
	owner       int
	position    shape.Coordinate
	orientation gamemath.Angle
	lived       int32
	dead        bool
	bounced     bool

	effects []effect.Effect
}

var _ level.Receiver = (*Missile)(nil)

// New returns a missile fired by the craft with hover id owner.
func New(owner int, pos shape.Coordinate, orientation gamemath.Angle) *Missile {
	return &Missile{
		owner:       owner,
		position:    pos,
		orientation: orientation,
		effects: []effect.Effect{
			effect.LossOfControl{Source: effect.SourceMissile, ElementID: effect.NoElement, HoverID: owner},
		},
	}
}

// Factory builds missiles for crafts.
type Factory struct{}

func (Factory) NewMissile(owner int, pos shape.Coordinate, orientation gamemath.Angle) level.Element {
	return New(owner, pos, orientation)
}

func (m *Missile) Owner() int                  { return m.owner }
func (m *Missile) Position() shape.Coordinate  { return m.position }
func (m *Missile) Orientation() gamemath.Angle { return m.orientation }
func (m *Missile) Dead() bool                  { return m.dead }

// TakeBounce reports whether the missile bounced since the last call.
func (m *Missile) TakeBounce() bool {
	b := m.bounced
	m.bounced = false
	return b
}

// Simulate advances the missile and returns its room.
func (m *Missile) Simulate(duration int32, lvl level.Level, room int) int {
	if m.dead {
		return room
	}
	m.lived += duration
	if m.lived >= config.Missile.Lifetime {
		m.dead = true
		return room
	}

	dist := config.Missile.Speed * float64(duration)
	dx := int32(dist * float64(gamemath.Cos[m.orientation]) / gamemath.TrigoFract)
	dy := int32(dist * float64(gamemath.Sin[m.orientation]) / gamemath.TrigoFract)

	rep := m.probe(lvl, room, dx, dy)
	switch {
	case !rep.InMaze:
		m.dead = true
		return room
	case rep.HaveContact:
		m.bounce(lvl, room, dx, dy)
		return room
	}
	m.position.X += dx
	m.position.Y += dy
	return rep.Room
}

func (m *Missile) probe(lvl level.Level, room int, dx, dy int32) level.Report {
	next := m.cylinder()
	next.Position.X += dx
	next.Position.Y += dy
	return lvl.ObstacleContact(next, room, m)
}

// bounce mirrors the heading off the wall that blocked a move of (dx, dy).
// Each axis of the move is tried alone to find which side the wall is on;
// a corner sends the missile straight back.
func (m *Missile) bounce(lvl level.Level, room int, dx, dy int32) {
	blocked := func(dx, dy int32) bool {
		rep := m.probe(lvl, room, dx, dy)
		return !rep.InMaze || rep.HaveContact
	}
	blockX := dx != 0 && blocked(dx, 0)
	blockY := dy != 0 && blocked(0, dy)

	switch {
	case blockX && !blockY:
		m.orientation = gamemath.NormalizeAngle(int(gamemath.Pi) - int(m.orientation))
	case blockY && !blockX:
		m.orientation = gamemath.NormalizeAngle(-int(m.orientation))
	default:
		m.orientation = m.orientation.Reverse()
	}
	m.bounced = true
}

func (m *Missile) cylinder() shape.Cylinder {
	return shape.Cylinder{Position: m.position, Ray: config.Missile.Ray, Height: config.Missile.Height}
}

func (m *Missile) ObstacleShape() shape.Shape { return nil }

// ContactShape is nil until the missile is clear of the craft that fired it.
func (m *Missile) ContactShape() shape.Shape {
	if m.dead || m.lived < config.Missile.IgnitionTime {
		return nil
	}
	return m.cylinder()
}

func (m *Missile) ReceivingShape() shape.Shape {
	if m.dead {
		return nil
	}
	return m.cylinder()
}

func (m *Missile) EffectList() []effect.Effect {
	if m.dead {
		return nil
	}
	return m.effects
}

// ApplyEffect bounces the missile off structure and detonates it against
// anything that moves.
func (m *Missile) ApplyEffect(e effect.Effect, _, _ int32, validDirection bool, direction gamemath.Angle, _ level.Level) {
	hit, ok := e.(effect.PhysicalCollision)
	if !ok || !validDirection || m.dead {
		return
	}
	if hit.Weight < effect.InfiniteWeight {
		if m.lived >= config.Missile.IgnitionTime {
			m.dead = true
		}
		return
	}

	// Mirror the heading around the wall normal when flying into it.
	force := direction.Reverse()
	diff := gamemath.NormalizeAngle(int(force) - int(m.orientation) + int(gamemath.Pi))
	if diff < gamemath.Pi/2 || diff > gamemath.Pi+gamemath.Pi/2 {
		m.orientation = gamemath.NormalizeAngle(int(force) + int(diff))
		m.bounced = true
	}
}
