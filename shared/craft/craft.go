// Package craft simulates one hovercraft: its physics against a level, its
// weapons and pickups, its race progress and its replicated net state.
//
// A craft is either master, simulating its own physics, or slave, mirroring
// a remote master from received net states between which it only
// extrapolates. A Craft is not safe for concurrent use.
package craft

import (
	"math"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/missile"
	"github.com/automoto/hoverrace-mp/shared/ringbuf"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// DefaultHoverID is the id of crafts created without WithHoverID.
const DefaultHoverID = 10

// ProjectileFactory builds the missiles a craft fires.
type ProjectileFactory interface {
	NewMissile(owner int, pos shape.Coordinate, orientation gamemath.Angle) level.Element
}

// Craft is a player's hovercraft.
type Craft struct {
	playerIdx int
	hoverID   int
	model     int
	opts      config.GameOptions
	master    bool

	renderer    Renderer
	projectiles ProjectileFactory

	position    shape.Coordinate
	room        int
	orientation gamemath.Angle
	cabin       gamemath.Angle

	xSpeed, ySpeed, zSpeed float64

	// Speed before this tick's collisions, which is what gets replicated.
	xSpeedBeforeCollision float64
	ySpeedBeforeCollision float64
	onFloor               bool

	controls     Control
	fireDone     bool
	motorDisplay int32
	currentTime  int32

	fuel            float64
	weapon          Weapon
	missileRefill   int32
	powerUpLeft     int32
	outOfControl    int32
	mines           *ringbuf.Ring[int]
	powerUps        *ringbuf.Ring[int]
	lastHits        *ringbuf.Ring[int]
	internalSounds  *ringbuf.Ring[config.SoundID]
	externalSounds  *ringbuf.Ring[config.SoundID]
	netPriority     bool
	lastCollisionAt int32

	started           bool
	finished          bool
	check1, check2    bool
	lastLapCompletion int32
	lastLapDuration   int32
	bestLapDuration   int32

	signals signals
}

var _ level.Receiver = (*Craft)(nil)

// Option configures a craft at construction.
type Option func(*Craft)

// WithHoverID sets the id other elements use to refer to the craft, such as
// the owner of its missiles.
func WithHoverID(id int) Option {
	return func(c *Craft) { c.hoverID = id }
}

// WithRenderer attaches the craft's view. Sounds are only queued when a
// renderer is attached. The craft owns r and closes it in Close.
func WithRenderer(r Renderer) Option {
	return func(c *Craft) { c.renderer = r }
}

// WithProjectiles replaces the missile factory.
func WithProjectiles(f ProjectileFactory) Option {
	return func(c *Craft) { c.projectiles = f }
}

// AsSlave makes the craft mirror a remote master.
func AsSlave() Option {
	return func(c *Craft) { c.master = false }
}

// New creates the craft of player playerIdx. The model starts on the first
// craft the options allow.
func New(playerIdx int, opts config.GameOptions, options ...Option) (*Craft, error) {
	model, err := NextAllowedCraft(opts, 3, 1)
	if err != nil {
		return nil, err
	}
	c := &Craft{
		playerIdx:      playerIdx,
		hoverID:        DefaultHoverID,
		model:          model,
		opts:           opts,
		master:         true,
		projectiles:    missile.Factory{},
		room:           level.NoRoom,
		fireDone:       true,
		fuel:           config.Craft.FuelCapacity,
		weapon:         WeaponMissile,
		mines:          ringbuf.New[int](config.Craft.MineCapacity),
		powerUps:       ringbuf.New[int](config.Craft.PowerUpCapacity),
		lastHits:       ringbuf.New[int](config.Craft.HitCapacity),
		internalSounds: ringbuf.New[config.SoundID](config.Craft.SoundCapacity),
		externalSounds: ringbuf.New[config.SoundID](config.Craft.SoundCapacity),
	}
	for _, o := range options {
		o(c)
	}
	return c, nil
}

// Close releases the renderer.
func (c *Craft) Close() error {
	if c.renderer == nil {
		return nil
	}
	r := c.renderer
	c.renderer = nil
	return r.Close()
}

func (c *Craft) PlayerIndex() int    { return c.playerIdx }
func (c *Craft) HoverID() int        { return c.hoverID }
func (c *Craft) SetHoverID(id int)   { c.hoverID = id }
func (c *Craft) Model() int          { return c.model }
func (c *Craft) SetModel(m int)      { c.model = m }
func (c *Craft) IsMaster() bool      { return c.master }
func (c *Craft) SetMaster(mode bool) { c.master = mode }

func (c *Craft) Options() config.GameOptions { return c.opts }

// SetSimulationTime tells the craft the race clock. Negative times are the
// pregame, during which steering picks the craft model.
func (c *Craft) SetSimulationTime(t int32) { c.currentTime = t }

// Place puts the craft at a starting position.
func (c *Craft) Place(pos shape.Coordinate, room int, orientation gamemath.Angle) {
	c.position = pos
	c.room = room
	c.SetOrientation(orientation)
}

func (c *Craft) Position() shape.Coordinate { return c.position }
func (c *Craft) Room() int                  { return c.room }

func (c *Craft) Orientation() gamemath.Angle { return c.orientation }

// CabinOrientation is the heading the craft shows and fires along.
func (c *Craft) CabinOrientation() gamemath.Angle { return c.cabin }

// Speed returns the current velocity in distance units per millisecond.
func (c *Craft) Speed() (x, y, z float64) { return c.xSpeed, c.ySpeed, c.zSpeed }

// SetSpeed overwrites the velocity.
func (c *Craft) SetSpeed(x, y, z float64) {
	c.xSpeed, c.ySpeed, c.zSpeed = x, y, z
}

func (c *Craft) OnFloor() bool { return c.onFloor }

// Fuel returns the fuel left in fuel units.
func (c *Craft) Fuel() float64 { return c.fuel }

func (c *Craft) CurrentWeapon() Weapon { return c.weapon }

// MissileRefill is the time left before a missile can be fired.
func (c *Craft) MissileRefill() int32 { return c.missileRefill }

// PowerUpLeft is the remaining boost time.
func (c *Craft) PowerUpLeft() int32 { return c.powerUpLeft }

// NextCheckpoint is the marker the craft has to cross next to progress
// through the lap.
func (c *Craft) NextCheckpoint() effect.CheckpointType {
	switch {
	case !c.check1:
		return effect.Check1
	case !c.check2:
		return effect.Check2
	}
	return effect.FinishLine
}

// OutOfControl is the remaining spin time.
func (c *Craft) OutOfControl() int32 { return c.outOfControl }

// NetPriority reports whether a moving element hit the craft since the
// flag was last cleared.
func (c *Craft) NetPriority() bool { return c.netPriority }

func (c *Craft) ClearNetPriority() { c.netPriority = false }

func (c *Craft) LastCollisionTime() int32 { return c.lastCollisionAt }

// Element shapes. Crafts never block other elements; they push each other
// through their physical collision effect.

func (c *Craft) cylinder(ray int32) shape.Cylinder {
	return shape.Cylinder{Position: c.position, Ray: ray, Height: config.Craft.Height}
}

func (c *Craft) ObstacleShape() shape.Shape  { return nil }
func (c *Craft) ContactShape() shape.Shape   { return c.cylinder(config.Craft.ContactRay) }
func (c *Craft) ReceivingShape() shape.Shape { return c.cylinder(config.Craft.CollisionRay) }

// EffectList is the craft's own momentum, offered to whatever it touches.
func (c *Craft) EffectList() []effect.Effect {
	return []effect.Effect{effect.PhysicalCollision{
		Weight: config.HoverModels[c.model].Weight,
		XSpeed: int32(c.xSpeed * 256),
		YSpeed: int32(c.ySpeed * 256),
	}}
}

// HUD queries

// FuelLevel is the fraction of the tank left.
func (c *Craft) FuelLevel() float64 {
	return c.fuel / config.Craft.FuelCapacity
}

// MissileRefillLevel maps the missile cooldown onto levels gauge steps, the
// top step meaning ready.
func (c *Craft) MissileRefillLevel(levels int) int {
	if !c.opts.Has(config.OptAllowWeapons) {
		return 0
	}
	refill := config.Craft.MissileRefillTime
	return (levels - 1) * int(refill-c.missileRefill) / int(refill)
}

func (c *Craft) MineCount() int    { return c.mines.Len() }
func (c *Craft) PowerUpCount() int { return c.powerUps.Len() }

// PowerUpFraction maps the remaining boost onto levels gauge steps.
func (c *Craft) PowerUpFraction(levels int) int {
	if c.powerUpLeft <= 0 {
		return 0
	}
	f := 1 + int(c.powerUpLeft-1)*levels/int(config.Craft.PowerUpDuration)
	return min(f, levels)
}

// AbsoluteSpeed is the horizontal speed as a gauge fraction in [0, 1].
func (c *Craft) AbsoluteSpeed() float64 {
	full := config.HoverModels[0].SteadySpeed * config.Craft.HUDSpeedFactor
	return math.Min(math.Hypot(c.xSpeed, c.ySpeed)/full, 1)
}

// DirectionalSpeed is the speed along the cabin heading as a gauge fraction
// in [-1, 1].
func (c *Craft) DirectionalSpeed() float64 {
	full := config.HoverModels[0].SteadySpeed * config.Craft.HUDSpeedFactor
	v := c.cabin.Project(c.xSpeed, c.ySpeed) / full
	return math.Max(-1, math.Min(v, 1))
}

// Race progress

func (c *Craft) TotalTime() int32         { return c.lastLapCompletion }
func (c *Craft) BestLapDuration() int32   { return c.bestLapDuration }
func (c *Craft) LastLapDuration() int32   { return c.lastLapDuration }
func (c *Craft) LastLapCompletion() int32 { return c.lastLapCompletion }

// HasStarted reports whether the pregame is over for this craft.
func (c *Craft) HasStarted() bool { return c.started }

// Finish ends the craft's race. The finished signal fires once.
func (c *Craft) Finish() {
	if c.finished {
		return
	}
	c.finished = true
	c.emit(c.signals.finished)
}

func (c *Craft) HasFinished() bool { return c.finished }

// HitQueueCount is the number of unread hits.
func (c *Craft) HitQueueCount() int { return c.lastHits.Len() }

// PopHit returns the hover id of the oldest unread craft that made this one
// lose control.
func (c *Craft) PopHit() (int, bool) { return c.lastHits.PopFront() }
