// Package effect holds the contact effects that level elements carry and
// moving elements receive when they touch. The variant set is closed: every
// effect is exactly one of the structs below.
package effect

// Kind identifies an effect variant.
type Kind int

const (
	KindPhysicalCollision Kind = iota
	KindSpeedDoubler
	KindFuelGain
	KindLossOfControl
	KindCheckpoint
	KindPowerUp
)

func (k Kind) String() string {
	switch k {
	case KindPhysicalCollision:
		return "physical_collision"
	case KindSpeedDoubler:
		return "speed_doubler"
	case KindFuelGain:
		return "fuel_gain"
	case KindLossOfControl:
		return "loss_of_control"
	case KindCheckpoint:
		return "checkpoint"
	case KindPowerUp:
		return "power_up"
	default:
		return "unknown"
	}
}

// Effect is implemented only by the types in this package.
type Effect interface {
	Kind() Kind
	sealed()
}

// InfiniteWeight marks static structure that never yields in a collision.
const InfiniteWeight int32 = 1 << 24

// PhysicalCollision transfers momentum. Speeds are in 1/256 distance units
// per millisecond.
type PhysicalCollision struct {
	Weight int32
	XSpeed int32
	YSpeed int32
	ZSpeed int32
}

// Wall is the collision payload of static structure.
var Wall = PhysicalCollision{Weight: InfiniteWeight}

// Moving reports whether the other party has horizontal speed.
func (p PhysicalCollision) Moving() bool {
	return p.XSpeed != 0 || p.YSpeed != 0
}

// SpeedDoubler launches the receiver along its cabin heading.
type SpeedDoubler struct{}

// FuelGain refills Qty fuel units per millisecond of contact.
type FuelGain struct {
	Qty float64
}

// LossSource is what caused a loss of control.
type LossSource int

const (
	SourceMissile LossSource = iota
	SourceMine
)

// NoElement is the ElementID/PermID of effects without a collectible element.
const NoElement = -1

// LossOfControl spins the receiver out. ElementID is the permanent id of the
// mine that exploded and HoverID the craft that fired or dropped it.
type LossOfControl struct {
	Source    LossSource
	ElementID int
	HoverID   int
}

// CheckpointType orders the markers of a lap.
type CheckpointType int

const (
	FinishLine CheckpointType = iota
	Check1
	Check2
)

// Checkpoint is crossed once per lap in the order Check1, Check2, FinishLine.
type Checkpoint struct {
	Type CheckpointType
}

// PowerUp is carried by a collectible can.
type PowerUp struct {
	PermID int
}

func (PhysicalCollision) Kind() Kind { return KindPhysicalCollision }
func (SpeedDoubler) Kind() Kind      { return KindSpeedDoubler }
func (FuelGain) Kind() Kind          { return KindFuelGain }
func (LossOfControl) Kind() Kind     { return KindLossOfControl }
func (Checkpoint) Kind() Kind        { return KindCheckpoint }
func (PowerUp) Kind() Kind           { return KindPowerUp }

func (PhysicalCollision) sealed() {}
func (SpeedDoubler) sealed()      {}
func (FuelGain) sealed()          {}
func (LossOfControl) sealed()     {}
func (Checkpoint) sealed()        {}
func (PowerUp) sealed()           {}
