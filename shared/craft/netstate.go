package craft

import (
	"fmt"

	"github.com/automoto/hoverrace-mp/shared/bitpack"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// NetStateSize is the packed size of a craft's net state in bytes.
const NetStateSize = 23

// MaxRoom is the highest room index the net state can carry. The 11 bit
// room field is read back unsigned when its signed value is below -1, and
// the all-ones pattern stays reserved for "no room".
const MaxRoom = 2046

// NetState is a craft's replicated state.
//
// Layout, LSB-first, as (bit offset, width, dropped low bits):
//
//	posX        (0,   32, 0)
//	posY        (32,  32, 0)
//	posZ        (64,  27, 0)
//	room        (91,  11, 0)
//	orientation (102,  9, 3)
//	speedX*256  (111, 17, 2)
//	speedY*256  (128, 17, 2)
//	speedZ*256  (145,  9, 2)
//	controls    (154, 15, 0)
//	onFloor     (169,  1, 0)
//	model       (170,  3, 0)
//	padding     (173, 11, 0)
type NetState [NetStateSize]byte

type field struct {
	offset, length, precision int
}

var (
	fieldPosX        = field{0, 32, 0}
	fieldPosY        = field{32, 32, 0}
	fieldPosZ        = field{64, 27, 0}
	fieldRoom        = field{91, 11, 0}
	fieldOrientation = field{102, 9, 3}
	fieldSpeedX      = field{111, 17, 2}
	fieldSpeedY      = field{128, 17, 2}
	fieldSpeedZ      = field{145, 9, 2}
	fieldControls    = field{154, 15, 0}
	fieldOnFloor     = field{169, 1, 0}
	fieldModel       = field{170, 3, 0}
	fieldPadding     = field{173, 11, 0}
)

func set(p bitpack.Pack, f field, v int32) { p.Set(f.offset, f.length, f.precision, v) }
func get(p bitpack.Pack, f field) int32    { return p.Get(f.offset, f.length, f.precision) }
func getUnsigned(p bitpack.Pack, f field) uint32 {
	return p.GetUnsigned(f.offset, f.length, f.precision)
}

// NetState packs the craft's state. The horizontal speed sent is the one
// from before this tick's collisions.
func (c *Craft) NetState() NetState {
	var ns NetState
	p := bitpack.Pack(ns[:])

	set(p, fieldPosX, c.position.X)
	set(p, fieldPosY, c.position.Y)
	set(p, fieldPosZ, c.position.Z)
	set(p, fieldRoom, int32(c.room))
	set(p, fieldOrientation, int32(c.orientation))
	set(p, fieldSpeedX, int32(c.xSpeedBeforeCollision*256))
	set(p, fieldSpeedY, int32(c.ySpeedBeforeCollision*256))
	set(p, fieldSpeedZ, int32(c.zSpeed*256))
	set(p, fieldControls, int32(c.controls&controlMask))
	var onFloor int32
	if c.onFloor {
		onFloor = 1
	}
	set(p, fieldOnFloor, onFloor)
	set(p, fieldModel, int32(c.model))
	set(p, fieldPadding, 0)
	return ns
}

// SetNetState overwrites the craft's state with a packed net state. The
// cabin heading is not sent; it is rebuilt from the speed while braking and
// left alone otherwise.
func (c *Craft) SetNetState(data []byte) error {
	if len(data) != NetStateSize {
		return fmt.Errorf("set net state from %d bytes: %w", len(data), ErrNetStateSize)
	}
	p := bitpack.Pack(data)

	c.position = shape.Coordinate{
		X: get(p, fieldPosX),
		Y: get(p, fieldPosY),
		Z: get(p, fieldPosZ),
	}
	c.room = int(get(p, fieldRoom))
	if c.room < -1 {
		c.room = int(getUnsigned(p, fieldRoom))
	}
	c.orientation = gamemath.Angle(getUnsigned(p, fieldOrientation))

	c.xSpeed = float64(get(p, fieldSpeedX)) / 256
	c.ySpeed = float64(get(p, fieldSpeedY)) / 256
	c.zSpeed = float64(get(p, fieldSpeedZ)) / 256
	c.xSpeedBeforeCollision = c.xSpeed
	c.ySpeedBeforeCollision = c.ySpeed

	c.controls = Control(getUnsigned(p, fieldControls))
	c.onFloor = get(p, fieldOnFloor) != 0
	c.model = int(getUnsigned(p, fieldModel))

	if c.controls&Brake != 0 {
		c.cabin = gamemath.HeadingOf(c.xSpeed, c.ySpeed).Reverse()
	}
	return nil
}
