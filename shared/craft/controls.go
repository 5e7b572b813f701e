package craft

import (
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
)

// Control is the bitmask of held inputs. It is replicated in the net state,
// so only the low 15 bits may be used.
type Control uint16

const (
	MotorOn Control = 1 << iota
	Right
	Left
	Jump
	Fire
	Brake
	SlowRotation
	LookBack
	SelectWeapon

	// AllControls has every defined control set.
	AllControls = SelectWeapon<<1 - 1

	controlMask Control = 1<<15 - 1
)

// Weapon is the item fired by the fire control.
type Weapon int

const (
	WeaponMissile Weapon = iota
	WeaponMine
	WeaponPowerUp

	numWeapons
)

func (w Weapon) String() string {
	switch w {
	case WeaponMissile:
		return "missile"
	case WeaponMine:
		return "mine"
	case WeaponPowerUp:
		return "power_up"
	default:
		return "none"
	}
}

// NextAllowedCraft returns the first craft model after cur, stepping by step
// (1 forwards, -1 backwards), that the options allow.
func NextAllowedCraft(opts config.GameOptions, cur, step int) (int, error) {
	if opts&config.OptCraftMask == 0 {
		return 0, ErrAllCraftsDisabled
	}
	for {
		cur = (cur + step + 4) % 4
		if opts.AllowsCraft(cur) {
			return cur, nil
		}
	}
}

// Controls returns the held inputs.
func (c *Craft) Controls() Control { return c.controls }

// SetControls applies a full input snapshot through the individual setters,
// so edge-triggered actions fire exactly once per press.
func (c *Craft) SetControls(in Control) {
	c.SetEngineState(in&MotorOn != 0)
	c.SetTurnLeftState(in&Left != 0)
	c.SetTurnRightState(in&Right != 0)
	c.SetBrakeState(in&Brake != 0)
	c.SetSlowRotation(in&SlowRotation != 0)
	c.SetLookBackState(in&LookBack != 0)
	c.SetJump(in&Jump != 0)
	c.SetFire(in&Fire != 0)
	c.SetChangeItem(in&SelectWeapon != 0)
}

func (c *Craft) set(bit Control, on bool) {
	if on {
		c.controls |= bit
	} else {
		c.controls &^= bit
	}
}

// SetEngineState turns the motor on or off. An empty tank refuses to start
// unless the motor was off, in which case a little limp fuel is granted.
func (c *Craft) SetEngineState(on bool) {
	if c.fuel <= 0 {
		if c.controls&MotorOn == 0 && on {
			c.fuel = config.Craft.LimpFuel
		} else {
			on = false
		}
	}
	c.set(MotorOn, on)
}

// MotorOn reports whether the engine is running.
func (c *Craft) MotorOn() bool { return c.controls&MotorOn != 0 }

// SetTurnLeftState steers left. Before the race starts a fresh press cycles
// back to the previous allowed craft model.
func (c *Craft) SetTurnLeftState(on bool) {
	if on && c.controls&Left == 0 && c.currentTime < 0 {
		c.cycleModel(-1)
	}
	c.set(Left, on)
}

// SetTurnRightState steers right, cycling forward through craft models
// before the race starts.
func (c *Craft) SetTurnRightState(on bool) {
	if on && c.controls&Right == 0 && c.currentTime < 0 {
		c.cycleModel(1)
	}
	c.set(Right, on)
}

func (c *Craft) cycleModel(step int) {
	// New already rejected options without crafts.
	if m, err := NextAllowedCraft(c.opts, c.model, step); err == nil {
		c.model = m
	}
}

func (c *Craft) SetBrakeState(on bool)   { c.set(Brake, on) }
func (c *Craft) SetSlowRotation(on bool) { c.set(SlowRotation, on) }

// SetLookBackState turns the cabin around. Releasing it makes the cabin
// heading the new orientation.
func (c *Craft) SetLookBackState(on bool) {
	if !on && c.controls&LookBack != 0 {
		c.orientation = c.cabin
	}
	c.set(LookBack, on)
}

// SetJump jumps when pressed while on the floor. Pressing in the air only
// plays the failed jump sound.
func (c *Craft) SetJump(on bool) {
	if on && c.controls&Jump == 0 {
		if c.onFloor {
			c.zSpeed = config.Craft.JumpBoost * config.HoverModels[c.model].MaxZSpeed
			c.playInternal(config.SoundJump)
		} else {
			c.playInternal(config.SoundMisJump)
		}
	}
	c.set(Jump, on)
}

// SetFire requests the current weapon. The request is served by the next
// master Simulate call.
func (c *Craft) SetFire(on bool) {
	if on && c.controls&Fire == 0 {
		c.fireDone = false
	}
	c.set(Fire, on)
}

// SetChangeItem selects the next weapon on each press.
func (c *Craft) SetChangeItem(on bool) {
	if on && c.controls&SelectWeapon == 0 {
		c.weapon = (c.weapon + 1) % numWeapons
	}
	c.set(SelectWeapon, on)
}

// SetOrientation turns both the craft and its cabin.
func (c *Craft) SetOrientation(a gamemath.Angle) {
	c.orientation = a
	c.cabin = a
}
