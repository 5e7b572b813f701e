package craft

import (
	"fmt"
	"math"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// Simulate advances the craft by duration milliseconds inside lvl, starting
// from room, and returns the room it ends in.
//
// A master craft integrates in fixed slices and then serves pending weapon
// requests. A slave craft extrapolates from its last net state in a single
// step.
func (c *Craft) Simulate(duration int32, lvl level.Level, room int) (int, error) {
	if duration < 0 {
		return room, fmt.Errorf("simulate %d ms: %w", duration, ErrNegativeDuration)
	}
	if room < level.NoRoom || room > MaxRoom {
		return room, fmt.Errorf("simulate in room %d: %w", room, ErrRoomOutOfRange)
	}
	c.room = room

	if duration > 0 {
		if c.master {
			if !c.started {
				c.started = true
				c.emit(c.signals.started)
			}
			if c.MotorOn() && c.fuel > 0 {
				c.motorDisplay = config.Craft.MotorDisplay
			}
		} else if c.MotorOn() {
			c.motorDisplay = config.Craft.MotorDisplay
		}
	}
	c.motorDisplay = max(c.motorDisplay-duration, 0)

	c.orientCabin()

	if !c.master {
		return c.internalSimulate(duration, lvl, room), nil
	}

	slice := config.Craft.TimeSlice
	for left := duration; left > 0; left -= slice {
		room = c.internalSimulate(min(left, slice), lvl, room)
	}

	c.xSpeedBeforeCollision = c.xSpeed
	c.ySpeedBeforeCollision = c.ySpeed

	c.missileRefill = max(c.missileRefill-duration, 0)
	c.powerUpLeft = max(c.powerUpLeft-duration, 0)

	if !c.fireDone {
		c.fireDone = true
		c.fire(lvl)
	}
	return room, nil
}

// orientCabin points the cabin against the motion while braking and keeps
// it looking back while look-back is held.
func (c *Craft) orientCabin() {
	switch {
	case c.controls&Brake != 0:
		steady := config.HoverModels[c.model].SteadySpeed
		if math.Hypot(c.xSpeed, c.ySpeed) > steady/config.Craft.BrakeCabinDivisor {
			c.cabin = gamemath.HeadingOf(c.xSpeed, c.ySpeed).Reverse()
		}
	case c.controls&LookBack != 0:
		if int(c.cabin)-int(c.orientation) < int(gamemath.Pi/2) {
			c.orientation = gamemath.NormalizeAngle(int(c.cabin) - int(gamemath.Pi))
		}
	default:
		c.cabin = c.orientation
	}
}

func (c *Craft) internalSimulate(duration int32, lvl level.Level, room int) int {
	model := config.HoverModels[c.model]
	d := float64(duration)

	// No friction while spinning out.
	if c.outOfControl <= 0 {
		c.xSpeed, c.ySpeed = gamemath.ApplyFriction(c.xSpeed, c.ySpeed, duration,
			model.FrictionAccel, model.SteadySpeed, config.HoverModels[0].SteadySpeed)
	}

	c.zSpeed += d * model.ZAccel * lvl.Gravity()
	if c.zSpeed < -model.MaxZSpeed {
		c.zSpeed = -model.MaxZSpeed
	}

	c.rotate(d)
	c.thrust(d, model)

	room = c.move(duration, lvl, room)

	if c.fuel <= 0 && c.master {
		c.set(MotorOn, false)
	}
	c.room = room
	return room
}

func (c *Craft) rotate(d float64) {
	if c.outOfControl > 0 {
		c.outOfControl = max(c.outOfControl-int32(d), 0)
		spin := d * config.Craft.OutOfControlSpin * config.Craft.RotationSpeed
		c.orientation = gamemath.NormalizeAngle(int(float64(c.orientation) + spin))
		return
	}

	right, left := c.controls&Right != 0, c.controls&Left != 0
	if right == left {
		return
	}
	rot := d * config.Craft.RotationSpeed
	if right {
		rot = -rot
	}
	if c.controls&SlowRotation != 0 {
		rot /= config.Craft.SlowRotationDivisor
	}
	if c.controls&LookBack != 0 {
		c.cabin = gamemath.NormalizeAngle(int(c.cabin) + int(rot))
	} else {
		c.orientation = gamemath.NormalizeAngle(int(c.orientation) + int(rot))
	}
}

// thrust accelerates along the cabin heading, less and less as the craft
// nears its top speed, and burns fuel.
func (c *Craft) thrust(d float64, model config.HoverModelConfig) {
	if !c.MotorOn() {
		return
	}
	maxFactor, boost := config.Craft.MaxSpeedFactor, config.Craft.AccelBoost
	if c.powerUpLeft > 0 {
		maxFactor, boost = config.Craft.PoweredMaxSpeedFactor, config.Craft.PoweredAccelBoost
	}

	along := c.cabin.Project(c.xSpeed, c.ySpeed)
	if along < maxFactor*model.SteadySpeed {
		accel := 1 - along/(maxFactor*config.Craft.AccelHeadroom*model.SteadySpeed)
		accel = math.Max(0, math.Min(accel, config.Craft.MaxAccelFactor)) * boost

		c.xSpeed += d * accel * model.MotorAccel * float64(gamemath.Cos[c.cabin]) / gamemath.TrigoFract
		c.ySpeed += d * accel * model.MotorAccel * float64(gamemath.Sin[c.cabin]) / gamemath.TrigoFract
	}

	c.fuel = math.Max(c.fuel-d*model.FuelConsumption, 0)
}

// move tries the full displacement of one step, stepping onto low obstacles
// and sliding down from ceilings. When blocked it bisects the step to find
// the largest fraction of the displacement that fits.
func (c *Craft) move(duration int32, lvl level.Level, room int) int {
	dx := int32(c.xSpeed * float64(duration))
	dy := int32(c.ySpeed * float64(duration))
	dz := int32(c.zSpeed * float64(duration))
	// Always probe downward so resting crafts keep finding the floor.
	if dz == 0 {
		dz = -1
	}

	trial := c.cylinder(config.Craft.MovementRay)
	trial.Position = c.position.Add(shape.Coordinate{X: dx, Y: dy, Z: dz})

	step := duration
	for {
		moved := false

		rep := lvl.ObstacleContact(trial, room, c)
		if rep.InMaze {
			switch {
			case !rep.HaveContact:
				c.position = trial.Position
				room = rep.Room
				c.onFloor = false
				moved = true

			case rep.SpaceToCeiling > 0 && rep.StepHeight <= 1-dz:
				trial.Position.Z += rep.StepHeight
				rep = lvl.ObstacleContact(trial, room, c)
				if rep.InMaze && !rep.HaveContact {
					if !c.onFloor {
						c.playInternal(config.SoundBump)
					}
					c.zSpeed = 0
					c.onFloor = true
					c.position = trial.Position
					room = rep.Room
					moved = true
				}

			case c.zSpeed > 0 && rep.SpaceToFloor > 0 && rep.CeilingStepHeight <= dz:
				trial.Position.Z -= rep.CeilingStepHeight + 1
				rep = lvl.ObstacleContact(trial, room, c)
				if rep.InMaze && !rep.HaveContact {
					c.zSpeed = 0
					c.onFloor = false
					c.position = trial.Position
					room = rep.Room
					moved = true
				}
			}
		}

		if step < config.Craft.MinimumSplittableTimeSlice {
			break
		}
		if moved && step == duration {
			break
		}
		step /= 2
		delta := shape.Coordinate{
			X: fraction(dx, step, duration),
			Y: fraction(dy, step, duration),
			Z: fraction(dz, step, duration),
		}
		if moved {
			trial.Position = trial.Position.Add(delta)
		} else {
			trial.Position = trial.Position.Add(shape.Coordinate{X: -delta.X, Y: -delta.Y, Z: -delta.Z})
		}
	}
	return room
}

func fraction(v, part, whole int32) int32 {
	return int32(int64(part) * int64(v) / int64(whole))
}

func (c *Craft) fire(lvl level.Level) {
	switch c.weapon {
	case WeaponMissile:
		if c.missileRefill != 0 || !c.opts.Has(config.OptAllowWeapons) {
			return
		}
		c.missileRefill = config.Craft.MissileRefillTime

		pos := c.position
		pos.Z += config.Craft.MissileLaunchHeight
		m := c.projectiles.NewMissile(c.hoverID, pos, c.cabin)
		if m == nil {
			return
		}
		lvl.InsertElement(m, c.room, true)
		c.playBoth(config.SoundFire)

	case WeaponMine:
		if !c.opts.Has(config.OptAllowMines) {
			return
		}
		id, ok := c.mines.PopFront()
		if !ok {
			return
		}
		back := c.cabin.Reverse()
		dist := config.Craft.MineDropDistance
		pos := c.position
		pos.X += dist * gamemath.Cos[back] / gamemath.TrigoFract
		pos.Y += dist * gamemath.Sin[back] / gamemath.TrigoFract
		pos.Z += config.Craft.MineDropHeight
		lvl.SetPermElementPos(id, c.room, pos)

	case WeaponPowerUp:
		if !c.opts.Has(config.OptAllowCans) {
			return
		}
		id, ok := c.powerUps.PopFront()
		if !ok {
			return
		}
		pos := c.position
		pos.Z += config.Craft.PowerUpDropHeight
		lvl.SetPermElementPos(id, c.room, pos)
		c.powerUpLeft = config.Craft.PowerUpDuration
	}
}
