package craft

import (
	"math"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
)

// ApplyEffect reacts to an effect the craft touched at race time time,
// over a contact lasting duration. direction points toward the source and
// is only meaningful when validDirection is set.
//
// Only physical collisions and speed doublers act on slave crafts; the
// other effects are decided by the master and arrive through net state.
func (c *Craft) ApplyEffect(e effect.Effect, time, duration int32, validDirection bool, direction gamemath.Angle, lvl level.Level) {
	switch e := e.(type) {
	case effect.PhysicalCollision:
		if validDirection {
			c.collide(e, time, direction)
		}

	case effect.SpeedDoubler:
		speed := config.Craft.SpeedDoublerFactor * config.HoverModels[0].SteadySpeed
		c.xSpeed = speed * float64(gamemath.Cos[c.cabin]) / gamemath.TrigoFract
		c.ySpeed = speed * float64(gamemath.Sin[c.cabin]) / gamemath.TrigoFract

	case effect.FuelGain:
		if c.master {
			c.fuel = math.Max(0, math.Min(c.fuel+float64(duration)*e.Qty, config.Craft.FuelCapacity))
		}

	case effect.LossOfControl:
		if c.master {
			c.loseControl(e, lvl)
		}

	case effect.PowerUp:
		if c.master && c.opts.Has(config.OptAllowCans) {
			c.pickUp(e, lvl)
		}

	case effect.Checkpoint:
		if c.master && !c.finished {
			c.crossCheckpoint(e.Type, time)
		}
	}
}

func (c *Craft) collide(hit effect.PhysicalCollision, time int32, direction gamemath.Angle) {
	m := effect.InertialMoment{
		Weight: config.HoverModels[c.model].Weight,
		XSpeed: int32(c.xSpeed * 256),
		YSpeed: int32(c.ySpeed * 256),
	}
	m.ComputeCollision(hit, direction)

	c.xSpeed = float64(m.XSpeed) / 256
	c.ySpeed = float64(m.YSpeed) / 256

	if m.XSpeed != 0 || m.YSpeed != 0 {
		c.playBoth(config.SoundBump)
	}
	if hit.Moving() {
		c.netPriority = true
		c.lastCollisionAt = time
	}
}

func (c *Craft) loseControl(hit effect.LossOfControl, lvl level.Level) {
	// Hits landing while already spinning hard are not credited again.
	if c.outOfControl < config.Craft.OutOfControlHitWindow {
		c.lastHits.TryPush(hit.HoverID)
	}
	c.outOfControl = config.Craft.OutOfControlDuration
	c.playBoth(config.SoundOutOfControl)

	if hit.Source != effect.SourceMine {
		return
	}
	c.zSpeed = config.Craft.MineLaunchBoost * config.HoverModels[0].MaxZSpeed

	if hit.ElementID != effect.NoElement && !c.mines.Full() && c.opts.Has(config.OptAllowMines) {
		c.mines.TryPush(hit.ElementID)
		lvl.SetPermElementPos(hit.ElementID, level.NoRoom, c.position)
	}
}

func (c *Craft) pickUp(p effect.PowerUp, lvl level.Level) {
	if c.powerUpLeft != 0 || p.PermID == effect.NoElement || c.powerUps.Full() {
		return
	}
	c.powerUps.TryPush(p.PermID)
	lvl.SetPermElementPos(p.PermID, level.NoRoom, c.position)
	c.playBoth(config.SoundPickup)
	c.powerUpLeft = config.Craft.PowerUpDuration
}

// crossCheckpoint enforces the lap order Check1, Check2, finish line.
// Crossings out of order are ignored.
func (c *Craft) crossCheckpoint(t effect.CheckpointType, time int32) {
	switch t {
	case effect.Check1:
		if !c.check1 && !c.check2 {
			c.emitCheckpoint(1)
			c.check1 = true
		}

	case effect.Check2:
		if c.check1 && !c.check2 {
			c.emitCheckpoint(2)
			c.check2 = true
		}

	case effect.FinishLine:
		if !c.check2 {
			return
		}
		c.check1, c.check2 = false, false

		c.emitCheckpoint(0)
		c.emit(c.signals.finishLine)

		c.lastLapDuration = time - c.lastLapCompletion
		c.lastLapCompletion = time
		if c.bestLapDuration == 0 || c.lastLapDuration < c.bestLapDuration {
			c.bestLapDuration = c.lastLapDuration
		}

		// A finish line handler may have ended the race.
		if c.finished {
			c.playBoth(config.SoundFinish)
		} else {
			c.playBoth(config.SoundLineCrossing)
		}
	}
}
