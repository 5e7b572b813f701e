package craft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

func TestCheckpointOrdering(t *testing.T) {
	c := newCraft(t, config.OptDefault)
	maze := openMaze(t)

	var checkpoints []int
	var laps int
	c.OnCheckpoint(func(_ *Craft, n int) { checkpoints = append(checkpoints, n) })
	c.OnFinishLine(func(*Craft) { laps++ })

	sequence := []effect.CheckpointType{effect.FinishLine, effect.Check2, effect.Check1, effect.Check2, effect.FinishLine}
	for i, typ := range sequence {
		c.ApplyEffect(effect.Checkpoint{Type: typ}, int32(1000*(i+1)), 5, false, 0, maze)
	}

	assert.Equal(t, []int{1, 2, 0}, checkpoints)
	assert.Equal(t, 1, laps)
	assert.Equal(t, int32(5000), c.LastLapDuration())
	assert.Equal(t, int32(5000), c.BestLapDuration())
	assert.Equal(t, int32(5000), c.TotalTime())
}

func TestBestLapKeepsTheShortest(t *testing.T) {
	c := newCraft(t, config.OptDefault)
	maze := openMaze(t)

	lap := func(finishAt int32) {
		for _, typ := range []effect.CheckpointType{effect.Check1, effect.Check2, effect.FinishLine} {
			c.ApplyEffect(effect.Checkpoint{Type: typ}, finishAt, 5, false, 0, maze)
		}
	}
	lap(30000)
	lap(55000)
	lap(90000)

	assert.Equal(t, int32(35000), c.LastLapDuration())
	assert.Equal(t, int32(25000), c.BestLapDuration())
	assert.Equal(t, int32(90000), c.LastLapCompletion())
}

func TestFinishLineSounds(t *testing.T) {
	r := &recorder{}
	c := newCraft(t, config.OptDefault, WithRenderer(r))
	maze := openMaze(t)

	laps := 0
	var finished int
	c.OnFinished(func(*Craft) { finished++ })
	c.OnFinishLine(func(cr *Craft) {
		laps++
		if laps == 2 {
			cr.Finish()
		}
	})

	for lap := int32(1); lap <= 3; lap++ {
		for _, typ := range []effect.CheckpointType{effect.Check1, effect.Check2, effect.FinishLine} {
			c.ApplyEffect(effect.Checkpoint{Type: typ}, lap*10000, 5, false, 0, maze)
		}
	}

	assert.Equal(t, 2, laps, "a finished craft ignores checkpoints")
	assert.Equal(t, 1, finished)

	c.PlayExternalSounds(0, 0)
	assert.Equal(t, []config.SoundID{config.SoundLineCrossing, config.SoundFinish}, r.sounds)
}

func TestSlaveIgnoresRaceEffects(t *testing.T) {
	c := newCraft(t, config.OptDefault, AsSlave())
	maze := openMaze(t)

	var checkpoints int
	c.OnCheckpoint(func(*Craft, int) { checkpoints++ })

	c.ApplyEffect(effect.Checkpoint{Type: effect.Check1}, 0, 5, false, 0, maze)
	c.ApplyEffect(effect.LossOfControl{Source: effect.SourceMissile, ElementID: effect.NoElement}, 0, 5, false, 0, maze)
	c.ApplyEffect(effect.FuelGain{Qty: -10}, 0, 5, false, 0, maze)

	assert.Zero(t, checkpoints)
	assert.Zero(t, c.OutOfControl())
	assert.Equal(t, config.Craft.FuelCapacity, c.Fuel())
}

func TestPhysicalCollision(t *testing.T) {
	r := &recorder{}
	c := newCraft(t, config.OptDefault, WithRenderer(r))
	maze := openMaze(t)

	c.SetSpeed(10, 0, 0)
	c.ApplyEffect(effect.Wall, 700, 5, false, 0, maze)
	vx, _, _ := c.Speed()
	assert.Equal(t, 10.0, vx, "no direction, no bounce")

	c.ApplyEffect(effect.Wall, 700, 5, true, 0, maze)
	vx, vy, _ := c.Speed()
	assert.Equal(t, -5.0, vx)
	assert.Zero(t, vy)
	assert.False(t, c.NetPriority(), "walls do not move")

	other := effect.PhysicalCollision{Weight: 300, XSpeed: -5 * 256}
	c.SetSpeed(5, 0, 0)
	c.ApplyEffect(other, 900, 5, true, 0, maze)
	assert.True(t, c.NetPriority())
	assert.Equal(t, int32(900), c.LastCollisionTime())
	vx, _, _ = c.Speed()
	assert.Less(t, vx, 0.0)

	c.ClearNetPriority()
	assert.False(t, c.NetPriority())

	c.PlayExternalSounds(0, 0)
	assert.Equal(t, []config.SoundID{config.SoundBump, config.SoundBump}, r.sounds)
}

func TestSpeedDoubler(t *testing.T) {
	c := newCraft(t, config.OptDefault)
	c.SetOrientation(gamemath.Pi / 2)
	c.SetSpeed(1, 1, 0.5)

	c.ApplyEffect(effect.SpeedDoubler{}, 0, 5, false, 0, openMaze(t))

	vx, vy, vz := c.Speed()
	assert.InDelta(t, 0, vx, 1e-9)
	assert.InDelta(t, config.Craft.SpeedDoublerFactor*config.HoverModels[0].SteadySpeed, vy, 1e-9)
	assert.Equal(t, 0.5, vz)
}

func TestFuelGainIsCapped(t *testing.T) {
	c := newCraft(t, config.OptDefault)
	maze := openMaze(t)

	c.fuel = 1000
	c.ApplyEffect(effect.FuelGain{Qty: 2}, 0, 100, false, 0, maze)
	assert.Equal(t, 1200.0, c.Fuel())

	c.ApplyEffect(effect.FuelGain{Qty: 1e6}, 0, 100, false, 0, maze)
	assert.Equal(t, config.Craft.FuelCapacity, c.Fuel())
}

func TestMineHitAndDrop(t *testing.T) {
	maze := openMaze(t)
	_, err := maze.AddPermElement(3, level.PermMine, 0, shape.Coordinate{X: 5000, Y: 5000})
	require.NoError(t, err)

	c := newCraft(t, config.OptDefault)
	c.Place(shape.Coordinate{X: 5000, Y: 5000}, 0, 0)

	hit := effect.LossOfControl{Source: effect.SourceMine, ElementID: 3, HoverID: 7}
	c.ApplyEffect(hit, 0, 5, true, 0, maze)

	assert.Equal(t, config.Craft.OutOfControlDuration, c.OutOfControl())
	_, _, vz := c.Speed()
	assert.InDelta(t, config.Craft.MineLaunchBoost*config.HoverModels[0].MaxZSpeed, vz, 1e-12)
	assert.Equal(t, 1, c.MineCount())
	pe, ok := maze.PermElement(3)
	require.True(t, ok)
	assert.Equal(t, level.NoRoom, pe.Room, "the mine is carried off the level")

	c.ApplyEffect(effect.LossOfControl{Source: effect.SourceMine, ElementID: effect.NoElement, HoverID: 9}, 10, 5, true, 0, maze)
	require.Equal(t, 1, c.HitQueueCount(), "a second hit while spinning is not credited")
	by, ok := c.PopHit()
	require.True(t, ok)
	assert.Equal(t, 7, by)
	_, ok = c.PopHit()
	assert.False(t, ok)

	c.SetChangeItem(true)
	require.Equal(t, WeaponMine, c.CurrentWeapon())
	c.SetFire(true)
	_, err = c.Simulate(5, maze, 0)
	require.NoError(t, err)

	assert.Zero(t, c.MineCount())
	pe, _ = maze.PermElement(3)
	assert.Equal(t, 0, pe.Room)
	assert.Equal(t, c.Position().X-config.Craft.MineDropDistance, pe.Pos.X, "dropped behind the cabin")
	assert.Equal(t, c.Position().Z+config.Craft.MineDropHeight, pe.Pos.Z)
}

func TestMissileHitHasNoMine(t *testing.T) {
	maze := openMaze(t)
	c := newCraft(t, config.OptDefault)

	c.ApplyEffect(effect.LossOfControl{Source: effect.SourceMissile, ElementID: effect.NoElement, HoverID: 2}, 0, 5, true, 0, maze)
	assert.Zero(t, c.MineCount())
	_, _, vz := c.Speed()
	assert.Zero(t, vz)

	// The spin runs down and stops friction meanwhile.
	c.Place(shape.Coordinate{X: 5000, Y: 5000}, 0, 0)
	c.SetSpeed(3, 0, 0)
	_, err := c.Simulate(100, maze, 0)
	require.NoError(t, err)
	assert.Equal(t, config.Craft.OutOfControlDuration-100, c.OutOfControl())
	vx, _, _ := c.Speed()
	assert.Equal(t, 3.0, vx)
	assert.NotEqual(t, gamemath.Angle(0), c.Orientation())
}

func TestPowerUpPickupAndUse(t *testing.T) {
	maze := openMaze(t)
	for _, id := range []int{4, 5} {
		_, err := maze.AddPermElement(id, level.PermPowerUp, 0, shape.Coordinate{X: 5000, Y: 5000, Z: 600})
		require.NoError(t, err)
	}

	r := &recorder{}
	c := newCraft(t, config.OptDefault, WithRenderer(r))
	c.Place(shape.Coordinate{X: 5000, Y: 5000}, 0, 0)

	c.ApplyEffect(effect.PowerUp{PermID: 4}, 0, 5, true, 0, maze)
	assert.Equal(t, 1, c.PowerUpCount())
	assert.Equal(t, config.Craft.PowerUpDuration, c.PowerUpLeft())

	c.ApplyEffect(effect.PowerUp{PermID: 5}, 0, 5, true, 0, maze)
	assert.Equal(t, 1, c.PowerUpCount(), "one power-up at a time")
	pe, _ := maze.PermElement(5)
	assert.Equal(t, 0, pe.Room)

	c.ApplyEffect(effect.PowerUp{PermID: effect.NoElement}, 0, 5, true, 0, maze)
	assert.Equal(t, 1, c.PowerUpCount())

	c.SetChangeItem(true)
	c.SetChangeItem(false)
	c.SetChangeItem(true)
	require.Equal(t, WeaponPowerUp, c.CurrentWeapon())
	c.SetFire(true)
	_, err := c.Simulate(5, maze, 0)
	require.NoError(t, err)

	assert.Zero(t, c.PowerUpCount())
	assert.Equal(t, config.Craft.PowerUpDuration, c.PowerUpLeft())
	pe, _ = maze.PermElement(4)
	assert.Equal(t, 0, pe.Room)
	assert.Equal(t, c.Position().Z+config.Craft.PowerUpDropHeight, pe.Pos.Z)

	c.PlayExternalSounds(0, 0)
	assert.Equal(t, []config.SoundID{config.SoundPickup}, r.sounds)
}

func TestPowerUpsNeedCansOption(t *testing.T) {
	maze := openMaze(t)
	c := newCraft(t, config.OptCraftMask|config.OptAllowWeapons)

	c.ApplyEffect(effect.PowerUp{PermID: 1}, 0, 5, true, 0, maze)
	assert.Zero(t, c.PowerUpCount())
	assert.Zero(t, c.PowerUpLeft())
}
