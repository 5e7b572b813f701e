package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automoto/hoverrace-mp/shared/gamemath"
)

func TestKinds(t *testing.T) {
	effects := []Effect{
		PhysicalCollision{}, SpeedDoubler{}, FuelGain{}, LossOfControl{}, Checkpoint{}, PowerUp{},
	}
	seen := map[Kind]bool{}
	for _, e := range effects {
		assert.NotEqual(t, "unknown", e.Kind().String())
		seen[e.Kind()] = true
	}
	assert.Len(t, seen, len(effects))
}

func TestCollisionAgainstWall(t *testing.T) {
	m := InertialMoment{Weight: 300, XSpeed: 1000, YSpeed: 200}

	m.ComputeCollision(Wall, 0)

	assert.Equal(t, int32(-500), m.XSpeed, "bounces back at half speed")
	assert.Equal(t, int32(200), m.YSpeed, "tangential speed is kept")
}

func TestCollisionSeparating(t *testing.T) {
	m := InertialMoment{Weight: 300, XSpeed: -1000}

	m.ComputeCollision(Wall, 0)

	assert.Equal(t, int32(-1000), m.XSpeed)
}

func TestCollisionEqualWeights(t *testing.T) {
	m := InertialMoment{Weight: 300, YSpeed: 800}
	other := PhysicalCollision{Weight: 300}

	m.ComputeCollision(other, gamemath.Pi/2)

	assert.Equal(t, int32(0), m.XSpeed)
	assert.Equal(t, int32(200), m.YSpeed)
	assert.True(t, PhysicalCollision{XSpeed: 1}.Moving())
	assert.False(t, other.Moving())
}

func TestCollisionHeavierObstacleMovingAway(t *testing.T) {
	m := InertialMoment{Weight: 250, XSpeed: 500}
	truck := PhysicalCollision{Weight: 450, XSpeed: 600}

	m.ComputeCollision(truck, 0)

	assert.Equal(t, int32(500), m.XSpeed, "obstacle is faster, no contact force")
}
