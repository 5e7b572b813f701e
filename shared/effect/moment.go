package effect

import "github.com/automoto/hoverrace-mp/shared/gamemath"

// Restitution is the fraction of the approach speed returned along the hit
// direction.
const Restitution = 0.5

// InertialMoment is the momentum of one side of a collision, with speeds in
// 1/256 distance units per millisecond.
type InertialMoment struct {
	Weight int32
	XSpeed int32
	YSpeed int32
	ZSpeed int32
}

// ComputeCollision updates the moment's horizontal speed after hitting
// obstacle. direction points from the moment's owner toward the obstacle.
// Nothing changes when the two are already separating.
func (m *InertialMoment) ComputeCollision(obstacle PhysicalCollision, direction gamemath.Angle) {
	relX := float64(m.XSpeed - obstacle.XSpeed)
	relY := float64(m.YSpeed - obstacle.YSpeed)

	approach := direction.Project(relX, relY)
	if approach <= 0 {
		return
	}

	share := 1.0
	if obstacle.Weight < InfiniteWeight {
		total := float64(m.Weight) + float64(obstacle.Weight)
		if total <= 0 {
			return
		}
		share = float64(obstacle.Weight) / total
	}

	delta := -(1 + Restitution) * approach * share
	m.XSpeed += int32(delta * float64(gamemath.Cos[direction]) / gamemath.TrigoFract)
	m.YSpeed += int32(delta * float64(gamemath.Sin[direction]) / gamemath.TrigoFract)
}
