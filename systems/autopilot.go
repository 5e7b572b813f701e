package systems

import (
	"math"

	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

const (
	// Heading error under which the autopilot flies straight.
	autopilotDeadZone = gamemath.TwoPi / 64
	// Heading error over which it turns with the motor off.
	autopilotSharpTurn = gamemath.TwoPi / 6

	// A craft slower than stuckSpeed for stuckMs backs off for unstuckMs.
	stuckSpeed = 0.05
	stuckMs    = 1500
	unstuckMs  = 800
)

// Autopilot drives a craft through the checkpoints of a track in lap order.
// Load tests and the headless client use it in place of a pilot.
type Autopilot struct {
	targets map[effect.CheckpointType]shape.Coordinate

	slowMs    int32
	backingMs int32
}

// NewAutopilot aims for the center of each checkpoint zone of track. When a
// checkpoint appears in several zones the first one wins.
func NewAutopilot(track *leveldata.Track) *Autopilot {
	a := &Autopilot{targets: make(map[effect.CheckpointType]shape.Coordinate)}
	for _, z := range track.Zones {
		cp, ok := z.Effect.(effect.Checkpoint)
		if !ok {
			continue
		}
		if _, seen := a.targets[cp.Type]; seen {
			continue
		}
		a.targets[cp.Type] = shape.Coordinate{
			X: z.X0 + (z.X1-z.X0)/2,
			Y: z.Y0 + (z.Y1-z.Y0)/2,
		}
	}
	return a
}

// Controls returns the controls to hold for the next d ms.
func (a *Autopilot) Controls(c *craft.Craft, d int32) craft.Control {
	if c.HasFinished() {
		return 0
	}
	target, ok := a.targets[c.NextCheckpoint()]
	if !ok {
		return craft.MotorOn
	}

	if a.backingMs > 0 {
		a.backingMs -= d
		return craft.Left | craft.Brake
	}
	xs, ys, _ := c.Speed()
	if math.Hypot(xs, ys) < stuckSpeed {
		a.slowMs += d
	} else {
		a.slowMs = 0
	}
	if a.slowMs >= stuckMs {
		a.slowMs = 0
		a.backingMs = unstuckMs
	}

	pos := c.Position()
	heading := gamemath.HeadingOf(float64(target.X-pos.X), float64(target.Y-pos.Y))
	diff := gamemath.NormalizeAngle(int(heading) - int(c.Orientation()))

	var controls craft.Control
	switch {
	case diff < autopilotDeadZone || diff > gamemath.TwoPi-autopilotDeadZone:
	case diff < gamemath.Pi:
		controls |= craft.Left
	default:
		controls |= craft.Right
	}
	if diff < autopilotSharpTurn || diff > gamemath.TwoPi-autopilotSharpTurn {
		controls |= craft.MotorOn
	}
	return controls
}
