package gamemath

import "math"

// FrictionAmplifier scales the friction deceleration depending on how fast the
// craft is going relative to its steady speed. Slow crafts glide, crafts a bit
// above steady speed are braked harder. steadyBase is the base model's steady
// speed, which the ramp is measured against.
func FrictionAmplifier(absSpeed, steady, steadyBase float64) float64 {
	if absSpeed < steady/3 {
		return 0.4
	}
	if absSpeed > steady && absSpeed < 2.5*steady {
		return math.Min(1.7, 1.1+2.5*(absSpeed/steadyBase-1.0))
	}
	return 1.0
}

// ApplyFriction decays the horizontal speed (vx, vy) over duration ms. decel is
// the (negative) friction acceleration of the model. When the decay would
// reverse the direction of travel, the speed is clamped to zero instead.
func ApplyFriction(vx, vy float64, duration int32, decel, steady, steadyBase float64) (float64, float64) {
	abs := math.Sqrt(vx*vx + vy*vy)
	if abs <= -float64(duration)*decel {
		return 0, 0
	}
	amp := FrictionAmplifier(abs, steady, steadyBase)
	k := float64(duration) * amp * decel / abs
	if k <= -1 {
		return 0, 0
	}
	return vx + k*vx, vy + k*vy
}

// ClampSpeed clamps a value to [-max, max].
func ClampSpeed(speed, max float64) float64 {
	if speed > max {
		return max
	}
	if speed < -max {
		return -max
	}
	return speed
}
