package gamemath

import "math"

// Angle is a circular fixed-point unit. A full turn is TwoPi.
type Angle int32

const (
	TwoPi Angle = 4096
	Pi    Angle = TwoPi / 2

	// TrigoFract is the fixed-point scale of the Cos and Sin tables.
	TrigoFract = 1024
)

// Cos and Sin are indexed by a normalized Angle and scaled by TrigoFract.
var (
	Cos [TwoPi]int32
	Sin [TwoPi]int32
)

func init() {
	for i := range Cos {
		rad := float64(i) * 2 * math.Pi / float64(TwoPi)
		Cos[i] = int32(math.Round(math.Cos(rad) * TrigoFract))
		Sin[i] = int32(math.Round(math.Sin(rad) * TrigoFract))
	}
}

// NormalizeAngle wraps any integer angle into [0, TwoPi).
func NormalizeAngle(a int) Angle {
	return Angle(a & int(TwoPi-1))
}

// RadToAngle converts radians to angle units, truncating toward zero.
func RadToAngle(rad float64) int {
	return int(rad * float64(Pi) / math.Pi)
}

// HeadingOf returns the angle of the (x, y) vector.
func HeadingOf(x, y float64) Angle {
	return NormalizeAngle(RadToAngle(math.Atan2(y, x)))
}

// Reverse returns the angle pointing the opposite way.
func (a Angle) Reverse() Angle {
	return NormalizeAngle(int(a) + int(Pi))
}

// Project returns the component of (x, y) along a.
func (a Angle) Project(x, y float64) float64 {
	return (x*float64(Cos[a]) + y*float64(Sin[a])) / TrigoFract
}

// Radians converts a to radians.
func (a Angle) Radians() float64 {
	return float64(a) * math.Pi / float64(Pi)
}
