package shape

import "math"

var _ LineSegmentShape = LineSegment{}

// LineSegment joins From and To.
type LineSegment struct {
	From, To Coordinate
}

func (s LineSegment) X0() int32 { return s.From.X }
func (s LineSegment) Y0() int32 { return s.From.Y }
func (s LineSegment) Z0() int32 { return s.From.Z }
func (s LineSegment) X1() int32 { return s.To.X }
func (s LineSegment) Y1() int32 { return s.To.Y }
func (s LineSegment) Z1() int32 { return s.To.Z }

func (s LineSegment) HorizontalLen() int32 {
	dx := float64(s.To.X - s.From.X)
	dy := float64(s.To.Y - s.From.Y)
	return int32(math.Sqrt(dx*dx + dy*dy))
}

func (s LineSegment) XPos() int32 { return s.From.X }
func (s LineSegment) YPos() int32 { return s.From.Y }

func (s LineSegment) XMin() int32 { return min(s.From.X, s.To.X) }
func (s LineSegment) XMax() int32 { return max(s.From.X, s.To.X) }
func (s LineSegment) YMin() int32 { return min(s.From.Y, s.To.Y) }
func (s LineSegment) YMax() int32 { return max(s.From.Y, s.To.Y) }
func (s LineSegment) ZMin() int32 { return min(s.From.Z, s.To.Z) }
func (s LineSegment) ZMax() int32 { return max(s.From.Z, s.To.Z) }

func (s LineSegment) Kind() Kind { return KindLineSegment }
