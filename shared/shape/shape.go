// Package shape defines the 2.5D collision primitives exchanged between
// moving elements and the level: vertical cylinders, line segments and
// extruded polygons. Shapes are read-only views rebuilt for every query.
package shape

// Coordinate is a world position in fixed-scale integer units (millimeters).
type Coordinate struct {
	X, Y, Z int32
}

// Add returns c translated by d.
func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// Kind identifies the concrete shape family.
type Kind int

const (
	KindCylinder Kind = iota
	KindLineSegment
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindCylinder:
		return "cylinder"
	case KindLineSegment:
		return "line_segment"
	case KindPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is the bounding-box view shared by all primitives.
type Shape interface {
	XPos() int32
	YPos() int32

	XMin() int32
	XMax() int32
	YMin() int32
	YMax() int32
	ZMin() int32
	ZMax() int32

	Kind() Kind
}

// CylinderShape is a vertical cylinder.
type CylinderShape interface {
	Shape
	AxisX() int32
	AxisY() int32
	RayLen() int32
}

// LineSegmentShape is a segment between two 3D points.
type LineSegmentShape interface {
	Shape
	X0() int32
	Y0() int32
	Z0() int32
	X1() int32
	Y1() int32
	Z1() int32
	HorizontalLen() int32
}

// PolygonShape is a convex polygon extruded between ZMin and ZMax.
type PolygonShape interface {
	Shape
	VertexCount() int
	X(i int) int32
	Y(i int) int32
	SideLen(i int) int32
}

// OverlapZ reports whether the vertical extents of a and b intersect.
func OverlapZ(a, b Shape) bool {
	return a.ZMin() < b.ZMax() && b.ZMin() < a.ZMax()
}

// OverlapBox reports whether the horizontal bounding boxes of a and b intersect.
func OverlapBox(a, b Shape) bool {
	return a.XMin() < b.XMax() && b.XMin() < a.XMax() &&
		a.YMin() < b.YMax() && b.YMin() < a.YMax()
}
