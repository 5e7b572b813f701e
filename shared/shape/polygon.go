package shape

import "math"

var _ PolygonShape = (*Polygon)(nil)

// Point is a horizontal vertex.
type Point struct {
	X, Y int32
}

// Polygon is a convex vertex loop extruded between Bottom and Top. The
// bounding box is computed once by NewPolygon.
type Polygon struct {
	Vertices    []Point
	Bottom, Top int32

	xMin, xMax, yMin, yMax int32
}

// NewPolygon builds a polygon from its vertices in order.
func NewPolygon(bottom, top int32, vertices ...Point) *Polygon {
	p := &Polygon{Vertices: vertices, Bottom: bottom, Top: top}
	p.xMin, p.yMin = math.MaxInt32, math.MaxInt32
	p.xMax, p.yMax = math.MinInt32, math.MinInt32
	for _, v := range vertices {
		p.xMin = min(p.xMin, v.X)
		p.xMax = max(p.xMax, v.X)
		p.yMin = min(p.yMin, v.Y)
		p.yMax = max(p.yMax, v.Y)
	}
	return p
}

// Box returns an axis-aligned rectangle polygon.
func Box(x0, y0, x1, y1, bottom, top int32) *Polygon {
	return NewPolygon(bottom, top,
		Point{x0, y0}, Point{x1, y0}, Point{x1, y1}, Point{x0, y1})
}

func (p *Polygon) VertexCount() int { return len(p.Vertices) }
func (p *Polygon) X(i int) int32    { return p.Vertices[i].X }
func (p *Polygon) Y(i int) int32    { return p.Vertices[i].Y }

func (p *Polygon) SideLen(i int) int32 {
	a := p.Vertices[i]
	b := p.Vertices[(i+1)%len(p.Vertices)]
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return int32(math.Sqrt(dx*dx + dy*dy))
}

// XPos and YPos return the first vertex, the polygon's reference point.
func (p *Polygon) XPos() int32 { return p.Vertices[0].X }
func (p *Polygon) YPos() int32 { return p.Vertices[0].Y }

func (p *Polygon) XMin() int32 { return p.xMin }
func (p *Polygon) XMax() int32 { return p.xMax }
func (p *Polygon) YMin() int32 { return p.yMin }
func (p *Polygon) YMax() int32 { return p.yMax }
func (p *Polygon) ZMin() int32 { return p.Bottom }
func (p *Polygon) ZMax() int32 { return p.Top }

func (p *Polygon) Kind() Kind { return KindPolygon }

// Contains reports whether the horizontal point (x, y) lies inside the polygon.
// Vertices may be wound either way.
func (p *Polygon) Contains(x, y int32) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	sign := 0
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		cross := int64(b.X-a.X)*int64(y-a.Y) - int64(b.Y-a.Y)*int64(x-a.X)
		switch {
		case cross > 0:
			if sign < 0 {
				return false
			}
			sign = 1
		case cross < 0:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return true
}
