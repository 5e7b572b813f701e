package shape

var _ CylinderShape = Cylinder{}

// Cylinder stands on Position (its base) and extends Height units upward.
type Cylinder struct {
	Position Coordinate
	Ray      int32
	Height   int32
}

func (c Cylinder) AxisX() int32  { return c.Position.X }
func (c Cylinder) AxisY() int32  { return c.Position.Y }
func (c Cylinder) RayLen() int32 { return c.Ray }

func (c Cylinder) XPos() int32 { return c.Position.X }
func (c Cylinder) YPos() int32 { return c.Position.Y }

func (c Cylinder) XMin() int32 { return c.Position.X - c.Ray }
func (c Cylinder) XMax() int32 { return c.Position.X + c.Ray }
func (c Cylinder) YMin() int32 { return c.Position.Y - c.Ray }
func (c Cylinder) YMax() int32 { return c.Position.Y + c.Ray }
func (c Cylinder) ZMin() int32 { return c.Position.Z }
func (c Cylinder) ZMax() int32 { return c.Position.Z + c.Height }

func (c Cylinder) Kind() Kind { return KindCylinder }

// Raised returns a copy of c moved dz units vertically.
func (c Cylinder) Raised(dz int32) Cylinder {
	c.Position.Z += dz
	return c
}

// HitsBox reports whether the cylinder's footprint intersects the horizontal
// rectangle [x0,x1]x[y0,y1].
func (c Cylinder) HitsBox(x0, y0, x1, y1 int32) bool {
	cx := clamp(c.Position.X, x0, x1)
	cy := clamp(c.Position.Y, y0, y1)
	dx := int64(c.Position.X - cx)
	dy := int64(c.Position.Y - cy)
	r := int64(c.Ray)
	return dx*dx+dy*dy < r*r
}

// HitsCylinder reports whether the footprints of c and o intersect.
func (c Cylinder) HitsCylinder(o CylinderShape) bool {
	dx := int64(c.Position.X - o.AxisX())
	dy := int64(c.Position.Y - o.AxisY())
	r := int64(c.Ray + o.RayLen())
	return dx*dx+dy*dy < r*r
}

func clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
