package level

import (
	"fmt"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// Resolv tags for the maze broad phase
const (
	tagObstacle = "obstacle"
	tagZone     = "zone"
	tagPerm     = "perm"
	tagProbe    = "probe"
)

// Room is an axis-aligned cell of the track with a flat floor and ceiling.
type Room struct {
	X0, Y0, X1, Y1 int32
	Floor, Ceiling int32
}

func (r Room) contains(x, y int32) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}

// Feature is a static box of the track. Obstacles block movement and hit
// like walls; zones only carry effects.
type Feature struct {
	Box     *shape.Polygon
	Effects []effect.Effect
	Blocks  bool

	seq int
}

// PermKind is the family of a permanent element.
type PermKind int

const (
	PermMine PermKind = iota
	PermPowerUp
)

// PermElement is a collectible that keeps its id for the whole race.
type PermElement struct {
	ID   int
	Kind PermKind
	Room int
	Pos  shape.Coordinate

	obj     *resolv.Object
	effects []effect.Effect
}

// Shape returns the element's cylinder.
func (p *PermElement) Shape() shape.Cylinder {
	if p.Kind == PermMine {
		return shape.Cylinder{Position: p.Pos, Ray: config.PermElement.MineRay, Height: config.PermElement.MineHeight}
	}
	base := p.Pos
	base.Z -= config.PermElement.PowerUpHalfHeight
	return shape.Cylinder{Position: base, Ray: config.PermElement.PowerUpRay, Height: 2 * config.PermElement.PowerUpHalfHeight}
}

type freeEntry struct {
	elem Element
	room int
}

// Maze is a Level made of rooms, static features, permanent elements and
// free elements. Static features and permanent elements live in a resolv
// space used as broad phase.
type Maze struct {
	gravity float64
	rooms   []Room

	space            *resolv.Space
	probe            *resolv.Object
	originX, originY int32

	features []*Feature
	perms    map[int]*PermElement
	free     []freeEntry
}

var _ Level = (*Maze)(nil)

// NewMaze builds a maze over rooms. At least one room is required.
func NewMaze(rooms []Room, gravity float64) (*Maze, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("new maze: %w", ErrNoRooms)
	}
	x0, y0, x1, y1 := rooms[0].X0, rooms[0].Y0, rooms[0].X1, rooms[0].Y1
	for _, r := range rooms[1:] {
		x0, y0 = min(x0, r.X0), min(y0, r.Y0)
		x1, y1 = max(x1, r.X1), max(y1, r.Y1)
	}

	cell := config.Level.CellSize
	m := &Maze{
		gravity: gravity,
		rooms:   rooms,
		space:   resolv.NewSpace(int(x1-x0)+cell, int(y1-y0)+cell, cell, cell),
		originX: x0,
		originY: y0,
		perms:   make(map[int]*PermElement),
	}
	m.probe = resolv.NewObject(0, 0, 1, 1, tagProbe)
	m.space.Add(m.probe)
	return m, nil
}

func (m *Maze) Gravity() float64 { return m.gravity }

// Rooms returns the maze rooms by index.
func (m *Maze) Rooms() []Room { return m.rooms }

// RoomAt returns the index of the room containing (x, y), or NoRoom.
func (m *Maze) RoomAt(x, y int32) int {
	for i, r := range m.rooms {
		if r.contains(x, y) {
			return i
		}
	}
	return NoRoom
}

// AddFeature registers a static box.
func (m *Maze) AddFeature(f *Feature) {
	f.seq = len(m.features)
	m.features = append(m.features, f)

	tag := tagZone
	if f.Blocks {
		tag = tagObstacle
	}
	obj := m.newObject(f.Box, tag)
	obj.Data = f
	m.space.Add(obj)
}

// AddObstacle registers a wall box between bottom and top.
func (m *Maze) AddObstacle(box *shape.Polygon) {
	m.AddFeature(&Feature{Box: box, Blocks: true, Effects: []effect.Effect{effect.Wall}})
}

// AddZone registers an effect box that can be driven through.
func (m *Maze) AddZone(box *shape.Polygon, effects ...effect.Effect) {
	m.AddFeature(&Feature{Box: box, Effects: effects})
}

// AddPermElement registers a mine or power-up can. The id must be unique.
func (m *Maze) AddPermElement(id int, kind PermKind, room int, pos shape.Coordinate) (*PermElement, error) {
	if _, ok := m.perms[id]; ok {
		return nil, fmt.Errorf("add perm element %d: %w", id, ErrDuplicatePerm)
	}
	p := &PermElement{ID: id, Kind: kind, Room: room, Pos: pos}
	switch kind {
	case PermMine:
		p.effects = []effect.Effect{effect.LossOfControl{Source: effect.SourceMine, ElementID: id, HoverID: effect.NoElement}}
	case PermPowerUp:
		p.effects = []effect.Effect{effect.PowerUp{PermID: id}}
	}
	p.obj = m.newObject(p.Shape(), tagPerm)
	p.obj.Data = p
	m.space.Add(p.obj)
	m.perms[id] = p
	return p, nil
}

// PermElement returns a permanent element by id.
func (m *Maze) PermElement(id int) (*PermElement, bool) {
	p, ok := m.perms[id]
	return p, ok
}

func (m *Maze) SetPermElementPos(permID, room int, pos shape.Coordinate) {
	p, ok := m.perms[permID]
	if !ok {
		return
	}
	p.Room = room
	p.Pos = pos
	m.place(p.obj, p.Shape())
}

func (m *Maze) InsertElement(e Element, room int, beginning bool) {
	entry := freeEntry{elem: e, room: room}
	if beginning {
		m.free = append([]freeEntry{entry}, m.free...)
		return
	}
	m.free = append(m.free, entry)
}

// RemoveElement takes a free element out of the maze.
func (m *Maze) RemoveElement(e Element) {
	for i, f := range m.free {
		if f.elem == e {
			m.free = append(m.free[:i], m.free[i+1:]...)
			return
		}
	}
}

// MoveElement records the room a free element ended its step in.
func (m *Maze) MoveElement(e Element, room int) {
	for i := range m.free {
		if m.free[i].elem == e {
			m.free[i].room = room
			return
		}
	}
}

// FreeElements returns the free elements in simulation order.
func (m *Maze) FreeElements() []Element {
	out := make([]Element, len(m.free))
	for i, f := range m.free {
		out[i] = f.elem
	}
	return out
}

// ElementRoom returns the room of a free element, or NoRoom.
func (m *Maze) ElementRoom(e Element) int {
	for _, f := range m.free {
		if f.elem == e {
			return f.room
		}
	}
	return NoRoom
}

func (m *Maze) ObstacleContact(s shape.Shape, room int, self Element) Report {
	idx := m.roomFor(s.XPos(), s.YPos(), room)
	if idx == NoRoom {
		return Report{Room: room}
	}
	r := m.rooms[idx]
	rep := Report{InMaze: true, Room: idx}

	floor, ceiling := r.Floor, r.Ceiling
	touch := func(bottom, top int32) {
		if s.ZMin() < top && bottom < s.ZMax() {
			rep.HaveContact = true
			rep.StepHeight = max(rep.StepHeight, top-s.ZMin())
			rep.CeilingStepHeight = max(rep.CeilingStepHeight, s.ZMax()-bottom)
		}
	}
	// The room's slab below the floor and above the ceiling.
	if s.ZMin() < floor {
		touch(floor-1<<20, floor)
	}
	if s.ZMax() > ceiling {
		touch(ceiling, ceiling+1<<20)
	}

	mid := (s.ZMin() + s.ZMax()) / 2
	for _, f := range m.query(s, tagObstacle) {
		feature := f.(*Feature)
		if !footprintHits(s, feature.Box) {
			continue
		}
		if (feature.Box.Bottom+feature.Box.Top)/2 <= mid {
			floor = max(floor, feature.Box.Top)
		} else {
			ceiling = min(ceiling, feature.Box.Bottom)
		}
		touch(feature.Box.Bottom, feature.Box.Top)
	}

	rep.SpaceToFloor = s.ZMin() - floor
	rep.SpaceToCeiling = ceiling - s.ZMax()
	return rep
}

// Contacts returns every effect reaching r's receiving shape, in a stable
// order: static features, then permanent elements, then free elements.
func (m *Maze) Contacts(r Receiver) []Contact {
	recv := r.ReceivingShape()
	if recv == nil {
		return nil
	}
	var contacts []Contact

	for _, d := range m.query(recv, tagObstacle, tagZone) {
		f := d.(*Feature)
		if !shape.OverlapZ(recv, f.Box) || !footprintHits(recv, f.Box) {
			continue
		}
		dir, valid := directionToBox(recv, f.Box)
		for _, e := range f.Effects {
			contacts = append(contacts, Contact{Effect: e, ValidDirection: valid, Direction: dir})
		}
	}

	for _, d := range m.query(recv, tagPerm) {
		p := d.(*PermElement)
		if p.Room == NoRoom {
			continue
		}
		cyl := p.Shape()
		if !shape.OverlapZ(recv, cyl) || !footprintHitsCylinder(recv, cyl) {
			continue
		}
		dir, valid := directionToPoint(recv, cyl.AxisX(), cyl.AxisY())
		for _, e := range p.effects {
			contacts = append(contacts, Contact{Effect: e, ValidDirection: valid, Direction: dir})
		}
	}

	for _, f := range m.free {
		if f.elem == Element(r) {
			continue
		}
		give := f.elem.ContactShape()
		if give == nil || !shape.OverlapZ(recv, give) {
			continue
		}
		if cyl, ok := give.(shape.CylinderShape); ok {
			if !footprintHitsCylinder(recv, cyl) {
				continue
			}
		} else if !shape.OverlapBox(recv, give) {
			continue
		}
		dir, valid := directionToPoint(recv, give.XPos(), give.YPos())
		for _, e := range f.elem.EffectList() {
			contacts = append(contacts, Contact{Effect: e, ValidDirection: valid, Direction: dir, Source: f.elem})
		}
	}
	return contacts
}

// roomFor prefers the hinted room so elements standing on a shared edge keep
// their room.
func (m *Maze) roomFor(x, y int32, hint int) int {
	if hint >= 0 && hint < len(m.rooms) && m.rooms[hint].contains(x, y) {
		return hint
	}
	return m.RoomAt(x, y)
}

// query returns the Data of every object sharing a broad phase cell with s,
// sorted into insertion order.
func (m *Maze) query(s shape.Shape, tags ...string) []any {
	m.place(m.probe, s)
	check := m.probe.Check(0, 0, tags...)
	if check == nil {
		return nil
	}
	objs := check.ObjectsByTags(tags...)
	sort.SliceStable(objs, func(i, j int) bool {
		return dataOrder(objs[i].Data) < dataOrder(objs[j].Data)
	})
	out := make([]any, 0, len(objs))
	for _, o := range objs {
		out = append(out, o.Data)
	}
	return out
}

func dataOrder(d any) int {
	switch v := d.(type) {
	case *Feature:
		return v.seq
	case *PermElement:
		return v.ID
	}
	return 0
}

func (m *Maze) newObject(s shape.Shape, tag string) *resolv.Object {
	x, y, w, h := m.bounds(s)
	obj := resolv.NewObject(x, y, w, h, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	return obj
}

func (m *Maze) place(obj *resolv.Object, s shape.Shape) {
	obj.X, obj.Y, obj.W, obj.H = m.bounds(s)
	obj.Update()
}

func (m *Maze) bounds(s shape.Shape) (x, y, w, h float64) {
	x = float64(s.XMin() - m.originX)
	y = float64(s.YMin() - m.originY)
	w = float64(max(s.XMax()-s.XMin(), 1))
	h = float64(max(s.YMax()-s.YMin(), 1))
	return x, y, w, h
}

func footprintHits(s shape.Shape, box *shape.Polygon) bool {
	if c, ok := s.(shape.CylinderShape); ok {
		cyl := shape.Cylinder{Position: shape.Coordinate{X: c.AxisX(), Y: c.AxisY()}, Ray: c.RayLen()}
		return cyl.HitsBox(box.XMin(), box.YMin(), box.XMax(), box.YMax())
	}
	return shape.OverlapBox(s, box)
}

func footprintHitsCylinder(s shape.Shape, o shape.CylinderShape) bool {
	if c, ok := s.(shape.CylinderShape); ok {
		cyl := shape.Cylinder{Position: shape.Coordinate{X: c.AxisX(), Y: c.AxisY()}, Ray: c.RayLen()}
		return cyl.HitsCylinder(o)
	}
	return shape.OverlapBox(s, o)
}

func directionToBox(s shape.Shape, box *shape.Polygon) (gamemath.Angle, bool) {
	cx := min(max(s.XPos(), box.XMin()), box.XMax())
	cy := min(max(s.YPos(), box.YMin()), box.YMax())
	return directionToPoint(s, cx, cy)
}

func directionToPoint(s shape.Shape, x, y int32) (gamemath.Angle, bool) {
	dx := float64(x - s.XPos())
	dy := float64(y - s.YPos())
	if dx == 0 && dy == 0 {
		return 0, false
	}
	return gamemath.HeadingOf(dx, dy), true
}
