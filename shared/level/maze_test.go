package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// puck is a minimal receiver used to probe contacts.
type puck struct {
	pos     shape.Coordinate
	effects []effect.Effect
	got     []effect.Effect
}

func (p *puck) cylinder(ray int32) shape.Cylinder {
	return shape.Cylinder{Position: p.pos, Ray: ray, Height: 1500}
}
func (p *puck) ObstacleShape() shape.Shape  { return nil }
func (p *puck) ContactShape() shape.Shape   { return p.cylinder(1450) }
func (p *puck) ReceivingShape() shape.Shape { return p.cylinder(1300) }
func (p *puck) EffectList() []effect.Effect { return p.effects }
func (p *puck) ApplyEffect(e effect.Effect, _, _ int32, _ bool, _ gamemath.Angle, _ Level) {
	p.got = append(p.got, e)
}

func testMaze(t *testing.T) *Maze {
	t.Helper()
	m, err := NewMaze([]Room{
		{X0: 0, Y0: 0, X1: 20000, Y1: 10000, Floor: 0, Ceiling: 6000},
		{X0: 20000, Y0: 0, X1: 40000, Y1: 10000, Floor: 500, Ceiling: 6000},
	}, 1.0)
	require.NoError(t, err)
	return m
}

func TestNewMazeRequiresRooms(t *testing.T) {
	_, err := NewMaze(nil, 1)
	assert.ErrorIs(t, err, ErrNoRooms)
}

func TestObstacleContactFloor(t *testing.T) {
	m := testMaze(t)

	resting := m.ObstacleContact(shape.Cylinder{Position: shape.Coordinate{X: 5000, Y: 5000, Z: 0}, Ray: 1100, Height: 1500}, 0, nil)
	assert.True(t, resting.InMaze)
	assert.False(t, resting.HaveContact, "resting exactly on the floor is not a contact")
	assert.Equal(t, int32(0), resting.SpaceToFloor)
	assert.Equal(t, int32(4500), resting.SpaceToCeiling)

	sunk := m.ObstacleContact(shape.Cylinder{Position: shape.Coordinate{X: 5000, Y: 5000, Z: -3}, Ray: 1100, Height: 1500}, 0, nil)
	assert.True(t, sunk.HaveContact)
	assert.Equal(t, int32(3), sunk.StepHeight)
	assert.Equal(t, 0, sunk.Room)
}

func TestObstacleContactOutside(t *testing.T) {
	m := testMaze(t)

	rep := m.ObstacleContact(shape.Cylinder{Position: shape.Coordinate{X: -10, Y: 5000}, Ray: 1100, Height: 1500}, 0, nil)
	assert.False(t, rep.InMaze)
}

func TestObstacleContactRoomChange(t *testing.T) {
	m := testMaze(t)

	rep := m.ObstacleContact(shape.Cylinder{Position: shape.Coordinate{X: 25000, Y: 5000, Z: 400}, Ray: 1100, Height: 1500}, 0, nil)
	assert.True(t, rep.InMaze)
	assert.Equal(t, 1, rep.Room)
	assert.True(t, rep.HaveContact)
	assert.Equal(t, int32(100), rep.StepHeight)
}

func TestObstacleContactWall(t *testing.T) {
	m := testMaze(t)
	m.AddObstacle(shape.Box(10000, 0, 10500, 10000, 0, 6000))

	rep := m.ObstacleContact(shape.Cylinder{Position: shape.Coordinate{X: 9500, Y: 5000}, Ray: 1100, Height: 1500}, 0, nil)
	assert.True(t, rep.HaveContact)
	assert.Equal(t, int32(6000), rep.StepHeight)
	assert.Equal(t, int32(1500), rep.CeilingStepHeight)

	far := m.ObstacleContact(shape.Cylinder{Position: shape.Coordinate{X: 8000, Y: 5000}, Ray: 1100, Height: 1500}, 0, nil)
	assert.False(t, far.HaveContact)
}

func TestObstacleContactLowBlock(t *testing.T) {
	m := testMaze(t)
	m.AddObstacle(shape.Box(4000, 4000, 6000, 6000, 0, 300))

	rep := m.ObstacleContact(shape.Cylinder{Position: shape.Coordinate{X: 5000, Y: 5000, Z: 290}, Ray: 1100, Height: 1500}, 0, nil)
	assert.True(t, rep.HaveContact)
	assert.Equal(t, int32(10), rep.StepHeight)
	assert.Equal(t, int32(-10), rep.SpaceToFloor)
	assert.Equal(t, int32(6000-1790), rep.SpaceToCeiling)
}

func TestContactsZonesAndWalls(t *testing.T) {
	m := testMaze(t)
	m.AddObstacle(shape.Box(10000, 0, 10500, 10000, 0, 6000))
	m.AddZone(shape.Box(8000, 0, 9000, 10000, 0, 6000), effect.Checkpoint{Type: effect.Check1})

	p := &puck{pos: shape.Coordinate{X: 9500, Y: 5000}}
	contacts := m.Contacts(p)

	require.Len(t, contacts, 2)
	assert.Equal(t, effect.Wall, contacts[0].Effect)
	assert.True(t, contacts[0].ValidDirection)
	assert.Equal(t, gamemath.Angle(0), contacts[0].Direction, "wall is straight ahead on +X")
	assert.Equal(t, effect.Checkpoint{Type: effect.Check1}, contacts[1].Effect)
	assert.Equal(t, gamemath.Pi, contacts[1].Direction)
}

func TestPermElements(t *testing.T) {
	m := testMaze(t)
	_, err := m.AddPermElement(7, PermPowerUp, 0, shape.Coordinate{X: 3000, Y: 3000, Z: 600})
	require.NoError(t, err)
	_, err = m.AddPermElement(7, PermMine, 0, shape.Coordinate{})
	assert.ErrorIs(t, err, ErrDuplicatePerm)

	p := &puck{pos: shape.Coordinate{X: 3500, Y: 3000}}
	contacts := m.Contacts(p)
	require.Len(t, contacts, 1)
	assert.Equal(t, effect.PowerUp{PermID: 7}, contacts[0].Effect)

	m.SetPermElementPos(7, NoRoom, p.pos)
	assert.Empty(t, m.Contacts(p), "elements off the level give no effects")

	m.SetPermElementPos(7, 0, shape.Coordinate{X: 30000, Y: 3000})
	assert.Empty(t, m.Contacts(p))
	pe, ok := m.PermElement(7)
	require.True(t, ok)
	assert.Equal(t, int32(30000), pe.Pos.X)
}

func TestFreeElements(t *testing.T) {
	m := testMaze(t)
	a := &puck{pos: shape.Coordinate{X: 5000, Y: 5000}, effects: []effect.Effect{effect.PhysicalCollision{Weight: 300, XSpeed: 256}}}
	b := &puck{pos: shape.Coordinate{X: 7000, Y: 5000}}
	c := &puck{pos: shape.Coordinate{X: 15000, Y: 5000}}

	m.InsertElement(a, 0, false)
	m.InsertElement(b, 0, false)
	m.InsertElement(c, 0, true)
	assert.Equal(t, []Element{c, a, b}, m.FreeElements())

	contacts := m.Contacts(b)
	require.Len(t, contacts, 1)
	assert.Equal(t, Element(a), contacts[0].Source)
	assert.Equal(t, gamemath.Pi, contacts[0].Direction)

	assert.Empty(t, m.Contacts(a), "b carries no effects")

	m.MoveElement(c, 1)
	assert.Equal(t, 1, m.ElementRoom(c))
	m.RemoveElement(c)
	assert.Equal(t, NoRoom, m.ElementRoom(c))
	assert.Len(t, m.FreeElements(), 2)
}
