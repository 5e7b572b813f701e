package leveldata

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

const ovalTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" tiledversion="1.10.2" orientation="orthogonal" renderorder="right-down" width="30" height="10" tilewidth="10" tileheight="10" infinite="0" nextlayerid="7" nextobjectid="20">
 <objectgroup id="1" name="Rooms">
  <object id="1" x="0" y="0" width="200" height="100">
   <properties>
    <property name="ceiling" type="int" value="6000"/>
   </properties>
  </object>
  <object id="2" x="200" y="0" width="100" height="100">
   <properties>
    <property name="floor" type="int" value="500"/>
    <property name="ceiling" type="int" value="7000"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="2" name="Track">
  <object id="3" name="settings" x="0" y="0">
   <properties>
    <property name="gravity" type="float" value="0.5"/>
   </properties>
   <point/>
  </object>
 </objectgroup>
 <objectgroup id="3" name="Obstacles">
  <object id="4" x="100" y="40" width="10" height="20"/>
  <object id="5" x="50" y="80" width="10" height="10">
   <properties>
    <property name="top" type="int" value="400"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="4" name="Zones">
  <object id="6" x="20" y="0" width="2" height="100">
   <properties>
    <property name="effect" value="finish"/>
   </properties>
  </object>
  <object id="7" x="80" y="0" width="2" height="100">
   <properties>
    <property name="effect" value="check1"/>
   </properties>
  </object>
  <object id="8" x="250" y="0" width="2" height="100">
   <properties>
    <property name="effect" value="check2"/>
   </properties>
  </object>
  <object id="9" x="150" y="0" width="20" height="10">
   <properties>
    <property name="effect" value="fuel"/>
    <property name="qty" type="float" value="2"/>
   </properties>
  </object>
  <object id="10" x="150" y="90" width="20" height="10">
   <properties>
    <property name="effect" value="speed"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="5" name="Starts">
  <object id="11" x="10" y="50">
   <properties>
    <property name="index" type="int" value="1"/>
    <property name="heading" type="float" value="90"/>
   </properties>
   <point/>
  </object>
  <object id="12" x="10" y="30">
   <point/>
  </object>
 </objectgroup>
 <objectgroup id="6" name="Elements">
  <object id="13" x="150" y="50">
   <properties>
    <property name="kind" value="mine"/>
   </properties>
   <point/>
  </object>
  <object id="14" x="250" y="50">
   <properties>
    <property name="kind" value="powerup"/>
   </properties>
   <point/>
  </object>
 </objectgroup>
</map>
`

const badZoneTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="10" height="10" tilewidth="10" tileheight="10" infinite="0">
 <objectgroup id="1" name="Rooms">
  <object id="1" x="0" y="0" width="100" height="100"/>
 </objectgroup>
 <objectgroup id="2" name="Zones">
  <object id="2" x="0" y="0" width="10" height="10">
   <properties>
    <property name="effect" value="teleport"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

const noStartsTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="10" height="10" tilewidth="10" tileheight="10" infinite="0">
 <objectgroup id="1" name="Rooms">
  <object id="1" x="0" y="0" width="100" height="100"/>
 </objectgroup>
</map>
`

func trackFS() fstest.MapFS {
	return fstest.MapFS{
		"tracks/oval.tmx": {Data: []byte(ovalTMX)},
	}
}

func TestLoadTrack(t *testing.T) {
	tr, err := LoadTrack(trackFS(), "tracks/oval.tmx")
	require.NoError(t, err)

	assert.Equal(t, "oval", tr.Name)
	assert.Equal(t, 0.5, tr.Gravity)
	assert.Equal(t, []level.Room{
		{X0: 0, Y0: 0, X1: 20000, Y1: 10000, Floor: 0, Ceiling: 6000},
		{X0: 20000, Y0: 0, X1: 30000, Y1: 10000, Floor: 500, Ceiling: 7000},
	}, tr.Rooms)

	require.Len(t, tr.Walls, 2)
	assert.Equal(t, Box{X0: 10000, Y0: 4000, X1: 11000, Y1: 6000, Bottom: 0, Top: wallTop}, tr.Walls[0])
	assert.Equal(t, int32(400), tr.Walls[1].Top)

	effects := make([]effect.Effect, 0, len(tr.Zones))
	for _, z := range tr.Zones {
		effects = append(effects, z.Effect)
	}
	assert.Equal(t, []effect.Effect{
		effect.Checkpoint{Type: effect.FinishLine},
		effect.Checkpoint{Type: effect.Check1},
		effect.Checkpoint{Type: effect.Check2},
		effect.FuelGain{Qty: 2},
		effect.SpeedDoubler{},
	}, effects)

	require.Len(t, tr.Starts, 2)
	assert.Equal(t, Start{Pos: shape.Coordinate{X: 1000, Y: 3000}, Room: 0, Orientation: 0, Index: 0}, tr.Starts[0])
	assert.Equal(t, Start{Pos: shape.Coordinate{X: 1000, Y: 5000}, Room: 0, Orientation: gamemath.Pi / 2, Index: 1}, tr.Starts[1])

	require.Len(t, tr.Elements, 2)
	assert.Equal(t, Element{ID: 0, Kind: level.PermMine, Room: 0, Pos: shape.Coordinate{X: 15000, Y: 5000}}, tr.Elements[0])
	assert.Equal(t, Element{
		ID:   1,
		Kind: level.PermPowerUp,
		Room: 1,
		Pos:  shape.Coordinate{X: 25000, Y: 5000, Z: 500 + config.PermElement.PowerUpHalfHeight},
	}, tr.Elements[1])
}

func TestLoadTrackErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.tmx":      {Data: []byte(badZoneTMX)},
		"nostarts.tmx": {Data: []byte(noStartsTMX)},
	}

	_, err := LoadTrack(fsys, "bad.tmx")
	assert.ErrorIs(t, err, ErrUnknownZone)

	_, err = LoadTrack(fsys, "nostarts.tmx")
	assert.ErrorIs(t, err, ErrNoStarts)

	_, err = LoadTrack(fsys, "missing.tmx")
	assert.Error(t, err)
}

func TestLoadAllTracks(t *testing.T) {
	fsys := trackFS()
	fsys["tracks/figure8.tmx"] = &fstest.MapFile{Data: []byte(ovalTMX)}
	fsys["tracks/readme.txt"] = &fstest.MapFile{Data: []byte("not a track")}

	tracks, names, err := LoadAllTracks(fsys, "tracks")
	require.NoError(t, err)
	assert.Equal(t, []string{"figure8", "oval"}, names)
	assert.Len(t, tracks, 2)

	_, _, err = LoadAllTracks(fsys, "empty")
	assert.ErrorIs(t, err, ErrEmptyTrackDir)
}

func TestTrackMaze(t *testing.T) {
	tr, err := LoadTrack(trackFS(), "tracks/oval.tmx")
	require.NoError(t, err)

	m, err := tr.Maze()
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.Gravity())
	assert.Equal(t, 1, m.RoomAt(25000, 5000))

	body := func(x, y int32) shape.Cylinder {
		return shape.Cylinder{Position: shape.Coordinate{X: x, Y: y, Z: 100}, Ray: 1100, Height: 1500}
	}
	assert.True(t, m.ObstacleContact(body(10500, 5000), 0, nil).HaveContact)
	assert.False(t, m.ObstacleContact(body(5000, 5000), 0, nil).HaveContact)

	pe, ok := m.PermElement(1)
	require.True(t, ok)
	assert.Equal(t, level.PermPowerUp, pe.Kind)

	// Each call builds an independent maze.
	other, err := tr.Maze()
	require.NoError(t, err)
	m.SetPermElementPos(1, level.NoRoom, shape.Coordinate{})
	pe, _ = other.PermElement(1)
	assert.Equal(t, 1, pe.Room)
}
