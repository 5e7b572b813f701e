package systems

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/shape"
	"github.com/automoto/hoverrace-mp/systems/factory"
)

// stripTrack is a straight strip: check 1, check 2 and the finish line
// cross it in that order, a wall closes its far end.
func stripTrack() *leveldata.Track {
	zone := func(x int32, t effect.CheckpointType) leveldata.Zone {
		return leveldata.Zone{
			Box:    leveldata.Box{X0: x, Y0: 0, X1: x + 2000, Y1: 20000, Top: 6000},
			Effect: effect.Checkpoint{Type: t},
		}
	}
	return &leveldata.Track{
		Name:    "strip",
		Gravity: 1,
		Rooms:   []level.Room{{X0: 0, Y0: 0, X1: 100000, Y1: 20000, Floor: 0, Ceiling: 6000}},
		Walls:   []leveldata.Box{{X0: 98000, Y0: 0, X1: 99000, Y1: 20000, Top: 6000}},
		Zones: []leveldata.Zone{
			zone(20000, effect.Check1),
			zone(40000, effect.Check2),
			zone(60000, effect.FinishLine),
		},
		Starts: []leveldata.Start{
			{Pos: shape.Coordinate{X: 5000, Y: 5000}, Room: 0},
			{Pos: shape.Coordinate{X: 5000, Y: 15000}, Room: 0, Index: 1},
		},
		Elements: []leveldata.Element{
			{ID: 0, Kind: level.PermMine, Room: 0, Pos: shape.Coordinate{X: 80000, Y: 10000}},
		},
	}
}

func newRace(t *testing.T, opts factory.RaceOptions) donburi.World {
	t.Helper()
	if opts.Options == 0 {
		opts.Options = config.OptDefault
	}
	w := donburi.NewWorld()
	_, err := factory.CreateRace(w, stripTrack(), opts)
	require.NoError(t, err)
	return w
}

func addCraft(t *testing.T, w donburi.World, slot int, extra ...donburi.IComponentType) (*donburi.Entry, *craft.Craft) {
	t.Helper()
	e, err := factory.CreateCraft(w, factory.CraftSpec{Slot: slot, HoverID: 10 + slot, Name: "pilot"}, extra...)
	require.NoError(t, err)
	return e, components.Craft.Get(e).Craft
}

func race(w donburi.World) *components.RaceData {
	return components.Race.Get(components.Race.MustFirst(w))
}

func step(t *testing.T, w donburi.World, d int32) {
	t.Helper()
	require.NoError(t, Step(w, d))
}

// teleport puts a craft at rest at x on the first lane.
func teleport(c *craft.Craft, x int32) {
	c.Place(shape.Coordinate{X: x, Y: 5000}, 0, 0)
}

func countMissiles(w donburi.World) int {
	n := 0
	components.Missile.Each(w, func(*donburi.Entry) { n++ })
	return n
}
