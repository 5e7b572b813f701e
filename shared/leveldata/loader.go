package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// wallTop is the top of walls and zones that do not give one.
const wallTop int32 = 1 << 28

// LoadTrack parses a TMX file into a Track. It takes an fs.FS so callers can
// pass embed.FS (client) or os.DirFS (server).
func LoadTrack(fsys fs.FS, tmxPath string) (*Track, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	t := &Track{
		Name:    strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Gravity: config.Level.Gravity,
	}

	groups := make(map[string]*tiled.ObjectGroup, len(m.ObjectGroups))
	for _, og := range m.ObjectGroups {
		groups[og.Name] = og
	}

	// Rooms first: everything else is placed relative to them.
	if og := groups[GroupRooms]; og != nil {
		for _, o := range og.Objects {
			floor := int32(o.Properties.GetInt("floor"))
			ceiling := int32(o.Properties.GetInt("ceiling"))
			if ceiling <= floor {
				ceiling = floor + config.Level.DefaultHeight
			}
			x0, y0, x1, y1 := rect(o)
			t.Rooms = append(t.Rooms, level.Room{X0: x0, Y0: y0, X1: x1, Y1: y1, Floor: floor, Ceiling: ceiling})
		}
	}
	if len(t.Rooms) == 0 {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, level.ErrNoRooms)
	}

	if og := groups[GroupTrack]; og != nil {
		for _, o := range og.Objects {
			if g := o.Properties.GetFloat("gravity"); g > 0 {
				t.Gravity = g
			}
		}
	}

	if og := groups[GroupObstacles]; og != nil {
		for _, o := range og.Objects {
			t.Walls = append(t.Walls, box(o))
		}
	}

	if og := groups[GroupZones]; og != nil {
		for _, o := range og.Objects {
			e, err := zoneEffect(o)
			if err != nil {
				return nil, fmt.Errorf("load TMX %s: zone %d: %w", tmxPath, o.ID, err)
			}
			t.Zones = append(t.Zones, Zone{Box: box(o), Effect: e})
		}
	}

	if og := groups[GroupStarts]; og != nil {
		for _, o := range og.Objects {
			pos, room, err := t.locate(o)
			if err != nil {
				return nil, fmt.Errorf("load TMX %s: start %d: %w", tmxPath, o.ID, err)
			}
			t.Starts = append(t.Starts, Start{
				Pos:         pos,
				Room:        room,
				Orientation: heading(o.Properties.GetFloat("heading")),
				Index:       o.Properties.GetInt("index"),
			})
		}
	}
	if len(t.Starts) == 0 {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, ErrNoStarts)
	}
	// Grid order, then left-to-right for consistent assignment
	sort.SliceStable(t.Starts, func(i, j int) bool {
		if t.Starts[i].Index != t.Starts[j].Index {
			return t.Starts[i].Index < t.Starts[j].Index
		}
		return t.Starts[i].Pos.X < t.Starts[j].Pos.X
	})

	if og := groups[GroupElements]; og != nil {
		for _, o := range og.Objects {
			var kind level.PermKind
			switch k := o.Properties.GetString("kind"); k {
			case "mine":
				kind = level.PermMine
			case "powerup":
				kind = level.PermPowerUp
			default:
				return nil, fmt.Errorf("load TMX %s: element %d: %w %q", tmxPath, o.ID, ErrUnknownPerm, k)
			}
			pos, room, err := t.locate(o)
			if err != nil {
				return nil, fmt.Errorf("load TMX %s: element %d: %w", tmxPath, o.ID, err)
			}
			if kind == level.PermPowerUp {
				pos.Z += config.PermElement.PowerUpHalfHeight
			}
			t.Elements = append(t.Elements, Element{ID: len(t.Elements), Kind: kind, Room: room, Pos: pos})
		}
	}

	return t, nil
}

// LoadAllTracks discovers all .tmx files in dir within fsys, loads each, and
// returns a map keyed by stem name plus a sorted list of names.
func LoadAllTracks(fsys fs.FS, dir string) (map[string]*Track, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", dir, ErrEmptyTrackDir)
	}

	tracks := make(map[string]*Track, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		t, err := LoadTrack(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		tracks[t.Name] = t
		names = append(names, t.Name)
	}

	sort.Strings(names)
	return tracks, names, nil
}

// RoomAt returns the first room containing (x, y), or level.NoRoom.
func (t *Track) RoomAt(x, y int32) int {
	for i, r := range t.Rooms {
		if x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1 {
			return i
		}
	}
	return level.NoRoom
}

// locate converts a point object to a position resting on its room floor,
// raised by the optional "z" property.
func (t *Track) locate(o *tiled.Object) (shape.Coordinate, int, error) {
	x, y := scale(o.X), scale(o.Y)
	room := t.RoomAt(x, y)
	if room == level.NoRoom {
		return shape.Coordinate{}, level.NoRoom, fmt.Errorf("(%d, %d): %w", x, y, ErrOutsideRooms)
	}
	z := t.Rooms[room].Floor + int32(o.Properties.GetInt("z"))
	return shape.Coordinate{X: x, Y: y, Z: z}, room, nil
}

func zoneEffect(o *tiled.Object) (effect.Effect, error) {
	switch name := o.Properties.GetString("effect"); name {
	case "finish":
		return effect.Checkpoint{Type: effect.FinishLine}, nil
	case "check1":
		return effect.Checkpoint{Type: effect.Check1}, nil
	case "check2":
		return effect.Checkpoint{Type: effect.Check2}, nil
	case "fuel":
		qty := o.Properties.GetFloat("qty")
		if qty == 0 {
			qty = config.Level.FuelPitGain
		}
		return effect.FuelGain{Qty: qty}, nil
	case "speed":
		return effect.SpeedDoubler{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownZone, name)
	}
}

func box(o *tiled.Object) Box {
	x0, y0, x1, y1 := rect(o)
	bottom := int32(o.Properties.GetInt("bottom"))
	top := int32(o.Properties.GetInt("top"))
	if top <= bottom {
		top = wallTop
	}
	return Box{X0: x0, Y0: y0, X1: x1, Y1: y1, Bottom: bottom, Top: top}
}

func rect(o *tiled.Object) (x0, y0, x1, y1 int32) {
	return scale(o.X), scale(o.Y), scale(o.X + o.Width), scale(o.Y + o.Height)
}

func scale(px float64) int32 {
	return int32(px * float64(config.Level.UnitsPerPixel))
}

// heading converts degrees, counterclockwise from +x, to an Angle.
func heading(deg float64) gamemath.Angle {
	return gamemath.NormalizeAngle(int(deg * float64(gamemath.TwoPi) / 360))
}
