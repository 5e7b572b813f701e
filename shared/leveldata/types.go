// Package leveldata provides TMX track parsing shared between client and server.
// Tracks are plain data until Maze turns them into a collision level.
package leveldata

import (
	"errors"

	"github.com/automoto/hoverrace-mp/shared/effect"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// Object group names read from a track file
const (
	GroupRooms     = "Rooms"
	GroupObstacles = "Obstacles"
	GroupZones     = "Zones"
	GroupStarts    = "Starts"
	GroupElements  = "Elements"
	GroupTrack     = "Track"
)

var (
	ErrNoStarts      = errors.New("track has no start positions")
	ErrUnknownZone   = errors.New("unknown zone effect")
	ErrUnknownPerm   = errors.New("unknown element kind")
	ErrOutsideRooms  = errors.New("position is outside every room")
	ErrEmptyTrackDir = errors.New("no .tmx files found")
)

// Track holds everything a race needs from a TMX file, in distance units.
type Track struct {
	Name     string
	Gravity  float64
	Rooms    []level.Room
	Walls    []Box
	Zones    []Zone
	Starts   []Start
	Elements []Element
}

// Box is an axis-aligned block between Bottom and Top.
type Box struct {
	X0, Y0, X1, Y1 int32
	Bottom, Top    int32
}

// Polygon returns the box as a collision shape.
func (b Box) Polygon() *shape.Polygon {
	return shape.Box(b.X0, b.Y0, b.X1, b.Y1, b.Bottom, b.Top)
}

// Zone is a box that hands an effect to whatever drives through it.
type Zone struct {
	Box
	Effect effect.Effect
}

// Start is a grid position. Index orders the grid; slot i takes Starts[i].
type Start struct {
	Pos         shape.Coordinate
	Room        int
	Orientation gamemath.Angle
	Index       int
}

// Element is a mine or power-up can present at the start of the race.
type Element struct {
	ID   int
	Kind level.PermKind
	Room int
	Pos  shape.Coordinate
}
