package components

import (
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/yohamta/donburi"
)

// LevelData is the track of the race and the maze built from it. This is a
// singleton component.
type LevelData struct {
	Track       *leveldata.Track
	Maze        *level.Maze
	Projectiles craft.ProjectileFactory
}

var Level = donburi.NewComponentType[LevelData]()
