package components

import (
	"github.com/automoto/hoverrace-mp/shared/missile"
	"github.com/yohamta/donburi"
)

type MissileData struct {
	Missile *missile.Missile
}

var Missile = donburi.NewComponentType[MissileData]()

// PermElementData links an entity to a mine or can of the maze.
type PermElementData struct {
	ID int
}

var PermElement = donburi.NewComponentType[PermElementData]()
