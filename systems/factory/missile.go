package factory

import (
	"github.com/automoto/hoverrace-mp/archetypes"
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/missile"
	"github.com/automoto/hoverrace-mp/shared/shape"
	"github.com/yohamta/donburi"
)

// MissileSpawner gives every missile a craft fires its own entity.
type MissileSpawner struct {
	World   donburi.World
	Extra   []donburi.IComponentType
	OnSpawn func(*donburi.Entry)
}

func (s *MissileSpawner) NewMissile(owner int, pos shape.Coordinate, orientation gamemath.Angle) level.Element {
	m := missile.New(owner, pos, orientation)

	entry := archetypes.Missile.Spawn(s.World, s.Extra...)
	components.Missile.SetValue(entry, components.MissileData{Missile: m})
	if s.OnSpawn != nil {
		s.OnSpawn(entry)
	}
	return m
}
