package archetypes

import (
	"slices"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/tags"
	"github.com/yohamta/donburi"
)

var (
	Craft = newArchetype(
		tags.Craft,
		components.Craft,
		components.Input,
		components.Lap,
		components.Pilot,
	)
	Missile = newArchetype(
		tags.Missile,
		components.Missile,
	)
	PermElement = newArchetype(
		tags.PermElement,
		components.PermElement,
	)
	Race = newArchetype(
		tags.Race,
		components.Race,
	)
	Level = newArchetype(
		tags.Level,
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus cs, such as
// the network components the server replicates.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := append(slices.Clip(a.components), cs...)
	return w.Entry(w.Create(all...))
}
