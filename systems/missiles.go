package systems

import (
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/missile"
	"github.com/yohamta/donburi"
)

// UpdateMissiles flies every missile of the maze, in its simulation order.
func UpdateMissiles(w donburi.World) {
	raceEntry, ok := components.Race.First(w)
	if !ok {
		return
	}
	step := components.Race.Get(raceEntry).Step
	m, ok := maze(w)
	if !ok || step == 0 {
		return
	}

	for _, el := range m.FreeElements() {
		ms, ok := el.(*missile.Missile)
		if !ok {
			continue
		}
		m.MoveElement(ms, ms.Simulate(step, m, m.ElementRoom(ms)))
	}
}

// missileEntities maps the missiles of the world to their entities.
func missileEntities(w donburi.World) map[*missile.Missile]donburi.Entity {
	out := make(map[*missile.Missile]donburi.Entity)
	components.Missile.Each(w, func(e *donburi.Entry) {
		out[components.Missile.Get(e).Missile] = e.Entity()
	})
	return out
}
