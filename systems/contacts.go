package systems

import (
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/missile"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// ApplyContacts hands every receiver the effects touching it: crafts in
// slot order, then missiles. Each receiver's contacts are applied before the
// next one is queried, so a mine or can taken by one craft is gone for the
// crafts after it. Missiles that died are then removed from the maze and the
// world.
func ApplyContacts(w donburi.World) {
	raceEntry, ok := components.Race.First(w)
	if !ok {
		return
	}
	race := components.Race.Get(raceEntry)
	m, ok := maze(w)
	if !ok || race.Step == 0 {
		return
	}

	var receivers []level.Receiver
	for _, e := range craftEntries(w) {
		receivers = append(receivers, components.Craft.Get(e).Craft)
	}
	var missiles []*missile.Missile
	for _, el := range m.FreeElements() {
		if ms, ok := el.(*missile.Missile); ok {
			missiles = append(missiles, ms)
			receivers = append(receivers, ms)
		}
	}

	for _, r := range receivers {
		for _, c := range m.Contacts(r) {
			r.ApplyEffect(c.Effect, race.Clock, race.Step, c.ValidDirection, c.Direction, m)
		}
	}

	var entities map[*missile.Missile]donburi.Entity
	for _, ms := range missiles {
		if ms.TakeBounce() {
			race.Emit(messages.RaceEvent{Event: netconfig.EventMissileBounce, HoverID: ms.Owner()})
		}
		if !ms.Dead() {
			continue
		}
		m.RemoveElement(ms)
		if entities == nil {
			entities = missileEntities(w)
		}
		if entity, ok := entities[ms]; ok && w.Valid(entity) {
			w.Remove(entity)
		}
	}
}
