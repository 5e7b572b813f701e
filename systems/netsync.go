package systems

import (
	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/level"
	"github.com/automoto/hoverrace-mp/shared/netcomponents"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/yohamta/donburi"
)

// SyncNetState copies the simulation into the network components of the
// entities the server replicates. Entities without them are left alone.
func SyncNetState(w donburi.World) {
	m, ok := maze(w)
	if !ok {
		return
	}

	components.Craft.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetCraft) {
			return
		}
		cd := components.Craft.Get(e)
		c := cd.Craft
		netcomponents.NetCraft.SetValue(e, netcomponents.NetCraftData{
			State:        c.NetState(),
			Slot:         cd.Slot,
			HoverID:      c.HoverID(),
			Laps:         components.Lap.Get(e).Laps,
			LastSequence: components.Input.Get(e).LastSequence,
		})
		// Every craft is sent on every sync.
		c.ClearNetPriority()

		if e.HasComponent(netcomponents.NetPilot) {
			netcomponents.NetPilot.SetValue(e, netcomponents.NetPilotData{Name: components.Pilot.Get(e).Name})
		}
	})

	components.Missile.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetMissile) {
			return
		}
		ms := components.Missile.Get(e).Missile
		pos := ms.Position()
		netcomponents.NetMissile.SetValue(e, netcomponents.NetMissileData{
			X:           float64(pos.X),
			Y:           float64(pos.Y),
			Z:           float64(pos.Z),
			Orientation: int(ms.Orientation()),
			OwnerHover:  ms.Owner(),
		})
	})

	components.PermElement.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(netcomponents.NetPermElement) {
			return
		}
		pe, ok := m.PermElement(components.PermElement.Get(e).ID)
		if !ok {
			return
		}
		kind := netconfig.PermMine
		if pe.Kind == level.PermPowerUp {
			kind = netconfig.PermPowerUp
		}
		netcomponents.NetPermElement.SetValue(e, netcomponents.NetPermElementData{
			ID:   pe.ID,
			Kind: kind,
			Room: pe.Room,
			X:    float64(pe.Pos.X),
			Y:    float64(pe.Pos.Y),
			Z:    float64(pe.Pos.Z),
		})
	})

	raceEntry, ok := components.Race.First(w)
	if !ok || !raceEntry.HasComponent(netcomponents.NetRace) {
		return
	}
	race := components.Race.Get(raceEntry)
	track := ""
	if lvl, ok := components.Level.First(w); ok {
		track = components.Level.Get(lvl).Track.Name
	}
	netcomponents.NetRace.SetValue(raceEntry, netcomponents.NetRaceData{
		Track:   track,
		State:   race.State,
		Clock:   race.Clock,
		Laps:    race.Laps,
		Results: Results(w),
	})
}
