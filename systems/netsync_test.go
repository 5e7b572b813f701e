package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/netcomponents"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/automoto/hoverrace-mp/systems/factory"
	"github.com/yohamta/donburi"
)

func TestSyncNetState(t *testing.T) {
	w := newRace(t, factory.RaceOptions{
		Laps:         3,
		RaceExtra:    []donburi.IComponentType{netcomponents.NetRace},
		PermExtra:    []donburi.IComponentType{netcomponents.NetPermElement},
		MissileExtra: []donburi.IComponentType{netcomponents.NetMissile},
	})
	e, c := addCraft(t, w, 0, netcomponents.NetCraft, netcomponents.NetPilot)
	plain, _ := addCraft(t, w, 1)
	require.NoError(t, factory.StartCountdown(w))

	in := components.Input.Get(e)
	in.Controls = craft.MotorOn | craft.Fire
	in.LastSequence = 42
	step(t, w, 16)
	SyncNetState(w)

	nc := netcomponents.NetCraft.Get(e)
	assert.Equal(t, c.NetState(), nc.State)
	assert.Equal(t, 10, nc.HoverID)
	assert.Equal(t, uint32(42), nc.LastSequence)
	assert.False(t, c.NetPriority())
	assert.Equal(t, "pilot", netcomponents.NetPilot.Get(e).Name)
	assert.False(t, plain.HasComponent(netcomponents.NetCraft))

	missile := netcomponents.NetMissile.Get(netcomponents.NetMissile.MustFirst(w))
	assert.Equal(t, 10, missile.OwnerHover)
	assert.Greater(t, missile.X, 5000.0)

	pe := netcomponents.NetPermElement.Get(netcomponents.NetPermElement.MustFirst(w))
	assert.Equal(t, netcomponents.NetPermElementData{ID: 0, Kind: netconfig.PermMine, Room: 0, X: 80000, Y: 10000}, *pe)

	nr := netcomponents.NetRace.Get(netcomponents.NetRace.MustFirst(w))
	assert.Equal(t, "strip", nr.Track)
	assert.Equal(t, netconfig.RaceRunning, nr.State)
	assert.Equal(t, int32(16), nr.Clock)
	assert.Equal(t, 3, nr.Laps)
	assert.Len(t, nr.Results, 2)
}
