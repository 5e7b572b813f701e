package protocol

import (
	"github.com/automoto/hoverrace-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetCraft       uint = 10
	SyncIDNetPilot       uint = 11
	SyncIDNetMissile     uint = 12
	SyncIDNetPermElement uint = 13
	SyncIDNetRace        uint = 14
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetMissile uint8 = 12
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	// Crafts carry packed state that slaves decode, never interpolate.
	if err := esync.RegisterComponent(
		SyncIDNetCraft,
		netcomponents.NetCraftData{},
		netcomponents.NetCraft,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetPilot,
		netcomponents.NetPilotData{},
		netcomponents.NetPilot,
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetMissile,
		netcomponents.NetMissileData{},
		netcomponents.NetMissile,
		esync.WithInterpFn(InterpIDNetMissile, netcomponents.LerpNetMissile),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetPermElement,
		netcomponents.NetPermElementData{},
		netcomponents.NetPermElement,
	); err != nil {
		return err
	}

	// Race: no interpolation (discrete state)
	if err := esync.RegisterComponent(
		SyncIDNetRace,
		netcomponents.NetRaceData{},
		netcomponents.NetRace,
	); err != nil {
		return err
	}

	return nil
}
