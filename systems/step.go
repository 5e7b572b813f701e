package systems

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/leveldata"
	"github.com/automoto/hoverrace-mp/shared/missile"
	"github.com/automoto/hoverrace-mp/shared/replay"
	"github.com/automoto/hoverrace-mp/systems/factory"
	"github.com/cespare/xxhash/v2"
	"github.com/yohamta/donburi"
)

// Step runs one tick of duration ms: the clock, the crafts, the missiles,
// the contacts between them, then the standings.
func Step(w donburi.World, duration int32) error {
	if duration < 0 {
		return fmt.Errorf("step %d ms: %w", duration, craft.ErrNegativeDuration)
	}
	UpdateRace(w, duration)
	if err := UpdateCrafts(w); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	UpdateMissiles(w)
	ApplyContacts(w)
	UpdateStandings(w)
	return nil
}

// Digest hashes the race clock, every craft in slot order, every missile in
// simulation order and every permanent element. Equal digests mean the
// races will go on the same way.
func Digest(w donburi.World) uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 64)

	if raceEntry, ok := components.Race.First(w); ok {
		race := components.Race.Get(raceEntry)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(race.Clock))
		buf = append(buf, byte(race.State))
	}
	for _, e := range craftEntries(w) {
		buf = binary.LittleEndian.AppendUint64(buf, components.Craft.Get(e).Craft.Digest())
	}
	_, _ = h.Write(buf)

	m, ok := maze(w)
	if !ok {
		return h.Sum64()
	}
	for _, el := range m.FreeElements() {
		ms, ok := el.(*missile.Missile)
		if !ok {
			continue
		}
		p := ms.Position()
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.X))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Y))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Z))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(ms.Orientation()))
		_, _ = h.Write(buf)
	}

	var ids []int
	components.PermElement.Each(w, func(e *donburi.Entry) {
		ids = append(ids, components.PermElement.Get(e).ID)
	})
	slices.Sort(ids)
	for _, id := range ids {
		pe, ok := m.PermElement(id)
		if !ok {
			continue
		}
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint32(buf, uint32(pe.Room))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(pe.Pos.X))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(pe.Pos.Y))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(pe.Pos.Z))
		_, _ = h.Write(buf)
	}
	return h.Sum64()
}

// Controls returns the controls of every craft in slot order, as recorded
// in replays.
func Controls(w donburi.World) []uint16 {
	entries := craftEntries(w)
	out := make([]uint16, len(entries))
	for i, e := range entries {
		out[i] = uint16(components.Input.Get(e).Controls)
	}
	return out
}

// ReplayRunner steps a race rebuilt from a recording.
type ReplayRunner struct {
	World donburi.World
}

var _ replay.Runner = ReplayRunner{}

// NewReplayRunner rebuilds the race of rec on track, with the countdown
// already started.
func NewReplayRunner(rec *replay.Recording, track *leveldata.Track) (ReplayRunner, error) {
	w := donburi.NewWorld()
	_, err := factory.CreateRace(w, track, factory.RaceOptions{
		Options:   config.GameOptions(rec.Options),
		Laps:      rec.Laps,
		Countdown: rec.Countdown,
	})
	if err != nil {
		return ReplayRunner{}, err
	}
	for _, c := range rec.Crafts {
		e, err := factory.CreateCraft(w, factory.CraftSpec{Slot: c.Slot, HoverID: c.HoverID, Model: c.Model, Name: c.Pilot})
		if err != nil {
			return ReplayRunner{}, err
		}
		components.Craft.Get(e).Craft.SetControls(craft.Control(c.Controls) &^ craft.Fire)
	}
	if err := factory.StartCountdown(w); err != nil {
		return ReplayRunner{}, err
	}
	return ReplayRunner{World: w}, nil
}

func (r ReplayRunner) Step(duration int32, controls []uint16) (uint64, error) {
	entries := craftEntries(r.World)
	if len(controls) != len(entries) {
		return 0, replay.ErrSlotCount
	}
	for i, e := range entries {
		components.Input.Get(e).Controls = craft.Control(controls[i])
	}
	if err := Step(r.World, duration); err != nil {
		return 0, err
	}
	return Digest(r.World), nil
}
