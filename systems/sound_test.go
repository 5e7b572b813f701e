package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/hoverrace-mp/components"
	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/shape"
	"github.com/automoto/hoverrace-mp/systems/factory"
)

type heard struct {
	id      config.SoundID
	channel int
	db, pan int
}

type ear struct {
	heard []heard
}

func (e *ear) Render(craft.RenderState)           {}
func (e *ear) PlaySound(config.SoundID, int, int) {}
func (e *ear) PlayContinuous(id config.SoundID, channel, db int, _ float64, pan int) {
	e.heard = append(e.heard, heard{id, channel, db, pan})
}
func (e *ear) Close() error { return nil }

func TestPlaySounds(t *testing.T) {
	w := newRace(t, factory.RaceOptions{})
	ears := []*ear{{}, {}}
	var crafts []*craft.Craft
	for slot, r := range ears {
		e, err := factory.CreateCraft(w, factory.CraftSpec{
			Slot:    slot,
			HoverID: 10 + slot,
			Options: []craft.Option{craft.WithRenderer(r)},
		})
		require.NoError(t, err)
		c := components.Craft.Get(e).Craft
		c.SetControls(craft.MotorOn)
		crafts = append(crafts, c)
	}

	// Slot 1 starts 10000 to the left of slot 0.
	PlaySounds(w, 0)
	assert.Equal(t, []heard{{config.SoundMotor, craft.ChannelInternal, 0, 0}}, ears[0].heard)
	assert.Equal(t, []heard{{config.SoundMotor, craft.ChannelExternal, -10, -config.Audio.PanRange}}, ears[1].heard)

	ears[0].heard, ears[1].heard = nil, nil
	crafts[1].Place(shape.Coordinate{X: 95000, Y: 5000}, 0, 0)
	PlaySounds(w, 0)
	assert.Len(t, ears[0].heard, 1)
	assert.Empty(t, ears[1].heard, "too far to be heard")
}

func TestHeardFromTheRight(t *testing.T) {
	w := newRace(t, factory.RaceOptions{})
	_, a := addCraft(t, w, 0)
	_, b := addCraft(t, w, 1)
	a.Place(shape.Coordinate{X: 5000, Y: 15000}, 0, 0)
	b.Place(shape.Coordinate{X: 5000, Y: 13000}, 0, 0)

	db, pan := heardFrom(a, b)
	assert.Equal(t, -2, db)
	assert.Equal(t, config.Audio.PanRange, pan)

	db, pan = heardFrom(a, a)
	assert.Zero(t, db)
	assert.Zero(t, pan)
}
