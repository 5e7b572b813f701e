package craft

import (
	"math"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/automoto/hoverrace-mp/shared/ringbuf"
	"github.com/automoto/hoverrace-mp/shared/shape"
)

// Sound channels of continuous sounds
const (
	ChannelInternal = 0
	ChannelExternal = 1
)

// RenderState is what a view needs to draw a craft.
type RenderState struct {
	Position shape.Coordinate
	Cabin    gamemath.Angle
	MotorOn  bool
	HoverID  int
	Model    int
}

// Renderer draws a craft and plays its sounds.
type Renderer interface {
	Render(s RenderState)
	// PlaySound plays a one-shot sound attenuated by db and panned by pan.
	PlaySound(id config.SoundID, db, pan int)
	// PlayContinuous keeps a looping sound alive on channel for this frame.
	PlayContinuous(id config.SoundID, channel, db int, pitch float64, pan int)
	Close() error
}

// Render draws the craft with the attached renderer, if any.
func (c *Craft) Render() {
	if c.renderer == nil {
		return
	}
	c.renderer.Render(RenderState{
		Position: c.position,
		Cabin:    c.cabin,
		MotorOn:  c.motorDisplay > 0,
		HoverID:  c.hoverID,
		Model:    c.model,
	})
}

func (c *Craft) playInternal(id config.SoundID) {
	if c.renderer != nil {
		c.internalSounds.TryPush(id)
	}
}

func (c *Craft) playBoth(id config.SoundID) {
	if c.renderer != nil {
		c.internalSounds.TryPush(id)
		c.externalSounds.TryPush(id)
	}
}

// PlayInternalSounds plays the queued cockpit sounds in order, then the
// wind and motor loops.
func (c *Craft) PlayInternalSounds() {
	c.playSounds(c.internalSounds, ChannelInternal, 0, 0)
}

// PlayExternalSounds plays the sounds heard by other players, attenuated by
// db and panned by pan.
func (c *Craft) PlayExternalSounds(db, pan int) {
	c.playSounds(c.externalSounds, ChannelExternal, db, pan)
}

func (c *Craft) playSounds(queue *ringbuf.Ring[config.SoundID], channel, db, pan int) {
	if c.renderer == nil {
		return
	}
	for {
		id, ok := queue.PopFront()
		if !ok {
			break
		}
		c.renderer.PlaySound(id, db, pan)
	}

	speed := math.Hypot(c.xSpeed, c.ySpeed) / config.HoverModels[0].SteadySpeed
	if speed > config.Audio.FrictionAudibleSpeed {
		c.renderer.PlayContinuous(config.SoundFriction, channel, db, config.Audio.FrictionPitchScale*speed, pan)
	}
	if c.MotorOn() {
		c.renderer.PlayContinuous(config.SoundMotor, channel, db, 1, pan)
	}
}
