package systems

import (
	"math"

	"github.com/automoto/hoverrace-mp/components"
	cfg "github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/craft"
	"github.com/automoto/hoverrace-mp/shared/gamemath"
	"github.com/yohamta/donburi"
)

// PlaySounds plays the cockpit sounds of the listener's craft and the sounds
// other crafts make where the listener can hear them.
func PlaySounds(w donburi.World, listenerSlot int) {
	var listener *craft.Craft
	entries := craftEntries(w)
	for _, e := range entries {
		if cd := components.Craft.Get(e); cd.Slot == listenerSlot {
			listener = cd.Craft
		}
	}

	for _, e := range entries {
		c := components.Craft.Get(e).Craft
		if c == listener {
			c.PlayInternalSounds()
			continue
		}
		if listener == nil {
			c.PlayExternalSounds(0, 0)
			continue
		}
		db, pan := heardFrom(listener, c)
		if db < cfg.Audio.MaxAttenuation {
			continue
		}
		c.PlayExternalSounds(db, pan)
	}
}

// heardFrom attenuates by distance and pans by the bearing of src relative
// to the listener's cabin.
func heardFrom(listener, src *craft.Craft) (db, pan int) {
	lp, sp := listener.Position(), src.Position()
	dx, dy := float64(sp.X-lp.X), float64(sp.Y-lp.Y)

	db = -int(math.Hypot(dx, dy) / cfg.Audio.UnitsPerDecibel)
	if dx == 0 && dy == 0 {
		return db, 0
	}
	bearing := int(gamemath.HeadingOf(dx, dy)) - int(listener.CabinOrientation())
	// Positive pan is to the right, which is clockwise.
	sin := float64(gamemath.Sin[gamemath.NormalizeAngle(bearing)]) / gamemath.TrigoFract
	return db, -int(sin * float64(cfg.Audio.PanRange))
}
