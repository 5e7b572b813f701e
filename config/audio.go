package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota
	// Craft events
	SoundJump
	SoundMisJump
	SoundBump
	SoundFire
	SoundOutOfControl
	SoundPickup
	SoundFinish
	SoundLineCrossing
	// Continuous craft sounds
	SoundFriction
	SoundMotor
	// Missile
	SoundMissileBounce
)

func (s SoundID) String() string {
	if name, ok := Sound.Names[s]; ok {
		return name
	}
	return "none"
}

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	FrictionAudibleSpeed float64 // fraction of steady speed under which wind is silent
	FrictionPitchScale   float64

	// Crafts heard from another cockpit
	UnitsPerDecibel float64
	MaxAttenuation  int // db, below which a craft is not heard
	PanRange        int
}

// SoundConfig maps sound IDs to names and file paths
type SoundConfig struct {
	Names             map[SoundID]string
	SFXPaths          map[SoundID]string
	VolumeMultipliers map[SoundID]float64
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		FrictionAudibleSpeed: 0.02,
		FrictionPitchScale:   1.5,
		UnitsPerDecibel:      1000,
		MaxAttenuation:       -60,
		PanRange:             100,
	}

	Sound = SoundConfig{
		Names: map[SoundID]string{
			SoundJump:          "jump",
			SoundMisJump:       "misjump",
			SoundBump:          "bump",
			SoundFire:          "fire",
			SoundOutOfControl:  "out_of_control",
			SoundPickup:        "pickup",
			SoundFinish:        "finish",
			SoundLineCrossing:  "line_crossing",
			SoundFriction:      "friction",
			SoundMotor:         "motor",
			SoundMissileBounce: "missile_bounce",
		},
		SFXPaths: map[SoundID]string{
			SoundJump:          "audio/sfx/jump.wav",
			SoundMisJump:       "audio/sfx/misjump.wav",
			SoundBump:          "audio/sfx/bump.wav",
			SoundFire:          "audio/sfx/fire.wav",
			SoundOutOfControl:  "audio/sfx/out_of_control.wav",
			SoundPickup:        "audio/sfx/pickup.wav",
			SoundFinish:        "audio/sfx/finish.wav",
			SoundLineCrossing:  "audio/sfx/line_crossing.wav",
			SoundFriction:      "audio/sfx/friction.wav",
			SoundMotor:         "audio/sfx/motor.wav",
			SoundMissileBounce: "audio/sfx/missile_bounce.wav",
		},
		VolumeMultipliers: map[SoundID]float64{
			SoundBump:   1.5,
			SoundFinish: 1.2,
		},
	}
}
