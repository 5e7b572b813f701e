package config

import "github.com/automoto/hoverrace-mp/shared/gamemath"

// NumHoverModels is the number of craft models a player can pick from.
const NumHoverModels = 8

// HoverModelConfig holds the handling of one craft model. Speeds are in
// distance units (mm) per millisecond, accelerations per millisecond squared.
type HoverModelConfig struct {
	Name string

	SteadySpeed   float64
	MaxZSpeed     float64
	FrictionAccel float64 // negative
	MotorAccel    float64
	ZAccel        float64 // negative, scaled by the level gravity

	Weight          int32
	FuelConsumption float64 // fuel units per millisecond with the motor on
}

// CraftConfig contains the geometry, timers and handling constants shared by
// every craft model.
type CraftConfig struct {
	// Simulation stepping
	TimeSlice                  int32 // ms simulated per physics step
	MinimumSplittableTimeSlice int32 // below this the collision bisection stops

	// Geometry
	MovementRay  int32 // cylinder used against obstacles
	CollisionRay int32 // cylinder that receives contact effects
	ContactRay   int32 // cylinder that gives contact effects to others
	Height       int32

	// Steering
	RotationSpeed       float64 // angle units per ms
	SlowRotationDivisor float64
	OutOfControlSpin    float64 // rotation speed multiplier while out of control
	BrakeCabinDivisor   float64 // cabin flips when speed > steady/BrakeCabinDivisor

	// Motor
	MaxSpeedFactor        float64
	PoweredMaxSpeedFactor float64
	AccelHeadroom         float64
	MaxAccelFactor        float64
	AccelBoost            float64
	PoweredAccelBoost     float64
	SpeedDoublerFactor    float64

	// Vertical moves
	JumpBoost       float64 // fraction of MaxZSpeed given by a jump
	MineLaunchBoost float64 // fraction of the base model's MaxZSpeed given by a mine

	// Timers (ms)
	MotorDisplay          int32
	MissileRefillTime     int32
	PowerUpDuration       int32
	OutOfControlDuration  int32
	OutOfControlHitWindow int32 // hits are only recorded while the timer is below this

	// Fuel
	FuelCapacity float64
	LimpFuel     float64 // granted when restarting an empty engine

	// Weapon placement, relative to the craft base
	MissileLaunchHeight int32
	MineDropHeight      int32
	MineDropDistance    int32 // mines are left behind the cabin, out of reach
	PowerUpDropHeight   int32

	// Bounded queues
	MineCapacity    int
	PowerUpCapacity int
	HitCapacity     int
	SoundCapacity   int

	// HUD normalisation
	HUDSpeedFactor float64 // speed gauges are full at SteadySpeed*HUDSpeedFactor
}

// MissileConfig contains missile flight values
type MissileConfig struct {
	Speed        float64 // distance units per ms
	Lifetime     int32   // ms before the missile burns out
	IgnitionTime int32   // ms during which the owner cannot be hit
	Ray          int32
	Height       int32
	Weight       int32
}

// PermElementConfig contains the shapes of mines and power-up cans.
type PermElementConfig struct {
	MineRay           int32
	MineHeight        int32
	PowerUpRay        int32
	PowerUpHalfHeight int32
}

// LevelConfig contains defaults applied to loaded tracks.
type LevelConfig struct {
	Gravity       float64
	CellSize      int   // resolv broad phase cell size in distance units
	DefaultFloor  int32 // room floor when the track does not give one
	DefaultHeight int32 // room height when the track does not give one
	UnitsPerPixel int32 // distance units per TMX pixel
	FuelPitGain   float64
}

// Global configuration instances
var HoverModels [NumHoverModels]HoverModelConfig
var Craft CraftConfig
var Missile MissileConfig
var PermElement PermElementConfig
var Level LevelConfig

func init() {
	steady := [NumHoverModels]float64{8.7, 11.5, 10.5, 8.7, 8.7, 8.7, 8.7, 8.1}
	for i := range steady {
		steady[i] = steady[i] * 2222.0 / 1000.0
	}
	maxZ := [NumHoverModels]float64{
		2900.0 / 1000.0,
		2900.0 / 900.0,
		2900.0 / 1000.0,
		2900.0 / 1000.0,
		2900.0 / 1000.0,
		2900.0 / 1000.0,
		2900.0 / 1000.0,
		2900.0 / 1000.0,
	}

	names := [NumHoverModels]string{"Basic", "CX", "BI", "Eon", "Basic2", "Basic3", "Basic4", "Eon2"}
	frictionDiv := [NumHoverModels]float64{1000, 1200, 900, 1000, 1000, 1000, 1000, 700}
	motor := [NumHoverModels]float64{
		steady[0] / 1000.0,
		steady[0] / 1400.0,
		steady[2] / 1050.0,
		steady[0] / 1000.0,
		steady[0] / 1000.0,
		steady[0] / 1000.0,
		steady[0] / 1000.0,
		steady[7] / 750.0,
	}
	zAccel := [NumHoverModels]float64{
		-maxZ[0] / 1000.0,
		-maxZ[1] / 1000.0,
		-maxZ[2] / 850.0,
		-maxZ[0] / 1000.0,
		-maxZ[0] / 1000.0,
		-maxZ[0] / 1000.0,
		-maxZ[0] / 1000.0,
		-maxZ[7] / 1000.0,
	}
	weight := [NumHoverModels]int32{300, 250, 450, 300, 300, 300, 300, 300}
	fuel := [NumHoverModels]float64{1.0, 0.70, 2.0, 1.0, 1.0, 1.0, 1.0, 1.1}

	for i := range HoverModels {
		HoverModels[i] = HoverModelConfig{
			Name:            names[i],
			SteadySpeed:     steady[i],
			MaxZSpeed:       maxZ[i],
			FrictionAccel:   -steady[0] / 4.0 / frictionDiv[i],
			MotorAccel:      motor[i],
			ZAccel:          zAccel[i],
			Weight:          weight[i],
			FuelConsumption: fuel[i],
		}
	}

	Craft = CraftConfig{
		TimeSlice:                  5,
		MinimumSplittableTimeSlice: 6,

		MovementRay:  1100,
		CollisionRay: 1300,
		ContactRay:   1450,
		Height:       1500,

		RotationSpeed:       float64(gamemath.Pi) / 1.4 / 1000.0, // half a turn in 1.4s
		SlowRotationDivisor: 4,
		OutOfControlSpin:    8,
		BrakeCabinDivisor:   20,

		MaxSpeedFactor:        1.3,
		PoweredMaxSpeedFactor: 1.9,
		AccelHeadroom:         1.25,
		MaxAccelFactor:        0.8,
		AccelBoost:            1.8,
		PoweredAccelBoost:     3.2,
		SpeedDoublerFactor:    4,

		JumpBoost:       1.1,
		MineLaunchBoost: 1.1,

		MotorDisplay:          250,
		MissileRefillTime:     10000,
		PowerUpDuration:       5000,
		OutOfControlDuration:  2000,
		OutOfControlHitWindow: 1750,

		FuelCapacity: 3 * 60 * 1000, // 3 minutes of fuel
		LimpFuel:     120,

		MissileLaunchHeight: 1100,
		MineDropHeight:      800,
		MineDropDistance:    1800,
		PowerUpDropHeight:   1200,

		MineCapacity:    10,
		PowerUpCapacity: 10,
		HitCapacity:     16,
		SoundCapacity:   8,

		HUDSpeedFactor: 1.9,
	}

	Missile = MissileConfig{
		Speed:        2.5 * steady[0],
		Lifetime:     5000,
		IgnitionTime: 150,
		Ray:          120,
		Height:       240,
		Weight:       100,
	}

	PermElement = PermElementConfig{
		MineRay:           400,
		MineHeight:        200,
		PowerUpRay:        550,
		PowerUpHalfHeight: 550,
	}

	Level = LevelConfig{
		Gravity:       1.0,
		CellSize:      2000,
		DefaultFloor:  0,
		DefaultHeight: 6000,
		UnitsPerPixel: 100,
		FuelPitGain:   60,
	}
}
