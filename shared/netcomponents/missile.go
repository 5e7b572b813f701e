package netcomponents

import "github.com/yohamta/donburi"

type NetMissileData struct {
	X, Y, Z     float64
	Orientation int // angle units
	OwnerHover  int // hover id of the craft that fired
}

var NetMissile = donburi.NewComponentType[NetMissileData]()

// LerpNetMissile interpolates between two missile states
func LerpNetMissile(from, to NetMissileData, t float64) *NetMissileData {
	return &NetMissileData{
		X:           from.X + (to.X-from.X)*t,
		Y:           from.Y + (to.Y-from.Y)*t,
		Z:           from.Z + (to.Z-from.Z)*t,
		Orientation: to.Orientation,
		OwnerHover:  to.OwnerHover,
	}
}
