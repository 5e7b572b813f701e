package tags

import "github.com/yohamta/donburi"

var (
	Craft       = donburi.NewTag().SetName("Craft")
	Missile     = donburi.NewTag().SetName("Missile")
	PermElement = donburi.NewTag().SetName("PermElement")
	Race        = donburi.NewTag().SetName("Race")
	Level       = donburi.NewTag().SetName("Level")
)
