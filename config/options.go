package config

// GameOptions is the race options byte. The low nibble enables craft
// models, the high bits enable pickups and weapons.
type GameOptions uint8

const (
	OptAllowBasic GameOptions = 1 << iota
	OptAllowCX
	OptAllowBI
	OptAllowEon
	OptAllowCans
	OptAllowMines
	OptAllowWeapons

	// OptCraftMask selects the craft bits.
	OptCraftMask GameOptions = 0x0f

	// OptDefault allows every craft and every pickup.
	OptDefault = OptCraftMask | OptAllowCans | OptAllowMines | OptAllowWeapons
)

// Has reports whether every bit of flag is set.
func (o GameOptions) Has(flag GameOptions) bool {
	return o&flag == flag
}

// AllowsCraft reports whether craft model m can be selected. Only the first
// four models can be toggled; the rest are never selectable.
func (o GameOptions) AllowsCraft(m int) bool {
	return m >= 0 && m < 4 && o&(1<<m) != 0
}
