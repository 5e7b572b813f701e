package craft

import "errors"

var (
	// ErrAllCraftsDisabled is returned when the game options enable no craft
	// model. A race cannot start without one.
	ErrAllCraftsDisabled = errors.New("all crafts have been disabled")

	ErrNegativeDuration = errors.New("negative simulation duration")
	ErrRoomOutOfRange   = errors.New("room index out of range")
	ErrNetStateSize     = errors.New("net state has the wrong size")
)
