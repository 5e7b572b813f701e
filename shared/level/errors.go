package level

import "errors"

var (
	ErrNoRooms       = errors.New("maze has no rooms")
	ErrDuplicatePerm = errors.New("duplicate permanent element id")
)
