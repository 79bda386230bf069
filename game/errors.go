package game

import "errors"

var (
	// ErrConfiguration reports a deck or grid that cannot start a match.
	ErrConfiguration = errors.New("configuration error")
	// ErrIllegalMove reports a rejected play. State is left unchanged.
	ErrIllegalMove = errors.New("illegal move")
	// ErrOutOfBounds reports direct cell access outside the grid.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrIllegalState reports a broken internal invariant.
	ErrIllegalState = errors.New("illegal state")
)
