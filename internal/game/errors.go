package game

import "errors"

var (
	// ErrInvalidPlayerCount is returned at match creation when the
	// player list is outside the mode's allowed range.
	ErrInvalidPlayerCount = errors.New("game: invalid player count")

	// ErrWrongTurn is returned when a throw is registered for a player
	// who is not the current thrower. Match state is unchanged.
	ErrWrongTurn = errors.New("game: not this player's turn")

	// ErrMatchFinished is returned for throws submitted after a match
	// has concluded. Match state is unchanged.
	ErrMatchFinished = errors.New("game: match already finished")

	// ErrInvalidThrow is returned for a sector/multiplier combination
	// that does not exist on a dartboard.
	ErrInvalidThrow = errors.New("game: invalid throw")

	// ErrMissingScore indicates a player with no score state entry.
	// This is an internal invariant violation, not an expected error.
	ErrMissingScore = errors.New("game: no score state for player")
)
