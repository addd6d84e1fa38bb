package mines

import "fmt"

// ConfigError reports an invalid game configuration: an unknown
// difficulty, non-positive dimensions or a mine count that does not fit
// the board. The offending call leaves all state unchanged.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}

// OutOfBoundsError reports a coordinate outside the current grid.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell %d:%d is outside the %dx%d grid",
		e.X, e.Y, e.Width, e.Height)
}

// InvalidActionError reports a player action that the current game or
// cell state forbids, e.g. chording a hidden cell or clicking after the
// game has ended. The action is rejected with no state change.
type InvalidActionError struct {
	Action string
	Reason string
}

func (e InvalidActionError) Error() string {
	return fmt.Sprintf("cannot %s: %s", e.Action, e.Reason)
}
