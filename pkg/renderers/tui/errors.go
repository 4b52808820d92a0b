package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidChoice is returned when the driver reports a selection
	// outside the offered options.
	ErrInvalidChoice = errors.New("tui: invalid choice")
)
