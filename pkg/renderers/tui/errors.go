package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoEditableFields is returned when no field of the set is visible on the
	// edit page.
	ErrNoEditableFields = errors.New("tui: no fields visible on the edit page")
)
