package ui

import "errors"

// Configuration errors are returned by the call that introduced them.
// Out-of-range navigation is never an error: it is clamped or reported as a
// boolean by the manager involved.
var (
	ErrInvalidSize    = errors.New("ui: invalid size")
	ErrInvalidWeight  = errors.New("ui: invalid flex weight")
	ErrInvalidPadding = errors.New("ui: invalid padding")
	ErrInvalidHotKey  = errors.New("ui: invalid hotkey")
	ErrRunning        = errors.New("ui: screen is already running")
	ErrDriverClosed   = errors.New("ui: driver closed")
	ErrViewPanic      = errors.New("ui: view panicked during render")
)
