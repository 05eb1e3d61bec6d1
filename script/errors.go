package script

import "errors"

// Errors for script host operations.
var (
	// ErrHostClosed is returned when operating on a closed host.
	ErrHostClosed = errors.New("script host is closed")

	// ErrUnknownCommand is returned when instantiating a command no loaded
	// script has defined.
	ErrUnknownCommand = errors.New("unknown command")
)
