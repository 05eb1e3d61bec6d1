package app

import "errors"

// ErrQuit signals that the user asked to exit normally.
var ErrQuit = errors.New("quit requested")
