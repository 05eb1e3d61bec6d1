package replay

import "errors"

// ErrNoPlan indicates the loaded scripts never set a plan global.
var ErrNoPlan = errors.New("no plan defined")
