package slots

import "errors"

// ErrReservedName is returned by NewTable when a slot name collides with a
// fixed member of the slot renderer.
var ErrReservedName = errors.New("reserved slot name")
