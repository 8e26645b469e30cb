package markdown

import "errors"

// ErrNotLoaded is returned by a Handle built without a Loader.
var ErrNotLoaded = errors.New("markdown renderer not configured")
