package render

import "errors"

// Error classes surfaced by the facade.  They are always wrapped with a
// message that names the feature or adapter; match with errors.Is.  None
// of them is retryable.
var (
	// ErrCapability: the feature is unavailable in the current mode.
	ErrCapability = errors.New("capability unavailable")

	// ErrConfiguration: the adapter did not wire a required value.
	ErrConfiguration = errors.New("adapter configuration")

	// ErrEnvironment: the active runtime does not support the feature.
	ErrEnvironment = errors.New("unsupported environment")
)
