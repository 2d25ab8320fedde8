package types

import "errors"

var (
	// ErrInvalidConfig is returned for bad counts, ratios or ranges, before
	// any generation work starts.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingInput is returned when a loader references a file or table
	// that does not exist.
	ErrMissingInput = errors.New("missing input")

	// ErrResource wraps sink connection and write failures.
	ErrResource = errors.New("resource error")
)
