package qs

import "errors"

// Sentinel errors returned by Decode and Encode. Wrap these with fmt.Errorf
// and %w at the point of detection so callers can still errors.Is against a
// stable taxonomy.
var (
	// ErrParameterLimitExceeded is returned when a decoded string has more
	// pairs than ParameterLimit and RaiseOnLimitExceeded is set.
	ErrParameterLimitExceeded = errors.New("parameter limit exceeded")
	// ErrDepthExceeded is returned when StrictDepth is set and a key's
	// bracket nesting exceeds Depth.
	ErrDepthExceeded = errors.New("input depth exceeded depth option and strictDepth is true")
	// ErrInvalidOption is returned when an option record is internally
	// inconsistent, e.g. DecodeDotInKeys without AllowDots.
	ErrInvalidOption = errors.New("invalid option")
	// ErrCircularReference is returned when Encode's input graph contains a
	// cycle.
	ErrCircularReference = errors.New("circular reference detected")
)
