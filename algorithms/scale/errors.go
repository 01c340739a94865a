package scale

import "errors"

var (
	// ErrUnknownName is returned when a chord or scale name is not registered.
	ErrUnknownName = errors.New("scale: unknown name")

	// ErrEmptyScale is returned when a scale is built from no pitches.
	ErrEmptyScale = errors.New("scale: no pitches")
)
