package parameter

import "errors"

var (
	// ErrRange is returned when a lower bound is greater than the upper bound.
	ErrRange = errors.New("invalid range")
	// ErrBounds is returned when a value falls outside the parameter bounds.
	ErrBounds = errors.New("value out of bounds")
	// ErrLinkedParameter is returned when writing the value of a linked parameter.
	ErrLinkedParameter = errors.New("parameter is linked")
	// ErrSelfLink is returned when a parameter is linked to itself.
	ErrSelfLink = errors.New("parameter cannot be linked to itself")
)
