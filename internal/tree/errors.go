package tree

import "errors"

var (
	// ErrDuplicateName is returned when a sibling with the same name already exists.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrCycle is returned when attaching a node would make it its own ancestor.
	ErrCycle = errors.New("cycle detected")
	// ErrNotFound is returned when a child does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPath is returned when a dotted path cannot be resolved.
	ErrPath = errors.New("path error")
	// ErrReservedName is returned when a child name collides with a structural accessor.
	ErrReservedName = errors.New("reserved name")
	// ErrNotSettable is returned by Set when the final element does not accept a value.
	ErrNotSettable = errors.New("element does not accept a value")
	// ErrAttached is returned when renaming a node that already has a parent.
	ErrAttached = errors.New("node is attached to a parent")
	// ErrUnbound is returned when a Node was never bound with Init.
	ErrUnbound = errors.New("node is not initialized")
)
