// internal/nodeid/types.go
package nodeid

import "errors"

var (
	// ErrInvalidPath is returned when a dotted path cannot be parsed.
	ErrInvalidPath = errors.New("invalid path")
	// ErrInvalidName is returned when an element name breaks the naming rule.
	ErrInvalidName = errors.New("invalid name")
)

// Separator joins the segments of an address.
const Separator = "."

// Address is the structured representation of an element's location in a
// model tree. It is modeled as a path, broken into name segments.
type Address struct {
	Path []string
}

// New builds an address from already validated segments.
func New(segments ...string) *Address {
	path := make([]string, len(segments))
	copy(path, segments)
	return &Address{Path: path}
}
