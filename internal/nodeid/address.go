// internal/nodeid/address.go
package nodeid

import (
	"slices"
	"strings"
)

// String serializes the Address into its canonical path string representation.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return strings.Join(a.Path, Separator)
}

// Equal checks for equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return slices.Equal(a.Path, other.Path)
}

// Len returns the number of segments.
func (a *Address) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Path)
}

// Segments returns a copy of the path segments.
func (a *Address) Segments() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.Path)
}

// Append returns a new address with name added as the last segment. The
// receiver is left untouched.
func (a *Address) Append(name string) *Address {
	return New(append(a.Segments(), name)...)
}

// Join builds the canonical string for a sequence of names without
// validating them.
func Join(names ...string) string {
	return strings.Join(names, Separator)
}
