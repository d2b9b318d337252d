// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex matches a single element name: no whitespace, no separators and
// no brackets, so names never clash with the path or link syntax.
var nameRegex = regexp.MustCompile(`^[^\s.()\[\]]+$`)

// ValidateName checks that name can be used as a tree element name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q (names cannot contain spaces, dots, parentheses or brackets)", ErrInvalidName, name)
	}
	return nil
}

// Parse creates a new Address struct by parsing its canonical string representation.
func Parse(raw string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrInvalidPath)
	}

	addr := &Address{}
	for _, segment := range strings.Split(raw, Separator) {
		if segment == "" {
			return nil, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPath, raw)
		}
		if err := ValidateName(segment); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPath, raw, err)
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}
