package source

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned by ParseKind for unrecognized source kinds.
var ErrUnknownKind = errors.New("unknown source kind")

// Kind is the fixed type of a source.
type Kind string

const (
	PointSource    Kind = "point source"
	ExtendedSource Kind = "extended source"
)

// Kinds lists the recognized kinds.
func Kinds() []Kind {
	return []Kind{PointSource, ExtendedSource}
}

// ParseKind maps a document tag onto a Kind.
func ParseKind(tag string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == tag {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: '%s' (valid kinds are '%s' and '%s')", ErrUnknownKind, tag, PointSource, ExtendedSource)
}
