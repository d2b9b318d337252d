package document

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Map is a mapping that remembers the order its keys were defined in.
//
// Values are *Map, []any, or cty.Value scalars (string, number, bool or null).
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set appends key with value v. Keys must be unique.
func (m *Map) Set(key string, v any) error {
	if _, ok := m.values[key]; ok {
		return fmt.Errorf("%w: duplicate key '%s'", ErrDocumentSyntax, key)
	}
	switch v.(type) {
	case *Map, []any, cty.Value:
	default:
		return fmt.Errorf("%w: key '%s' holds a %T", ErrType, key, v)
	}
	m.keys = append(m.keys, key)
	m.values[key] = v
	return nil
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Map returns the nested mapping stored under key.
func (m *Map) Map(key string) (*Map, bool, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	sub, isMap := v.(*Map)
	if !isMap {
		return nil, true, fmt.Errorf("%w: '%s' must be a mapping, got %s", ErrType, key, Describe(v))
	}
	return sub, true, nil
}

// Keys returns the keys in definition order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Map) Len() int { return len(m.keys) }

// Describe names the kind of a document value for error messages.
func Describe(v any) string {
	switch t := v.(type) {
	case *Map:
		return "a mapping"
	case []any:
		return "a list"
	case cty.Value:
		if t.IsNull() {
			return "null"
		}
		return "a " + t.Type().FriendlyName()
	}
	return fmt.Sprintf("%T", v)
}
