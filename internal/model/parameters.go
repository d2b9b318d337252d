package model

import (
	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// NamedParameter pairs a parameter with its dotted path.
type NamedParameter struct {
	Path      string
	Parameter *parameter.Parameter
}

// Parameters returns every source parameter in tree order. Independent
// variables are not included.
func (m *Model) Parameters() []NamedParameter {
	return m.collect(func(*parameter.Parameter) bool { return true })
}

// FreeParameters returns the free, unlinked source parameters.
func (m *Model) FreeParameters() []NamedParameter {
	return m.collect(func(p *parameter.Parameter) bool { return p.Free() && !p.IsLinked() })
}

// LinkedParameters returns the parameters whose value is computed from an
// auxiliary variable.
func (m *Model) LinkedParameters() []NamedParameter {
	return m.collect(func(p *parameter.Parameter) bool { return p.IsLinked() })
}

func (m *Model) collect(keep func(*parameter.Parameter) bool) []NamedParameter {
	var out []NamedParameter
	// The callback never fails, so neither does the walk.
	_ = tree.Walk(m, func(path string, e tree.Element) error {
		if p, ok := e.(*parameter.Parameter); ok && keep(p) {
			out = append(out, NamedParameter{Path: path, Parameter: p})
		}
		return nil
	})
	return out
}
