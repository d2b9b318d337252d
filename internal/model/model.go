// Package model implements the root of a model tree: the sources and the
// independent variables of a single model, addressable by dotted paths.
package model

import (
	"fmt"

	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/source"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// RootName is the name of the root node. It never appears in paths.
const RootName = "model"

// Model aggregates uniquely named sources and independent variables.
type Model struct {
	tree.Node

	sources   []source.Source
	variables []*parameter.IndependentVariable
}

// New creates a model holding the given sources.
func New(sources ...source.Source) (*Model, error) {
	m := &Model{}
	if err := m.Init(RootName, m); err != nil {
		return nil, err
	}
	for _, s := range sources {
		if err := m.AddSource(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AddSource registers a source at the root.
func (m *Model) AddSource(s source.Source) error {
	if s == nil {
		return fmt.Errorf("cannot add a nil source")
	}
	if err := m.AddChild(s); err != nil {
		return fmt.Errorf("adding source: %w", err)
	}
	m.sources = append(m.sources, s)
	return nil
}

// AddIndependentVariable registers an independent variable at the root.
// Variables and sources share the root namespace.
func (m *Model) AddIndependentVariable(v *parameter.IndependentVariable) error {
	if v == nil {
		return fmt.Errorf("cannot add a nil independent variable")
	}
	if err := m.AddChild(v); err != nil {
		return fmt.Errorf("adding independent variable: %w", err)
	}
	m.variables = append(m.variables, v)
	return nil
}

// Get resolves a dotted path against the whole model.
func (m *Model) Get(path string) (tree.Element, error) {
	return tree.Resolve(m, path)
}

// Parameter resolves a dotted path that must lead to a parameter or an
// independent variable.
func (m *Model) Parameter(path string) (*parameter.Parameter, error) {
	e, err := m.Get(path)
	if err != nil {
		return nil, err
	}
	switch p := e.(type) {
	case *parameter.Parameter:
		return p, nil
	case *parameter.IndependentVariable:
		return &p.Parameter, nil
	}
	return nil, fmt.Errorf("%w: '%s' is a %T, not a parameter", tree.ErrPath, path, e)
}

// Set writes v into the parameter at path.
func (m *Model) Set(path string, v float64) error {
	return tree.Set(m, path, v)
}

// Source returns the named source.
func (m *Model) Source(name string) (source.Source, error) {
	for _, s := range m.sources {
		if s.TreeNode().Name() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: no source named '%s'", tree.ErrNotFound, name)
}

// Sources returns the sources in insertion order.
func (m *Model) Sources() []source.Source {
	out := make([]source.Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// IndependentVariable returns the named independent variable.
func (m *Model) IndependentVariable(name string) (*parameter.IndependentVariable, error) {
	for _, v := range m.variables {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: no independent variable named '%s'", tree.ErrNotFound, name)
}

// IndependentVariables returns the variables in insertion order.
func (m *Model) IndependentVariables() []*parameter.IndependentVariable {
	out := make([]*parameter.IndependentVariable, len(m.variables))
	copy(out, m.variables)
	return out
}
