package functions

import (
	"fmt"

	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// Function is an instance of a catalog definition. Its parameters are tree
// children, in the order the definition declares them.
type Function struct {
	tree.Node

	def    *Definition
	params []*parameter.Parameter
}

// FunctionName returns the catalog name, which survives renaming the node
// (a spectral shape is attached as "shape").
func (f *Function) FunctionName() string { return f.def.Name }

// Description returns the catalog description.
func (f *Function) Description() string { return f.def.Description }

// Parameters returns the parameters in declaration order.
func (f *Function) Parameters() []*parameter.Parameter {
	out := make([]*parameter.Parameter, len(f.params))
	copy(out, f.params)
	return out
}

// Parameter returns the named parameter.
func (f *Function) Parameter(name string) (*parameter.Parameter, error) {
	for _, p := range f.params {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("function '%s' has no parameter '%s': %w", f.def.Name, name, tree.ErrNotFound)
}

// Evaluate computes the function at x with the current parameter values.
func (f *Function) Evaluate(x float64) float64 {
	values := make([]float64, len(f.params))
	for i, p := range f.params {
		values[i] = p.Value()
	}
	return f.def.Eval(x, values)
}

// String renders the function for humans.
func (f *Function) String() string {
	return fmt.Sprintf("%s (%s)", f.Name(), f.def.Name)
}
