package functions

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/skymodel/internal/parameter"
)

// ErrUnknownFunction is returned by Lookup for names not in the catalog.
var ErrUnknownFunction = errors.New("unknown function")

// Catalog resolves function names into fresh instances.
type Catalog interface {
	Lookup(name string) (*Function, error)
}

// ParameterDefinition declares one parameter of a function and its defaults.
type ParameterDefinition struct {
	Name        string
	Value       float64
	Min         *float64
	Max         *float64
	Delta       float64
	Fixed       bool
	Unit        string
	Description string
}

// Definition describes a catalog function.
type Definition struct {
	Name        string
	Description string
	Parameters  []ParameterDefinition
	// Eval receives the parameter values in declaration order.
	Eval func(x float64, p []float64) float64
}

// Registry holds the registered function definitions.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a definition. Registering the same name twice, or a
// definition without an evaluator, is a programming error and panics.
func (r *Registry) Register(def Definition) {
	if def.Name == "" || def.Eval == nil {
		panic(fmt.Sprintf("function definition '%s' must have a name and an evaluator", def.Name))
	}
	if _, exists := r.defs[def.Name]; exists {
		panic(fmt.Sprintf("function with name '%s' already registered", def.Name))
	}
	slog.Debug("Registering function.", "name", def.Name, "parameters", len(def.Parameters))
	d := def
	d.Parameters = append([]ParameterDefinition(nil), def.Parameters...)
	r.defs[def.Name] = &d
}

// Definition returns the named definition.
func (r *Registry) Definition(name string) (*Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup implements Catalog. Every call returns an independent instance.
func (r *Registry) Lookup(name string) (*Function, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownFunction, name)
	}
	return instantiate(def)
}

func instantiate(def *Definition) (*Function, error) {
	f := &Function{def: def}
	if err := f.Init(def.Name, f); err != nil {
		return nil, fmt.Errorf("function '%s': %w", def.Name, err)
	}
	for _, pd := range def.Parameters {
		opts := []parameter.Option{
			parameter.WithDelta(pd.Delta),
			parameter.WithFree(!pd.Fixed),
			parameter.WithUnit(pd.Unit),
			parameter.WithDescription(pd.Description),
		}
		if pd.Min != nil {
			opts = append(opts, parameter.WithMin(*pd.Min))
		}
		if pd.Max != nil {
			opts = append(opts, parameter.WithMax(*pd.Max))
		}
		p, err := parameter.New(pd.Name, pd.Value, opts...)
		if err != nil {
			return nil, fmt.Errorf("function '%s': %w", def.Name, err)
		}
		if err := f.AddChild(p); err != nil {
			return nil, fmt.Errorf("function '%s': %w", def.Name, err)
		}
		f.params = append(f.params, p)
	}
	return f, nil
}
