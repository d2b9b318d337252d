package testutil

import (
	"github.com/specialistvlad/skymodel/internal/functions"
)

// Catalog returns a small function catalog for parser tests:
//
//	flat(level)        f(x) = level
//	scaled(k, offset)  f(x) = k*x + offset, k bounded to [0, 10], offset fixed
func Catalog() *functions.Registry {
	r := functions.NewRegistry()
	ten, zero := 10.0, 0.0
	r.Register(functions.Definition{
		Name:       "flat",
		Parameters: []functions.ParameterDefinition{{Name: "level", Value: 1}},
		Eval:       func(_ float64, p []float64) float64 { return p[0] },
	})
	r.Register(functions.Definition{
		Name: "scaled",
		Parameters: []functions.ParameterDefinition{
			{Name: "k", Value: 1, Min: &zero, Max: &ten},
			{Name: "offset", Value: 0, Fixed: true},
		},
		Eval: func(x float64, p []float64) float64 { return p[0]*x + p[1] },
	})
	return r
}
