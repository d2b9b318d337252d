package functions

import "math"

func bound(v float64) *float64 { return &v }

// Builtin returns a registry with the standard spectral and spatial shapes.
func Builtin() *Registry {
	r := NewRegistry()

	r.Register(Definition{
		Name:        "identity",
		Description: "f(x) = x",
		Eval:        func(x float64, _ []float64) float64 { return x },
	})

	r.Register(Definition{
		Name:        "constant",
		Description: "f(x) = k",
		Parameters: []ParameterDefinition{
			{Name: "k", Value: 1, Delta: 0.1, Description: "constant value"},
		},
		Eval: func(_ float64, p []float64) float64 { return p[0] },
	})

	r.Register(Definition{
		Name:        "line",
		Description: "f(x) = a + b * x",
		Parameters: []ParameterDefinition{
			{Name: "a", Value: 0, Delta: 0.1, Description: "intercept"},
			{Name: "b", Value: 1, Delta: 0.1, Description: "slope"},
		},
		Eval: func(x float64, p []float64) float64 { return p[0] + p[1]*x },
	})

	r.Register(Definition{
		Name:        "powerlaw",
		Description: "f(x) = 10^logK * (x / piv)^index",
		Parameters: []ParameterDefinition{
			{Name: "logK", Value: 0, Min: bound(-40), Max: bound(40), Delta: 0.1, Description: "log10 of the normalization"},
			{Name: "index", Value: -2, Min: bound(-10), Max: bound(10), Delta: 0.1, Description: "photon index"},
			{Name: "piv", Value: 1, Min: bound(0), Delta: 0.1, Fixed: true, Description: "pivot energy"},
		},
		Eval: func(x float64, p []float64) float64 {
			return math.Pow(10, p[0]) * math.Pow(x/p[2], p[1])
		},
	})

	r.Register(Definition{
		Name:        "cutoff_powerlaw",
		Description: "f(x) = 10^logK * (x / piv)^index * exp(-x / xc)",
		Parameters: []ParameterDefinition{
			{Name: "logK", Value: 0, Min: bound(-40), Max: bound(40), Delta: 0.1, Description: "log10 of the normalization"},
			{Name: "index", Value: -2, Min: bound(-10), Max: bound(10), Delta: 0.1, Description: "photon index"},
			{Name: "piv", Value: 1, Min: bound(0), Delta: 0.1, Fixed: true, Description: "pivot energy"},
			{Name: "xc", Value: 100, Min: bound(0), Delta: 1, Description: "cutoff energy"},
		},
		Eval: func(x float64, p []float64) float64 {
			return math.Pow(10, p[0]) * math.Pow(x/p[2], p[1]) * math.Exp(-x/p[3])
		},
	})

	r.Register(Definition{
		Name:        "gaussian",
		Description: "normal distribution with integral F",
		Parameters: []ParameterDefinition{
			{Name: "F", Value: 1, Delta: 0.1, Description: "integral"},
			{Name: "mu", Value: 0, Delta: 0.1, Description: "centroid"},
			{Name: "sigma", Value: 1, Min: bound(1e-12), Delta: 0.1, Description: "standard deviation"},
		},
		Eval: func(x float64, p []float64) float64 {
			d := (x - p[1]) / p[2]
			return p[0] / (p[2] * math.Sqrt(2*math.Pi)) * math.Exp(-0.5*d*d)
		},
	})

	// Spatial shapes take the angular distance from (lon0, lat0) in degrees.
	r.Register(Definition{
		Name:        "gaussian_on_sphere",
		Description: "2D gaussian brightness profile, x is the angular distance in degrees",
		Parameters: []ParameterDefinition{
			{Name: "lon0", Value: 0, Min: bound(0), Max: bound(360), Delta: 0.1, Fixed: true, Description: "centre longitude"},
			{Name: "lat0", Value: 0, Min: bound(-90), Max: bound(90), Delta: 0.1, Fixed: true, Description: "centre latitude"},
			{Name: "sigma", Value: 1, Min: bound(1e-6), Max: bound(20), Delta: 0.1, Description: "width in degrees"},
		},
		Eval: func(x float64, p []float64) float64 {
			s2 := p[2] * p[2]
			return math.Exp(-x*x/(2*s2)) / (2 * math.Pi * s2)
		},
	})

	r.Register(Definition{
		Name:        "disk_on_sphere",
		Description: "uniform disk, x is the angular distance in degrees",
		Parameters: []ParameterDefinition{
			{Name: "lon0", Value: 0, Min: bound(0), Max: bound(360), Delta: 0.1, Fixed: true, Description: "centre longitude"},
			{Name: "lat0", Value: 0, Min: bound(-90), Max: bound(90), Delta: 0.1, Fixed: true, Description: "centre latitude"},
			{Name: "radius", Value: 1, Min: bound(0), Max: bound(20), Delta: 0.1, Description: "radius in degrees"},
		},
		Eval: func(x float64, p []float64) float64 {
			if x > p[2] || p[2] == 0 {
				return 0
			}
			return 1 / (math.Pi * p[2] * p[2])
		},
	})

	return r
}
