// Package polarization provides the polarization descriptors attached to
// spectral components. They are leaves of the model tree with no behavior
// beyond carrying their parameters.
package polarization

import (
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// ErrUnknownPolarization is returned for polarization kinds that do not exist.
var ErrUnknownPolarization = errors.New("unknown polarization")

// Kind names a polarization descriptor.
type Kind string

const (
	KindNone     Kind = "none"
	KindLinear   Kind = "linear"
	KindCircular Kind = "circular"
	KindStokes   Kind = "stokes"
)

// NodeName is the name a polarization takes in the model tree.
const NodeName = "polarization"

type paramDef struct {
	name   string
	value  float64
	lo, hi float64
	unit   string
}

var kinds = map[Kind][]paramDef{
	KindNone: nil,
	KindLinear: {
		{name: "degree", value: 0, lo: 0, hi: 100, unit: "%"},
		{name: "angle", value: 0, lo: 0, hi: 180, unit: "deg"},
	},
	KindCircular: {
		{name: "degree", value: 0, lo: -100, hi: 100, unit: "%"},
	},
	KindStokes: {
		{name: "I", value: 1, lo: 0, hi: 1},
		{name: "Q", value: 0, lo: -1, hi: 1},
		{name: "U", value: 0, lo: -1, hi: 1},
		{name: "V", value: 0, lo: -1, hi: 1},
	},
}

// Kinds returns the known kinds, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Polarization is a descriptor with its parameters as tree children.
type Polarization struct {
	tree.Node

	kind   Kind
	params []*parameter.Parameter
}

// New creates a descriptor of the given kind with default parameter values.
func New(kind Kind) (*Polarization, error) {
	defs, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownPolarization, kind)
	}
	pol := &Polarization{kind: kind}
	if err := pol.Init(NodeName, pol); err != nil {
		return nil, err
	}
	for _, d := range defs {
		p, err := parameter.New(d.name, d.value, parameter.WithBounds(d.lo, d.hi), parameter.WithUnit(d.unit), parameter.WithFree(false))
		if err != nil {
			return nil, fmt.Errorf("%s polarization: %w", kind, err)
		}
		if err := pol.AddChild(p); err != nil {
			return nil, err
		}
		pol.params = append(pol.params, p)
	}
	return pol, nil
}

// None returns the default, parameterless descriptor.
func None() *Polarization {
	pol, err := New(KindNone)
	if err != nil {
		panic(err)
	}
	return pol
}

// Kind returns the descriptor kind.
func (p *Polarization) Kind() Kind { return p.kind }

// Parameters returns the parameters in declaration order.
func (p *Polarization) Parameters() []*parameter.Parameter {
	out := make([]*parameter.Parameter, len(p.params))
	copy(out, p.params)
	return out
}
