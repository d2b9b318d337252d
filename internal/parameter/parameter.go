package parameter

import (
	"fmt"
	"math"

	"github.com/specialistvlad/skymodel/internal/tree"
)

// Valuer is anything exposing a current numeric value.
type Valuer interface {
	Value() float64
}

// Law maps the value of an auxiliary variable to a parameter value.
type Law interface {
	Name() string
	Evaluate(x float64) float64
}

// link is the auxiliary variable attached to a parameter.
type link struct {
	variable Valuer
	law      Law
}

// Parameter is a named, bounded scalar. Bounds are optional on each side.
type Parameter struct {
	tree.Node

	value       float64
	min         float64
	max         float64
	delta       float64
	free        bool
	unit        string
	description string

	aux *link
}

// Option configures a Parameter at construction.
type Option func(*Parameter)

// WithBounds sets both bounds.
func WithBounds(lo, hi float64) Option {
	return func(p *Parameter) {
		p.min = lo
		p.max = hi
	}
}

// WithMin sets the lower bound.
func WithMin(lo float64) Option {
	return func(p *Parameter) { p.min = lo }
}

// WithMax sets the upper bound.
func WithMax(hi float64) Option {
	return func(p *Parameter) { p.max = hi }
}

// WithDelta sets the step size hint.
func WithDelta(delta float64) Option {
	return func(p *Parameter) { p.delta = delta }
}

// WithUnit sets the unit tag.
func WithUnit(unit string) Option {
	return func(p *Parameter) { p.unit = unit }
}

// WithFree sets the initial free state.
func WithFree(free bool) Option {
	return func(p *Parameter) { p.free = free }
}

// WithDescription attaches a human readable description.
func WithDescription(desc string) Option {
	return func(p *Parameter) { p.description = desc }
}

// New creates a free parameter with no bounds unless options say otherwise.
func New(name string, value float64, opts ...Option) (*Parameter, error) {
	p := &Parameter{}
	if err := p.setup(name, p, value, true, opts); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parameter) setup(name string, self tree.Element, value float64, free bool, opts []Option) error {
	if err := p.Init(name, self); err != nil {
		return err
	}
	p.value = value
	p.min = math.Inf(-1)
	p.max = math.Inf(1)
	p.free = free
	for _, opt := range opts {
		opt(p)
	}
	if p.min > p.max {
		return fmt.Errorf("parameter '%s': %w: min %g > max %g", name, ErrRange, p.min, p.max)
	}
	if err := p.checkBounds(value, p.min, p.max); err != nil {
		return err
	}
	return nil
}

func (p *Parameter) checkBounds(v, lo, hi float64) error {
	if math.IsNaN(v) {
		return fmt.Errorf("parameter '%s': %w: value is NaN", p.Name(), ErrBounds)
	}
	if v < lo || v > hi {
		return fmt.Errorf("parameter '%s': %w: %g not in [%g, %g]", p.Name(), ErrBounds, v, lo, hi)
	}
	return nil
}

// Value returns the stored value, or the law evaluated at the auxiliary
// variable when the parameter is linked.
func (p *Parameter) Value() float64 {
	if p.aux != nil {
		return p.aux.law.Evaluate(p.aux.variable.Value())
	}
	return p.value
}

// SetValue writes a new value. Out of bounds values leave the parameter untouched.
func (p *Parameter) SetValue(v float64) error {
	if p.aux != nil {
		return fmt.Errorf("parameter '%s': %w: its value is computed by law '%s'", p.Name(), ErrLinkedParameter, p.aux.law.Name())
	}
	if err := p.checkBounds(v, p.min, p.max); err != nil {
		return err
	}
	p.value = v
	return nil
}

// MinValue returns the lower bound and whether it is set.
func (p *Parameter) MinValue() (float64, bool) {
	return p.min, !math.IsInf(p.min, -1)
}

// MaxValue returns the upper bound and whether it is set.
func (p *Parameter) MaxValue() (float64, bool) {
	return p.max, !math.IsInf(p.max, 1)
}

// SetBounds replaces both bounds.
func (p *Parameter) SetBounds(lo, hi float64) error {
	if lo > hi {
		return fmt.Errorf("parameter '%s': %w: min %g > max %g", p.Name(), ErrRange, lo, hi)
	}
	if p.aux == nil {
		if err := p.checkBounds(p.value, lo, hi); err != nil {
			return err
		}
	}
	p.min, p.max = lo, hi
	return nil
}

// SetMinValue replaces the lower bound.
func (p *Parameter) SetMinValue(lo float64) error {
	return p.SetBounds(lo, p.max)
}

// SetMaxValue replaces the upper bound.
func (p *Parameter) SetMaxValue(hi float64) error {
	return p.SetBounds(p.min, hi)
}

// Delta returns the step size hint.
func (p *Parameter) Delta() float64 { return p.delta }

// SetDelta sets the step size hint.
func (p *Parameter) SetDelta(delta float64) { p.delta = delta }

// Unit returns the unit tag.
func (p *Parameter) Unit() string { return p.unit }

// SetUnit sets the unit tag.
func (p *Parameter) SetUnit(unit string) { p.unit = unit }

// Description returns the description.
func (p *Parameter) Description() string { return p.description }

// Free reports whether the parameter is free.
func (p *Parameter) Free() bool { return p.free }

// Fixed reports whether the parameter is fixed.
func (p *Parameter) Fixed() bool { return !p.free }

// SetFree sets the free state.
func (p *Parameter) SetFree(free bool) { p.free = free }

// SetFixed sets the fixed state.
func (p *Parameter) SetFixed(fixed bool) { p.free = !fixed }

// String renders the parameter for humans.
func (p *Parameter) String() string {
	s := fmt.Sprintf("%s = %g", p.Name(), p.Value())
	if p.unit != "" {
		s += " " + p.unit
	}
	if lo, ok := p.MinValue(); ok {
		s += fmt.Sprintf(" min=%g", lo)
	}
	if hi, ok := p.MaxValue(); ok {
		s += fmt.Sprintf(" max=%g", hi)
	}
	if p.free {
		s += " (free)"
	} else {
		s += " (fixed)"
	}
	if p.aux != nil {
		s += fmt.Sprintf(" [linked via %s]", p.aux.law.Name())
	}
	return s
}
