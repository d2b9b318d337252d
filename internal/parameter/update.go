package parameter

import (
	"fmt"
	"math"
)

// Update is a set of optional changes applied atomically by Apply. Fields
// are applied in declaration order: Min, Max, Delta, Fix, Free, Unit, Value.
type Update struct {
	Min   *float64
	Max   *float64
	Delta *float64
	Fix   *bool
	Free  *bool
	Unit  *string
	Value *float64
}

// Apply validates the update as a whole and then commits it, so there is
// no transient state where the value sits outside freshly changed bounds.
// With no Value, a stored value left outside the new bounds is clamped.
func (p *Parameter) Apply(u Update) error {
	lo, hi := p.min, p.max
	if u.Min != nil {
		lo = *u.Min
	}
	if u.Max != nil {
		hi = *u.Max
	}
	if lo > hi {
		return fmt.Errorf("parameter '%s': %w: min %g > max %g", p.Name(), ErrRange, lo, hi)
	}

	value := p.value
	if u.Value != nil {
		if p.aux != nil {
			return fmt.Errorf("parameter '%s': %w: its value is computed by law '%s'", p.Name(), ErrLinkedParameter, p.aux.law.Name())
		}
		if err := p.checkBounds(*u.Value, lo, hi); err != nil {
			return err
		}
		value = *u.Value
	} else {
		value = math.Min(math.Max(value, lo), hi)
	}

	free := p.free
	if u.Fix != nil {
		free = !*u.Fix
	}
	if u.Free != nil {
		free = *u.Free
	}

	p.min, p.max = lo, hi
	if u.Delta != nil {
		p.delta = *u.Delta
	}
	p.free = free
	if u.Unit != nil {
		p.unit = *u.Unit
	}
	p.value = value
	return nil
}
