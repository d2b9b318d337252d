package parameter

import (
	"errors"
	"fmt"
)

// AddAuxiliaryVariable links the parameter: from now on Value returns
// law.Evaluate(variable.Value()) and direct writes fail.
func (p *Parameter) AddAuxiliaryVariable(variable Valuer, law Law) error {
	if variable == nil || law == nil {
		return errors.New("auxiliary variable and law are both required")
	}
	if v, ok := variable.(interface{ base() *Parameter }); ok && v.base() == p {
		return fmt.Errorf("parameter '%s': %w", p.Name(), ErrSelfLink)
	}
	p.aux = &link{variable: variable, law: law}
	return nil
}

// RemoveAuxiliaryVariable unlinks the parameter. The last computed value
// becomes the stored value, clamped into the bounds.
func (p *Parameter) RemoveAuxiliaryVariable() {
	if p.aux == nil {
		return
	}
	v := p.Value()
	p.aux = nil
	if v < p.min {
		v = p.min
	}
	if v > p.max {
		v = p.max
	}
	p.value = v
}

// IsLinked reports whether the value is computed from an auxiliary variable.
func (p *Parameter) IsLinked() bool { return p.aux != nil }

// AuxiliaryVariable returns the link, if any.
func (p *Parameter) AuxiliaryVariable() (Valuer, Law, bool) {
	if p.aux == nil {
		return nil, nil, false
	}
	return p.aux.variable, p.aux.law, true
}

func (p *Parameter) base() *Parameter { return p }
