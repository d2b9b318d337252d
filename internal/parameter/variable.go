package parameter

// IndependentVariable is a free-standing scalar, such as time, that other
// parameters can be linked to. It is fixed by default.
type IndependentVariable struct {
	Parameter
}

// NewIndependentVariable creates an independent variable. Tree lookups
// return the variable itself rather than its embedded Parameter.
func NewIndependentVariable(name string, value float64, opts ...Option) (*IndependentVariable, error) {
	v := &IndependentVariable{}
	if err := v.setup(name, v, value, false, opts); err != nil {
		return nil, err
	}
	return v, nil
}
