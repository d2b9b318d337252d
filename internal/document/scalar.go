package document

import (
	"fmt"
	"math"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Scalar returns v as a non-null cty scalar.
func Scalar(v any) (cty.Value, error) {
	val, ok := v.(cty.Value)
	if !ok {
		return cty.NilVal, fmt.Errorf("%w: expected a scalar, got %s", ErrType, Describe(v))
	}
	if val.IsNull() {
		return cty.NilVal, fmt.Errorf("%w: expected a scalar, got null", ErrType)
	}
	if !val.Type().IsPrimitiveType() {
		return cty.NilVal, fmt.Errorf("%w: expected a scalar, got %s", ErrType, Describe(v))
	}
	return val, nil
}

// Number converts a scalar to float64. Numeric strings such as "1e-3" are
// accepted.
func Number(v any) (float64, error) {
	val, err := Scalar(v)
	if err != nil {
		return 0, err
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot use %s as a number: %w", ErrType, Describe(v), err)
	}
	var f float64
	if err := gocty.FromCtyValue(num, &f); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrType, err)
	}
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%w: NaN is not a valid number", ErrType)
	}
	return f, nil
}

// Bool converts a scalar to bool. The strings "true" and "false" are accepted.
func Bool(v any) (bool, error) {
	val, err := Scalar(v)
	if err != nil {
		return false, err
	}
	b, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("%w: cannot use %s as a bool: %w", ErrType, Describe(v), err)
	}
	return b.True(), nil
}

// String converts a scalar to its string form.
func String(v any) (string, error) {
	val, err := Scalar(v)
	if err != nil {
		return "", err
	}
	s, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("%w: cannot use %s as a string: %w", ErrType, Describe(v), err)
	}
	return s.AsString(), nil
}

// ToNative converts a document value to plain Go values: map[string]any,
// []any, string, float64, bool or nil.
func ToNative(v any) (any, error) {
	switch t := v.(type) {
	case *Map:
		out := make(map[string]any, t.Len())
		for _, k := range t.keys {
			native, err := ToNative(t.values[k])
			if err != nil {
				return nil, fmt.Errorf("in key '%s': %w", k, err)
			}
			out[k] = native
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			native, err := ToNative(e)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil
	case cty.Value:
		return ctyToNative(t)
	}
	return nil, fmt.Errorf("%w: %T", ErrType, v)
}

func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert cty.Number to float64: %w", err)
		}
		return f, nil
	case cty.Bool:
		return v.True(), nil
	}
	return nil, fmt.Errorf("%w: unsupported cty type %s", ErrType, v.Type().FriendlyName())
}
