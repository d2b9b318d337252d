package document

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// DecodeJSON decodes a JSON document whose top level is an object. Parse
// errors carry the file position reported by the HCL JSON parser.
func DecodeJSON(name string, data []byte) (*Map, error) {
	file, diags := hclparse.NewParser().ParseJSON(data, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrDocumentSyntax, diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrDocumentSyntax, diags)
	}

	// JustAttributes loses the source order.
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	m := NewMap()
	for _, attr := range ordered {
		v, err := jsonValue(attr.Expr)
		if err != nil {
			return nil, err
		}
		if err := m.Set(attr.Name, v); err != nil {
			return nil, fmt.Errorf("%s: %w", attr.NameRange, err)
		}
	}
	return m, nil
}

func jsonValue(expr hcl.Expression) (any, error) {
	// Without an evaluation context strings are taken literally.
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrDocumentSyntax, diags)
	}

	ty := val.Type()
	switch {
	case ty.IsObjectType():
		pairs, diags := hcl.ExprMap(expr)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %w", ErrDocumentSyntax, diags)
		}
		m := NewMap()
		for _, pair := range pairs {
			key, diags := pair.Key.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%w: %w", ErrDocumentSyntax, diags)
			}
			v, err := jsonValue(pair.Value)
			if err != nil {
				return nil, err
			}
			if err := m.Set(key.AsString(), v); err != nil {
				return nil, fmt.Errorf("%s: %w", pair.Key.Range(), err)
			}
		}
		return m, nil
	case ty.IsTupleType():
		exprs, diags := hcl.ExprList(expr)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %w", ErrDocumentSyntax, diags)
		}
		list := make([]any, 0, len(exprs))
		for _, e := range exprs {
			v, err := jsonValue(e)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case val.IsNull():
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return val, nil
}
