package parser

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/specialistvlad/skymodel/internal/ctxlog"
	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/nodeid"
	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/zclconf/go-cty/cty"
)

// Keys of a parameter definition.
const (
	keyValue = "value"
	keyMin   = "min"
	keyMax   = "max"
	keyDelta = "delta"
	keyFix   = "fix"
	keyFree  = "free"
	keyUnit  = "unit"
	keyLaw   = "law"
)

var linkPattern = regexp.MustCompile(`^\s*f\(\s*([^()\s]+)\s*\)\s*$`)

// parseShape builds one function instance from the catalog and applies the
// document's parameter definitions to it. base is the dotted path the
// function will live under once attached, or empty for a law, which is never
// part of the tree. It returns the links found, including those of nested
// laws, without attaching anything.
func (p *Parser) parseShape(ctx context.Context, sc scope, functionName string, body any, base string) (*functions.Function, []link, error) {
	sc.function = functionName

	fn, err := p.catalog.Lookup(functionName)
	if err != nil {
		if errors.Is(err, functions.ErrUnknownFunction) {
			return nil, nil, sc.errorf(ErrUnknownFunction, "", nil, "'%s' is not a known function", functionName)
		}
		return nil, nil, sc.errorf(ErrInvalidValue, "", err, "cannot instantiate '%s'", functionName)
	}

	defs, err := optionalMap(body)
	if err != nil {
		return nil, nil, sc.errorf(ErrMalformedSection, "", err, "parameters of '%s'", functionName)
	}

	ctxlog.FromContext(ctx).Debug("Parsing shape.", "function", functionName, "base", base)

	var links []link
	// Iterate the catalog's parameters so a missing definition is reported.
	for _, param := range fn.Parameters() {
		def, ok := defs.Get(param.Name())
		if !ok {
			return nil, nil, sc.errorf(ErrMissingValue, param.Name(), nil, "no definition for the parameter")
		}
		path := ""
		if base != "" {
			path = nodeid.Join(base, param.Name())
		}
		found, err := p.parseParameter(ctx, sc, param, def, path)
		if err != nil {
			return nil, nil, err
		}
		links = append(links, found...)
	}
	return fn, links, nil
}

// parseParameter applies one parameter definition. A value of the form
// f(<path>) leaves the value at its default and returns a link instead.
func (p *Parser) parseParameter(ctx context.Context, sc scope, param *parameter.Parameter, raw any, path string) ([]link, error) {
	name := param.Name()
	def, ok := raw.(*document.Map)
	if !ok {
		return nil, sc.errorf(ErrInvalidValue, name, nil, "definition must be a mapping, got %s", document.Describe(raw))
	}

	update, err := parseUpdate(def)
	if err != nil {
		return nil, sc.errorf(ErrInvalidValue, name, err, "")
	}

	rawValue, ok := def.Get(keyValue)
	if !ok {
		return nil, sc.errorf(ErrMissingValue, name, nil, "the '%s' key is required", keyValue)
	}

	variable, linked := linkTarget(rawValue)
	if !linked {
		v, err := document.Number(rawValue)
		if err != nil {
			return nil, sc.errorf(ErrInvalidValue, name, err, "")
		}
		update.Value = &v
		if err := param.Apply(update); err != nil {
			return nil, sc.errorf(ErrInvalidValue, name, err, "")
		}
		return nil, nil
	}

	if err := param.Apply(update); err != nil {
		return nil, sc.errorf(ErrInvalidValue, name, err, "")
	}

	rawLaw, ok := def.Get(keyLaw)
	if !ok {
		return nil, sc.errorf(ErrMissingLaw, name, nil, "linked to '%s' without a '%s'", variable, keyLaw)
	}
	lawName, lawBody, err := single(rawLaw)
	if err != nil {
		return nil, sc.errorf(ErrMalformedSection, name, err, "the '%s' of a parameter linked to '%s'", keyLaw, variable)
	}
	law, nested, err := p.parseShape(ctx, sc, lawName, lawBody, "")
	if err != nil {
		return nil, err
	}

	target := path
	if target == "" {
		target = sc.function + "." + name
	}
	l := link{
		target:      target,
		addressable: path != "",
		param:       param,
		law:         law,
		variable:    variable,
		scope:       sc,
	}
	return append(nested, l), nil
}

// parseUpdate reads the optional keys of a parameter definition.
func parseUpdate(def *document.Map) (parameter.Update, error) {
	var u parameter.Update
	numbers := []struct {
		key string
		dst **float64
	}{
		{keyMin, &u.Min},
		{keyMax, &u.Max},
		{keyDelta, &u.Delta},
	}
	for _, n := range numbers {
		raw, ok := def.Get(n.key)
		if !ok {
			continue
		}
		v, err := document.Number(raw)
		if err != nil {
			return u, fmt.Errorf("'%s': %w", n.key, err)
		}
		*n.dst = &v
	}

	bools := []struct {
		key string
		dst **bool
	}{
		{keyFix, &u.Fix},
		{keyFree, &u.Free},
	}
	for _, b := range bools {
		raw, ok := def.Get(b.key)
		if !ok {
			continue
		}
		v, err := document.Bool(raw)
		if err != nil {
			return u, fmt.Errorf("'%s': %w", b.key, err)
		}
		*b.dst = &v
	}

	if raw, ok := def.Get(keyUnit); ok {
		unit, err := document.String(raw)
		if err != nil {
			return u, fmt.Errorf("'%s': %w", keyUnit, err)
		}
		u.Unit = &unit
	}
	return u, nil
}

// linkTarget reports whether v is a link expression and returns its path.
func linkTarget(v any) (string, bool) {
	val, ok := v.(cty.Value)
	if !ok || val.IsNull() || val.Type() != cty.String {
		return "", false
	}
	m := linkPattern.FindStringSubmatch(val.AsString())
	if m == nil {
		return "", false
	}
	return m[1], true
}

// optionalMap treats a missing or null body as an empty mapping.
func optionalMap(v any) (*document.Map, error) {
	switch t := v.(type) {
	case nil:
		return document.NewMap(), nil
	case *document.Map:
		return t, nil
	case cty.Value:
		if t.IsNull() {
			return document.NewMap(), nil
		}
	}
	return nil, fmt.Errorf("expected a mapping, got %s", document.Describe(v))
}

// single returns the only key of a mapping and its value.
func single(v any) (string, any, error) {
	m, ok := v.(*document.Map)
	if !ok {
		return "", nil, fmt.Errorf("expected a mapping with a single key, got %s", document.Describe(v))
	}
	if m.Len() != 1 {
		return "", nil, fmt.Errorf("expected a single key, got %d", m.Len())
	}
	key := m.Keys()[0]
	value, _ := m.Get(key)
	return key, value, nil
}
