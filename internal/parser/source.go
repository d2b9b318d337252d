package parser

import (
	"context"
	"errors"

	"github.com/specialistvlad/skymodel/internal/ctxlog"
	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/specialistvlad/skymodel/internal/nodeid"
	"github.com/specialistvlad/skymodel/internal/polarization"
	"github.com/specialistvlad/skymodel/internal/sky"
	"github.com/specialistvlad/skymodel/internal/source"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// Section keys of a source definition.
const (
	keyPosition     = "position"
	keySpectrum     = "spectrum"
	keySpatialShape = source.SpatialShapeName
	keyPolarization = polarization.NodeName
	keyShape        = source.ShapeName
	keyEquinox      = "equinox"
)

// parseSource dispatches on the source kind.
func (p *Parser) parseSource(ctx context.Context, name string, kind source.Kind, body any) (source.Source, []link, error) {
	sc := scope{source: name}
	def, ok := body.(*document.Map)
	if !ok {
		return nil, nil, sc.errorf(ErrMalformedSection, "", nil, "source definition must be a mapping, got %s", document.Describe(body))
	}

	ctxlog.FromContext(ctx).Debug("Parsing source.", "source", name, "kind", kind)

	switch kind {
	case source.PointSource:
		return p.parsePointSource(ctx, sc, def)
	case source.ExtendedSource:
		return p.parseExtendedSource(ctx, sc, def)
	}
	return nil, nil, sc.errorf(ErrUnknownSourceKind, "", nil, "'%s'", kind)
}

func (p *Parser) parsePointSource(ctx context.Context, sc scope, def *document.Map) (source.Source, []link, error) {
	rawPosition, ok := def.Get(keyPosition)
	if !ok {
		return nil, nil, sc.errorf(ErrMissingSection, "", nil, "point source '%s' requires a '%s' section", sc.source, keyPosition)
	}
	position, err := parsePosition(sc, rawPosition)
	if err != nil {
		return nil, nil, err
	}

	components, links, err := p.parseSpectrum(ctx, sc, def)
	if err != nil {
		return nil, nil, err
	}

	ps, err := source.NewPoint(sc.source, position, components...)
	if err != nil {
		return nil, nil, sc.errorf(kindOf(err), "", err, "cannot build point source")
	}
	return ps, links, nil
}

func (p *Parser) parseExtendedSource(ctx context.Context, sc scope, def *document.Map) (source.Source, []link, error) {
	rawShape, ok := def.Get(keySpatialShape)
	if !ok {
		return nil, nil, sc.errorf(ErrMissingSection, "", nil, "extended source '%s' requires a '%s' section", sc.source, keySpatialShape)
	}
	functionName, body, err := single(rawShape)
	if err != nil {
		return nil, nil, sc.errorf(ErrMalformedSection, "", err, "'%s' must name exactly one function", keySpatialShape)
	}
	spatial, spatialLinks, err := p.parseShape(ctx, sc, functionName, body, nodeid.Join(sc.source, keySpatialShape))
	if err != nil {
		return nil, nil, err
	}

	components, links, err := p.parseSpectrum(ctx, sc, def)
	if err != nil {
		return nil, nil, err
	}

	es, err := source.NewExtended(sc.source, spatial, components...)
	if err != nil {
		return nil, nil, sc.errorf(kindOf(err), "", err, "cannot build extended source")
	}
	return es, append(spatialLinks, links...), nil
}

// parsePosition accepts exactly one of the {ra, dec} and {l, b} pairs.
func parsePosition(sc scope, raw any) (*sky.Position, error) {
	def, ok := raw.(*document.Map)
	if !ok {
		return nil, sc.errorf(ErrMalformedSection, "", nil, "'%s' must be a mapping, got %s", keyPosition, document.Describe(raw))
	}

	equatorial := def.Has("ra") || def.Has("dec")
	galactic := def.Has("l") || def.Has("b")
	var lonKey, latKey string
	switch {
	case equatorial && galactic:
		return nil, sc.errorf(ErrInvalidCoordinates, "", nil, "specify either 'ra' and 'dec', or 'l' and 'b', not both")
	case equatorial:
		lonKey, latKey = "ra", "dec"
	case galactic:
		lonKey, latKey = "l", "b"
	default:
		return nil, sc.errorf(ErrInvalidCoordinates, "", nil, "specify either 'ra' and 'dec', or 'l' and 'b'")
	}
	if !def.Has(lonKey) || !def.Has(latKey) {
		return nil, sc.errorf(ErrInvalidCoordinates, "", nil, "'%s' and '%s' must be given together", lonKey, latKey)
	}

	lon, err := coordinate(sc, def, lonKey)
	if err != nil {
		return nil, err
	}
	lat, err := coordinate(sc, def, latKey)
	if err != nil {
		return nil, err
	}

	equinox := ""
	if raw, ok := def.Get(keyEquinox); ok {
		equinox, err = document.String(raw)
		if err != nil {
			return nil, sc.errorf(ErrInvalidValue, keyEquinox, err, "")
		}
	}

	var position *sky.Position
	if equatorial {
		position, err = sky.NewEquatorial(lon, lat, equinox)
	} else {
		position, err = sky.NewGalactic(lon, lat, equinox)
	}
	if err != nil {
		return nil, sc.errorf(ErrInvalidValue, "", err, "invalid '%s'", keyPosition)
	}
	return position, nil
}

func coordinate(sc scope, def *document.Map, key string) (float64, error) {
	raw, _ := def.Get(key)
	m, ok := raw.(*document.Map)
	if !ok {
		return 0, sc.errorf(ErrInvalidValue, key, nil, "coordinate must be a mapping with a '%s', got %s", keyValue, document.Describe(raw))
	}
	rawValue, ok := m.Get(keyValue)
	if !ok {
		return 0, sc.errorf(ErrMissingValue, key, nil, "the '%s' key is required", keyValue)
	}
	v, err := document.Number(rawValue)
	if err != nil {
		return 0, sc.errorf(ErrInvalidValue, key, err, "")
	}
	return v, nil
}

// parseSpectrum parses every component of the required spectrum section.
func (p *Parser) parseSpectrum(ctx context.Context, sc scope, def *document.Map) ([]*source.SpectralComponent, []link, error) {
	raw, ok := def.Get(keySpectrum)
	if !ok {
		return nil, nil, sc.errorf(ErrMissingSection, "", nil, "source '%s' requires a '%s' section", sc.source, keySpectrum)
	}
	spectrum, ok := raw.(*document.Map)
	if !ok {
		return nil, nil, sc.errorf(ErrMalformedSection, "", nil, "'%s' must be a mapping, got %s", keySpectrum, document.Describe(raw))
	}
	if spectrum.Len() == 0 {
		return nil, nil, sc.errorf(ErrMalformedSection, "", nil, "'%s' has no components", keySpectrum)
	}

	var (
		components []*source.SpectralComponent
		links      []link
	)
	for _, name := range spectrum.Keys() {
		body, _ := spectrum.Get(name)
		c, found, err := p.parseComponent(ctx, scope{source: sc.source, component: name}, body)
		if err != nil {
			return nil, nil, err
		}
		components = append(components, c)
		links = append(links, found...)
	}
	return components, links, nil
}

// parseComponent reads a component holding exactly one shape, either as its
// only key besides "polarization" or wrapped in an explicit "shape" key.
func (p *Parser) parseComponent(ctx context.Context, sc scope, body any) (*source.SpectralComponent, []link, error) {
	def, ok := body.(*document.Map)
	if !ok {
		return nil, nil, sc.errorf(ErrMalformedComponent, "", nil, "component must be a mapping, got %s", document.Describe(body))
	}

	var shapeKeys []string
	for _, k := range def.Keys() {
		if k != keyPolarization {
			shapeKeys = append(shapeKeys, k)
		}
	}
	if len(shapeKeys) != 1 {
		return nil, nil, sc.errorf(ErrMalformedComponent, "", nil, "expected exactly one shape, found %d", len(shapeKeys))
	}

	functionName := shapeKeys[0]
	shapeBody, _ := def.Get(functionName)
	if functionName == keyShape {
		var err error
		functionName, shapeBody, err = single(shapeBody)
		if err != nil {
			return nil, nil, sc.errorf(ErrMalformedComponent, "", err, "'%s' must name exactly one function", keyShape)
		}
	}

	base := nodeid.Join(sc.source, sc.component)
	shape, links, err := p.parseShape(ctx, sc, functionName, shapeBody, nodeid.Join(base, keyShape))
	if err != nil {
		return nil, nil, err
	}

	pol := polarization.None()
	if raw, ok := def.Get(keyPolarization); ok {
		var polLinks []link
		pol, polLinks, err = p.parsePolarization(ctx, sc, raw, nodeid.Join(base, keyPolarization))
		if err != nil {
			return nil, nil, err
		}
		links = append(links, polLinks...)
	}

	c, err := source.NewSpectralComponent(sc.component, shape, pol)
	if err != nil {
		return nil, nil, sc.errorf(kindOf(err), "", err, "cannot build component")
	}
	return c, links, nil
}

// parsePolarization reads {<kind>: {<param>: {...}}}. Parameters follow the
// same rules as shape parameters.
func (p *Parser) parsePolarization(ctx context.Context, sc scope, raw any, base string) (*polarization.Polarization, []link, error) {
	kindName, body, err := single(raw)
	if err != nil {
		return nil, nil, sc.errorf(ErrMalformedSection, "", err, "'%s' must name exactly one kind", keyPolarization)
	}
	pol, err := polarization.New(polarization.Kind(kindName))
	if err != nil {
		return nil, nil, sc.errorf(ErrInvalidValue, "", err, "valid kinds are %v", polarization.Kinds())
	}
	defs, err := optionalMap(body)
	if err != nil {
		return nil, nil, sc.errorf(ErrMalformedSection, "", err, "parameters of polarization '%s'", kindName)
	}

	sc.function = keyPolarization + " " + kindName
	var links []link
	for _, param := range pol.Parameters() {
		def, ok := defs.Get(param.Name())
		if !ok {
			return nil, nil, sc.errorf(ErrMissingValue, param.Name(), nil, "no definition for the parameter")
		}
		found, err := p.parseParameter(ctx, sc, param, def, nodeid.Join(base, param.Name()))
		if err != nil {
			return nil, nil, err
		}
		links = append(links, found...)
	}
	return pol, links, nil
}

// kindOf classifies errors from entity constructors.
func kindOf(err error) error {
	for _, kind := range []error{tree.ErrDuplicateName, tree.ErrReservedName} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	if errors.Is(err, nodeid.ErrInvalidName) {
		return ErrInvalidValue
	}
	return ErrMalformedSection
}
