package parser

import (
	"context"
	"regexp"
	"strings"

	"github.com/specialistvlad/skymodel/internal/ctxlog"
	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/model"
	"github.com/specialistvlad/skymodel/internal/nodeid"
	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/source"
)

// IndependentVariableTag marks top-level independent variable entries.
const IndependentVariableTag = "IndependentVariable"

var (
	variableKey = regexp.MustCompile(`^\s*(\S+?)\s*\(\s*` + IndependentVariableTag + `\s*\)\s*$`)
	sourceKey   = regexp.MustCompile(`^\s*(\S+?)\s*\(\s*([^()]*?)\s*\)\s*$`)
	// looseSourceKey also accepts whitespace in the name, for error reporting.
	looseSourceKey = regexp.MustCompile(`^\s*(.+?)\s*\(\s*([^()]*?)\s*\)\s*$`)
)

// Parser builds models from decoded documents. It holds no state between
// calls.
type Parser struct {
	catalog functions.Catalog
}

// New creates a parser resolving function names through catalog.
func New(catalog functions.Catalog) *Parser {
	return &Parser{catalog: catalog}
}

// Stats summarizes a parsed model.
type Stats struct {
	Sources   int
	Variables int
	Links     int
}

// Parse builds and links the model described by doc.
func (p *Parser) Parse(ctx context.Context, doc *document.Map) (*model.Model, error) {
	m, _, err := p.parse(ctx, doc)
	return m, err
}

func (p *Parser) parse(ctx context.Context, doc *document.Map) (*model.Model, Stats, error) {
	logger := ctxlog.FromContext(ctx)
	var stats Stats

	m, err := model.New()
	if err != nil {
		return nil, stats, err
	}

	logger.Debug("Pass 1: building model tree.", "entries", doc.Len())
	var links []link
	for _, key := range doc.Keys() {
		body, _ := doc.Get(key)

		if match := variableKey.FindStringSubmatch(key); match != nil {
			v, err := parseIndependentVariable(match[1], body)
			if err != nil {
				return nil, stats, err
			}
			if err := m.AddIndependentVariable(v); err != nil {
				return nil, stats, &SyntaxError{Kind: kindOf(err), Detail: "cannot add independent variable '" + v.Name() + "'", Err: err}
			}
			stats.Variables++
			continue
		}

		name, kind, err := splitSourceKey(key)
		if err != nil {
			return nil, stats, err
		}
		src, found, err := p.parseSource(ctx, name, kind, body)
		if err != nil {
			return nil, stats, err
		}
		if err := m.AddSource(src); err != nil {
			return nil, stats, &SyntaxError{Kind: kindOf(err), Source: name, Detail: "cannot add source", Err: err}
		}
		links = append(links, found...)
		stats.Sources++
	}

	logger.Debug("Pass 2: resolving links.", "links", len(links))
	if err := resolveLinks(ctx, m, links); err != nil {
		return nil, stats, err
	}
	for _, l := range links {
		if l.addressable {
			stats.Links++
		}
	}

	logger.Info("Model parsed.", "sources", stats.Sources, "independent_variables", stats.Variables, "links", stats.Links)
	return m, stats, nil
}

// splitSourceKey splits "<name> (<kind>)" and validates the kind.
func splitSourceKey(key string) (string, source.Kind, error) {
	match := sourceKey.FindStringSubmatch(key)
	if match == nil {
		if loose := looseSourceKey.FindStringSubmatch(key); loose != nil {
			if _, err := source.ParseKind(loose[2]); err == nil || loose[2] == IndependentVariableTag {
				return "", "", &SyntaxError{
					Kind:   ErrInvalidValue,
					Source: loose[1],
					Detail: "source names may not contain whitespace",
					Err:    nodeid.ErrInvalidName,
				}
			}
		}
		name, _, _ := strings.Cut(key, "(")
		name = strings.TrimSpace(name)
		return "", "", &SyntaxError{
			Kind:   ErrUnknownSourceKind,
			Source: name,
			Detail: "entry needs a kind tag, e.g. '" + name + " (point source)'",
		}
	}
	kind, err := source.ParseKind(match[2])
	if err != nil {
		return "", "", &SyntaxError{Kind: ErrUnknownSourceKind, Source: match[1], Err: err}
	}
	return match[1], kind, nil
}

// parseIndependentVariable reads {value, min?, max?, delta?, fix?, free?, unit?}.
func parseIndependentVariable(name string, body any) (*parameter.IndependentVariable, error) {
	sc := scope{}
	def, ok := body.(*document.Map)
	if !ok {
		return nil, sc.errorf(ErrMalformedSection, name, nil, "independent variable must be a mapping, got %s", document.Describe(body))
	}
	rawValue, ok := def.Get(keyValue)
	if !ok {
		return nil, sc.errorf(ErrMissingValue, name, nil, "the '%s' key is required", keyValue)
	}
	value, err := document.Number(rawValue)
	if err != nil {
		return nil, sc.errorf(ErrInvalidValue, name, err, "")
	}
	update, err := parseUpdate(def)
	if err != nil {
		return nil, sc.errorf(ErrInvalidValue, name, err, "")
	}

	v, err := parameter.NewIndependentVariable(name, 0)
	if err != nil {
		return nil, sc.errorf(kindOf(err), name, err, "")
	}
	update.Value = &value
	if err := v.Apply(update); err != nil {
		return nil, sc.errorf(ErrInvalidValue, name, err, "")
	}
	return v, nil
}
