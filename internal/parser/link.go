package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/skymodel/internal/ctxlog"
	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/model"
	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// link is a pending auxiliary-variable link, recorded in the first pass and
// attached in the second.
type link struct {
	// target is the dotted path of the linked parameter. Parameters inside a
	// law are not addressable and are attached through param directly.
	target      string
	addressable bool
	param       *parameter.Parameter
	law         *functions.Function
	variable    string
	scope       scope
}

// resolveLinks attaches every pending link in the order it was recorded.
// A variable that is itself the target of a link is rejected.
func resolveLinks(ctx context.Context, m *model.Model, links []link) error {
	logger := ctxlog.FromContext(ctx)

	targets := make(map[string]struct{}, len(links))
	for _, l := range links {
		if l.addressable {
			targets[l.target] = struct{}{}
		}
	}

	for _, l := range links {
		target := l.param
		if l.addressable {
			resolved, err := m.Parameter(l.target)
			if err != nil {
				return &LinkError{Kind: ErrUnresolvedLink, Target: l.target, Variable: l.variable, Detail: "target not found", Err: err}
			}
			if resolved != l.param {
				return &LinkError{Kind: ErrUnresolvedLink, Target: l.target, Variable: l.variable, Detail: "target resolves to a different parameter"}
			}
			target = resolved
		}

		variable, path, err := resolveVariable(m, l.variable)
		if err != nil {
			kind := ErrUnresolvedLink
			if errors.Is(err, ErrChainedLink) {
				kind = ErrChainedLink
			}
			return &LinkError{Kind: kind, Target: l.target, Variable: l.variable, Err: err}
		}
		if _, chained := targets[path]; chained {
			return &LinkError{Kind: ErrChainedLink, Target: l.target, Variable: l.variable, Detail: "the variable is itself a linked parameter"}
		}

		if err := target.AddAuxiliaryVariable(variable, l.law); err != nil {
			kind := ErrUnresolvedLink
			if errors.Is(err, parameter.ErrSelfLink) {
				kind = ErrChainedLink
			}
			return &LinkError{Kind: kind, Target: l.target, Variable: l.variable, Err: err}
		}
		logger.Debug("Linked parameter.", "target", l.target, "variable", path, "law", l.law.FunctionName())
	}
	return nil
}

// resolveVariable finds the entity a link reads from: an independent
// variable or any parameter of the model. It also returns its canonical path.
func resolveVariable(m *model.Model, name string) (parameter.Valuer, string, error) {
	e, err := m.Get(name)
	if err != nil {
		return nil, "", err
	}
	path := tree.PathOf(e)
	switch v := e.(type) {
	case *parameter.IndependentVariable:
		return v, path, nil
	case *parameter.Parameter:
		if v.IsLinked() {
			return nil, "", fmt.Errorf("%w: '%s' is already linked", ErrChainedLink, path)
		}
		return v, path, nil
	}
	return nil, "", errors.New("not a parameter or independent variable")
}
