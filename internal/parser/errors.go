package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/skymodel/internal/functions"
)

// ErrModelSyntax matches every structural error found while building the tree.
var ErrModelSyntax = errors.New("model syntax error")

// Specific structural errors. Each is reported inside a *SyntaxError.
var (
	ErrMissingSection     = errors.New("missing section")
	ErrMalformedSection   = errors.New("malformed section")
	ErrUnknownSourceKind  = errors.New("unknown source kind")
	ErrUnknownFunction    = functions.ErrUnknownFunction
	ErrMissingValue       = errors.New("missing value")
	ErrMissingLaw         = errors.New("missing law")
	ErrInvalidCoordinates = errors.New("invalid coordinate pair")
	ErrMalformedComponent = errors.New("malformed spectral component")
	ErrInvalidValue       = errors.New("invalid value")
)

// ErrLinkResolution matches every error found while attaching links.
var ErrLinkResolution = errors.New("link resolution error")

// Specific link errors. Each is reported inside a *LinkError.
var (
	ErrUnresolvedLink = errors.New("unresolved link")
	ErrChainedLink    = errors.New("chained link")
)

// SyntaxError locates a structural error in the document.
type SyntaxError struct {
	Kind      error
	Source    string
	Component string
	Function  string
	Parameter string
	Detail    string
	Err       error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString(ErrModelSyntax.Error())
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	var where []string
	if e.Parameter != "" {
		where = append(where, fmt.Sprintf("parameter '%s'", e.Parameter))
	}
	if e.Function != "" {
		where = append(where, fmt.Sprintf("function '%s'", e.Function))
	}
	if e.Component != "" {
		where = append(where, fmt.Sprintf("component '%s'", e.Component))
	}
	if e.Source != "" {
		where = append(where, fmt.Sprintf("source '%s'", e.Source))
	}
	if len(where) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(where, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap lets errors.Is match ErrModelSyntax, the specific kind and the cause.
func (e *SyntaxError) Unwrap() []error {
	errs := []error{ErrModelSyntax, e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// LinkError reports a link that could not be attached.
type LinkError struct {
	Kind     error
	Target   string
	Variable string
	Detail   string
	Err      error
}

func (e *LinkError) Error() string {
	msg := fmt.Sprintf("%s: %s: cannot link '%s' to '%s'", ErrLinkResolution, e.Kind, e.Target, e.Variable)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap lets errors.Is match ErrLinkResolution, the specific kind and the cause.
func (e *LinkError) Unwrap() []error {
	errs := []error{ErrLinkResolution, e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// scope names the fragment being parsed, for error messages.
type scope struct {
	source    string
	component string
	function  string
}

func (s scope) errorf(kind error, parameter string, cause error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Kind:      kind,
		Source:    s.source,
		Component: s.component,
		Function:  s.function,
		Parameter: parameter,
		Detail:    fmt.Sprintf(format, args...),
		Err:       cause,
	}
}
