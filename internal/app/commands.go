package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/common/expfmt"
	"github.com/specialistvlad/skymodel/internal/ctxlog"
	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/specialistvlad/skymodel/internal/fsutil"
	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/model"
	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/polarization"
	"github.com/specialistvlad/skymodel/internal/sky"
	"github.com/specialistvlad/skymodel/internal/source"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// ErrCheckFailed is returned by Check when at least one model is invalid.
var ErrCheckFailed = errors.New("model check failed")

// Show prints the model tree, one element per line.
func (a *App) Show(ctx context.Context) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}
	err = tree.Walk(m, func(path string, e tree.Element) error {
		depth := strings.Count(path, ".")
		_, err := fmt.Fprintf(a.outW, "%s%s\n", strings.Repeat("  ", depth), describe(e))
		return err
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.outW, summary(m))
	return err
}

func describe(e tree.Element) string {
	switch v := e.(type) {
	case source.Source:
		return fmt.Sprintf("%s (%s)", e.TreeNode().Name(), v.Kind())
	case *sky.Position:
		s := fmt.Sprintf("%s (%s", v.Name(), v.Frame())
		if v.Equinox() != "" {
			s += ", " + v.Equinox()
		}
		return s + ")"
	case *source.SpectralComponent:
		return fmt.Sprintf("%s (spectral component)", v.Name())
	case *functions.Function:
		return v.String()
	case *polarization.Polarization:
		return fmt.Sprintf("%s (%s)", v.Name(), v.Kind())
	case *parameter.IndependentVariable:
		return v.String() + " (independent variable)"
	case *parameter.Parameter:
		return v.String()
	}
	return e.TreeNode().Name()
}

// Params prints a table of the model parameters.
func (a *App) Params(ctx context.Context, freeOnly bool) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}
	params := m.Parameters()
	if freeOnly {
		params = m.FreeParameters()
	}

	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tVALUE\tMIN\tMAX\tFREE\tUNIT\tLINK")
	for _, np := range params {
		p := np.Parameter
		fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%t\t%s\t%s\n",
			np.Path, p.Value(), bound(p.MinValue()), bound(p.MaxValue()), p.Free(), p.Unit(), linkOf(p))
	}
	return w.Flush()
}

func bound(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}

func linkOf(p *parameter.Parameter) string {
	variable, law, ok := p.AuxiliaryVariable()
	if !ok {
		return ""
	}
	name := "?"
	if e, isElement := variable.(tree.Element); isElement {
		name = tree.PathOf(e)
	}
	return fmt.Sprintf("%s(%s)", law.Name(), name)
}

// Get prints the element at path.
func (a *App) Get(ctx context.Context, path string) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}
	if p, err := m.Parameter(path); err == nil {
		_, err = fmt.Fprintf(a.outW, "%g\n", p.Value())
		return err
	}
	e, err := m.Get(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.outW, describe(e))
	return err
}

// Flux prints the differential flux of the named source at each energy.
func (a *App) Flux(ctx context.Context, name string, energies []float64) error {
	m, err := a.Load(ctx)
	if err != nil {
		return err
	}
	s, err := m.Source(name)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ENERGY\tFLUX")
	for _, e := range energies {
		fmt.Fprintf(w, "%g\t%g\n", e, s.Flux(e))
	}
	return w.Flush()
}

// Check parses every model document under root and reports each result.
func (a *App) Check(ctx context.Context, root string) error {
	ctx = a.Context(ctx)
	files, err := fsutil.FindFilesByExtension(root, document.Extensions...)
	if err != nil {
		return fmt.Errorf("%w: %w", document.ErrFileIO, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no model documents found in '%s'", root)
	}

	failed := 0
	for _, f := range files {
		if _, err := a.loader.Load(ctx, f); err != nil {
			failed++
			fmt.Fprintf(a.outW, "FAIL %s: %v\n", f, err)
			continue
		}
		fmt.Fprintf(a.outW, "ok   %s\n", f)
	}
	ctxlog.FromContext(ctx).Info("Check finished.", "files", len(files), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents", ErrCheckFailed, failed, len(files))
	}
	return nil
}

// Functions prints the catalog, one function per line with its parameters.
func (a *App) Functions() error {
	w := tabwriter.NewWriter(a.outW, 0, 4, 2, ' ', 0)
	for _, name := range a.catalog.Names() {
		def, _ := a.catalog.Definition(name)
		params := make([]string, len(def.Parameters))
		for i, p := range def.Parameters {
			params[i] = p.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(params, ", "), def.Description)
	}
	return w.Flush()
}

// WriteMetrics prints the load metrics in the Prometheus text format.
func (a *App) WriteMetrics() error {
	families, err := a.gather.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.outW, mf); err != nil {
			return err
		}
	}
	return nil
}

func summary(m *model.Model) string {
	return fmt.Sprintf("%d sources, %d independent variables, %d parameters (%d free, %d linked)",
		len(m.Sources()), len(m.IndependentVariables()), len(m.Parameters()), len(m.FreeParameters()), len(m.LinkedParameters()))
}
