package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/sky"
	"github.com/specialistvlad/skymodel/internal/source"
	"github.com/specialistvlad/skymodel/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointSource(t *testing.T, name string) *source.Point {
	t.Helper()
	shape, err := functions.Builtin().Lookup("powerlaw")
	require.NoError(t, err)
	pos, err := sky.NewEquatorial(10, -5, "J2000")
	require.NoError(t, err)
	ps, err := source.NewPointWithShape(name, pos, shape)
	require.NoError(t, err)
	return ps
}

func paths(params []NamedParameter) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		out = append(out, p.Path)
	}
	return out
}

func TestModel_GetAndSet(t *testing.T) {
	m, err := New(pointSource(t, "crab"))
	require.NoError(t, err)

	p, err := m.Parameter("crab.main.shape.index")
	require.NoError(t, err)
	assert.Equal(t, "index", p.Name())

	require.NoError(t, m.Set("crab.main.shape.index", -2.5))
	assert.Equal(t, -2.5, p.Value())

	_, err = m.Get("crab.nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tree.ErrPath))

	err = m.Set("crab.main", 1)
	assert.True(t, errors.Is(err, tree.ErrNotSettable))

	_, err = m.Parameter("crab.position")
	assert.True(t, errors.Is(err, tree.ErrPath))
}

func TestModel_DuplicateNames(t *testing.T) {
	m, err := New(pointSource(t, "crab"))
	require.NoError(t, err)

	err = m.AddSource(pointSource(t, "crab"))
	assert.True(t, errors.Is(err, tree.ErrDuplicateName))

	v, err := parameter.NewIndependentVariable("crab", 1)
	require.NoError(t, err)
	err = m.AddIndependentVariable(v)
	assert.True(t, errors.Is(err, tree.ErrDuplicateName), "variables share the root namespace with sources")

	_, err = New(pointSource(t, "a"), pointSource(t, "a"))
	assert.True(t, errors.Is(err, tree.ErrDuplicateName))
}

func TestModel_IndependentVariables(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	v, err := parameter.NewIndependentVariable("time", 0, parameter.WithUnit("s"))
	require.NoError(t, err)
	require.NoError(t, m.AddIndependentVariable(v))

	got, err := m.IndependentVariable("time")
	require.NoError(t, err)
	assert.Same(t, v, got)

	p, err := m.Parameter("time")
	require.NoError(t, err)
	assert.Same(t, &v.Parameter, p)

	require.NoError(t, m.Set("time", 12))
	assert.Equal(t, 12.0, v.Value())

	_, err = m.IndependentVariable("energy")
	assert.True(t, errors.Is(err, tree.ErrNotFound))
	assert.Len(t, m.IndependentVariables(), 1)
}

func TestModel_Sources(t *testing.T) {
	a, b := pointSource(t, "a"), pointSource(t, "b")
	m, err := New(a, b)
	require.NoError(t, err)

	got, err := m.Source("b")
	require.NoError(t, err)
	assert.Same(t, b, got)

	_, err = m.Source("c")
	assert.True(t, errors.Is(err, tree.ErrNotFound))

	sources := m.Sources()
	require.Len(t, sources, 2)
	assert.Same(t, a, sources[0])
}

func TestModel_ParameterListings(t *testing.T) {
	m, err := New(pointSource(t, "crab"))
	require.NoError(t, err)
	v, err := parameter.NewIndependentVariable("time", 2)
	require.NoError(t, err)
	require.NoError(t, m.AddIndependentVariable(v))

	want := []string{
		"crab.position.ra",
		"crab.position.dec",
		"crab.main.shape.logK",
		"crab.main.shape.index",
		"crab.main.shape.piv",
	}
	if diff := cmp.Diff(want, paths(m.Parameters())); diff != "" {
		t.Errorf("Parameters() mismatch (-want +got):\n%s", diff)
	}

	// Position and pivot are fixed by default.
	wantFree := []string{"crab.main.shape.logK", "crab.main.shape.index"}
	if diff := cmp.Diff(wantFree, paths(m.FreeParameters())); diff != "" {
		t.Errorf("FreeParameters() mismatch (-want +got):\n%s", diff)
	}

	index, err := m.Parameter("crab.main.shape.index")
	require.NoError(t, err)
	law, err := functions.Builtin().Lookup("identity")
	require.NoError(t, err)
	require.NoError(t, index.AddAuxiliaryVariable(v, law))

	assert.Equal(t, []string{"crab.main.shape.index"}, paths(m.LinkedParameters()))
	assert.Equal(t, []string{"crab.main.shape.logK"}, paths(m.FreeParameters()))
	assert.Equal(t, 2.0, index.Value())
}
