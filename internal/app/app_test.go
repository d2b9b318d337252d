package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/skymodel/internal/document"
	"github.com/specialistvlad/skymodel/internal/parser"
	"github.com/specialistvlad/skymodel/internal/testutil"
	"github.com/specialistvlad/skymodel/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const models = `
crab (point source):
  position:
    ra: {value: 83.63}
    dec: {value: 22.01}
    equinox: J2000
  spectrum:
    main:
      powerlaw:
        logK: {value: -3, min: -10, max: 5}
        index:
          value: f(time)
          law:
            line:
              a: {value: -2}
              b: {value: 0.1}
        piv: {value: 100, unit: keV}
flat (point source):
  position: {l: {value: 184.56}, b: {value: -5.78}}
  spectrum:
    main:
      constant: {k: {value: 2, fix: true}}
time(IndependentVariable):
  value: 5
  unit: s
`

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer) {
	t.Helper()
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	out := &bytes.Buffer{}
	a, err := NewApp(out, io.Discard, c, nil)
	require.NoError(t, err)
	return a, out
}

func modelFile(t *testing.T) string {
	t.Helper()
	dir := testutil.WriteFiles(t, map[string]string{"sky.yaml": models})
	return filepath.Join(dir, "sky.yaml")
}

func TestNewConfig(t *testing.T) {
	testCases := []struct {
		name    string
		in      Config
		wantErr string
	}{
		{name: "defaults", in: Config{ModelPath: "m.yaml"}},
		{name: "mixed case", in: Config{LogLevel: "DEBUG", LogFormat: "JSON"}},
		{name: "bad level", in: Config{LogLevel: "verbose"}, wantErr: "invalid log-level 'verbose'"},
		{name: "bad format", in: Config{LogFormat: "xml"}, wantErr: "invalid log-format 'xml'"},
		{name: "bad override", in: Config{Overrides: []string{"crab.main.shape.logK"}}, wantErr: "expected path=value"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.in)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, LogLevels, cfg.LogLevel)
			assert.Contains(t, LogFormats, cfg.LogFormat)
		})
	}
}

func TestSplitOverride(t *testing.T) {
	testCases := []struct {
		in      string
		path    string
		value   float64
		wantErr bool
	}{
		{in: "crab.main.shape.logK=-2.5", path: "crab.main.shape.logK", value: -2.5},
		{in: " time = 1e3 ", path: "time", value: 1000},
		{in: "time", wantErr: true},
		{in: "=1", wantErr: true},
		{in: "time=soon", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			path, v, err := splitOverride(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.path, path)
			assert.Equal(t, tc.value, v)
		})
	}
}

func TestApp_Show(t *testing.T) {
	a, out := newTestApp(t, Config{ModelPath: modelFile(t)})
	require.NoError(t, a.Show(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "crab (point source)", lines[0])
	assert.Equal(t, "  position (equatorial, J2000)", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "    ra = 83.63"), lines[2])

	text := out.String()
	assert.Contains(t, text, "    shape (powerlaw)\n")
	assert.Contains(t, text, "[linked via line]")
	assert.Contains(t, text, "  position (galactic)\n")
	assert.Contains(t, text, "(independent variable)")
	assert.Equal(t, "2 sources, 1 independent variables, 8 parameters (1 free, 1 linked)", lines[len(lines)-1])
}

func TestApp_Params(t *testing.T) {
	a, out := newTestApp(t, Config{ModelPath: modelFile(t)})
	require.NoError(t, a.Params(context.Background(), false))

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "PATH"))
	assert.Contains(t, text, "crab.main.shape.index")
	assert.Contains(t, text, "line(time)")
	assert.Contains(t, text, "keV")

	out.Reset()
	require.NoError(t, a.Params(context.Background(), true))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2, "header and logK")
	assert.True(t, strings.HasPrefix(lines[1], "crab.main.shape.logK"))
}

func TestApp_Get(t *testing.T) {
	a, out := newTestApp(t, Config{ModelPath: modelFile(t)})
	ctx := context.Background()

	require.NoError(t, a.Get(ctx, "crab.main.shape.index"))
	assert.Equal(t, "-1.5\n", out.String())

	out.Reset()
	require.NoError(t, a.Get(ctx, "crab.main"))
	assert.Equal(t, "main (spectral component)\n", out.String())

	err := a.Get(ctx, "crab.nothing")
	assert.True(t, errors.Is(err, tree.ErrNotFound), "got %v", err)
}

func TestApp_Overrides(t *testing.T) {
	a, out := newTestApp(t, Config{
		ModelPath: modelFile(t),
		Overrides: []string{"time=10", "crab.main.shape.logK=-2"},
	})
	ctx := context.Background()

	require.NoError(t, a.Get(ctx, "crab.main.shape.index"))
	assert.Equal(t, "-1\n", out.String())
	out.Reset()
	require.NoError(t, a.Get(ctx, "crab.main.shape.logK"))
	assert.Equal(t, "-2\n", out.String())

	t.Run("out of bounds", func(t *testing.T) {
		a, _ := newTestApp(t, Config{ModelPath: modelFile(t), Overrides: []string{"crab.main.shape.logK=20"}})
		_, err := a.Load(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "applying override")
	})

	t.Run("linked parameter", func(t *testing.T) {
		a, _ := newTestApp(t, Config{ModelPath: modelFile(t), Overrides: []string{"crab.main.shape.index=1"}})
		_, err := a.Load(ctx)
		require.Error(t, err)
	})
}

func TestApp_Flux(t *testing.T) {
	a, out := newTestApp(t, Config{ModelPath: modelFile(t)})
	ctx := context.Background()

	require.NoError(t, a.Flux(ctx, "flat", []float64{1, 10}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"1", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"10", "2"}, strings.Fields(lines[2]))

	err := a.Flux(ctx, "missing", []float64{1})
	assert.True(t, errors.Is(err, tree.ErrNotFound), "got %v", err)
}

func TestApp_Check(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"good.yaml":        models,
		"nested/bad.yml":   "crab (point source): {spectrum: {}}\n",
		"nested/note.txt":  "not a model",
		"broken/link.json": `{"s (point source)": {"position": {"ra": {"value": 1}, "dec": {"value": 2}}, "spectrum": {"main": {"constant": {"k": {"value": "f(nowhere)", "law": {"identity": {}}}}}}}}`,
	})
	a, out := newTestApp(t, Config{})

	err := a.Check(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCheckFailed))
	assert.Contains(t, err.Error(), "2 of 3 documents")

	text := out.String()
	assert.Contains(t, text, "ok   "+filepath.Join(dir, "good.yaml"))
	assert.Contains(t, text, "FAIL "+filepath.Join(dir, "nested", "bad.yml"))
	assert.Contains(t, text, "FAIL "+filepath.Join(dir, "broken", "link.json"))
	assert.NotContains(t, text, "note.txt")

	t.Run("all valid", func(t *testing.T) {
		dir := testutil.WriteFiles(t, map[string]string{"one.yaml": models})
		a, _ := newTestApp(t, Config{})
		require.NoError(t, a.Check(context.Background(), dir))
	})

	t.Run("empty directory", func(t *testing.T) {
		a, _ := newTestApp(t, Config{})
		err := a.Check(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no model documents")
	})
}

func TestApp_Functions(t *testing.T) {
	a, out := newTestApp(t, Config{})
	require.NoError(t, a.Functions())
	text := out.String()
	for _, name := range []string{"powerlaw", "gaussian_on_sphere", "constant"} {
		assert.Contains(t, text, name)
	}
	assert.Contains(t, text, "logK, index, piv")
}

func TestApp_WriteMetrics(t *testing.T) {
	a, out := newTestApp(t, Config{ModelPath: modelFile(t)})
	_, err := a.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, a.WriteMetrics())
	text := out.String()
	assert.Contains(t, text, `skymodel_model_loads_total{result="success"} 1`)
	assert.Contains(t, text, "skymodel_model_links 1")
}

func TestApp_LoadErrors(t *testing.T) {
	a, _ := newTestApp(t, Config{ModelPath: filepath.Join(t.TempDir(), "missing.yaml")})
	_, err := a.Load(context.Background())
	assert.True(t, errors.Is(err, document.ErrFileIO), "got %v", err)

	dir := testutil.WriteFiles(t, map[string]string{"bad.yaml": "x (comet): {}\n"})
	a, _ = newTestApp(t, Config{ModelPath: filepath.Join(dir, "bad.yaml")})
	_, err = a.Load(context.Background())
	assert.True(t, errors.Is(err, parser.ErrModelSyntax), "got %v", err)
}
