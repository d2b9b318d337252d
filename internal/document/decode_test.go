package document

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
time(IndependentVariable):
  value: 0
  unit: s
crab (point source):
  position:
    ra: {value: 83.63}
    dec: {value: 22.01}
  spectrum:
    main:
      powerlaw:
        logK: {value: -3, min: -10}
        index: {value: "f(time)", law: {line: {a: {value: 1}, b: {value: 0}}}}
        piv: {value: 1, fix: true}
`

const sampleJSON = `{
  "time(IndependentVariable)": {"value": 0, "unit": "s"},
  "crab (point source)": {
    "position": {"ra": {"value": 83.63}, "dec": {"value": 22.01}},
    "spectrum": {
      "main": {
        "powerlaw": {
          "logK": {"value": -3, "min": -10},
          "index": {"value": "f(time)", "law": {"line": {"a": {"value": 1}, "b": {"value": 0}}}},
          "piv": {"value": 1, "fix": true}
        }
      }
    }
  }
}`

func TestDecode_PreservesOrderAndValues(t *testing.T) {
	testCases := []struct {
		name   string
		decode func() (*Map, error)
	}{
		{"yaml", func() (*Map, error) { return DecodeYAML("model.yaml", []byte(sampleYAML)) }},
		{"json", func() (*Map, error) { return DecodeJSON("model.json", []byte(sampleJSON)) }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := tc.decode()
			require.NoError(t, err)

			if diff := cmp.Diff([]string{"time(IndependentVariable)", "crab (point source)"}, doc.Keys()); diff != "" {
				t.Fatalf("top-level keys mismatch (-want +got):\n%s", diff)
			}

			crab, ok, err := doc.Map("crab (point source)")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []string{"position", "spectrum"}, crab.Keys())

			native, err := ToNative(crab)
			require.NoError(t, err)
			shape := native.(map[string]any)["spectrum"].(map[string]any)["main"].(map[string]any)["powerlaw"].(map[string]any)
			assert.Equal(t, "f(time)", shape["index"].(map[string]any)["value"])
			assert.Equal(t, -3.0, shape["logK"].(map[string]any)["value"])
			assert.Equal(t, true, shape["piv"].(map[string]any)["fix"])

			spectrum, _, err := crab.Map("spectrum")
			require.NoError(t, err)
			main, _, err := spectrum.Map("main")
			require.NoError(t, err)
			powerlaw, _, err := main.Map("powerlaw")
			require.NoError(t, err)
			assert.Equal(t, []string{"logK", "index", "piv"}, powerlaw.Keys())
		})
	}
}

func TestDecodeYAML(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		doc, err := DecodeYAML("empty.yaml", []byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Len())
	})

	t.Run("aliases are resolved", func(t *testing.T) {
		doc, err := DecodeYAML("a.yaml", []byte("base: &b {value: 2}\ncopy: *b\n"))
		require.NoError(t, err)
		cp, _, err := doc.Map("copy")
		require.NoError(t, err)
		v, _ := cp.Get("value")
		n, err := Number(v)
		require.NoError(t, err)
		assert.Equal(t, 2.0, n)
	})

	t.Run("merge keys", func(t *testing.T) {
		doc, err := DecodeYAML("m.yaml", []byte(`
bounds: &bounds {min: -10, max: 10, value: 0}
unit: &unit {unit: keV}
logK:
  value: -3
  <<: *bounds
index:
  <<: [*unit, {unit: MeV, delta: 0.1}]
  value: 2
`))
		require.NoError(t, err)

		logK, _, err := doc.Map("logK")
		require.NoError(t, err)
		assert.Equal(t, []string{"value", "min", "max"}, logK.Keys())
		v, _ := logK.Get("value")
		n, err := Number(v)
		require.NoError(t, err)
		assert.Equal(t, -3.0, n, "explicit keys win over merged ones")

		index, _, err := doc.Map("index")
		require.NoError(t, err)
		assert.Equal(t, []string{"unit", "delta", "value"}, index.Keys())
		u, _ := index.Get("unit")
		unit, err := String(u)
		require.NoError(t, err)
		assert.Equal(t, "keV", unit, "earlier merge sources take precedence")
	})

	t.Run("sequences and nulls", func(t *testing.T) {
		doc, err := DecodeYAML("s.yaml", []byte("list: [1, two, ~]\n"))
		require.NoError(t, err)
		native, err := ToNative(doc)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"list": []any{1.0, "two", nil}}, native)
	})

	errorCases := []struct {
		name string
		src  string
	}{
		{"top level is a list", "- a\n- b\n"},
		{"top level is a scalar", "hello\n"},
		{"duplicate key", "a: 1\na: 2\n"},
		{"malformed", "a: [1, 2\n"},
		{"non-scalar key", "? [a, b]\n: 1\n"},
		{"nan", "a: .nan\n"},
		{"self-referencing alias", "a: &x\n  b: *x\n"},
		{"self-referencing alias in a list", "a: &x [1, *x]\n"},
		{"merge of a scalar", "s: &s 1\nm:\n  <<: *s\n"},
		{"alias expansion limit", aliasBomb()},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeYAML("bad.yaml", []byte(tc.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDocumentSyntax), "got %v", err)
		})
	}
}

func TestDecodeJSON_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"malformed", `{"a": }`},
		{"top level is a list", `[1, 2]`},
		{"duplicate nested key", `{"a": {"b": 1, "b": 2}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeJSON("bad.json", []byte(tc.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDocumentSyntax), "got %v", err)
		})
	}
}

func TestDecodeJSON_ListsAndNull(t *testing.T) {
	doc, err := DecodeJSON("l.json", []byte(`{"list": [1, "two", null, {"k": false}]}`))
	require.NoError(t, err)
	native, err := ToNative(doc)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"list": []any{1.0, "two", nil, map[string]any{"k": false}}}, native)
}

// aliasBomb builds a document whose aliases expand to 10^8 leaves.
func aliasBomb() string {
	var b strings.Builder
	b.WriteString("l0: &l0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= 8; i++ {
		fmt.Fprintf(&b, "l%d: &l%d [", i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "*l%d", i-1)
		}
		b.WriteString("]\n")
	}
	return b.String()
}
