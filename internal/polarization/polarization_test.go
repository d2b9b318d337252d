package polarization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		kind   Kind
		params []string
	}{
		{KindNone, nil},
		{KindLinear, []string{"degree", "angle"}},
		{KindCircular, []string{"degree"}},
		{KindStokes, []string{"I", "Q", "U", "V"}},
	}

	for _, tc := range testCases {
		t.Run(string(tc.kind), func(t *testing.T) {
			pol, err := New(tc.kind)
			require.NoError(t, err)
			assert.Equal(t, "polarization", pol.Name())
			assert.Equal(t, tc.kind, pol.Kind())

			var names []string
			for _, p := range pol.Parameters() {
				names = append(names, p.Name())
				assert.True(t, pol.Has(p.Name()))
			}
			assert.Equal(t, tc.params, names)
		})
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("elliptical")
	assert.ErrorIs(t, err, ErrUnknownPolarization)
}

func TestNone(t *testing.T) {
	pol := None()
	assert.Equal(t, KindNone, pol.Kind())
	assert.Zero(t, pol.Len())
	assert.Len(t, Kinds(), 4)
}
