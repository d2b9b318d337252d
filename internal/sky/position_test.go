package sky

import (
	"testing"

	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEquatorial(t *testing.T) {
	pos, err := NewEquatorial(10, 20, "J2000")
	require.NoError(t, err)

	assert.Equal(t, "position", pos.Name())
	assert.Equal(t, Equatorial, pos.Frame())
	assert.Equal(t, "J2000", pos.Equinox())

	ra, err := tree.ResolveAs[*parameter.Parameter](pos, "ra")
	require.NoError(t, err)
	dec, err := tree.ResolveAs[*parameter.Parameter](pos, "dec")
	require.NoError(t, err)

	assert.Equal(t, 10.0, ra.Value())
	assert.True(t, ra.Fixed())
	lo, _ := ra.MinValue()
	hi, _ := ra.MaxValue()
	assert.Equal(t, [2]float64{0, 360}, [2]float64{lo, hi})

	assert.Equal(t, 20.0, dec.Value())
	assert.True(t, dec.Fixed())
	lo, _ = dec.MinValue()
	hi, _ = dec.MaxValue()
	assert.Equal(t, [2]float64{-90, 90}, [2]float64{lo, hi})
}

func TestNewGalactic(t *testing.T) {
	pos, err := NewGalactic(184.5, -5.8, "")
	require.NoError(t, err)

	l, b := pos.Coordinates()
	assert.Equal(t, "l", l.Name())
	assert.Equal(t, "b", b.Name())
	assert.Equal(t, Galactic, pos.Frame())
	assert.Equal(t, "l=184.5 b=-5.8", pos.String())
}

func TestNewPosition_OutOfRange(t *testing.T) {
	_, err := NewEquatorial(400, 0, "")
	assert.ErrorIs(t, err, parameter.ErrBounds)

	_, err = NewGalactic(0, -91, "")
	assert.ErrorIs(t, err, parameter.ErrBounds)
}

func TestFixAndFree(t *testing.T) {
	pos, err := NewEquatorial(1, 2, "")
	require.NoError(t, err)
	ra, dec := pos.Coordinates()

	pos.Free()
	assert.True(t, ra.Free())
	assert.True(t, dec.Free())

	pos.Fix()
	assert.True(t, ra.Fixed())
	assert.True(t, dec.Fixed())
}
