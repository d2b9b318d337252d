package parameter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuxiliaryVariable_ComputedRead(t *testing.T) {
	p, err := New("index", 5)
	require.NoError(t, err)
	v, err := NewIndependentVariable("time", 2)
	require.NoError(t, err)

	assert.Equal(t, 5.0, p.Value(), "before linking the value is stored state")

	require.NoError(t, p.AddAuxiliaryVariable(v, identity{}))
	assert.True(t, p.IsLinked())
	assert.Equal(t, 2.0, p.Value())

	// The value is recomputed on every read.
	require.NoError(t, v.SetValue(7))
	assert.Equal(t, 7.0, p.Value())

	err = p.SetValue(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLinkedParameter)

	err = p.Apply(Update{Value: ptr(1.0)})
	assert.ErrorIs(t, err, ErrLinkedParameter)

	variable, law, ok := p.AuxiliaryVariable()
	require.True(t, ok)
	assert.Same(t, v, variable)
	assert.Equal(t, "identity", law.Name())
}

func TestAuxiliaryVariable_LinkToParameter(t *testing.T) {
	driver, err := New("driver", 3)
	require.NoError(t, err)
	p, err := New("driven", 0, WithBounds(-100, 100))
	require.NoError(t, err)

	require.NoError(t, p.AddAuxiliaryVariable(driver, scale{k: 4}))
	assert.Equal(t, 12.0, p.Value())

	// Bounds can still change on a linked parameter.
	require.NoError(t, p.SetBounds(-1, 1))
}

func TestAuxiliaryVariable_SelfLink(t *testing.T) {
	p, err := New("p", 1)
	require.NoError(t, err)
	assert.ErrorIs(t, p.AddAuxiliaryVariable(p, identity{}), ErrSelfLink)

	v, err := NewIndependentVariable("t", 0)
	require.NoError(t, err)
	assert.ErrorIs(t, v.AddAuxiliaryVariable(v, identity{}), ErrSelfLink)

	assert.Error(t, p.AddAuxiliaryVariable(nil, identity{}))
	assert.Error(t, p.AddAuxiliaryVariable(v, nil))
}

func TestRemoveAuxiliaryVariable(t *testing.T) {
	v, err := NewIndependentVariable("time", 50)
	require.NoError(t, err)
	p, err := New("p", 0, WithBounds(0, 10))
	require.NoError(t, err)

	require.NoError(t, p.AddAuxiliaryVariable(v, identity{}))
	p.RemoveAuxiliaryVariable()

	assert.False(t, p.IsLinked())
	assert.Equal(t, 10.0, p.Value(), "the last computed value is clamped into the bounds")
	require.NoError(t, p.SetValue(3))
	assert.Equal(t, 3.0, p.Value())
}

func TestIndependentVariable_Defaults(t *testing.T) {
	v, err := NewIndependentVariable("time", 0, WithUnit("s"), WithBounds(0, 1e6))
	require.NoError(t, err)

	assert.True(t, v.Fixed())
	assert.Equal(t, "s", v.Unit())
	assert.Same(t, v, v.Self(), "tree lookups must return the variable itself")
}
