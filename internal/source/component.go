package source

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/polarization"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// ShapeName is the name a spectral shape takes under its component.
const ShapeName = "shape"

// DefaultComponentName is used when a source is built from a single shape.
const DefaultComponentName = "main"

// SpectralComponent pairs a spectral shape with a polarization descriptor.
type SpectralComponent struct {
	tree.Node

	shape        *functions.Function
	polarization *polarization.Polarization
}

// NewSpectralComponent attaches shape (renamed "shape") and pol under a new
// component. A nil pol means no polarization.
func NewSpectralComponent(name string, shape *functions.Function, pol *polarization.Polarization) (*SpectralComponent, error) {
	if shape == nil {
		return nil, errors.New("spectral component requires a shape")
	}
	if pol == nil {
		pol = polarization.None()
	}
	c := &SpectralComponent{shape: shape, polarization: pol}
	if err := c.Init(name, c); err != nil {
		return nil, err
	}
	if err := shape.Rename(ShapeName); err != nil {
		return nil, fmt.Errorf("component '%s': %w", name, err)
	}
	if err := c.AddChildren(shape, pol); err != nil {
		return nil, fmt.Errorf("component '%s': %w", name, err)
	}
	return c, nil
}

// Shape returns the spectral shape.
func (c *SpectralComponent) Shape() *functions.Function { return c.shape }

// Polarization returns the polarization descriptor.
func (c *SpectralComponent) Polarization() *polarization.Polarization { return c.polarization }

// Flux evaluates the shape at energy e.
func (c *SpectralComponent) Flux(e float64) float64 { return c.shape.Evaluate(e) }

// String renders the component for humans.
func (c *SpectralComponent) String() string {
	return fmt.Sprintf("spectral component %s: shape=%s polarization=%s", c.Name(), c.shape.FunctionName(), c.polarization.Kind())
}
