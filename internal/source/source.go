package source

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/skymodel/internal/functions"
	"github.com/specialistvlad/skymodel/internal/sky"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// SpatialShapeName is the name of an extended source's spatial shape.
const SpatialShapeName = "spatial_shape"

// Source is a top-level astrophysical entity of a model.
type Source interface {
	tree.Element
	Kind() Kind
	Components() []*SpectralComponent
	Component(name string) (*SpectralComponent, error)
	Flux(e float64) float64
}

// spectrum is shared by every source kind.
type spectrum struct {
	components []*SpectralComponent
}

func (s *spectrum) attach(owner *tree.Node, components []*SpectralComponent) error {
	if len(components) == 0 {
		return fmt.Errorf("source '%s' requires at least one spectral component", owner.Name())
	}
	for _, c := range components {
		if c == nil {
			return fmt.Errorf("source '%s': nil spectral component", owner.Name())
		}
		if err := owner.AddChild(c); err != nil {
			return fmt.Errorf("source '%s': %w", owner.Name(), err)
		}
		s.components = append(s.components, c)
	}
	return nil
}

// Components returns the spectral components in definition order.
func (s *spectrum) Components() []*SpectralComponent {
	out := make([]*SpectralComponent, len(s.components))
	copy(out, s.components)
	return out
}

// Component returns the named spectral component.
func (s *spectrum) Component(name string) (*SpectralComponent, error) {
	for _, c := range s.components {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no spectral component '%s'", tree.ErrNotFound, name)
}

// Flux sums the flux of every component at energy e.
func (s *spectrum) Flux(e float64) float64 {
	total := 0.0
	for _, c := range s.components {
		total += c.Flux(e)
	}
	return total
}

// Point is a point source: a position plus a spectrum.
type Point struct {
	tree.Node
	spectrum

	position *sky.Position
}

// NewPoint builds a point source. The position is fixed on construction.
func NewPoint(name string, position *sky.Position, components ...*SpectralComponent) (*Point, error) {
	if position == nil {
		return nil, errors.New("point source requires a position")
	}
	ps := &Point{position: position}
	if err := ps.Init(name, ps); err != nil {
		return nil, err
	}
	position.Fix()
	if err := ps.AddChild(position); err != nil {
		return nil, fmt.Errorf("source '%s': %w", name, err)
	}
	if err := ps.attach(&ps.Node, components); err != nil {
		return nil, err
	}
	return ps, nil
}

// NewPointWithShape builds a point source with a single component named "main".
func NewPointWithShape(name string, position *sky.Position, shape *functions.Function) (*Point, error) {
	c, err := NewSpectralComponent(DefaultComponentName, shape, nil)
	if err != nil {
		return nil, err
	}
	return NewPoint(name, position, c)
}

// Kind implements Source.
func (p *Point) Kind() Kind { return PointSource }

// Position returns the sky position.
func (p *Point) Position() *sky.Position { return p.position }

// Extended is an extended source: a spatial shape plus a spectrum.
type Extended struct {
	tree.Node
	spectrum

	spatialShape *functions.Function
}

// NewExtended builds an extended source. The spatial shape is attached as
// "spatial_shape".
func NewExtended(name string, spatialShape *functions.Function, components ...*SpectralComponent) (*Extended, error) {
	if spatialShape == nil {
		return nil, errors.New("extended source requires a spatial shape")
	}
	es := &Extended{spatialShape: spatialShape}
	if err := es.Init(name, es); err != nil {
		return nil, err
	}
	if err := spatialShape.Rename(SpatialShapeName); err != nil {
		return nil, fmt.Errorf("source '%s': %w", name, err)
	}
	if err := es.AddChild(spatialShape); err != nil {
		return nil, fmt.Errorf("source '%s': %w", name, err)
	}
	if err := es.attach(&es.Node, components); err != nil {
		return nil, err
	}
	return es, nil
}

// Kind implements Source.
func (e *Extended) Kind() Kind { return ExtendedSource }

// SpatialShape returns the spatial brightness profile.
func (e *Extended) SpatialShape() *functions.Function { return e.spatialShape }
