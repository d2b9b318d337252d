// Package sky provides the position of a point source on the celestial
// sphere, expressed as a fixed pair of bounded coordinate parameters.
package sky

import (
	"fmt"

	"github.com/specialistvlad/skymodel/internal/parameter"
	"github.com/specialistvlad/skymodel/internal/tree"
)

// Frame identifies the coordinate pair of a Position.
type Frame string

const (
	// Equatorial positions use ra and dec.
	Equatorial Frame = "equatorial"
	// Galactic positions use l and b.
	Galactic Frame = "galactic"
)

// NodeName is the name a position takes in the model tree.
const NodeName = "position"

// Position is a coordinate pair plus an optional equinox. Coordinates are
// fixed by default.
type Position struct {
	tree.Node

	frame   Frame
	equinox string
	lon     *parameter.Parameter
	lat     *parameter.Parameter
}

// NewEquatorial builds a position from right ascension and declination.
func NewEquatorial(ra, dec float64, equinox string) (*Position, error) {
	return newPosition(Equatorial, "ra", ra, "dec", dec, equinox)
}

// NewGalactic builds a position from galactic longitude and latitude.
func NewGalactic(l, b float64, equinox string) (*Position, error) {
	return newPosition(Galactic, "l", l, "b", b, equinox)
}

func newPosition(frame Frame, lonName string, lon float64, latName string, lat float64, equinox string) (*Position, error) {
	pos := &Position{frame: frame, equinox: equinox}
	if err := pos.Init(NodeName, pos); err != nil {
		return nil, err
	}

	var err error
	pos.lon, err = parameter.New(lonName, lon, parameter.WithBounds(0, 360), parameter.WithFree(false), parameter.WithUnit("deg"))
	if err != nil {
		return nil, fmt.Errorf("%s position: %w", frame, err)
	}
	pos.lat, err = parameter.New(latName, lat, parameter.WithBounds(-90, 90), parameter.WithFree(false), parameter.WithUnit("deg"))
	if err != nil {
		return nil, fmt.Errorf("%s position: %w", frame, err)
	}
	if err := pos.AddChildren(pos.lon, pos.lat); err != nil {
		return nil, err
	}
	return pos, nil
}

// Frame returns the coordinate frame.
func (p *Position) Frame() Frame { return p.frame }

// Equinox returns the equinox, empty when none was given.
func (p *Position) Equinox() string { return p.equinox }

// Coordinates returns the longitude-like and latitude-like parameters.
func (p *Position) Coordinates() (lon, lat *parameter.Parameter) { return p.lon, p.lat }

// Fix fixes both coordinates.
func (p *Position) Fix() {
	p.lon.SetFixed(true)
	p.lat.SetFixed(true)
}

// Free frees both coordinates.
func (p *Position) Free() {
	p.lon.SetFree(true)
	p.lat.SetFree(true)
}

// String renders the position for humans.
func (p *Position) String() string {
	s := fmt.Sprintf("%s=%g %s=%g", p.lon.Name(), p.lon.Value(), p.lat.Name(), p.lat.Value())
	if p.equinox != "" {
		s += " (" + p.equinox + ")"
	}
	return s
}
