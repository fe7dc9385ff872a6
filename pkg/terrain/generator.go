// Package terrain provides heightmap generators: diamond-square with spectral
// noise coloring, Perlin gradient noise, and octave noise variants.
package terrain

import (
	"errors"

	"github.com/Faultbox/randterrain/pkg/heightmap"
)

// Generator errors.
var (
	ErrInvalidSideExponent = errors.New("invalid side exponent")
	ErrInvalidFieldSize    = errors.New("invalid noise field size")
	ErrUnknownColoring     = errors.New("unknown noise coloring")
	ErrUnknownInterp       = errors.New("unknown interpolation")
)

// Generator produces a fresh height grid.
type Generator interface {
	Generate() (*heightmap.Grid, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func() (*heightmap.Grid, error)

// Generate calls f.
func (f GeneratorFunc) Generate() (*heightmap.Grid, error) { return f() }
