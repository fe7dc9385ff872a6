package terrain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/rng"
)

// ErrUnknownAlgorithm is returned by Lookup for unregistered names.
var ErrUnknownAlgorithm = errors.New("unknown terrain algorithm")

// Params carries the settings every registered algorithm may draw from.
// Each algorithm reads only the fields it needs.
type Params struct {
	Width  int
	Length int

	SideExponent int
	Coloring     string

	SquareLen     int
	Interpolation string

	Alpha       float64
	Beta        float64
	Octaves     int
	Scale       float64
	Persistence float64
}

// Factory builds a Generator from params and a random source.
type Factory func(p Params, src rng.Source) (Generator, error)

var factories = map[string]Factory{}

// Register adds a generator factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	factories[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return f, nil
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("diamond-square", func(p Params, src rng.Source) (Generator, error) {
		c, err := ParseColoring(p.Coloring)
		if err != nil {
			return nil, err
		}
		ds := NewDiamondSquare(c, src)
		return GeneratorFunc(func() (*heightmap.Grid, error) { return ds.Generate(p.SideExponent) }), nil
	})

	Register("perlin", func(p Params, src rng.Source) (Generator, error) {
		interp, err := ParseInterpolation(p.Interpolation)
		if err != nil {
			return nil, err
		}
		field, err := NewPerlinFieldFor(p.Width, p.Length, p.SquareLen, src)
		if err != nil {
			return nil, err
		}
		return GeneratorFunc(func() (*heightmap.Grid, error) { return field.Generate(p.Width, p.Length, interp) }), nil
	})

	Register("octave", func(p Params, src rng.Source) (Generator, error) {
		o, err := NewOctave(p.Alpha, p.Beta, p.Octaves, p.Scale, src)
		if err != nil {
			return nil, err
		}
		return GeneratorFunc(func() (*heightmap.Grid, error) { return o.Generate(p.Width, p.Length) }), nil
	})

	Register("simplex", func(p Params, src rng.Source) (Generator, error) {
		s, err := NewSimplex(p.Scale, p.Octaves, p.Persistence, src)
		if err != nil {
			return nil, err
		}
		return GeneratorFunc(func() (*heightmap.Grid, error) { return s.Generate(p.Width, p.Length) }), nil
	})
}
