package terrain

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/rng"
)

// seedFrom derives a library seed from the injected source so that octave
// generators stay reproducible under the same rng.Source.
func seedFrom(src rng.Source) int64 {
	return int64(src.Float64() * math.MaxInt64)
}

// Octave layers Perlin octaves via go-perlin and stretches the result over
// the full [0, 1] range.
type Octave struct {
	scale float64
	noise *perlin.Perlin
}

// NewOctave creates an octave Perlin generator. alpha is the amplitude
// falloff per octave, beta the frequency gain and scale the number of cells
// per noise unit.
func NewOctave(alpha, beta float64, octaves int, scale float64, src rng.Source) (*Octave, error) {
	if octaves <= 0 || scale <= 0 || alpha <= 0 || beta <= 0 {
		return nil, fmt.Errorf("%w: alpha %v, beta %v, octaves %d, scale %v", ErrInvalidFieldSize, alpha, beta, octaves, scale)
	}
	return &Octave{
		scale: scale,
		noise: perlin.NewPerlin(alpha, beta, int32(octaves), seedFrom(src)),
	}, nil
}

// Generate fills a width x length grid.
func (o *Octave) Generate(width, length int) (*heightmap.Grid, error) {
	return normalized(width, length, func(x, y int) float64 {
		return o.noise.Noise2D(float64(x)/o.scale, float64(y)/o.scale)
	})
}

// Simplex layers OpenSimplex octaves, halving amplitude by persistence and
// doubling frequency at each octave.
type Simplex struct {
	scale       float64
	octaves     int
	persistence float64
	noise       opensimplex.Noise
}

// NewSimplex creates an octave simplex generator.
func NewSimplex(scale float64, octaves int, persistence float64, src rng.Source) (*Simplex, error) {
	if octaves <= 0 || scale <= 0 || persistence <= 0 {
		return nil, fmt.Errorf("%w: scale %v, octaves %d, persistence %v", ErrInvalidFieldSize, scale, octaves, persistence)
	}
	return &Simplex{
		scale:       scale,
		octaves:     octaves,
		persistence: persistence,
		noise:       opensimplex.NewNormalized(seedFrom(src)),
	}, nil
}

// Generate fills a width x length grid.
func (s *Simplex) Generate(width, length int) (*heightmap.Grid, error) {
	return normalized(width, length, func(x, y int) float64 {
		return s.sample(float64(x), float64(y))
	})
}

func (s *Simplex) sample(x, y float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	frequency := 1 / s.scale

	for i := 0; i < s.octaves; i++ {
		total += s.noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= s.persistence
		frequency *= 2
	}
	return total / maxVal
}

// normalized samples f over the grid and rescales min..max onto 0..1.
// A constant field maps to 0.5.
func normalized(width, length int, f func(x, y int) float64) (*heightmap.Grid, error) {
	g, err := heightmap.New(width, length)
	if err != nil {
		return nil, err
	}

	raw := make([]float64, width*length)
	lo, hi := math.MaxFloat64, -math.MaxFloat64
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			v := f(x, y)
			raw[y*width+x] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	span := hi - lo
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			v := 0.5
			if span > 0 {
				v = (raw[y*width+x] - lo) / span
			}
			if err := g.Set(x, y, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
