package terrain

import (
	"fmt"
	"math"
	"strings"

	"github.com/Faultbox/randterrain/pkg/heightmap"
	vmath "github.com/Faultbox/randterrain/pkg/math"
	"github.com/Faultbox/randterrain/pkg/rng"
)

// Interpolation selects the weight curve used between lattice nodes.
type Interpolation int

// Interpolation modes.
const (
	Linear  Interpolation = iota // w
	Quintic                      // 6w^5 - 15w^4 + 10w^3
)

// String returns the interpolation name.
func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Quintic:
		return "quintic"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// Weight maps a fractional offset in [0, 1] to an interpolation weight.
func (i Interpolation) Weight(w float64) float64 {
	if i == Quintic {
		return w * w * w * (w*(w*6-15) + 10)
	}
	return w
}

// ParseInterpolation parses "linear" or "quintic".
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return Linear, nil
	case "quintic", "smoothstep":
		return Quintic, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInterp, name)
}

// PerlinField is a lattice of fixed random unit gradients spaced squareLen
// cells apart.
type PerlinField struct {
	squareLen     int
	widthSquares  int
	lengthSquares int
	gradients     []vmath.Vec2 // (widthSquares+1) * (lengthSquares+1), row-major
}

// NewPerlinField draws a gradient for every lattice node.
func NewPerlinField(squareLen, widthSquares, lengthSquares int, src rng.Source) (*PerlinField, error) {
	if squareLen <= 0 || widthSquares <= 0 || lengthSquares <= 0 {
		return nil, fmt.Errorf("%w: square %d, %dx%d squares", ErrInvalidFieldSize, squareLen, widthSquares, lengthSquares)
	}
	f := &PerlinField{
		squareLen:     squareLen,
		widthSquares:  widthSquares,
		lengthSquares: lengthSquares,
		gradients:     make([]vmath.Vec2, (widthSquares+1)*(lengthSquares+1)),
	}
	for i := range f.gradients {
		f.gradients[i] = vmath.FromAngle(2 * math.Pi * src.Float64())
	}
	return f, nil
}

// NewPerlinFieldFor sizes a field so that it covers a width x length grid.
func NewPerlinFieldFor(width, length, squareLen int, src rng.Source) (*PerlinField, error) {
	if width <= 0 || length <= 0 || squareLen <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with square %d", ErrInvalidFieldSize, width, length, squareLen)
	}
	return NewPerlinField(squareLen, squaresFor(width, squareLen), squaresFor(length, squareLen), src)
}

func squaresFor(cells, squareLen int) int {
	n := (cells - 1 + squareLen - 1) / squareLen
	if n < 1 {
		n = 1
	}
	return n
}

// SquareLen returns the lattice spacing in cells.
func (f *PerlinField) SquareLen() int { return f.squareLen }

// Squares returns the lattice size in squares.
func (f *PerlinField) Squares() (width, length int) { return f.widthSquares, f.lengthSquares }

func (f *PerlinField) gradient(x, y int) vmath.Vec2 {
	return f.gradients[y*(f.widthSquares+1)+x]
}

// Sample returns the noise value at (x, y) in [0, 1].
// Positions beyond the lattice are clamped onto its boundary.
func (f *PerlinField) Sample(x, y float64, interp Interpolation) float64 {
	gx := clampRange(x/float64(f.squareLen), 0, float64(f.widthSquares))
	gy := clampRange(y/float64(f.squareLen), 0, float64(f.lengthSquares))

	x0, x1 := lattice(gx, f.widthSquares)
	y0, y1 := lattice(gy, f.lengthSquares)
	p := vmath.Vec2{X: gx, Y: gy}

	influence := func(nx, ny int) float64 {
		return f.gradient(nx, ny).Dot(p.Sub(vmath.Vec2{X: float64(nx), Y: float64(ny)}))
	}

	wx := interp.Weight(gx - float64(x0))
	wy := interp.Weight(gy - float64(y0))

	top := vmath.Lerp(influence(x0, y0), influence(x1, y0), wx)
	bottom := vmath.Lerp(influence(x0, y1), influence(x1, y1), wx)
	v := vmath.Lerp(top, bottom, wy) + 0.5

	return clampRange(v, 0, 1)
}

// lattice returns the nodes either side of g. At the far edge both resolve
// to the boundary node.
func lattice(g float64, last int) (int, int) {
	lo := int(math.Floor(g))
	if lo >= last {
		return last, last
	}
	return lo, lo + 1
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Generate samples every integer coordinate of a width x length grid.
func (f *PerlinField) Generate(width, length int, interp Interpolation) (*heightmap.Grid, error) {
	g, err := heightmap.New(width, length)
	if err != nil {
		return nil, err
	}
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			if err := g.Set(x, y, f.Sample(float64(x), float64(y), interp)); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
