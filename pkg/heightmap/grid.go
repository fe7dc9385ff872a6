// Package heightmap provides the bounded, wrap-around height grid shared by
// every terrain generator.
package heightmap

import (
	"errors"
	"fmt"
	"math"
)

// Grid errors.
var (
	ErrHeightOutOfBounds = errors.New("height out of bounds [0, 1]")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// Precision is the number of decimal places heights are rounded to on write.
const Precision = 3

var precisionScale = math.Pow10(Precision)

// Grid is a width x length field of heights in [0, 1].
//
// Coordinates wrap modulo the grid size, so the grid behaves as a torus and
// every (x, y) pair addresses a cell.
type Grid struct {
	width  int
	length int
	cells  []float64 // row-major, y*width + x
}

// New allocates an all-zero grid.
func New(width, length int) (*Grid, error) {
	if width <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, length)
	}
	return newGrid(width, length), nil
}

func newGrid(width, length int) *Grid {
	return &Grid{width: width, length: length, cells: make([]float64, width*length)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Length returns the number of rows.
func (g *Grid) Length() int { return g.length }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.width + g.width) % g.width
	y = (y%g.length + g.length) % g.length
	return x, y
}

func (g *Grid) index(x, y int) int {
	x, y = g.Wrap(x, y)
	return y*g.width + x
}

// At returns the height at (x, y).
func (g *Grid) At(x, y int) float64 {
	return g.cells[g.index(x, y)]
}

// Set rounds v to Precision decimals and stores it at (x, y).
// It fails with ErrHeightOutOfBounds if the rounded value leaves [0, 1].
func (g *Grid) Set(x, y int, v float64) error {
	r := Round(v)
	if math.IsNaN(r) || r < 0 || r > 1 {
		return fmt.Errorf("%w: %v at (%d,%d)", ErrHeightOutOfBounds, v, x, y)
	}
	g.cells[g.index(x, y)] = r
	return nil
}

// SetSaturated clamps v into [0, 1] and stores it at (x, y).
// NaN is stored as 0.
func (g *Grid) SetSaturated(x, y int, v float64) {
	g.cells[g.index(x, y)] = Round(clamp(v))
}

// Round rounds v to Precision decimal places.
func Round(v float64) float64 {
	return math.Round(v*precisionScale) / precisionScale
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Equal reports whether both grids have the same size and identical heights.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || !g.SameSize(other) {
		return false
	}
	for i, v := range g.cells {
		if other.cells[i] != v {
			return false
		}
	}
	return true
}

// SameSize reports whether other has the same width and length.
func (g *Grid) SameSize(other *Grid) bool {
	return g.width == other.width && g.length == other.length
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := newGrid(g.width, g.length)
	copy(c.cells, g.cells)
	return c
}

// Add returns the cellwise sum, saturating at 1.
func (g *Grid) Add(other *Grid) (*Grid, error) {
	return g.combine(other, "add", func(a, b float64) float64 { return math.Min(a+b, 1) })
}

// Sub returns the cellwise difference, saturating at 0.
func (g *Grid) Sub(other *Grid) (*Grid, error) {
	return g.combine(other, "sub", func(a, b float64) float64 { return math.Max(a-b, 0) })
}

func (g *Grid) combine(other *Grid, op string, f func(a, b float64) float64) (*Grid, error) {
	if other == nil || !g.SameSize(other) {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidDimensions, op, describePair(g, other))
	}
	out := newGrid(g.width, g.length)
	for i, v := range g.cells {
		out.cells[i] = Round(clamp(f(v, other.cells[i])))
	}
	return out, nil
}

func describePair(a, b *Grid) string {
	if b == nil {
		return fmt.Sprintf("%dx%d with nil grid", a.width, a.length)
	}
	return fmt.Sprintf("%dx%d with %dx%d", a.width, a.length, b.width, b.length)
}

// Scale returns a grid with every height multiplied by k.
//
// Unlike Add and Sub, Scale does not saturate: a product outside [0, 1]
// fails with ErrHeightOutOfBounds and no grid is returned.
func (g *Grid) Scale(k float64) (*Grid, error) {
	out := newGrid(g.width, g.length)
	for y := 0; y < g.length; y++ {
		for x := 0; x < g.width; x++ {
			if err := out.Set(x, y, g.At(x, y)*k); err != nil {
				return nil, fmt.Errorf("scale by %v: %w", k, err)
			}
		}
	}
	return out, nil
}

// Sample returns the bilinearly interpolated height at a fractional
// position. Neighbour lookups wrap like At.
func (g *Grid) Sample(fx, fy float64) float64 {
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	tx := fx - x0
	ty := fy - y0
	ix, iy := int(x0), int(y0)

	top := g.At(ix, iy)*(1-tx) + g.At(ix+1, iy)*tx
	bottom := g.At(ix, iy+1)*(1-tx) + g.At(ix+1, iy+1)*tx
	return top*(1-ty) + bottom*ty
}
