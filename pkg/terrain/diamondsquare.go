package terrain

import (
	"fmt"

	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/rng"
)

// MaxSideExponent bounds diamond-square output to (2^12+1)^2 cells.
const MaxSideExponent = 12

// cornerHeight is the seed value for the four corners.
const cornerHeight = 0.5

// DiamondSquare generates square heightmaps by recursive midpoint
// displacement. The amplitude of the random offset at each subdivision level
// is taken from the coloring.
type DiamondSquare struct {
	amp Coloring
	rnd rng.Source
}

// NewDiamondSquare creates a diamond-square engine.
func NewDiamondSquare(amp Coloring, src rng.Source) *DiamondSquare {
	return &DiamondSquare{amp: amp, rnd: src}
}

// Generate returns a grid with side 2^sideExp+1.
func (d *DiamondSquare) Generate(sideExp int) (*heightmap.Grid, error) {
	if sideExp < 0 || sideExp > MaxSideExponent {
		return nil, fmt.Errorf("%w: %d (want 0..%d)", ErrInvalidSideExponent, sideExp, MaxSideExponent)
	}
	side := 1<<sideExp + 1
	g, err := heightmap.New(side, side)
	if err != nil {
		return nil, err
	}

	last := side - 1
	for _, c := range [][2]int{{0, 0}, {0, last}, {last, 0}, {last, last}} {
		g.SetSaturated(c[0], c[1], cornerHeight)
	}

	for squareLen := side - 1; squareLen/2 >= 1; squareLen /= 2 {
		d.divide(g, squareLen)
	}
	return g, nil
}

// divide runs one square pass and one diamond pass at the given square size.
func (d *DiamondSquare) divide(g *heightmap.Grid, squareLen int) {
	half := squareLen / 2
	w, l := g.Width(), g.Length()

	for y := half; y < l; y += squareLen {
		for x := half; x < w; x += squareLen {
			d.updateSquare(g, x, y, squareLen)
		}
	}
	for y := 0; y < l; y += half {
		for x := (y + half) % squareLen; x < w; x += squareLen {
			d.updateDiamond(g, x, y, squareLen)
		}
	}
}

func (d *DiamondSquare) updateSquare(g *heightmap.Grid, x, y, squareLen int) {
	half := squareLen / 2
	mean := (g.At(x-half, y-half) +
		g.At(x-half, y+half) +
		g.At(x+half, y-half) +
		g.At(x+half, y+half)) / 4
	g.SetSaturated(x, y, mean+d.offset(g, squareLen))
}

func (d *DiamondSquare) updateDiamond(g *heightmap.Grid, x, y, squareLen int) {
	half := squareLen / 2
	w, l := g.Width(), g.Length()

	var sum float64
	var n int
	// Neighbours outside the grid are skipped, not wrapped.
	for _, o := range [4][2]int{{0, -half}, {half, 0}, {0, half}, {-half, 0}} {
		nx, ny := x+o[0], y+o[1]
		if nx < 0 || ny < 0 || nx >= w || ny >= l {
			continue
		}
		sum += g.At(nx, ny)
		n++
	}
	g.SetSaturated(x, y, sum/float64(n)+d.offset(g, squareLen))
}

// offset draws a random displacement in [-amp/2, amp/2).
// Frequency uses integer division, so it is a power of two.
func (d *DiamondSquare) offset(g *heightmap.Grid, squareLen int) float64 {
	frequency := float64(g.Length() / squareLen)
	return (d.rnd.Float64() - 0.5) * d.amp(frequency)
}
