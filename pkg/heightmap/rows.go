package heightmap

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// FromRows builds a grid from row-major heights, rows[y][x].
// Every row must have the same non-zero length and every value must be a
// valid height.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidDimensions)
	}
	g := newGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrInvalidDimensions, y, len(row), g.width)
		}
		for x, v := range row {
			if err := g.Set(x, y, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Rows returns a copy of the heights as rows[y][x].
func (g *Grid) Rows() [][]float64 {
	rows := make([][]float64, g.length)
	for y := range rows {
		rows[y] = make([]float64, g.width)
		copy(rows[y], g.cells[y*g.width:(y+1)*g.width])
	}
	return rows
}

// Stats summarises the height distribution of a grid.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Stats returns the minimum, maximum and mean height.
func (g *Grid) Stats() Stats {
	return Stats{
		Min:  floats.Min(g.cells),
		Max:  floats.Max(g.cells),
		Mean: floats.Sum(g.cells) / float64(len(g.cells)),
	}
}
