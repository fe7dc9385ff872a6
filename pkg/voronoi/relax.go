package voronoi

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Centroid returns the mean member coordinate of region i. ok is false for
// an empty or invalid region.
func (p *Partition) Centroid(i int) (cx, cy float64, ok bool) {
	if p.checkIndex(i) != nil || len(p.members[i]) == 0 {
		return 0, 0, false
	}
	xs := make([]float64, len(p.members[i]))
	ys := make([]float64, len(p.members[i]))
	for j, m := range p.members[i] {
		xs[j] = float64(m.X)
		ys[j] = float64(m.Y)
	}
	n := float64(len(xs))
	return floats.Sum(xs) / n, floats.Sum(ys) / n, true
}

// LloydRelax moves every point to the centroid of its region and rebuilds,
// iters times.
//
// Centroids are rounded to the nearest cell. A point whose rounded centroid
// is already taken by an earlier point in the same pass keeps its position;
// if that is taken too it moves to the first free cell of its region. Empty
// regions leave their point in place.
func (p *Partition) LloydRelax(iters int) error {
	if iters < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, iters)
	}
	if len(p.points) == 0 {
		return fmt.Errorf("%w: no points to relax", ErrInvalidPointCount)
	}
	for it := 0; it < iters; it++ {
		p.relaxOnce()
	}
	return nil
}

func (p *Partition) relaxOnce() {
	next := make([]Point, len(p.points))
	taken := make(map[Point]bool, len(p.points))

	for i, old := range p.points {
		candidate := old
		if cx, cy, ok := p.Centroid(i); ok {
			candidate = Point{int(math.Round(cx)), int(math.Round(cy))}
		}
		if taken[candidate] {
			candidate = old
		}
		if taken[candidate] {
			for _, m := range p.members[i] {
				if !taken[m] {
					candidate = m
					break
				}
			}
		}
		next[i] = candidate
		taken[candidate] = true
	}
	p.points = next
	p.Rebuild()
}

// Energy returns the sum over all cells of the squared distance to their
// region's point.
func (p *Partition) Energy() float64 {
	per := make([]float64, len(p.points))
	for i, pt := range p.points {
		for _, m := range p.members[i] {
			per[i] += float64(distSq(m.X, m.Y, pt.X, pt.Y))
		}
	}
	return floats.Sum(per)
}
