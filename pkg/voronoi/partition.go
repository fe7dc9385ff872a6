// Package voronoi partitions a height grid into nearest-point regions and
// shapes heights inside each region from feature points.
package voronoi

import (
	"errors"
	"fmt"

	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/rng"
)

// Partition errors.
var (
	ErrOutOfRegion             = errors.New("point outside region")
	ErrInvalidCoefficientCount = errors.New("coefficient count does not match feature points")
	ErrInvalidPoint            = errors.New("invalid seed point")
	ErrInvalidPointIndex       = errors.New("invalid point index")
	ErrInvalidPointCount       = errors.New("invalid point count")
	ErrInvalidIterations       = errors.New("invalid relaxation iterations")
	ErrFeatureNotFound         = errors.New("feature point not found")
)

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Partition assigns every cell of a grid to its nearest seed point.
//
// Region data is always derived from the current points: every change to
// the point set is followed by a full Rebuild before the call returns.
type Partition struct {
	grid     *heightmap.Grid
	points   []Point
	regionOf []int     // row-major, -1 when there are no points
	members  [][]Point // row-major scan order
	features [][]Point
}

// New creates a partition over grid seeded with points.
func New(grid *heightmap.Grid, points []Point) (*Partition, error) {
	p := &Partition{grid: grid}
	if err := p.SetPoints(points); err != nil {
		return nil, err
	}
	return p, nil
}

// Grid returns the underlying height grid.
func (p *Partition) Grid() *heightmap.Grid { return p.grid }

// Len returns the number of seed points.
func (p *Partition) Len() int { return len(p.points) }

// Points returns a copy of the seed points in insertion order.
func (p *Partition) Points() []Point {
	return append([]Point(nil), p.points...)
}

// SetPoints replaces the seed points and rebuilds. Feature points are
// discarded.
func (p *Partition) SetPoints(points []Point) error {
	seen := make(map[Point]bool, len(points))
	for _, pt := range points {
		if err := p.checkPoint(pt); err != nil {
			return err
		}
		if seen[pt] {
			return fmt.Errorf("%w: duplicate %s", ErrInvalidPoint, pt)
		}
		seen[pt] = true
	}
	p.points = append([]Point(nil), points...)
	p.features = make([][]Point, len(points))
	p.Rebuild()
	return nil
}

func (p *Partition) checkPoint(pt Point) error {
	if pt.X < 0 || pt.Y < 0 || pt.X >= p.grid.Width() || pt.Y >= p.grid.Length() {
		return fmt.Errorf("%w: %s outside %dx%d", ErrInvalidPoint, pt, p.grid.Width(), p.grid.Length())
	}
	return nil
}

// AddPoint appends a seed point and rebuilds.
func (p *Partition) AddPoint(x, y int) error {
	pt := Point{x, y}
	if err := p.checkPoint(pt); err != nil {
		return err
	}
	for _, existing := range p.points {
		if existing == pt {
			return fmt.Errorf("%w: duplicate %s", ErrInvalidPoint, pt)
		}
	}
	p.points = append(p.points, pt)
	p.features = append(p.features, nil)
	p.Rebuild()
	return nil
}

// SetUniformRandomPoints replaces the seed points with n distinct uniformly
// random cells and rebuilds.
func (p *Partition) SetUniformRandomPoints(n int, src rng.Source) error {
	w, l := p.grid.Width(), p.grid.Length()
	if n <= 0 || n > w*l {
		return fmt.Errorf("%w: %d (grid has %d cells)", ErrInvalidPointCount, n, w*l)
	}
	cells := make([]int, w*l)
	for i := range cells {
		cells[i] = i
	}
	rng.Shuffle(src, cells, n)

	points := make([]Point, n)
	for i, c := range cells[:n] {
		points[i] = Point{c % w, c / w}
	}
	return p.SetPoints(points)
}

// Rebuild recomputes region assignment and membership from the points.
//
// Each cell scans the points in insertion order and keeps the first one at
// the strictly smallest squared distance, so ties go to the earliest point.
func (p *Partition) Rebuild() {
	w, l := p.grid.Width(), p.grid.Length()
	p.regionOf = make([]int, w*l)
	p.members = make([][]Point, len(p.points))

	for y := 0; y < l; y++ {
		for x := 0; x < w; x++ {
			best := -1
			bestDist := 0
			for i, pt := range p.points {
				d := distSq(x, y, pt.X, pt.Y)
				if best < 0 || d < bestDist {
					best, bestDist = i, d
				}
			}
			p.regionOf[y*w+x] = best
			if best >= 0 {
				p.members[best] = append(p.members[best], Point{x, y})
			}
		}
	}
	p.pruneFeatures()
}

// pruneFeatures drops feature points that no longer lie in their region.
func (p *Partition) pruneFeatures() {
	for i, fps := range p.features {
		kept := fps[:0]
		for _, fp := range fps {
			if p.RegionOf(fp.X, fp.Y) == i {
				kept = append(kept, fp)
			}
		}
		p.features[i] = kept
	}
}

func distSq(x0, y0, x1, y1 int) int {
	dx, dy := x0-x1, y0-y1
	return dx*dx + dy*dy
}

// RegionOf returns the index of the point owning (x, y), or -1 when the
// partition has no points. Coordinates wrap like the grid.
func (p *Partition) RegionOf(x, y int) int {
	x, y = p.grid.Wrap(x, y)
	return p.regionOf[y*p.grid.Width()+x]
}

func (p *Partition) checkIndex(i int) error {
	if i < 0 || i >= len(p.points) {
		return fmt.Errorf("%w: %d (have %d points)", ErrInvalidPointIndex, i, len(p.points))
	}
	return nil
}

// Members returns the cells of region i in row-major order.
// It returns nil for an invalid index.
func (p *Partition) Members(i int) []Point {
	if p.checkIndex(i) != nil {
		return nil
	}
	return append([]Point(nil), p.members[i]...)
}

// Contains reports whether (x, y) belongs to region i.
func (p *Partition) Contains(i, x, y int) bool {
	if x < 0 || y < 0 || x >= p.grid.Width() || y >= p.grid.Length() {
		return false
	}
	return p.checkIndex(i) == nil && p.RegionOf(x, y) == i
}

// bounds returns the min and max member coordinates of region i.
func (p *Partition) bounds(i int) (minX, minY, maxX, maxY int, ok bool) {
	if p.checkIndex(i) != nil || len(p.members[i]) == 0 {
		return 0, 0, 0, 0, false
	}
	first := p.members[i][0]
	minX, maxX, minY, maxY = first.X, first.X, first.Y, first.Y
	for _, m := range p.members[i][1:] {
		minX = min(minX, m.X)
		maxX = max(maxX, m.X)
		minY = min(minY, m.Y)
		maxY = max(maxY, m.Y)
	}
	return minX, minY, maxX, maxY, true
}

// BoundingWidth returns max-min+1 of the member x coordinates of region i,
// or 0 for an empty region.
func (p *Partition) BoundingWidth(i int) int {
	minX, _, maxX, _, ok := p.bounds(i)
	if !ok {
		return 0
	}
	return maxX - minX + 1
}

// BoundingLength returns max-min+1 of the member y coordinates of region i,
// or 0 for an empty region.
func (p *Partition) BoundingLength(i int) int {
	_, minY, _, maxY, ok := p.bounds(i)
	if !ok {
		return 0
	}
	return maxY - minY + 1
}

// neighbourRegions returns the distinct regions among (x, y) and its eight
// wrap-around neighbours.
func (p *Partition) neighbourRegions(x, y int) map[int]struct{} {
	regions := make(map[int]struct{}, 3)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			regions[p.RegionOf(x+dx, y+dy)] = struct{}{}
		}
	}
	return regions
}

// EdgeCells returns the members of region i with at least one of their
// eight wrap-around neighbours in another region.
func (p *Partition) EdgeCells(i int) []Point {
	var edges []Point
	for _, m := range p.Members(i) {
		if len(p.neighbourRegions(m.X, m.Y)) > 1 {
			edges = append(edges, m)
		}
	}
	return edges
}

// CornerCells returns the edge cells of region i whose neighbourhood,
// counting the cell itself, touches three or more regions.
func (p *Partition) CornerCells(i int) []Point {
	var corners []Point
	for _, m := range p.Members(i) {
		if len(p.neighbourRegions(m.X, m.Y)) >= 3 {
			corners = append(corners, m)
		}
	}
	return corners
}
