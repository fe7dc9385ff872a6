package voronoi

import (
	"fmt"
	"math"
)

// FeaturePoints returns a copy of the feature points of region i in
// insertion order.
func (p *Partition) FeaturePoints(i int) []Point {
	if p.checkIndex(i) != nil {
		return nil
	}
	return append([]Point(nil), p.features[i]...)
}

func (p *Partition) checkMember(i, x, y int) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	if !p.Contains(i, x, y) {
		return fmt.Errorf("%w: (%d,%d) not in region %d", ErrOutOfRegion, x, y, i)
	}
	return nil
}

// AddFeaturePoint appends (x, y) to the feature points of region i.
// The cell must be a member of the region.
func (p *Partition) AddFeaturePoint(i, x, y int) error {
	if err := p.checkMember(i, x, y); err != nil {
		return err
	}
	p.features[i] = append(p.features[i], Point{x, y})
	return nil
}

// RemoveFeaturePoint removes the first occurrence of (x, y) from the
// feature points of region i.
func (p *Partition) RemoveFeaturePoint(i, x, y int) error {
	if err := p.checkMember(i, x, y); err != nil {
		return err
	}
	for j, fp := range p.features[i] {
		if fp.X == x && fp.Y == y {
			p.features[i] = append(p.features[i][:j], p.features[i][j+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: (%d,%d) in region %d", ErrFeatureNotFound, x, y, i)
}

// ApplyFeaturePointFactors raises every member cell of region i by
//
//	sum_k coeffs[k] * dist(cell, feature_k) / diag
//
// where diag is the diagonal of the region's bounding box, so each distance
// factor lies in [0, 1]. Each term is written through Grid.Set; the first
// write leaving [0, 1] aborts the call with heightmap.ErrHeightOutOfBounds
// and earlier cells keep their new heights.
func (p *Partition) ApplyFeaturePointFactors(i int, coeffs []float64) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	fps := p.features[i]
	if len(coeffs) != len(fps) {
		return fmt.Errorf("%w: got %d, region %d has %d", ErrInvalidCoefficientCount, len(coeffs), i, len(fps))
	}

	bw := float64(p.BoundingWidth(i))
	bl := float64(p.BoundingLength(i))
	diagSq := bw*bw + bl*bl

	for _, m := range p.members[i] {
		for k, fp := range fps {
			factor := math.Sqrt(float64(distSq(m.X, m.Y, fp.X, fp.Y)) / diagSq)
			h := p.grid.At(m.X, m.Y) + coeffs[k]*factor
			if err := p.grid.Set(m.X, m.Y, h); err != nil {
				return fmt.Errorf("region %d feature %s: %w", i, fp, err)
			}
		}
	}
	return nil
}
