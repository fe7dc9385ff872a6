// Package pipeline turns a loaded config into a finished heightmap.
package pipeline

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/randterrain/internal/config"
	"github.com/Faultbox/randterrain/internal/logger"
	"github.com/Faultbox/randterrain/pkg/heightmap"
	"github.com/Faultbox/randterrain/pkg/rng"
	"github.com/Faultbox/randterrain/pkg/terrain"
	"github.com/Faultbox/randterrain/pkg/voronoi"
)

// Result is the outcome of a pipeline run.
type Result struct {
	Grid      *heightmap.Grid
	Partition *voronoi.Partition // nil when region shaping is disabled
	Algorithm string
	Seed      int64
	Elapsed   time.Duration
}

// Run generates the base terrain described by cfg and, when enabled, shapes
// it with Voronoi regions. A zero seed draws one from the clock; the seed
// actually used is reported in the result.
func Run(cfg *config.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Named("pipeline")
	start := time.Now()

	src := rng.New(cfg.Generator.Seed)
	if cfg.Generator.Seed == 0 {
		src = rng.NewTimeSeeded()
	}

	algo := cfg.Generator.Algorithm
	factory, err := terrain.Lookup(algo)
	if err != nil {
		return nil, err
	}
	gen, err := factory(cfg.Params(), src)
	if err != nil {
		return nil, fmt.Errorf("building %s generator: %w", algo, err)
	}

	log.Debug("generating", zap.String("algorithm", algo), zap.Int64("seed", src.Seed()))
	g, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating %s terrain: %w", algo, err)
	}
	log.Info("base terrain generated", append(logger.GridFields(g), zap.String("algorithm", algo))...)

	res := &Result{Grid: g, Algorithm: algo, Seed: src.Seed()}

	if cfg.Voronoi.Enabled {
		part, err := Shape(g, cfg.Voronoi, src)
		if err != nil {
			return nil, err
		}
		res.Partition = part
		log.Info("regions shaped", append(logger.GridFields(g), zap.Int("regions", part.Len()))...)
	}

	res.Elapsed = time.Since(start)
	log.Debug("pipeline finished", zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// Shape partitions g into vc.Points random regions, relaxes them and raises
// each region around randomly chosen feature points. Coefficients are sized
// from each region's headroom below 1 so the writes stay in range. g is
// modified in place.
func Shape(g *heightmap.Grid, vc config.VoronoiConfig, src rng.Source) (*voronoi.Partition, error) {
	log := logger.Named("pipeline")

	part, err := voronoi.New(g, nil)
	if err != nil {
		return nil, err
	}
	if err := part.SetUniformRandomPoints(vc.Points, src); err != nil {
		return nil, fmt.Errorf("seeding regions: %w", err)
	}
	if vc.RelaxIterations > 0 {
		before := part.Energy()
		if err := part.LloydRelax(vc.RelaxIterations); err != nil {
			return nil, fmt.Errorf("relaxing regions: %w", err)
		}
		log.Debug("relaxed",
			zap.Int("iterations", vc.RelaxIterations),
			zap.Float64("energy_before", before),
			zap.Float64("energy_after", part.Energy()),
		)
	}

	if vc.FeaturesPerRegion == 0 || vc.Strength == 0 {
		return part, nil
	}

	for i := 0; i < part.Len(); i++ {
		members := part.Members(i)
		if len(members) == 0 {
			continue
		}
		k := min(vc.FeaturesPerRegion, len(members))
		rng.Shuffle(src, members, k)
		for _, m := range members[:k] {
			if err := part.AddFeaturePoint(i, m.X, m.Y); err != nil {
				return nil, err
			}
		}

		coeffs := make([]float64, k)
		c := featureCoefficient(g, members, vc.Strength, k)
		for j := range coeffs {
			coeffs[j] = c
		}
		if err := part.ApplyFeaturePointFactors(i, coeffs); err != nil {
			return nil, fmt.Errorf("shaping region %d: %w", i, err)
		}
	}
	return part, nil
}

// featureCoefficient spreads strength times the region's headroom over k
// features. Every write rounds, so one rounding step per feature is reserved.
func featureCoefficient(g *heightmap.Grid, members []voronoi.Point, strength float64, k int) float64 {
	top := 0.0
	for _, m := range members {
		top = max(top, g.At(m.X, m.Y))
	}
	headroom := strength*(1-top) - float64(k)*0.001
	if headroom <= 0 {
		return 0
	}
	return headroom / float64(k)
}
