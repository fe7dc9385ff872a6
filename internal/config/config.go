// Package config handles terrain generation settings loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/randterrain/pkg/terrain"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all generation settings.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Voronoi   VoronoiConfig   `yaml:"voronoi"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GeneratorConfig selects the base terrain algorithm and its parameters.
type GeneratorConfig struct {
	Algorithm     string              `yaml:"algorithm"` // diamond-square, perlin, octave, simplex
	Seed          int64               `yaml:"seed"`      // 0 = seed from the clock
	DiamondSquare DiamondSquareConfig `yaml:"diamond_square"`
	Perlin        PerlinConfig        `yaml:"perlin"`
	Octave        OctaveConfig        `yaml:"octave"`
	Simplex       SimplexConfig       `yaml:"simplex"`
}

// DiamondSquareConfig holds diamond-square settings.
type DiamondSquareConfig struct {
	SideExponent int    `yaml:"side_exponent"`
	Coloring     string `yaml:"coloring"`
}

// PerlinConfig holds gradient noise settings.
type PerlinConfig struct {
	Width         int    `yaml:"width"`
	Length        int    `yaml:"length"`
	SquareLen     int    `yaml:"square_len"`
	Interpolation string `yaml:"interpolation"`
}

// OctaveConfig holds layered Perlin settings.
type OctaveConfig struct {
	Width   int     `yaml:"width"`
	Length  int     `yaml:"length"`
	Alpha   float64 `yaml:"alpha"`
	Beta    float64 `yaml:"beta"`
	Octaves int     `yaml:"octaves"`
	Scale   float64 `yaml:"scale"`
}

// SimplexConfig holds layered simplex settings.
type SimplexConfig struct {
	Width       int     `yaml:"width"`
	Length      int     `yaml:"length"`
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
}

// VoronoiConfig holds region shaping settings applied after generation.
type VoronoiConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Points            int     `yaml:"points"`
	RelaxIterations   int     `yaml:"relax_iterations"`
	FeaturesPerRegion int     `yaml:"features_per_region"`
	Strength          float64 `yaml:"strength"` // fraction of each region's headroom to use
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Algorithm: "diamond-square",
			Seed:      0,
			DiamondSquare: DiamondSquareConfig{
				SideExponent: 7,
				Coloring:     "pink",
			},
			Perlin: PerlinConfig{
				Width:         129,
				Length:        129,
				SquareLen:     16,
				Interpolation: "quintic",
			},
			Octave: OctaveConfig{
				Width:   129,
				Length:  129,
				Alpha:   2,
				Beta:    2,
				Octaves: 4,
				Scale:   32,
			},
			Simplex: SimplexConfig{
				Width:       129,
				Length:      129,
				Scale:       48,
				Octaves:     4,
				Persistence: 0.5,
			},
		},
		Voronoi: VoronoiConfig{
			Enabled:           false,
			Points:            12,
			RelaxIterations:   2,
			FeaturesPerRegion: 1,
			Strength:          0.5,
		},
		Output: OutputConfig{
			Path: "terrain.hmt",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params flattens the generator section into terrain.Params for the
// configured algorithm.
func (c *Config) Params() terrain.Params {
	g := c.Generator
	p := terrain.Params{
		SideExponent:  g.DiamondSquare.SideExponent,
		Coloring:      g.DiamondSquare.Coloring,
		SquareLen:     g.Perlin.SquareLen,
		Interpolation: g.Perlin.Interpolation,
	}
	switch g.Algorithm {
	case "perlin":
		p.Width, p.Length = g.Perlin.Width, g.Perlin.Length
	case "octave":
		p.Width, p.Length = g.Octave.Width, g.Octave.Length
		p.Alpha, p.Beta = g.Octave.Alpha, g.Octave.Beta
		p.Octaves, p.Scale = g.Octave.Octaves, g.Octave.Scale
	case "simplex":
		p.Width, p.Length = g.Simplex.Width, g.Simplex.Length
		p.Octaves, p.Scale = g.Simplex.Octaves, g.Simplex.Scale
		p.Persistence = g.Simplex.Persistence
	}
	return p
}

// Validate checks the settings the pipeline relies on before any work is done.
func (c *Config) Validate() error {
	if _, err := terrain.Lookup(c.Generator.Algorithm); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	v := c.Voronoi
	if v.Enabled {
		if v.Points <= 0 {
			return fmt.Errorf("%w: voronoi.points must be positive, got %d", ErrInvalidConfig, v.Points)
		}
		if v.RelaxIterations < 0 {
			return fmt.Errorf("%w: voronoi.relax_iterations must not be negative, got %d", ErrInvalidConfig, v.RelaxIterations)
		}
		if v.FeaturesPerRegion < 0 {
			return fmt.Errorf("%w: voronoi.features_per_region must not be negative, got %d", ErrInvalidConfig, v.FeaturesPerRegion)
		}
		if v.Strength < 0 || v.Strength > 1 {
			return fmt.Errorf("%w: voronoi.strength must be in [0,1], got %v", ErrInvalidConfig, v.Strength)
		}
	}
	return nil
}
