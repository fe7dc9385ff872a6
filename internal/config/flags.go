package config

import (
	"flag"
	"strconv"
)

// Flags holds command-line overrides. Zero values leave the config untouched.
type Flags struct {
	ConfigPath string
	Debug      bool
	Algorithm  string
	Seed       int64
	Output     string
	Width      int
	Length     int
	SideExp    *int // nil unless -n was given
	Coloring   string
	Voronoi    bool
	Points     int
	Relax      *int // nil unless -relax was given
}

// Bind registers the flags on fs so each subcommand can own its set.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Algorithm, "algo", "", "Terrain algorithm (diamond-square, perlin, octave, simplex)")
	fs.Int64Var(&f.Seed, "seed", 0, "Random seed (0 = use config)")
	fs.StringVar(&f.Output, "o", "", "Output heightmap path")
	fs.IntVar(&f.Width, "width", 0, "Grid width for noise algorithms")
	fs.IntVar(&f.Length, "length", 0, "Grid length for noise algorithms")
	fs.Func("n", "Diamond-square side exponent (side = 2^n+1)", intFlag(&f.SideExp))
	fs.StringVar(&f.Coloring, "color", "", "Diamond-square noise coloring (red, pink, white, blue, violet)")
	fs.BoolVar(&f.Voronoi, "voronoi", false, "Enable Voronoi region shaping")
	fs.IntVar(&f.Points, "points", 0, "Voronoi seed point count")
	fs.Func("relax", "Lloyd relaxation iterations", intFlag(&f.Relax))
}

func intFlag(dst **int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Algorithm != "" {
		cfg.Generator.Algorithm = f.Algorithm
	}
	if f.Seed != 0 {
		cfg.Generator.Seed = f.Seed
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
	if f.Width > 0 {
		cfg.Generator.Perlin.Width = f.Width
		cfg.Generator.Octave.Width = f.Width
		cfg.Generator.Simplex.Width = f.Width
	}
	if f.Length > 0 {
		cfg.Generator.Perlin.Length = f.Length
		cfg.Generator.Octave.Length = f.Length
		cfg.Generator.Simplex.Length = f.Length
	}
	if f.SideExp != nil {
		cfg.Generator.DiamondSquare.SideExponent = *f.SideExp
	}
	if f.Coloring != "" {
		cfg.Generator.DiamondSquare.Coloring = f.Coloring
	}
	if f.Voronoi {
		cfg.Voronoi.Enabled = true
	}
	if f.Points > 0 {
		cfg.Voronoi.Points = f.Points
	}
	if f.Relax != nil {
		cfg.Voronoi.RelaxIterations = *f.Relax
	}
}
