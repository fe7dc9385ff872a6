package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Generator.Algorithm != "diamond-square" {
		t.Errorf("expected algorithm diamond-square, got %s", cfg.Generator.Algorithm)
	}
	if cfg.Generator.Seed != 0 {
		t.Errorf("expected seed 0, got %d", cfg.Generator.Seed)
	}
	if cfg.Generator.DiamondSquare.SideExponent != 7 {
		t.Errorf("expected side exponent 7, got %d", cfg.Generator.DiamondSquare.SideExponent)
	}
	if cfg.Generator.DiamondSquare.Coloring != "pink" {
		t.Errorf("expected coloring pink, got %s", cfg.Generator.DiamondSquare.Coloring)
	}
	if cfg.Generator.Perlin.SquareLen != 16 {
		t.Errorf("expected square length 16, got %d", cfg.Generator.Perlin.SquareLen)
	}
	if cfg.Generator.Perlin.Interpolation != "quintic" {
		t.Errorf("expected quintic interpolation, got %s", cfg.Generator.Perlin.Interpolation)
	}
	if cfg.Voronoi.Enabled {
		t.Error("expected voronoi disabled by default")
	}
	if cfg.Voronoi.Points != 12 {
		t.Errorf("expected 12 voronoi points, got %d", cfg.Voronoi.Points)
	}
	if cfg.Output.Path != "terrain.hmt" {
		t.Errorf("expected output terrain.hmt, got %s", cfg.Output.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
generator:
  algorithm: perlin
  seed: 42
  diamond_square:
    side_exponent: 5
  perlin:
    width: 64
    length: 48
    square_len: 8
    interpolation: linear
voronoi:
  enabled: true
  points: 5
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Generator.Algorithm != "perlin" {
		t.Errorf("expected algorithm perlin, got %s", cfg.Generator.Algorithm)
	}
	if cfg.Generator.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Generator.Seed)
	}
	if cfg.Generator.DiamondSquare.SideExponent != 5 {
		t.Errorf("expected side exponent 5, got %d", cfg.Generator.DiamondSquare.SideExponent)
	}
	if cfg.Generator.Perlin.Width != 64 || cfg.Generator.Perlin.Length != 48 {
		t.Errorf("expected perlin 64x48, got %dx%d", cfg.Generator.Perlin.Width, cfg.Generator.Perlin.Length)
	}
	if cfg.Generator.Perlin.Interpolation != "linear" {
		t.Errorf("expected linear interpolation, got %s", cfg.Generator.Perlin.Interpolation)
	}
	if !cfg.Voronoi.Enabled || cfg.Voronoi.Points != 5 {
		t.Errorf("expected voronoi enabled with 5 points, got %+v", cfg.Voronoi)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// Unset fields keep defaults
	if cfg.Generator.DiamondSquare.Coloring != "pink" {
		t.Errorf("expected default coloring pink, got %s", cfg.Generator.DiamondSquare.Coloring)
	}
	if cfg.Voronoi.RelaxIterations != 2 {
		t.Errorf("expected default relax iterations 2, got %d", cfg.Voronoi.RelaxIterations)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	if err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Chdir(tmpDir)

	if path := FindConfigFile(); path != "" {
		t.Skipf("found config at %s, skipping", path)
	}

	if err := os.WriteFile("terrain.yaml", []byte("generator:\n  seed: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if path := FindConfigFile(); path != "./terrain.yaml" {
		t.Errorf("expected ./terrain.yaml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		flags  Flags
		verify func(*Config) bool
	}{
		{
			name:   "debug flag",
			flags:  Flags{Debug: true},
			verify: func(c *Config) bool { return c.Logging.Level == "debug" },
		},
		{
			name:   "algorithm flag",
			flags:  Flags{Algorithm: "simplex"},
			verify: func(c *Config) bool { return c.Generator.Algorithm == "simplex" },
		},
		{
			name:   "seed flag",
			flags:  Flags{Seed: 99},
			verify: func(c *Config) bool { return c.Generator.Seed == 99 },
		},
		{
			name:  "size flags",
			flags: Flags{Width: 20, Length: 10},
			verify: func(c *Config) bool {
				return c.Generator.Perlin.Width == 20 && c.Generator.Simplex.Length == 10 && c.Generator.Octave.Width == 20
			},
		},
		{
			name:   "side exponent zero",
			flags:  Flags{SideExp: intPtr(0)},
			verify: func(c *Config) bool { return c.Generator.DiamondSquare.SideExponent == 0 },
		},
		{
			name:   "side exponent unset",
			flags:  Flags{},
			verify: func(c *Config) bool { return c.Generator.DiamondSquare.SideExponent == 7 },
		},
		{
			name:  "voronoi flags",
			flags: Flags{Voronoi: true, Points: 3, Relax: intPtr(0)},
			verify: func(c *Config) bool {
				return c.Voronoi.Enabled && c.Voronoi.Points == 3 && c.Voronoi.RelaxIterations == 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.flags.apply(cfg)
			if !tt.verify(cfg) {
				t.Errorf("flag not applied correctly: %+v", cfg)
			}
		})
	}
}

func TestFlagsBind(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Bind(fs)

	if err := fs.Parse([]string{"-algo", "perlin", "-n", "4", "-relax", "0", "-o", "out.hmt"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.Algorithm != "perlin" || f.Output != "out.hmt" {
		t.Errorf("unexpected flags: %+v", f)
	}
	if f.SideExp == nil || *f.SideExp != 4 {
		t.Errorf("expected -n 4, got %v", f.SideExp)
	}
	if f.Relax == nil || *f.Relax != 0 {
		t.Errorf("expected -relax 0, got %v", f.Relax)
	}

	bad := flag.NewFlagSet("bad", flag.ContinueOnError)
	bad.SetOutput(new(discard))
	new(Flags).Bind(bad)
	if err := bad.Parse([]string{"-n", "x"}); err == nil {
		t.Error("expected error for non-numeric -n")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
generator:
  seed: 7
  diamond_square:
    side_exponent: 3
    coloring: blue
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(&Flags{ConfigPath: configPath, SideExp: intPtr(5)})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Flag overrides file
	if cfg.Generator.DiamondSquare.SideExponent != 5 {
		t.Errorf("expected flag side exponent 5, got %d", cfg.Generator.DiamondSquare.SideExponent)
	}
	// File overrides default
	if cfg.Generator.DiamondSquare.Coloring != "blue" {
		t.Errorf("expected file coloring blue, got %s", cfg.Generator.DiamondSquare.Coloring)
	}
	if cfg.Generator.Seed != 7 {
		t.Errorf("expected file seed 7, got %d", cfg.Generator.Seed)
	}
	// Default survives
	if cfg.Output.Path != "terrain.hmt" {
		t.Errorf("expected default output, got %s", cfg.Output.Path)
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("generator:\n  algorithm: fractal-magic\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := Load(&Flags{ConfigPath: configPath}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Load(&Flags{ConfigPath: filepath.Join(tmpDir, "missing.yaml")}); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown algorithm", func(c *Config) { c.Generator.Algorithm = "nope" }, true},
		{"voronoi disabled ignores bounds", func(c *Config) { c.Voronoi.Points = 0 }, false},
		{"zero points", func(c *Config) { c.Voronoi.Enabled = true; c.Voronoi.Points = 0 }, true},
		{"negative relax", func(c *Config) { c.Voronoi.Enabled = true; c.Voronoi.RelaxIterations = -1 }, true},
		{"negative features", func(c *Config) { c.Voronoi.Enabled = true; c.Voronoi.FeaturesPerRegion = -2 }, true},
		{"strength above one", func(c *Config) { c.Voronoi.Enabled = true; c.Voronoi.Strength = 1.5 }, true},
		{"valid voronoi", func(c *Config) { c.Voronoi.Enabled = true }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParams(t *testing.T) {
	cfg := Default()

	p := cfg.Params()
	if p.SideExponent != 7 || p.Coloring != "pink" {
		t.Errorf("unexpected diamond-square params: %+v", p)
	}

	cfg.Generator.Algorithm = "simplex"
	p = cfg.Params()
	if p.Width != 129 || p.Length != 129 {
		t.Errorf("expected simplex size 129x129, got %dx%d", p.Width, p.Length)
	}
	if p.Scale != 48 || p.Persistence != 0.5 || p.Octaves != 4 {
		t.Errorf("unexpected simplex params: %+v", p)
	}

	cfg.Generator.Algorithm = "octave"
	cfg.Generator.Octave.Width = 10
	p = cfg.Params()
	if p.Width != 10 || p.Alpha != 2 || p.Scale != 32 {
		t.Errorf("unexpected octave params: %+v", p)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Generator.Seed = 1234

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if loaded.Generator.Seed != 1234 {
		t.Errorf("expected seed 1234, got %d", loaded.Generator.Seed)
	}
}
