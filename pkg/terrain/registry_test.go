package terrain

import (
	"errors"
	"testing"

	"github.com/Faultbox/randterrain/pkg/rng"
)

func defaultParams() Params {
	return Params{
		Width:         40,
		Length:        30,
		SideExponent:  4,
		Coloring:      "pink",
		SquareLen:     8,
		Interpolation: "quintic",
		Alpha:         2,
		Beta:          2,
		Octaves:       3,
		Scale:         16,
		Persistence:   0.5,
	}
}

func TestRegistry_AllAlgorithms(t *testing.T) {
	want := map[string][2]int{
		"diamond-square": {17, 17},
		"perlin":         {40, 30},
		"octave":         {40, 30},
		"simplex":        {40, 30},
	}
	for name, size := range want {
		t.Run(name, func(t *testing.T) {
			factory, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup(%q) failed: %v", name, err)
			}
			gen, err := factory(defaultParams(), rng.New(12))
			if err != nil {
				t.Fatalf("factory failed: %v", err)
			}
			g, err := gen.Generate()
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if g.Width() != size[0] || g.Length() != size[1] {
				t.Errorf("size %dx%d, want %dx%d", g.Width(), g.Length(), size[0], size[1])
			}
			checkBounded(t, g)
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	names := Names()
	expected := []string{"diamond-square", "octave", "perlin", "simplex"}
	if len(names) != len(expected) {
		t.Fatalf("Names() = %v, want %v", names, expected)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], expected[i])
		}
	}
}

func TestRegistry_Unknown(t *testing.T) {
	if _, err := Lookup("fault-line"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestRegistry_BadParams(t *testing.T) {
	p := defaultParams()
	p.Coloring = "ultraviolet"
	factory, _ := Lookup("diamond-square")
	if _, err := factory(p, rng.New(1)); !errors.Is(err, ErrUnknownColoring) {
		t.Errorf("expected ErrUnknownColoring, got %v", err)
	}

	p = defaultParams()
	p.Interpolation = "cosine"
	factory, _ = Lookup("perlin")
	if _, err := factory(p, rng.New(1)); !errors.Is(err, ErrUnknownInterp) {
		t.Errorf("expected ErrUnknownInterp, got %v", err)
	}
}

func TestOctave_StretchesToFullRange(t *testing.T) {
	o, err := NewOctave(2, 2, 3, 10, rng.New(77))
	if err != nil {
		t.Fatal(err)
	}
	g, err := o.Generate(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	s := g.Stats()
	if s.Min != 0 || s.Max != 1 {
		t.Errorf("expected range [0,1], got [%v,%v]", s.Min, s.Max)
	}
}

func TestSimplex_Deterministic(t *testing.T) {
	a, err := NewSimplex(12, 4, 0.5, rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSimplex(12, 4, 0.5, rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	ga, err := a.Generate(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	gb, err := b.Generate(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !ga.Equal(gb) {
		t.Error("expected equal grids for equal seeds")
	}
	checkBounded(t, ga)
}

func TestOctaveSimplex_InvalidParams(t *testing.T) {
	if _, err := NewOctave(2, 2, 0, 10, rng.New(1)); !errors.Is(err, ErrInvalidFieldSize) {
		t.Errorf("expected ErrInvalidFieldSize, got %v", err)
	}
	if _, err := NewSimplex(0, 2, 0.5, rng.New(1)); !errors.Is(err, ErrInvalidFieldSize) {
		t.Errorf("expected ErrInvalidFieldSize, got %v", err)
	}
}
