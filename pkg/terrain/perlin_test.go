package terrain

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/randterrain/pkg/rng"
)

func TestPerlin_SampleInRange(t *testing.T) {
	field, err := NewPerlinField(8, 6, 4, rng.New(5))
	if err != nil {
		t.Fatalf("NewPerlinField failed: %v", err)
	}
	q := rng.New(6)
	for i := 0; i < 10000; i++ {
		x := q.Float64() * 48
		y := q.Float64() * 32
		for _, interp := range []Interpolation{Linear, Quintic} {
			v := field.Sample(x, y, interp)
			if v < 0 || v > 1 {
				t.Fatalf("Sample(%v, %v, %s) = %v, outside [0,1]", x, y, interp, v)
			}
		}
	}
}

func TestPerlin_LatticeNodesAgree(t *testing.T) {
	field, err := NewPerlinField(4, 3, 3, rng.New(8))
	if err != nil {
		t.Fatal(err)
	}
	for ny := 0; ny <= 3; ny++ {
		for nx := 0; nx <= 3; nx++ {
			x, y := float64(nx*4), float64(ny*4)
			lin := field.Sample(x, y, Linear)
			quin := field.Sample(x, y, Quintic)
			if lin != quin {
				t.Errorf("node (%d,%d): linear %v != quintic %v", nx, ny, lin, quin)
			}
			// The displacement to the node itself is zero.
			if lin != 0.5 {
				t.Errorf("node (%d,%d) = %v, want 0.5", nx, ny, lin)
			}
		}
	}
}

func TestPerlin_InterpolationsDifferBetweenNodes(t *testing.T) {
	field, err := NewPerlinField(16, 4, 4, rng.New(21))
	if err != nil {
		t.Fatal(err)
	}
	differ := false
	for y := 0; y < 64 && !differ; y += 3 {
		for x := 0; x < 64; x += 5 {
			if field.Sample(float64(x), float64(y), Linear) != field.Sample(float64(x), float64(y), Quintic) {
				differ = true
				break
			}
		}
	}
	if !differ {
		t.Error("expected linear and quintic to differ somewhere off the lattice")
	}
}

func TestPerlin_FarEdgeUsesBoundaryNode(t *testing.T) {
	field, err := NewPerlinField(4, 2, 2, rng.New(3))
	if err != nil {
		t.Fatal(err)
	}
	// The far corner is a lattice node; beyond it the sample is clamped.
	if v := field.Sample(8, 8, Quintic); v != 0.5 {
		t.Errorf("far corner = %v, want 0.5", v)
	}
	if a, b := field.Sample(8, 5, Linear), field.Sample(20, 5, Linear); a != b {
		t.Errorf("beyond-edge sample %v differs from edge sample %v", b, a)
	}
}

func TestPerlin_Generate(t *testing.T) {
	field, err := NewPerlinFieldFor(33, 20, 8, rng.New(4))
	if err != nil {
		t.Fatal(err)
	}
	ws, ls := field.Squares()
	if ws != 4 || ls != 3 {
		t.Errorf("Squares() = %d,%d, want 4,3", ws, ls)
	}
	g, err := field.Generate(33, 20, Quintic)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if g.Width() != 33 || g.Length() != 20 {
		t.Errorf("expected 33x20, got %dx%d", g.Width(), g.Length())
	}
	checkBounded(t, g)
	if got, want := g.At(3, 5), field.Sample(3, 5, Quintic); math.Abs(got-want) > 0.0005 {
		t.Errorf("grid (3,5) = %v, sample = %v", got, want)
	}
}

func TestPerlin_InvalidSize(t *testing.T) {
	if _, err := NewPerlinField(0, 1, 1, rng.New(1)); !errors.Is(err, ErrInvalidFieldSize) {
		t.Errorf("expected ErrInvalidFieldSize, got %v", err)
	}
	if _, err := NewPerlinFieldFor(10, -1, 4, rng.New(1)); !errors.Is(err, ErrInvalidFieldSize) {
		t.Errorf("expected ErrInvalidFieldSize, got %v", err)
	}
}

func TestInterpolationWeight(t *testing.T) {
	tests := []struct {
		interp Interpolation
		w      float64
		want   float64
	}{
		{Linear, 0, 0},
		{Linear, 0.3, 0.3},
		{Linear, 1, 1},
		{Quintic, 0, 0},
		{Quintic, 0.5, 0.5},
		{Quintic, 1, 1},
	}
	for _, tt := range tests {
		if got := tt.interp.Weight(tt.w); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s.Weight(%v) = %v, want %v", tt.interp, tt.w, got, tt.want)
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	if i, err := ParseInterpolation("Quintic"); err != nil || i != Quintic {
		t.Errorf("ParseInterpolation(Quintic) = %v, %v", i, err)
	}
	if i, err := ParseInterpolation("linear"); err != nil || i != Linear {
		t.Errorf("ParseInterpolation(linear) = %v, %v", i, err)
	}
	if _, err := ParseInterpolation("cubic"); !errors.Is(err, ErrUnknownInterp) {
		t.Errorf("expected ErrUnknownInterp, got %v", err)
	}
}
