package layout

import (
	"math"
	"testing"

	"github.com/san-kum/glassbrain/internal/brain"
)

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(42, 500)
	b := Generate(42, 500)

	if len(a) != 1500 || len(b) != 1500 {
		t.Fatalf("expected 1500 floats, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("outputs diverge at %d: %f vs %f", i, a[i], b[i])
		}
	}

	c := Generate(43, 500)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical clouds")
	}
}

func TestGenerateBounded(t *testing.T) {
	pts := Generate(1337, brain.MaxReservoir)
	if len(pts) != brain.MaxReservoir*3 {
		t.Fatalf("expected %d floats, got %d", brain.MaxReservoir*3, len(pts))
	}

	limit := MaxExtent() + 1e-6
	for i := 0; i < len(pts); i += 3 {
		x := float64(pts[i])
		y := float64(pts[i+1])
		z := float64(pts[i+2])
		if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
			t.Fatalf("NaN at node %d", i/3)
		}
		if norm := math.Sqrt(x*x + y*y + z*z); norm > limit {
			t.Fatalf("node %d escapes the shell: norm %f > %f", i/3, norm, limit)
		}
	}
}

func TestGenerateZero(t *testing.T) {
	if pts := Generate(1, 0); pts != nil {
		t.Errorf("expected nil for n=0, got %d floats", len(pts))
	}
	if pts := Generate(1, -5); pts != nil {
		t.Errorf("expected nil for negative n, got %d floats", len(pts))
	}
}

func TestGenerateOpensFissure(t *testing.T) {
	pts := Generate(7, 2000)
	for i := 0; i < len(pts); i += 3 {
		if ax := math.Abs(float64(pts[i])); ax < fissureHalfWidth-1e-9 {
			t.Fatalf("node %d sits inside the fissure: |x|=%f", i/3, ax)
		}
	}
}

func TestConceptsForwardAndMirrored(t *testing.T) {
	pts := Concepts(1337, brain.ConceptCount)
	if len(pts) != brain.ConceptCount*3 {
		t.Fatalf("expected %d floats, got %d", brain.ConceptCount*3, len(pts))
	}

	var left, right int
	for i := 0; i < len(pts); i += 3 {
		if z := pts[i+2]; z < float32(conceptForward-conceptRadius)-1e-3 {
			t.Fatalf("concept %d not offset forward: z=%f", i/3, z)
		}
		if pts[i] < 0 {
			left++
		} else {
			right++
		}
	}
	if left == 0 || right == 0 {
		t.Errorf("mirroring collapsed to one side: left=%d right=%d", left, right)
	}
}

func TestRegions(t *testing.T) {
	positions := []float32{
		30, 0, 0, // lateral
		-30, 0, 0, // lateral, other side
		0, 0, 25, // frontal
		0, -25, 0, // basal
		0, 0, 0, // core
		30, -25, 25, // lateral wins over frontal and basal
	}
	expected := []brain.Region{
		brain.Auditory,
		brain.Auditory,
		brain.Semantic,
		brain.Limbic,
		brain.Association,
		brain.Auditory,
	}

	got := Regions(positions)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tags, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("node %d: expected %v, got %v", i, expected[i], got[i])
		}
	}

	if Regions(nil) != nil {
		t.Error("expected nil tags for empty cloud")
	}
}

func TestRandStream(t *testing.T) {
	a := NewRand(99)
	b := NewRand(99)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("streams diverge at draw %d", i)
		}
	}

	r := NewRand(0)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %f", f)
		}
		if n := r.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn out of range: %d", n)
		}
	}
}
