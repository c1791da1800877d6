package scene

import (
	"math"
	"testing"

	"github.com/san-kum/glassbrain/internal/layout"
)

func TestAcceptProbability(t *testing.T) {
	tests := []struct {
		d        float64
		expected float64
	}{
		{0.05, 1.0},            // 5/0.15 clamps to 1
		{1000, 5.0 / 1000.1},   // ~0.005, long-range fallback dominates inclusion
		{4.9, 1.0},             // right at the clamp boundary
		{9.9, 0.5},             // 5/10
	}

	for _, tt := range tests {
		if got := AcceptProbability(tt.d); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("d=%f: expected %f, got %f", tt.d, tt.expected, got)
		}
	}
}

func TestSamplePairsNoSelfLoops(t *testing.T) {
	positions := layout.Generate(1337, 400)
	pairs := SamplePairs(positions, 400, SamplerTarget, SamplerMaxAttempts, 7)

	if len(pairs) == 0 {
		t.Fatal("expected pairs from a dense cloud")
	}
	for _, p := range pairs {
		if p.I == p.J {
			t.Fatalf("self loop sampled: %d", p.I)
		}
		if p.I < 0 || p.J < 0 || int(p.I) >= 400 || int(p.J) >= 400 {
			t.Fatalf("pair out of range: %v", p)
		}
	}
}

func TestSamplePairsDeterministic(t *testing.T) {
	positions := layout.Generate(1, 200)

	a := SamplePairs(positions, 200, 500, 5000, 42)
	b := SamplePairs(positions, 200, 500, 5000, 42)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pair %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSamplePairsAcceptanceFalls(t *testing.T) {
	base := layout.Generate(9, 300)

	// Same cloud, stretched: mean pairwise distance grows tenfold.
	far := make([]float32, len(base))
	for i, v := range base {
		far[i] = v * 10
	}

	attempts := 4000
	near := SamplePairs(base, 300, attempts, attempts, 3)
	spread := SamplePairs(far, 300, attempts, attempts, 3)

	if len(spread) >= len(near) {
		t.Errorf("acceptance should fall with distance: near=%d spread=%d", len(near), len(spread))
	}
	if len(spread) == 0 {
		t.Error("long-range fallback should keep some pairs alive")
	}
}

func TestSamplePairsBoundedOnDegenerateCloud(t *testing.T) {
	// Every point identical: d=0 accepts always; target bounds the work.
	positions := make([]float32, 300)
	pairs := SamplePairs(positions, 100, 50, 10000, 1)
	if len(pairs) != 50 {
		t.Errorf("expected exactly the target on an always-accept cloud, got %d", len(pairs))
	}
}

func TestSamplePairsDegenerateInputs(t *testing.T) {
	if pairs := SamplePairs(nil, 10, 100, 100, 1); pairs != nil {
		t.Error("expected nil for empty cloud")
	}
	if pairs := SamplePairs(make([]float32, 3), 1, 100, 100, 1); pairs != nil {
		t.Error("expected nil for a single point")
	}
	positions := layout.Generate(2, 50)
	if pairs := SamplePairs(positions, 50, 0, 100, 1); pairs != nil {
		t.Error("expected nil for zero target")
	}
}
