package scene

import (
	"testing"

	"github.com/san-kum/glassbrain/internal/brain"
)

func testParams() Params {
	p := DefaultParams()
	p.MaxNodes = 120
	p.ConceptCount = 16
	p.PairTarget = 200
	p.PairAttempts = 2000
	return p
}

func testSnapshot(n int) *brain.Snapshot {
	acts := make([]float64, n)
	for i := range acts {
		acts[i] = float64(i%10) / 10
	}
	return &brain.Snapshot{
		ReservoirSize: n,
		Activity:      acts,
		Activations:   uniformActivations(16, 0.5),
		Entropy:       0.4,
		TraumaState:   brain.TraumaStable,
		Audio:         brain.AudioSpectrum{Embedding: uniformActivations(64, 0.3)},
	}
}

func TestEngineStepFillsLayers(t *testing.T) {
	e := NewEngine(testParams())
	e.Step(testSnapshot(120), 1.0)

	if !e.Reservoir.TakeDirty() {
		t.Error("reservoir should be marked dirty after a step")
	}
	if !e.Concepts.TakeDirty() {
		t.Error("concepts should be marked dirty after a step")
	}
	if e.Audio.Count() == 0 {
		t.Error("sounding bands should produce auditory lines")
	}
	if len(e.Pairs()) == 0 {
		t.Error("first step should sample candidate pairs")
	}
	if e.Inject.Count() > e.Inject.Cap() || e.Audio.Count() > e.Audio.Cap() || e.Web.Count() > e.Web.Cap() {
		t.Error("draw counts must respect caps")
	}
}

func TestEngineResamplesOnlyOnTopologyChange(t *testing.T) {
	e := NewEngine(testParams())
	snap := testSnapshot(120)

	e.Step(snap, 0.0)
	first := e.Pairs()
	e.Step(snap, 0.016)
	e.Step(snap, 0.033)
	if &e.Pairs()[0] != &first[0] {
		t.Error("pairs should be reused across frames with a stable topology")
	}

	grown := testSnapshot(120)
	grown.TopoGen = 1
	e.Step(grown, 0.05)
	if &e.Pairs()[0] == &first[0] {
		t.Error("topology change should resample pairs")
	}
}

func TestEngineIdempotentPerSnapshot(t *testing.T) {
	e := NewEngine(testParams())
	snap := testSnapshot(100)

	e.Step(snap, 2.0)
	res := make([]float32, len(e.Reservoir.Color))
	copy(res, e.Reservoir.Color)
	inject := e.Inject.Count()
	web := e.Web.Count()

	e.Step(snap, 2.0)

	for i := range res {
		if e.Reservoir.Color[i] != res[i] {
			t.Fatalf("reservoir colors diverge at %d on identical input", i)
		}
	}
	if e.Inject.Count() != inject || e.Web.Count() != web {
		t.Error("line counts diverge on identical input")
	}
}

func TestEngineNilSnapshot(t *testing.T) {
	e := NewEngine(testParams())
	e.Step(testSnapshot(120), 1.0)
	e.Step(nil, 2.0)

	for i, c := range e.Reservoir.Color {
		if c != 0 {
			t.Fatalf("reservoir color %d should be dark after nil snapshot", i)
		}
	}
	if e.Inject.Count() != 0 || e.Audio.Count() != 0 || e.Web.Count() != 0 {
		t.Error("nil snapshot should empty every line layer")
	}
}

func TestEngineShrinkingCountDarkensRemnants(t *testing.T) {
	e := NewEngine(testParams())
	e.Step(testSnapshot(120), 1.0)

	shrunk := testSnapshot(30)
	shrunk.TopoGen = 1
	e.Step(shrunk, 1.5)

	for i := 30; i < 120; i++ {
		for axis := 0; axis < 3; axis++ {
			if e.Reservoir.Color[i*3+axis] != 0 {
				t.Fatalf("node %d kept a stale color after shrink", i)
			}
			if e.Reservoir.Pos[i*3+axis] != 0 {
				t.Fatalf("node %d kept a stale position after shrink", i)
			}
		}
	}
}

func TestEngineUsesAuthoritativePositions(t *testing.T) {
	p := testParams()
	e := NewEngine(p)

	snap := testSnapshot(2)
	snap.Positions = []float32{100, 0, 0, -100, 0, 0}
	e.Step(snap, 0)

	// Jitter is bounded, so the rendered point stays near the supplied one.
	if e.Reservoir.Pos[0] < 99 || e.Reservoir.Pos[0] > 101 {
		t.Errorf("backend positions should be authoritative, got x=%f", e.Reservoir.Pos[0])
	}
}
