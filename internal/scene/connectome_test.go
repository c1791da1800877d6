package scene

import (
	"math"
	"testing"

	"github.com/san-kum/glassbrain/internal/brain"
)

func flatCloud(n int) []float32 {
	out := make([]float32, n*3)
	for i := 0; i < n; i++ {
		out[i*3] = float32(i)
		out[i*3+1] = float32(-i)
		out[i*3+2] = float32(2 * i)
	}
	return out
}

func TestConnectomeJitterBounded(t *testing.T) {
	pos := flatCloud(10)
	snap := &brain.Snapshot{ReservoirSize: 10, Activity: make([]float64, 10)}
	buf := NewPointBuffer(10)

	var c Connectome
	c.Step(snap, pos, nil, buf, 3.7)

	for i := 0; i < 10; i++ {
		for axis := 0; axis < 3; axis++ {
			delta := math.Abs(float64(buf.Pos[i*3+axis] - pos[i*3+axis]))
			if delta > jitterAmp+1e-6 {
				t.Fatalf("node %d axis %d jitter %f exceeds amplitude", i, axis, delta)
			}
		}
	}
}

func TestConnectomeShortActivityRendersDarkish(t *testing.T) {
	pos := flatCloud(6)
	snap := &brain.Snapshot{ReservoirSize: 6, Activity: []float64{1, 1}}
	buf := NewPointBuffer(6)

	var c Connectome
	c.Step(snap, pos, nil, buf, 0)

	// Beyond the short array, activation reads zero: ambient floor only.
	for i := 2; i < 6; i++ {
		for axis := 0; axis < 3; axis++ {
			if got := buf.Color[i*3+axis]; math.Abs(float64(got)-ambientFloor) > 1e-6 {
				t.Fatalf("node %d should sit at the ambient floor, got %f", i, got)
			}
		}
	}
}

func TestConnectomeDarkensBeyondActiveCount(t *testing.T) {
	pos := flatCloud(8)
	snap := &brain.Snapshot{ReservoirSize: 3, Activity: []float64{0.5, 0.5, 0.5}}
	buf := NewPointBuffer(8)
	for i := 0; i < 8; i++ {
		buf.SetColor(i, 2, 2, 2) // stale bright remnants
	}

	var c Connectome
	c.Step(snap, pos, nil, buf, 1.0)

	for i := 3; i < 8; i++ {
		for axis := 0; axis < 3; axis++ {
			if buf.Pos[i*3+axis] != 0 || buf.Color[i*3+axis] != 0 {
				t.Fatalf("node %d past active count not forced dark", i)
			}
		}
	}
}

func TestConnectomeFlashExceedsUnit(t *testing.T) {
	pos := flatCloud(1)
	snap := &brain.Snapshot{ReservoirSize: 1, Activity: []float64{1.0}}
	buf := NewPointBuffer(1)

	var c Connectome
	c.Step(snap, pos, []brain.Region{brain.Semantic}, buf, 0)

	// Full activation: palette + flash + floor pushes past 1 for bloom.
	if buf.Color[0] <= 1.0 {
		t.Errorf("expected red channel past 1.0 at full activation, got %f", buf.Color[0])
	}
}

func TestConnectomeNilSnapshot(t *testing.T) {
	buf := NewPointBuffer(4)
	for i := 0; i < 4; i++ {
		buf.SetColor(i, 1, 1, 1)
	}

	var c Connectome
	c.Step(nil, flatCloud(4), nil, buf, 0)

	for i := range buf.Color {
		if buf.Color[i] != 0 {
			t.Fatal("nil snapshot should darken every node")
		}
	}
}

func TestConnectomeIdempotent(t *testing.T) {
	pos := flatCloud(20)
	regions := make([]brain.Region, 20)
	for i := range regions {
		regions[i] = brain.Region(i % 4)
	}
	acts := make([]float64, 20)
	for i := range acts {
		acts[i] = float64(i) / 20
	}
	snap := &brain.Snapshot{ReservoirSize: 20, Activity: acts, RegionMap: regions}

	bufA := NewPointBuffer(20)
	bufB := NewPointBuffer(20)

	var c Connectome
	c.Step(snap, pos, regions, bufA, 5.5)
	c.Step(snap, pos, regions, bufB, 5.5)
	c.Step(snap, pos, regions, bufB, 5.5) // second application, same inputs

	for i := range bufA.Pos {
		if bufA.Pos[i] != bufB.Pos[i] {
			t.Fatalf("positions diverge at %d", i)
		}
	}
	for i := range bufA.Color {
		if bufA.Color[i] != bufB.Color[i] {
			t.Fatalf("colors diverge at %d", i)
		}
	}
}
