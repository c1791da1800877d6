package scene

import (
	"testing"

	"github.com/san-kum/glassbrain/internal/brain"
)

func bandSnapshot(n int, bands []float64) *brain.Snapshot {
	return &brain.Snapshot{
		ReservoirSize: n,
		Audio:         brain.AudioSpectrum{Embedding: bands},
	}
}

func TestAuditoryFlowQuietBands(t *testing.T) {
	out := NewLineBuffer(AuditoryCap)

	var f AuditoryFlow
	f.Step(bandSnapshot(10, uniformActivations(64, 0.05)), flatCloud(10), nil, out)

	if out.Count() != 0 {
		t.Errorf("bands at the floor should stay silent, got %d lines", out.Count())
	}
}

func TestAuditoryFlowScansForAuditoryTarget(t *testing.T) {
	n := 10
	regions := make([]brain.Region, n)
	regions[7] = brain.Auditory // the only auditory node
	bands := make([]float64, 2)
	bands[1] = 0.8 // band 1: scan starts at (1*5)%10 = 5
	out := NewLineBuffer(AuditoryCap)

	var f AuditoryFlow
	f.Step(bandSnapshot(n, bands), flatCloud(n), regions, out)

	if out.Count() != 1 {
		t.Fatalf("expected 1 line, got %d", out.Count())
	}
	_, to, _ := out.Segment(0)
	pos := flatCloud(n)
	if to != [3]float32{pos[21], pos[22], pos[23]} {
		t.Errorf("scan from 5 should land on node 7, got %v", to)
	}
}

func TestAuditoryFlowFallbackScatter(t *testing.T) {
	n := 10
	bands := make([]float64, 3)
	bands[2] = 0.9 // no auditory nodes anywhere: falls back to (2*13)%10 = 6
	out := NewLineBuffer(AuditoryCap)

	var f AuditoryFlow
	f.Step(bandSnapshot(n, bands), flatCloud(n), nil, out)

	if out.Count() != 1 {
		t.Fatalf("expected 1 fallback line, got %d", out.Count())
	}
	_, to, _ := out.Segment(0)
	pos := flatCloud(n)
	if to != [3]float32{pos[18], pos[19], pos[20]} {
		t.Errorf("fallback should land on node 6, got %v", to)
	}
}

func TestAuditoryFlowEarSides(t *testing.T) {
	// Two nodes on opposite sides, both auditory.
	nodePos := []float32{
		-8, 0, 0,
		8, 0, 0,
	}
	regions := []brain.Region{brain.Auditory, brain.Auditory}
	bands := []float64{0.9, 0.9} // band 0 scans from 0 (left node), band 1 from (5)%2=1 (right node)
	out := NewLineBuffer(AuditoryCap)

	var f AuditoryFlow
	f.Step(bandSnapshot(2, bands), nodePos, regions, out)

	if out.Count() != 2 {
		t.Fatalf("expected 2 lines, got %d", out.Count())
	}
	from0, _, _ := out.Segment(0)
	from1, _, _ := out.Segment(1)
	if from0[0] != -earOffsetX {
		t.Errorf("left target should anchor at the left ear, got x=%f", from0[0])
	}
	if from1[0] != earOffsetX {
		t.Errorf("right target should anchor at the right ear, got x=%f", from1[0])
	}
}

func TestAuditoryFlowCapAndEmpty(t *testing.T) {
	out := NewLineBuffer(2)

	var f AuditoryFlow
	f.Step(bandSnapshot(5, uniformActivations(64, 1.0)), flatCloud(5), nil, out)
	if out.Count() != 2 {
		t.Errorf("expected cap 2, got %d", out.Count())
	}

	f.Step(bandSnapshot(0, uniformActivations(64, 1.0)), nil, nil, out)
	if out.Count() != 0 {
		t.Error("empty cloud should draw nothing")
	}

	f.Step(nil, flatCloud(5), nil, out)
	if out.Count() != 0 {
		t.Error("nil snapshot should draw nothing")
	}
}
