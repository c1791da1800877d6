package record

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/san-kum/glassbrain/internal/brain"
)

func testSnapshot(size int, cortisol float64) *brain.Snapshot {
	activity := make([]float64, size)
	for i := range activity {
		activity[i] = float64(i) / float64(size)
	}
	return &brain.Snapshot{
		ReservoirSize: size,
		Activity:      activity,
		Cortisol:      cortisol,
		TraumaState:   brain.TraumaStable,
	}
}

func TestRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	w, err := store.Begin("synth", 42)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := w.Append(0.0, testSnapshot(10, 0.2)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := w.Append(0.083, testSnapshot(12, 0.9)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	meta, err := store.Load(w.ID())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Source != "synth" {
		t.Errorf("expected source synth, got %s", meta.Source)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Packets != 2 {
		t.Errorf("expected 2 packets, got %d", meta.Packets)
	}
	if math.Abs(meta.Duration-0.083) > 1e-9 {
		t.Errorf("expected duration 0.083, got %f", meta.Duration)
	}

	r, err := store.Open(w.ID())
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer r.Close()

	first, err := r.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if first.Snap.ReservoirSize != 10 {
		t.Errorf("expected size 10, got %d", first.Snap.ReservoirSize)
	}
	if len(first.Snap.Activity) != 10 {
		t.Errorf("expected 10 activity values, got %d", len(first.Snap.Activity))
	}

	second, err := r.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if math.Abs(second.T-0.083) > 1e-9 {
		t.Errorf("expected t=0.083, got %f", second.T)
	}
	if math.Abs(second.Snap.Cortisol-0.9) > 1e-9 {
		t.Errorf("expected cortisol 0.9, got %f", second.Snap.Cortisol)
	}

	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF after last frame, got %v", err)
	}
}

func TestListSkipsIncomplete(t *testing.T) {
	store := New(t.TempDir())

	w, err := store.Begin("ws", 1)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	w.Append(0, testSnapshot(4, 0.1))
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	// A run that never closed has no meta.json.
	if _, err := store.Begin("ws", 2); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 completed run, got %d", len(runs))
	}
	if runs[0].ID != w.ID() {
		t.Errorf("expected run %s, got %s", w.ID(), runs[0].ID)
	}

	latest, err := store.Latest()
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest != w.ID() {
		t.Errorf("expected latest %s, got %s", w.ID(), latest)
	}
}

func TestListEmptyDir(t *testing.T) {
	store := New(t.TempDir() + "/missing")
	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
	if _, err := store.Latest(); err == nil {
		t.Error("expected error for empty store")
	}
}

func TestAppendNil(t *testing.T) {
	store := New(t.TempDir())
	w, err := store.Begin("synth", 7)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := w.Append(0, nil); err != nil {
		t.Fatalf("append nil failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	meta, err := store.Load(w.ID())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Packets != 0 {
		t.Errorf("expected 0 packets, got %d", meta.Packets)
	}
}
