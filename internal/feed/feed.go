// Package feed moves telemetry from a producer to the render loop. One
// source goroutine publishes snapshots into a holder; the render loop
// polls the holder once per frame. There is no queue and no
// backpressure: a snapshot that arrives before the previous one was
// read simply replaces it.
package feed

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/san-kum/glassbrain/internal/brain"
)

// Holder is the single cross-thread handle: an atomically swapped
// reference to the latest snapshot. Readers observe a fully-old or
// fully-new value, never a partial one.
type Holder struct {
	cur   atomic.Pointer[brain.Snapshot]
	count atomic.Uint64
	tap   func(*brain.Snapshot)
}

func NewHolder() *Holder {
	return &Holder{}
}

// SetTap installs a callback invoked on the publishing goroutine for
// every snapshot. Must be set before the source starts.
func (h *Holder) SetTap(fn func(*brain.Snapshot)) {
	h.tap = fn
}

// Publish stamps and swaps in a snapshot. The topology generation
// advances when the node count or position count moved against the
// previously published snapshot; downstream consumers use it to decide
// when candidate edges need resampling.
func (h *Holder) Publish(snap *brain.Snapshot) {
	if snap == nil {
		return
	}
	if prev := h.cur.Load(); prev != nil {
		snap.TopoGen = prev.TopoGen
		if snap.ReservoirSize != prev.ReservoirSize || len(snap.Positions) != len(prev.Positions) {
			snap.TopoGen++
		}
	}
	snap.Received = time.Now()
	h.cur.Store(snap)
	h.count.Add(1)
	if h.tap != nil {
		h.tap(snap)
	}
}

// Latest returns the most recent snapshot, nil before the first publish.
func (h *Holder) Latest() *brain.Snapshot {
	return h.cur.Load()
}

// Count returns the total snapshots published.
func (h *Holder) Count() uint64 {
	return h.count.Load()
}

// Source is a telemetry producer. Run blocks until the context ends or
// the source fails terminally; transient trouble is handled internally.
type Source interface {
	Name() string
	Run(ctx context.Context, h *Holder) error
}

// Options carries everything any source constructor might need; each
// source reads its own subset.
type Options struct {
	ServerURL string
	Seed      int64
	Nodes     int
	Rate      float64
	DataDir   string
	RunID     string
	Speed     float64
	Loop      bool
	Scenario  *Scenario

	// Embedding, when set, supplies live 64-band audio to the synth
	// source in place of its synthesized bands.
	Embedding func() []float64
}

// Registry resolves source names to constructors.
type Registry struct {
	sources map[string]func(Options) (Source, error)
}

func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]func(Options) (Source, error))}

	r.sources["ws"] = func(o Options) (Source, error) {
		if o.ServerURL == "" {
			return nil, fmt.Errorf("ws source needs a server url")
		}
		return NewWS(o.ServerURL), nil
	}
	r.sources["synth"] = func(o Options) (Source, error) {
		return NewSynth(SynthOptions{
			Seed:      o.Seed,
			Nodes:     o.Nodes,
			Rate:      o.Rate,
			Scenario:  o.Scenario,
			Embedding: o.Embedding,
		}), nil
	}
	r.sources["replay"] = func(o Options) (Source, error) {
		if o.DataDir == "" {
			return nil, fmt.Errorf("replay source needs a data dir")
		}
		return NewReplay(o.DataDir, o.RunID, o.Speed, o.Loop), nil
	}

	return r
}

// Get builds the named source.
func (r *Registry) Get(name string, o Options) (Source, error) {
	fn, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", name)
	}
	return fn(o)
}

// Names lists the registered sources.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.sources))
	for name := range r.sources {
		out = append(out, name)
	}
	return out
}
