package scene

import (
	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/layout"
)

// Params sizes the engine's arenas. Defaults mirror the backend's
// capacity limits; smaller values are only used by tests.
type Params struct {
	Seed         int64
	MaxNodes     int
	ConceptCount int
	PairTarget   int
	PairAttempts int
	InjectLines  int
	AudioLines   int
	WebLines     int
}

func DefaultParams() Params {
	return Params{
		Seed:         1337,
		MaxNodes:     brain.MaxReservoir,
		ConceptCount: brain.ConceptCount,
		PairTarget:   SamplerTarget,
		PairAttempts: SamplerMaxAttempts,
		InjectLines:  InjectCap,
		AudioLines:   AuditoryCap,
		WebLines:     HebbianCap,
	}
}

// Engine owns every arena and advances all layers once per frame. It is
// constructed once per view; geometry generation happens here and never
// again.
type Engine struct {
	Reservoir *PointBuffer
	Concepts  *PointBuffer
	Inject    *LineBuffer
	Audio     *LineBuffer
	Web       *LineBuffer
	Ring      EntropyRing
	Atmos     Atmosphere

	params Params

	fallbackPos     []float32
	fallbackRegions []brain.Region
	conceptPos      []float32

	pairs    []Pair
	topoSeen uint64
	sampled  bool

	connectome Connectome
	concepts   ConceptLayer
	inject     InjectFlow
	auditory   AuditoryFlow
	web        HebbianWeb
}

func NewEngine(p Params) *Engine {
	e := &Engine{
		Reservoir: NewPointBuffer(p.MaxNodes),
		Concepts:  NewPointBuffer(p.ConceptCount),
		Inject:    NewLineBuffer(p.InjectLines),
		Audio:     NewLineBuffer(p.AudioLines),
		Web:       NewLineBuffer(p.WebLines),
		params:    p,
	}

	e.fallbackPos = layout.Generate(p.Seed, p.MaxNodes)
	e.fallbackRegions = layout.Regions(e.fallbackPos)
	e.conceptPos = layout.Concepts(p.Seed, p.ConceptCount)

	// Concept geometry is static; written once, recolored forever.
	for i := 0; i < p.ConceptCount; i++ {
		e.Concepts.SetPoint(i, e.conceptPos[i*3], e.conceptPos[i*3+1], e.conceptPos[i*3+2])
	}

	return e
}

// ConceptPositions exposes the static constellation for export tooling.
func (e *Engine) ConceptPositions() []float32 { return e.conceptPos }

// FallbackPositions exposes the generated reservoir cloud.
func (e *Engine) FallbackPositions() []float32 { return e.fallbackPos }

// Pairs exposes the current candidate edges (sampled lazily on Step).
func (e *Engine) Pairs() []Pair { return e.pairs }

// Step advances every layer against the given snapshot at elapsed time
// t. A nil snapshot darkens the populations and empties all line layers;
// the frame still completes.
func (e *Engine) Step(snap *brain.Snapshot, t float64) {
	pos := e.fallbackPos
	regions := e.fallbackRegions
	if snap != nil {
		if len(snap.Positions) > 0 {
			pos = snap.Positions
		}
		if len(snap.RegionMap) > 0 {
			regions = snap.RegionMap
		}
		e.ensurePairs(snap, pos)
	}

	e.connectome.Step(snap, pos, regions, e.Reservoir, t)
	e.concepts.Step(snap, e.Concepts)
	e.inject.Step(snap, pos, regions, e.conceptPos, e.Inject)
	e.auditory.Step(snap, pos, regions, e.Audio)
	e.web.Step(snap, e.pairs, pos, regions, e.Web)
	e.Ring.Step(snap, t)
	e.Atmos.Step(snap)
}

// ensurePairs resamples candidate edges when the topology generation
// moves. Sampling is the only non-trivial cost outside the steady frame
// path, and it is bounded by the attempt budget.
func (e *Engine) ensurePairs(snap *brain.Snapshot, pos []float32) {
	if e.sampled && snap.TopoGen == e.topoSeen {
		return
	}
	n := activeNodes(snap, pos, e.params.MaxNodes)
	e.pairs = SamplePairs(pos, n, e.params.PairTarget, e.params.PairAttempts, e.params.Seed^int64(snap.TopoGen))
	e.topoSeen = snap.TopoGen
	e.sampled = true
}
