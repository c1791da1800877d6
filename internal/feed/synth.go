package feed

import (
	"context"
	"math"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/san-kum/glassbrain/internal/analysis"
	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/layout"
)

// Synth pacing and dynamics tuning.
const (
	synthSalt        = 0x7a3b_11
	synthDefaultRate = 12.0
	synthChemRate    = 0.35 // chemistry approach rate toward targets
	synthGrowFrom    = 0.85 // fraction of nodes alive at start
	synthGrowPerSec  = 2.0  // neurogenesis pace
)

// Per-region oscillation frequencies: auditory cortex flutters, limbic
// swells slowly.
var regionFreq = [4]float64{1.1, 2.3, 0.7, 1.7}

// SynthOptions configures the local generator.
type SynthOptions struct {
	Seed      int64
	Nodes     int
	Rate      float64
	Scenario  *Scenario
	Embedding func() []float64
}

// Synth is the local telemetry source: a seeded cloud driven by coupled
// oscillators, with scripted or drifting chemistry, a growing reservoir,
// and the same entropy estimator the backend uses. It exists so every
// layer of the visualization can run, and be demonstrated, with no
// backend at all.
type Synth struct {
	opts SynthOptions
}

func NewSynth(o SynthOptions) *Synth {
	if o.Nodes <= 0 || o.Nodes > brain.MaxReservoir {
		o.Nodes = brain.MaxReservoir
	}
	if o.Rate <= 0 {
		o.Rate = synthDefaultRate
	}
	return &Synth{opts: o}
}

func (s *Synth) Name() string { return "synth" }

// Run publishes packets at the configured rate until the context ends.
func (s *Synth) Run(ctx context.Context, h *Holder) error {
	o := s.opts
	r := layout.NewRand(o.Seed ^ synthSalt)

	positions := layout.Generate(o.Seed, o.Nodes)
	regions := layout.Regions(positions)

	phases := make([]float64, o.Nodes)
	for i := range phases {
		phases[i] = r.Float64() * 2 * math.Pi
	}
	conceptPhases := make([]float64, brain.ConceptCount)
	for i := range conceptPhases {
		conceptPhases[i] = r.Float64() * 2 * math.Pi
	}

	st := synthState{
		dopamine:  0.5,
		serotonin: 0.5,
		cortisol:  0.2,
		adenosine: 0.1,
		oxytocin:  0.4,
		trauma:    brain.TraumaStable,
	}

	interval := time.Duration(float64(time.Second) / o.Rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	last := start
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			t := now.Sub(start).Seconds()
			dt := now.Sub(last).Seconds()
			last = now
			h.Publish(s.packet(&st, r, t, dt, positions, regions, phases, conceptPhases))
		}
	}
}

// synthState is the slow-moving part of the generator.
type synthState struct {
	dopamine  float64
	serotonin float64
	cortisol  float64
	adenosine float64
	oxytocin  float64

	trauma   string
	alerted  bool
	lastCPU  float64
	stepName string
	memory   []string
}

// packet advances the state by dt and assembles one snapshot at time t.
func (s *Synth) packet(st *synthState, r *layout.Rand, t, dt float64,
	positions []float32, regions []brain.Region, phases, conceptPhases []float64) *brain.Snapshot {

	o := s.opts

	// Chemistry chases its targets; a scenario scripts them, otherwise
	// they wander on slow incommensurate waves.
	gain := 1.0
	audioLevel := 0.7
	traumaOverride := ""
	var dop, ser, cor, ade, oxy float64
	if o.Scenario != nil {
		cur, next, blend := o.Scenario.At(t)
		dop = lerp(cur.Dopamine, next.Dopamine, blend)
		ser = lerp(cur.Serotonin, next.Serotonin, blend)
		cor = lerp(cur.Cortisol, next.Cortisol, blend)
		ade = lerp(cur.Adenosine, next.Adenosine, blend)
		oxy = lerp(cur.Oxytocin, next.Oxytocin, blend)
		if cur.ActivationGain > 0 {
			gain = cur.ActivationGain
		}
		if cur.AudioLevel > 0 {
			audioLevel = cur.AudioLevel
		}
		traumaOverride = cur.Trauma
		if cur.Name != st.stepName {
			st.stepName = cur.Name
			st.memory = appendMemory(st.memory, "phase: "+cur.Name)
		}
	} else {
		dop = 0.5 + 0.35*math.Sin(t*0.041)
		ser = 0.5 + 0.30*math.Sin(t*0.029+2.0)
		cor = 0.35 + 0.33*math.Sin(t*0.023+4.1)
		ade = 0.3 + 0.3*math.Sin(t*0.011+1.2)
		oxy = 0.45 + 0.25*math.Sin(t*0.017+0.6)
	}
	approach := math.Min(1, dt*synthChemRate)
	st.dopamine = clampUnit(st.dopamine + (dop-st.dopamine)*approach + jitter(r))
	st.serotonin = clampUnit(st.serotonin + (ser-st.serotonin)*approach + jitter(r))
	st.cortisol = clampUnit(st.cortisol + (cor-st.cortisol)*approach + jitter(r))
	st.adenosine = clampUnit(st.adenosine + (ade-st.adenosine)*approach + jitter(r))
	st.oxytocin = clampUnit(st.oxytocin + (oxy-st.oxytocin)*approach + jitter(r))

	st.trauma = traumaLabel(st, traumaOverride)

	// Reservoir grows from its seed population toward full size.
	size := o.Nodes
	if grown := int(float64(o.Nodes)*synthGrowFrom + t*synthGrowPerSec); grown < size {
		size = grown
	}

	activity := make([]float64, size)
	hot := 0
	for i := 0; i < size; i++ {
		f := regionFreq[regions[i]]
		a := gain * (0.45 + 0.35*math.Sin(t*f+phases[i]) + 0.2*r.Float64())
		activity[i] = clampUnit(a)
		if activity[i] > 0.55 {
			hot++
		}
	}

	concepts := make([]float64, brain.ConceptCount)
	hotStart := int(t*3) % brain.ConceptCount
	for j := range concepts {
		a := 0.6 * gain * (0.5 + 0.5*math.Sin(t*0.9+conceptPhases[j]))
		if d := (j - hotStart + brain.ConceptCount) % brain.ConceptCount; d < 16 {
			a += 0.4
		}
		concepts[j] = clampUnit(a)
	}

	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		st.lastCPU = pct[0]
	}

	return &brain.Snapshot{
		ReservoirSize:   size,
		Activity:        activity,
		Activations:     concepts,
		RegionMap:       regions,
		Positions:       positions,
		Dopamine:        st.dopamine,
		Serotonin:       st.serotonin,
		Cortisol:        st.cortisol,
		Adenosine:       st.adenosine,
		Oxytocin:        st.oxytocin,
		HeartRate:       58 + 50*st.cortisol + 6*math.Sin(t*1.3),
		Lucidity:        clampUnit(1 - 0.7*st.adenosine - 0.2*st.cortisol),
		Entropy:         analysis.Entropy(activity),
		HebbianEvents:   hebbianBurst(hot, size),
		TraumaState:     st.trauma,
		CurrentState:    cognitiveState(st),
		LoopFrequency:   safeRate(dt),
		CPUUsage:        st.lastCPU,
		ShortTermMemory: st.memory,
		VisualCortex:    visualField(t, st.dopamine),
		Audio:           s.audio(t, audioLevel),
	}
}

// audio returns live capture bands when available, synthesized ones
// otherwise.
func (s *Synth) audio(t, level float64) brain.AudioSpectrum {
	var bands []float64
	if s.opts.Embedding != nil {
		if e := s.opts.Embedding(); len(e) == brain.AudioBands {
			bands = e
		}
	}
	if bands == nil {
		bands = make([]float64, brain.AudioBands)
		for b := range bands {
			roll := 1.0 / (1.0 + 0.02*float64(b))
			bands[b] = clampUnit(level * roll * (0.35 + 0.65*math.Abs(math.Sin(t*1.9+float64(b)*0.37))))
		}
	}

	sum := func(lo, hi int) float64 {
		total := 0.0
		for i := lo; i < hi; i++ {
			total += bands[i]
		}
		return total / float64(hi-lo)
	}
	return brain.AudioSpectrum{
		RMS:       sum(0, brain.AudioBands),
		Bass:      sum(0, 8),
		Mids:      sum(8, 32),
		Highs:     sum(32, brain.AudioBands),
		Embedding: bands,
	}
}

// traumaLabel runs the small escalation machine: cortisol saturation
// trips the alert labels, recovery holds until the level truly falls.
func traumaLabel(st *synthState, override string) string {
	if override != "" {
		return override
	}
	switch {
	case st.cortisol > 0.85:
		st.alerted = true
		return brain.TraumaFirefighter
	case st.cortisol > 0.6:
		st.alerted = true
		return brain.TraumaEscalating
	case st.alerted && st.cortisol > 0.3:
		return brain.TraumaRecovering
	default:
		st.alerted = false
		return brain.TraumaStable
	}
}

func cognitiveState(st *synthState) string {
	switch {
	case st.cortisol > 0.6:
		return "alert"
	case st.adenosine > 0.6:
		return "rest"
	case st.dopamine > 0.6:
		return "focus"
	default:
		return "idle"
	}
}

// visualField paints a drifting 16x16 interference pattern.
func visualField(t, brightness float64) []float64 {
	const side = 16
	out := make([]float64, side*side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			v := 0.5 + 0.5*math.Sin(float64(x)*0.55+t*1.2)*math.Cos(float64(y)*0.4-t*0.8)
			out[y*side+x] = clampUnit(v * (0.3 + 0.7*brightness))
		}
	}
	return out
}

// hebbianBurst is a cheap plasticity proxy: the hotter the population,
// the more co-firing events the packet reports.
func hebbianBurst(hot, size int) int {
	if size == 0 {
		return 0
	}
	return hot * 120 / size
}

func appendMemory(mem []string, line string) []string {
	mem = append(mem, line)
	if len(mem) > 5 {
		mem = mem[len(mem)-5:]
	}
	return mem
}

func jitter(r *layout.Rand) float64 {
	return (r.Float64() - 0.5) * 0.01
}

func lerp(a, b, f float64) float64 {
	return a + (b-a)*f
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func safeRate(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	return 1 / dt
}
