package brain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Capacity limits of the render core. The backend may report more nodes
// than MaxReservoir; the excess is clamped and never rendered.
const (
	MaxReservoir = 2500
	ConceptCount = 512
	AudioBands   = 64
)

// BrainRadius is the nominal radius of the reservoir point cloud. The
// backend places neurons inside it and the generated layout reproduces it.
const BrainRadius = 40.0

// AudioSpectrum carries the ear summary plus the 64-band embedding
// consumed by the auditory flow layer.
type AudioSpectrum struct {
	RMS       float64
	Bass      float64
	Mids      float64
	Highs     float64
	Embedding []float64
}

// Snapshot is one immutable telemetry update. Every renderer reads the
// same snapshot for the duration of a frame; the feed replaces it whole,
// never field by field.
type Snapshot struct {
	ReservoirSize int
	Activity      []float64 // per-node activation, resolved to flat at decode
	Activations   []float64 // concept intensities
	RegionMap     []Region
	Positions     []float32 // flat xyz, authoritative when non-empty

	Dopamine  float64
	Serotonin float64
	Cortisol  float64
	Adenosine float64
	Oxytocin  float64

	HeartRate float64
	Lucidity  float64
	Entropy   float64

	HebbianEvents int
	TraumaState   string
	CurrentState  string

	LoopFrequency float64
	CPUUsage      float64

	ShortTermMemory []string
	VisualCortex    []float64

	Audio AudioSpectrum

	// Stamped by the publishing feed, not part of the wire format.
	TopoGen  uint64
	Received time.Time
}

// ActiveCount returns the renderable node count: the reported size bounded
// by the positions actually supplied.
func (s *Snapshot) ActiveCount() int {
	n := s.ReservoirSize
	if have := len(s.Positions) / 3; len(s.Positions) > 0 && have < n {
		n = have
	}
	if n < 0 {
		return 0
	}
	return n
}

// Region returns the tag for node i, defaulting to Association when the
// map is short or the index out of range.
func (s *Snapshot) Region(i int) Region {
	if i < 0 || i >= len(s.RegionMap) {
		return Association
	}
	return s.RegionMap[i]
}

// ActivityAt returns node i's activation, zero when the activity array is
// shorter than the reported size.
func (s *Snapshot) ActivityAt(i int) float64 {
	if i < 0 || i >= len(s.Activity) {
		return 0
	}
	return s.Activity[i]
}

type wireAudio struct {
	RMS                float64   `json:"rms"`
	Bass               float64   `json:"bass"`
	Mids               float64   `json:"mids"`
	Highs              float64   `json:"highs"`
	FrequencyEmbedding []float64 `json:"frequency_embedding"`
}

type wirePacket struct {
	ReservoirSize     int             `json:"reservoir_size"`
	ReservoirActivity json.RawMessage `json:"reservoir_activity"`
	Activations       []float64       `json:"activations"`
	RegionMap         []int           `json:"region_map"`
	NeuronPositions   [][]float64     `json:"neuron_positions"`
	Dopamine          float64         `json:"dopamine"`
	Serotonin         float64         `json:"serotonin"`
	Cortisol          float64         `json:"cortisol"`
	Adenosine         float64         `json:"adenosine"`
	Oxytocin          float64         `json:"oxytocin"`
	HeartRate         float64         `json:"heart_rate"`
	Lucidity          float64         `json:"lucidity"`
	Entropy           float64         `json:"entropy"`
	HebbianEvents     int             `json:"hebbian_events"`
	TraumaState       string          `json:"trauma_state"`
	CurrentState      string          `json:"current_state"`
	LoopFrequency     float64         `json:"loop_frequency"`
	CPUUsage          float64         `json:"cpu_usage"`
	ShortTermMemory   []string        `json:"short_term_memory"`
	VisualCortex      []float64       `json:"visual_cortex"`
	AudioSpectrum     *wireAudio      `json:"audio_spectrum"`
}

// Decode parses one wire message into a Snapshot. Both the bare telemetry
// object and the {"Telemetry": {...}} envelope are accepted. Missing
// fields default to zero/empty; only a structurally malformed message
// returns an error.
func Decode(data []byte) (*Snapshot, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyPacket
	}

	var env struct {
		Telemetry json.RawMessage `json:"Telemetry"`
	}
	if err := json.Unmarshal(data, &env); err == nil && len(env.Telemetry) > 0 {
		data = env.Telemetry
	}

	var w wirePacket
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPacket, err)
	}

	size := w.ReservoirSize
	if size < 0 {
		size = 0
	}
	if size > MaxReservoir {
		size = MaxReservoir
	}

	activity, err := decodeActivity(w.ReservoirActivity, size)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ReservoirSize:   size,
		Activity:        activity,
		Activations:     w.Activations,
		RegionMap:       parseRegions(w.RegionMap),
		Positions:       flattenPositions(w.NeuronPositions),
		Dopamine:        w.Dopamine,
		Serotonin:       w.Serotonin,
		Cortisol:        w.Cortisol,
		Adenosine:       w.Adenosine,
		Oxytocin:        w.Oxytocin,
		HeartRate:       w.HeartRate,
		Lucidity:        w.Lucidity,
		Entropy:         w.Entropy,
		HebbianEvents:   w.HebbianEvents,
		TraumaState:     w.TraumaState,
		CurrentState:    w.CurrentState,
		LoopFrequency:   w.LoopFrequency,
		CPUUsage:        w.CPUUsage,
		ShortTermMemory: w.ShortTermMemory,
		VisualCortex:    w.VisualCortex,
	}
	if w.AudioSpectrum != nil {
		snap.Audio = AudioSpectrum{
			RMS:       w.AudioSpectrum.RMS,
			Bass:      w.AudioSpectrum.Bass,
			Mids:      w.AudioSpectrum.Mids,
			Highs:     w.AudioSpectrum.Highs,
			Embedding: w.AudioSpectrum.FrequencyEmbedding,
		}
	}
	return snap, nil
}

// decodeActivity resolves the duck-typed reservoir_activity field once,
// at ingestion. Accepted shapes: flat float array, or sparse
// [index,value] pairs scattered into a zeroed array of the active size.
func decodeActivity(raw json.RawMessage, size int) ([]float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var pairs [][2]float64
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, ErrBadActivity
	}
	out := make([]float64, size)
	for _, p := range pairs {
		idx := int(p[0])
		if idx < 0 || idx >= size {
			continue
		}
		out[idx] = p[1]
	}
	return out, nil
}

func parseRegions(tags []int) []Region {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Region, len(tags))
	for i, t := range tags {
		out[i] = ParseRegion(t)
	}
	return out
}

func flattenPositions(rows [][]float64) []float32 {
	if len(rows) == 0 {
		return nil
	}
	out := make([]float32, 0, len(rows)*3)
	for _, r := range rows {
		if len(r) < 3 {
			continue
		}
		out = append(out, float32(r[0]), float32(r[1]), float32(r[2]))
	}
	return out
}
