package scene

import (
	"math"

	"github.com/san-kum/glassbrain/internal/brain"
)

// EntropyHigh is the entropy level at which the ring leaves its calm
// ramp. RingRadius places the halo outside the reservoir shell.
const (
	EntropyHigh = 0.7
	RingRadius  = brain.BrainRadius * 1.45
)

// EntropyRing is the state halo around the brain. Three branches in
// strict precedence: an alerting trauma label wins outright, then high
// entropy, then the calm resting ramp. Geometry never changes; only
// color and opacity do.
type EntropyRing struct {
	Color [3]float32
	Alpha float32
}

// Step resolves this frame's ring color from the snapshot.
func (r *EntropyRing) Step(snap *brain.Snapshot, t float64) {
	var entropy float64
	var label string
	if snap != nil {
		entropy = clamp01(snap.Entropy)
		label = snap.TraumaState
	}

	switch {
	case brain.TraumaAlert(label):
		pulse := 0.5 + 0.5*math.Abs(math.Sin(t*3.0))
		r.Color = [3]float32{1.0, 0.12, 0.08}
		r.Alpha = float32(0.45 + 0.4*pulse)
	case entropy > EntropyHigh:
		ramp := (entropy - EntropyHigh) / (1 - EntropyHigh)
		r.Color = [3]float32{1.0, 0.55, 0.10}
		r.Alpha = float32(0.3 + 0.45*ramp)
	default:
		r.Color = [3]float32{0.25, 0.55, 0.95}
		r.Alpha = float32(0.15 + 0.2*entropy/EntropyHigh)
	}
}
