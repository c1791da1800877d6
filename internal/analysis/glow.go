package analysis

import "math"

// Glow turns discrete hebbian event counts into a smooth brightness
// lift. Packets add energy; every frame decays it exponentially, so a
// plasticity burst flares and fades instead of flickering at packet
// rate.
type Glow struct {
	level float64
	gain  float64
	decay float64
}

// NewGlow builds an accumulator. gain is the lift per event, decay the
// per-second exponential rate.
func NewGlow(gain, decay float64) *Glow {
	return &Glow{gain: gain, decay: decay}
}

// DefaultGlow matches the compositor's tuning.
func DefaultGlow() *Glow {
	return NewGlow(0.02, 1.8)
}

// Add absorbs one packet's event count.
func (g *Glow) Add(events int) {
	if events <= 0 {
		return
	}
	g.level += float64(events) * g.gain
}

// Step decays the accumulator by dt seconds.
func (g *Glow) Step(dt float64) {
	if dt <= 0 {
		return
	}
	g.level *= math.Exp(-g.decay * dt)
}

// Value returns the current lift, clamped to [0,1].
func (g *Glow) Value() float64 {
	if g.level > 1 {
		return 1
	}
	if g.level < 0 {
		return 0
	}
	return g.level
}

// Reset zeroes the accumulator.
func (g *Glow) Reset() {
	g.level = 0
}
