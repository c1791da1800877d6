package scene

import "github.com/san-kum/glassbrain/internal/brain"

// Atmosphere maps the chemical scalars to ambient color and fog.
// Cortisol pulls the background toward dark red, serotonin toward deep
// teal, dopamine brightens everything, adenosine dims it and thickens
// the fog. Unlike node colors, the background stays in [0,1]; it is not
// bloom-composited.
type Atmosphere struct {
	Background [3]float32
	FogDensity float32
}

// Step resolves this frame's ambient state from the snapshot.
func (a *Atmosphere) Step(snap *brain.Snapshot) {
	var dopamine, serotonin, cortisol, adenosine float64
	if snap != nil {
		dopamine = clamp01(snap.Dopamine)
		serotonin = clamp01(snap.Serotonin)
		cortisol = clamp01(snap.Cortisol)
		adenosine = clamp01(snap.Adenosine)
	}

	dim := 1 - 0.55*adenosine
	a.Background = [3]float32{
		float32(clamp01(0.03+0.22*cortisol+0.08*dopamine) * dim),
		float32(clamp01(0.03+0.09*serotonin+0.06*dopamine) * dim),
		float32(clamp01(0.06+0.16*serotonin+0.04*dopamine-0.03*cortisol) * dim),
	}
	a.FogDensity = float32(0.012 + 0.035*adenosine + 0.01*cortisol)
}
