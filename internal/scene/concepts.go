package scene

import "github.com/san-kum/glassbrain/internal/brain"

// ConceptThreshold is the activation below which a concept node reverts
// to its dark resting state.
const ConceptThreshold = 0.05

// conceptHue is the constellation's base color, scaled by activation.
var conceptHue = [3]float32{0.85, 0.78, 1.0}

// ConceptLayer drives the fixed concept population. Deliberately simpler
// than the connectome: positions are static, color is a pure function of
// per-index activation, no jitter, no flash.
type ConceptLayer struct{}

// Step recolors all concept slots from the snapshot's activations.
func (ConceptLayer) Step(snap *brain.Snapshot, buf *PointBuffer) {
	var acts []float64
	if snap != nil {
		acts = snap.Activations
	}

	for i := 0; i < buf.Cap(); i++ {
		var act float64
		if i < len(acts) {
			act = clamp01(acts[i])
		}
		if act < ConceptThreshold {
			buf.SetColor(i, inactiveShade, inactiveShade, inactiveShade)
			continue
		}
		a := float32(act)
		buf.SetColor(i, conceptHue[0]*a, conceptHue[1]*a, conceptHue[2]*a)
	}
	buf.MarkDirty()
}
