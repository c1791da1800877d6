package scene

import "github.com/san-kum/glassbrain/internal/brain"

// InjectCap bounds the concept-to-reservoir layer; InjectFloor is the
// minimum source activation for a line to exist at all.
const (
	InjectCap   = 300
	InjectFloor = 0.15
)

// InjectFlow draws concept-to-reservoir feed lines. Only semantic cortex
// receives injections; each reservoir index maps to its concept partner
// by modulo, and the partner's activation gates and colors the line.
type InjectFlow struct{}

// Step rebuilds the layer's draw range for this frame.
func (InjectFlow) Step(snap *brain.Snapshot, nodePos []float32, regions []brain.Region, conceptPos []float32, out *LineBuffer) {
	out.Reset()
	if snap == nil {
		return
	}
	concepts := len(conceptPos) / 3
	if concepts == 0 {
		return
	}

	n := activeNodes(snap, nodePos, len(nodePos)/3)
	for i := 0; i < n; i++ {
		if regionAt(regions, i) != brain.Semantic {
			continue
		}
		j := i % concepts
		var src float64
		if j < len(snap.Activations) {
			src = snap.Activations[j]
		}
		if src <= InjectFloor {
			continue
		}

		a := float32(clamp01(src))
		ok := out.Append(
			conceptPos[j*3], conceptPos[j*3+1], conceptPos[j*3+2],
			nodePos[i*3], nodePos[i*3+1], nodePos[i*3+2],
			conceptHue[0]*a, conceptHue[1]*a, conceptHue[2]*a,
		)
		if !ok {
			return
		}
	}
}
