package scene

import "github.com/san-kum/glassbrain/internal/brain"

// Hebbian web tuning. Both endpoints must clear the co-activation
// threshold for a candidate pair to render.
const (
	HebbianCap       = 600
	CoActivationMin  = 0.4
	hebbianBaseLight = 0.3
)

// HebbianWeb walks the sampled candidate pairs and draws the ones whose
// endpoints are firing together, colored by the region pairing and
// weighted by the product of the two activations.
type HebbianWeb struct{}

// Step rebuilds the layer's draw range for this frame.
func (HebbianWeb) Step(snap *brain.Snapshot, pairs []Pair, nodePos []float32, regions []brain.Region, out *LineBuffer) {
	out.Reset()
	if snap == nil {
		return
	}
	n := activeNodes(snap, nodePos, len(nodePos)/3)
	if n == 0 {
		return
	}

	for _, p := range pairs {
		i, j := int(p.I), int(p.J)
		if i >= n || j >= n {
			continue
		}
		ai := snap.ActivityAt(i)
		aj := snap.ActivityAt(j)
		if ai <= CoActivationMin || aj <= CoActivationMin {
			continue
		}

		strength := float32(hebbianBaseLight + (1-hebbianBaseLight)*clamp01(ai*aj))
		r, g, b := PairColor(regionAt(regions, i), regionAt(regions, j))
		ok := out.Append(
			nodePos[i*3], nodePos[i*3+1], nodePos[i*3+2],
			nodePos[j*3], nodePos[j*3+1], nodePos[j*3+2],
			r*strength, g*strength, b*strength,
		)
		if !ok {
			return
		}
	}
}
