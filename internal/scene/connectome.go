package scene

import (
	"math"

	"github.com/san-kum/glassbrain/internal/brain"
)

// Connectome tuning.
const (
	jitterAmp    = 0.35
	flashGain    = 0.55 // weight of the activation-squared pop
	ambientFloor = 0.05
)

// Connectome drives the reservoir point population. Positions come from
// the backend when supplied and from the generated cloud otherwise;
// topology is never altered locally, only dressed with bounded
// time-based jitter.
type Connectome struct{}

// Step recolors and re-places the active range, then darkens the rest.
// Color components deliberately exceed 1 at high activation so the bloom
// pass can pick them up.
func (Connectome) Step(snap *brain.Snapshot, positions []float32, regions []brain.Region, buf *PointBuffer, t float64) {
	n := activeNodes(snap, positions, buf.Cap())

	for i := 0; i < n; i++ {
		x := positions[i*3]
		y := positions[i*3+1]
		z := positions[i*3+2]

		fi := float64(i)
		jx := jitterAmp * math.Sin(t*1.7+fi*0.374)
		jy := jitterAmp * math.Cos(t*2.1+fi*0.711)
		jz := jitterAmp * math.Sin(t*1.3+fi*1.117)
		buf.SetPoint(i, x+float32(jx), y+float32(jy), z+float32(jz))

		act := clamp01(snap.ActivityAt(i))
		flash := act * act * flashGain
		r, g, b := RegionColor(regionAt(regions, i))
		buf.SetColor(i,
			r*float32(act)+float32(flash+ambientFloor),
			g*float32(act)+float32(flash+ambientFloor),
			b*float32(act)+float32(flash+ambientFloor),
		)
	}

	buf.Darken(n)
	buf.MarkDirty()
}

// activeNodes bounds the renderable count by the reported size, the
// positions actually available, and the buffer capacity.
func activeNodes(snap *brain.Snapshot, positions []float32, cap int) int {
	if snap == nil {
		return 0
	}
	n := snap.ReservoirSize
	if have := len(positions) / 3; n > have {
		n = have
	}
	if n > cap {
		n = cap
	}
	if n < 0 {
		return 0
	}
	return n
}

func regionAt(regions []brain.Region, i int) brain.Region {
	if i < 0 || i >= len(regions) {
		return brain.Association
	}
	return regions[i]
}
