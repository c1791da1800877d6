// Package layout generates the fixed point clouds both populations are
// drawn at: a folded, bilateral, skull-shaped shell for the reservoir and
// a forward concept constellation. Generation is pure and reproducible
// for a given seed; it runs once at mount and never again.
package layout

import (
	"math"

	"github.com/san-kum/glassbrain/internal/brain"
)

// Silhouette shaping. The base shell is a sphere of brain.BrainRadius;
// everything below bends it toward a cortex reading.
const (
	fissureHalfWidth = 3.5  // |x| below this is pushed outward, opening the midline
	fissurePush      = 0.6  // how hard the fissure ejects near-plane points
	flattenCutY      = -12.0
	flattenFactor    = 0.55 // compresses y below the cut for a flat skull base
	stretchZ         = 1.12 // front-back elongation

	conceptRadius  = 22.0
	conceptForward = 34.0
	conceptSalt    = 0x5eed_c0_c0

	// Backend receptive fields, reproduced for packets without a region map.
	auditoryLateralX = 25.0
	semanticFrontZ   = 20.0
	limbicBaseY      = -20.0
)

// Generate returns the reservoir cloud for a seed as flat xyz triplets.
// Identical (seed, n) always yields identical output. n <= 0 returns nil.
func Generate(seed int64, n int) []float32 {
	if n <= 0 {
		return nil
	}
	r := NewRand(seed)
	out := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		u, v := r.Float64(), r.Float64()
		theta := 2 * math.Pi * u
		phi := math.Acos(2*v - 1)

		rad := brain.BrainRadius * foldNoise(phi, theta)
		x := rad * math.Sin(phi) * math.Cos(theta)
		y := rad * math.Sin(phi) * math.Sin(theta)
		z := rad * math.Cos(phi)

		x = splitHemispheres(x)
		if y < flattenCutY {
			y = flattenCutY + (y-flattenCutY)*flattenFactor
		}
		z *= stretchZ

		out = append(out, float32(x), float32(y), float32(z))
	}
	return out
}

// Concepts returns the fixed concept constellation: a half-shell offset
// forward of the reservoir, each point mirrored across the midline at
// random. The stream is salted so it never collides with Generate's.
func Concepts(seed int64, n int) []float32 {
	if n <= 0 {
		return nil
	}
	r := NewRand(seed ^ conceptSalt)
	out := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		u, v := r.Float64(), r.Float64()
		theta := math.Pi * (u - 0.5)
		phi := math.Acos(2*v - 1)

		x := conceptRadius * math.Sin(phi) * math.Cos(theta)
		y := conceptRadius * math.Sin(phi) * math.Sin(theta)
		z := conceptRadius*math.Cos(phi) + conceptForward

		if r.Float64() < 0.5 {
			x = -x
		}

		out = append(out, float32(x), float32(y), float32(z))
	}
	return out
}

// Regions tags a cloud with the backend's spatial receptive fields:
// lateral shells are auditory, the frontal cap semantic, the basal
// surface limbic, the rest association. Used when a packet carries no
// region map of its own.
func Regions(positions []float32) []brain.Region {
	n := len(positions) / 3
	if n == 0 {
		return nil
	}
	out := make([]brain.Region, n)
	for i := range out {
		x := float64(positions[i*3])
		y := float64(positions[i*3+1])
		z := float64(positions[i*3+2])
		switch {
		case math.Abs(x) > auditoryLateralX:
			out[i] = brain.Auditory
		case z > semanticFrontZ:
			out[i] = brain.Semantic
		case y < limbicBaseY:
			out[i] = brain.Limbic
		default:
			out[i] = brain.Association
		}
	}
	return out
}

// foldNoise modulates the shell radius with low-frequency harmonics so
// the surface reads as folded cortex rather than a perfect sphere.
func foldNoise(phi, theta float64) float64 {
	return 1 +
		0.12*math.Sin(3*phi)*math.Cos(2*theta) +
		0.08*math.Sin(5*theta+1.3) +
		0.05*math.Cos(4*phi-0.7)
}

// splitHemispheres pushes points near the midsagittal plane outward,
// opening the longitudinal fissure without moving anything else.
func splitHemispheres(x float64) float64 {
	ax := math.Abs(x)
	if ax >= fissureHalfWidth {
		return x
	}
	return math.Copysign(fissureHalfWidth+(fissureHalfWidth-ax)*fissurePush, x)
}

// MaxExtent is the loose bound every generated coordinate respects:
// base radius, worst-case fold noise, then the z stretch.
func MaxExtent() float64 {
	return brain.BrainRadius * (1 + 0.12 + 0.08 + 0.05) * stretchZ
}
