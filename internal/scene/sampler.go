package scene

import (
	"math"

	"github.com/san-kum/glassbrain/internal/layout"
)

// Sampler tuning. The kernel strongly favors near neighbors; the flat
// long-range chance guarantees a few cross-brain associative links no
// matter how spread the cloud is.
const (
	SamplerTarget      = 1000
	SamplerMaxAttempts = 10000

	samplerGain     = 5.0
	samplerEpsilon  = 0.1
	longRangeChance = 0.01
)

// Pair is one sampled candidate edge.
type Pair struct {
	I, J int32
}

// AcceptProbability is the distance kernel: min(1, k/(d+eps)).
func AcceptProbability(d float64) float64 {
	p := samplerGain / (d + samplerEpsilon)
	if p > 1 {
		return 1
	}
	return p
}

// SamplePairs draws up to target candidate pairs from the first count
// points of a flat xyz cloud, biased toward spatial proximity. The
// attempt budget bounds the worst case even on degenerate clouds; the
// result is deterministic for a given (cloud, seed). Runs only on
// topology change, never per frame.
func SamplePairs(positions []float32, count, target, maxAttempts int, seed int64) []Pair {
	if have := len(positions) / 3; count > have {
		count = have
	}
	if count < 2 || target <= 0 || maxAttempts <= 0 {
		return nil
	}

	r := layout.NewRand(seed)
	pairs := make([]Pair, 0, target)
	for attempts := 0; attempts < maxAttempts && len(pairs) < target; attempts++ {
		i := r.Intn(count)
		j := r.Intn(count)
		if i == j {
			continue
		}
		d := pointDistance(positions, i, j)
		if r.Float64() < AcceptProbability(d) || r.Float64() < longRangeChance {
			pairs = append(pairs, Pair{I: int32(i), J: int32(j)})
		}
	}
	return pairs
}

func pointDistance(positions []float32, i, j int) float64 {
	dx := float64(positions[i*3] - positions[j*3])
	dy := float64(positions[i*3+1] - positions[j*3+1])
	dz := float64(positions[i*3+2] - positions[j*3+2])
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
