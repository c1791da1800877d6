package analysis

import "math"

const entropyBins = 10

// Entropy returns the normalized Shannon entropy of an activation
// distribution: a 10-bin histogram over [0,1], scaled by log2(10) so a
// uniform spread reads 1 and a collapsed one 0. This is the same
// estimator the backend applies to its own reservoir, so locally
// generated packets agree with remote ones.
func Entropy(acts []float64) float64 {
	if len(acts) == 0 {
		return 0
	}

	var bins [entropyBins]int
	for _, a := range acts {
		if a < 0 {
			a = 0
		} else if a > 1 {
			a = 1
		}
		b := int(a * entropyBins)
		if b >= entropyBins {
			b = entropyBins - 1
		}
		bins[b]++
	}

	total := float64(len(acts))
	h := 0.0
	for _, c := range bins {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h / math.Log2(entropyBins)
}
