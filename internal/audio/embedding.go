// Package audio turns microphone input into the 64-band spectral
// embedding the auditory cortex layer consumes. Capture is optional:
// when no device is available the rest of the program runs without it.
package audio

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const (
	SampleRate = 44100
	BufferSize = 1024
	Bands      = 64

	maxGain    = 50.0
	levelDecay = 0.999
	smoothKeep = 0.7
)

// bandBins maps each of the 64 bands to a half-open FFT bin range.
// Spacing is logarithmic so the low end gets single-bin resolution and
// the top octaves are averaged.
var bandBins = computeBandBins()

func computeBandBins() [Bands + 1]int {
	var bins [Bands + 1]int
	half := float64(BufferSize / 2)
	for i := range bins {
		bins[i] = int(math.Pow(half, float64(i)/float64(Bands)))
		if i > 0 && bins[i] <= bins[i-1] {
			bins[i] = bins[i-1] + 1
		}
	}
	return bins
}

// analyze windows one frame, transforms it, and averages the magnitude
// spectrum into out. buf is the caller's scratch FFT buffer.
func analyze(in []float32, buf []complex128, out []float64) {
	n := len(in)
	if n > BufferSize {
		n = BufferSize
	}
	for i := 0; i < n; i++ {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(BufferSize-1)))
		buf[i] = complex(float64(in[i])*window, 0)
	}
	for i := n; i < BufferSize; i++ {
		buf[i] = 0
	}
	spectrum := fft.FFT(buf)

	for b := 0; b < Bands; b++ {
		lo, hi := bandBins[b], bandBins[b+1]
		sum := 0.0
		for i := lo; i < hi; i++ {
			sum += cmplx.Abs(spectrum[i])
		}
		out[b] = sum / float64(hi-lo)
	}
}

// agc tracks the running peak band level and converts raw magnitudes to
// normalized values; the peak decays so the gain recovers after loud
// passages.
type agc struct {
	maxLevel float64
}

func newAGC() agc {
	return agc{maxLevel: 0.1}
}

func (a *agc) normalize(raw, out []float64) {
	peak := 0.0
	for _, v := range raw {
		if v > peak {
			peak = v
		}
	}
	if peak > a.maxLevel {
		a.maxLevel = peak
	} else {
		a.maxLevel *= levelDecay
	}

	gain := 1.0
	if a.maxLevel > 0.001 {
		gain = 1.0 / a.maxLevel
	}
	if gain > maxGain {
		gain = maxGain
	}
	for i, v := range raw {
		next := math.Min(v*gain, 1.0)
		out[i] = out[i]*smoothKeep + next*(1-smoothKeep)
	}
}

// rms is the time-domain level of one frame, boosted into a usable
// 0..1 range for typical microphone input.
func rms(in []float32) float64 {
	if len(in) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range in {
		sum += float64(v) * float64(v)
	}
	return math.Min(1, math.Sqrt(sum/float64(len(in)))*4)
}

// summarize collapses the bands into the bass, mids, and highs figures
// shown on the HUD.
func summarize(bands []float64) (bass, mids, highs float64) {
	mean := func(lo, hi int) float64 {
		sum := 0.0
		for i := lo; i < hi; i++ {
			sum += bands[i]
		}
		return sum / float64(hi-lo)
	}
	return mean(0, 8), mean(8, 32), mean(32, Bands)
}
