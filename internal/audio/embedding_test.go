package audio

import (
	"math"
	"testing"
)

func sineFrame(bin int) []float32 {
	freq := float64(bin) * SampleRate / BufferSize
	out := make([]float32, BufferSize)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / SampleRate))
	}
	return out
}

// bandFor finds the band whose bin range contains the given FFT bin.
func bandFor(bin int) int {
	for b := 0; b < Bands; b++ {
		if bin >= bandBins[b] && bin < bandBins[b+1] {
			return b
		}
	}
	return Bands - 1
}

func TestBandBinsMonotonic(t *testing.T) {
	if bandBins[0] != 1 {
		t.Errorf("expected first edge at bin 1, got %d", bandBins[0])
	}
	for i := 1; i <= Bands; i++ {
		if bandBins[i] <= bandBins[i-1] {
			t.Fatalf("edges not increasing at %d: %d <= %d", i, bandBins[i], bandBins[i-1])
		}
	}
	if bandBins[Bands] > BufferSize/2 {
		t.Errorf("last edge %d exceeds spectrum half %d", bandBins[Bands], BufferSize/2)
	}
}

func TestAnalyzeConcentratesTone(t *testing.T) {
	const bin = 100
	buf := make([]complex128, BufferSize)
	out := make([]float64, Bands)
	analyze(sineFrame(bin), buf, out)

	peak := 0
	for b := 1; b < Bands; b++ {
		if out[b] > out[peak] {
			peak = b
		}
	}
	if expected := bandFor(bin); peak != expected {
		t.Errorf("expected peak in band %d, got %d", expected, peak)
	}
}

func TestAnalyzeSilence(t *testing.T) {
	buf := make([]complex128, BufferSize)
	out := make([]float64, Bands)
	analyze(make([]float32, BufferSize), buf, out)
	for b, v := range out {
		if v != 0 {
			t.Errorf("band %d not silent: %f", b, v)
		}
	}
}

func TestAnalyzeShortFrame(t *testing.T) {
	buf := make([]complex128, BufferSize)
	out := make([]float64, Bands)
	// A frame shorter than the buffer is zero padded, not rejected.
	analyze(sineFrame(100)[:200], buf, out)
	total := 0.0
	for _, v := range out {
		total += v
	}
	if total <= 0 {
		t.Error("expected some energy from a short frame")
	}
}

func TestAGCNormalizes(t *testing.T) {
	a := newAGC()
	raw := make([]float64, Bands)
	raw[10] = 30.0
	raw[20] = 15.0
	out := make([]float64, Bands)

	for i := 0; i < 40; i++ {
		a.normalize(raw, out)
	}
	if out[10] < 0.9 {
		t.Errorf("expected dominant band near 1 after settling, got %f", out[10])
	}
	if out[20] < 0.4 || out[20] > 0.6 {
		t.Errorf("expected half-level band near 0.5, got %f", out[20])
	}
	if out[0] != 0 {
		t.Errorf("expected silent band to stay zero, got %f", out[0])
	}
}

func TestAGCRecovers(t *testing.T) {
	a := newAGC()
	loud := make([]float64, Bands)
	loud[0] = 100.0
	out := make([]float64, Bands)
	a.normalize(loud, out)
	high := a.maxLevel

	quiet := make([]float64, Bands)
	quiet[0] = 0.01
	for i := 0; i < 100; i++ {
		a.normalize(quiet, out)
	}
	if a.maxLevel >= high {
		t.Errorf("expected peak tracker to decay from %f, got %f", high, a.maxLevel)
	}
}

func TestRMS(t *testing.T) {
	if got := rms(nil); got != 0 {
		t.Errorf("expected 0 for empty frame, got %f", got)
	}
	if got := rms(make([]float32, 64)); got != 0 {
		t.Errorf("expected 0 for silence, got %f", got)
	}
	loud := make([]float32, 64)
	for i := range loud {
		loud[i] = 1
	}
	if got := rms(loud); got != 1 {
		t.Errorf("expected clamp to 1 for full scale, got %f", got)
	}
}

func TestSummarize(t *testing.T) {
	bands := make([]float64, Bands)
	for i := 0; i < 8; i++ {
		bands[i] = 1
	}
	bass, mids, highs := summarize(bands)
	if bass != 1 {
		t.Errorf("expected bass 1, got %f", bass)
	}
	if mids != 0 || highs != 0 {
		t.Errorf("expected empty mids/highs, got %f/%f", mids, highs)
	}
}
