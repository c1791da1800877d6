package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/san-kum/glassbrain/internal/brain"
)

// Capture owns the microphone stream and the analysis state behind it.
// The stream callback runs on portaudio's thread; Bands and Spectrum
// may be called from any goroutine.
type Capture struct {
	stream *portaudio.Stream

	buf []complex128
	raw []float64
	agc agc

	mu     sync.Mutex
	bands  []float64
	level  float64
	gain   float64
	active bool
}

func NewCapture() *Capture {
	return &Capture{
		buf:   make([]complex128, BufferSize),
		raw:   make([]float64, Bands),
		agc:   newAGC(),
		bands: make([]float64, Bands),
		gain:  1.0,
	}
}

// SetGain scales the normalized bands and the level meter. Applied
// after AGC, so it shifts the visual response rather than fighting the
// normalizer.
func (c *Capture) SetGain(g float64) {
	if g <= 0 {
		g = 1.0
	}
	c.mu.Lock()
	c.gain = g
	c.mu.Unlock()
}

// Start opens the default input device. Input-only: duplex streams are
// unreliable on Linux when input and output devices differ.
func (c *Capture) Start() error {
	portaudio.Initialize()
	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, BufferSize, c.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open input: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}
	c.stream = stream
	c.mu.Lock()
	c.active = true
	c.mu.Unlock()
	return nil
}

func (c *Capture) Stop() {
	if c.stream != nil {
		c.stream.Stop()
		c.stream.Close()
		c.stream = nil
	}
	portaudio.Terminate()
	c.mu.Lock()
	c.active = false
	c.mu.Unlock()
}

func (c *Capture) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *Capture) process(in []float32) {
	analyze(in, c.buf, c.raw)
	level := rms(in)

	c.mu.Lock()
	c.agc.normalize(c.raw, c.bands)
	if c.gain != 1.0 {
		for i := range c.bands {
			if c.bands[i] *= c.gain; c.bands[i] > 1 {
				c.bands[i] = 1
			}
		}
		level *= c.gain
	}
	c.level = c.level*smoothKeep + level*(1-smoothKeep)
	c.mu.Unlock()
}

// Bands returns a copy of the current embedding.
func (c *Capture) Bands() []float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]float64, Bands)
	copy(out, c.bands)
	return out
}

// Spectrum returns the embedding with its summary figures.
func (c *Capture) Spectrum() brain.AudioSpectrum {
	bands := c.Bands()
	bass, mids, highs := summarize(bands)

	c.mu.Lock()
	level := c.level
	c.mu.Unlock()

	return brain.AudioSpectrum{
		RMS:       level,
		Bass:      bass,
		Mids:      mids,
		Highs:     highs,
		Embedding: bands,
	}
}
