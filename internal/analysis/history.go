package analysis

// History is a fixed-capacity chronological sample ring. Pushing past
// capacity drops the oldest sample.
type History struct {
	buf  []float64
	head int
	size int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{buf: make([]float64, capacity)}
}

// Push appends a sample.
func (h *History) Push(v float64) {
	h.buf[h.head] = v
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Len returns the number of live samples.
func (h *History) Len() int { return h.size }

// Last returns the most recent sample, zero when empty.
func (h *History) Last() float64 {
	if h.size == 0 {
		return 0
	}
	return h.buf[(h.head-1+len(h.buf))%len(h.buf)]
}

// Values returns the samples oldest-first. The copy is fresh each call;
// plotting code may keep it.
func (h *History) Values() []float64 {
	out := make([]float64, h.size)
	start := (h.head - h.size + len(h.buf)) % len(h.buf)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(start+i)%len(h.buf)]
	}
	return out
}
