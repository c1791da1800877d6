package scene

// inactiveShade is the near-black resting color every point starts at
// and falls back to when its index leaves the active range.
const inactiveShade = 0.02

// PointBuffer holds one population's positions and colors as flat rgb/xyz
// triplets. Allocated once at capacity; never resized, never reallocated.
type PointBuffer struct {
	Pos   []float32
	Color []float32
	cap   int
	dirty bool
}

func NewPointBuffer(capacity int) *PointBuffer {
	if capacity < 0 {
		capacity = 0
	}
	b := &PointBuffer{
		Pos:   make([]float32, capacity*3),
		Color: make([]float32, capacity*3),
		cap:   capacity,
	}
	for i := range b.Color {
		b.Color[i] = inactiveShade
	}
	return b
}

func (b *PointBuffer) Cap() int { return b.cap }

// SetPoint writes node i's position. Out-of-range indices are ignored.
func (b *PointBuffer) SetPoint(i int, x, y, z float32) {
	if i < 0 || i >= b.cap {
		return
	}
	b.Pos[i*3] = x
	b.Pos[i*3+1] = y
	b.Pos[i*3+2] = z
}

// SetColor writes node i's color. Components may exceed 1 for bloom.
func (b *PointBuffer) SetColor(i int, r, g, bl float32) {
	if i < 0 || i >= b.cap {
		return
	}
	b.Color[i*3] = r
	b.Color[i*3+1] = g
	b.Color[i*3+2] = bl
}

// Darken forces every index at or past from to the origin and to full
// dark, so a shrinking active count cannot leave stale bright remnants.
func (b *PointBuffer) Darken(from int) {
	if from < 0 {
		from = 0
	}
	for i := from * 3; i < b.cap*3; i++ {
		b.Pos[i] = 0
		b.Color[i] = 0
	}
}

// MarkDirty flags the buffer for upload.
func (b *PointBuffer) MarkDirty() { b.dirty = true }

// TakeDirty returns whether an upload is pending and clears the flag.
// Called once per tick by the drawing side to batch uploads.
func (b *PointBuffer) TakeDirty() bool {
	d := b.dirty
	b.dirty = false
	return d
}

// LineBuffer is a fixed-capacity arena of line segments plus a draw
// count. Entries past Count are stale garbage and must not be drawn;
// nothing is ever cleared, only excluded by the count.
type LineBuffer struct {
	Pos   []float32 // two xyz endpoints per line
	Color []float32 // one rgb per line
	count int
	cap   int
}

func NewLineBuffer(capacity int) *LineBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &LineBuffer{
		Pos:   make([]float32, capacity*6),
		Color: make([]float32, capacity*3),
		cap:   capacity,
	}
}

func (b *LineBuffer) Cap() int   { return b.cap }
func (b *LineBuffer) Count() int { return b.count }

// Reset empties the draw range without touching the arena.
func (b *LineBuffer) Reset() { b.count = 0 }

// Append adds one segment and reports whether it fit.
func (b *LineBuffer) Append(x1, y1, z1, x2, y2, z2, r, g, bl float32) bool {
	if b.count >= b.cap {
		return false
	}
	p := b.count * 6
	b.Pos[p] = x1
	b.Pos[p+1] = y1
	b.Pos[p+2] = z1
	b.Pos[p+3] = x2
	b.Pos[p+4] = y2
	b.Pos[p+5] = z2
	c := b.count * 3
	b.Color[c] = r
	b.Color[c+1] = g
	b.Color[c+2] = bl
	b.count++
	return true
}

// Segment returns line i's endpoints and color. Only valid for i < Count.
func (b *LineBuffer) Segment(i int) (from, to, color [3]float32) {
	p := i * 6
	from = [3]float32{b.Pos[p], b.Pos[p+1], b.Pos[p+2]}
	to = [3]float32{b.Pos[p+3], b.Pos[p+4], b.Pos[p+5]}
	c := i * 3
	color = [3]float32{b.Color[c], b.Color[c+1], b.Color[c+2]}
	return
}
