package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots per character cell
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Shade is the color class a canvas cell carries. Later draws replace
// earlier ones, so layers go on back to front.
type Shade uint8

const (
	ShadeNone Shade = iota
	ShadeDim
	ShadeCalm
	ShadeWarn
	ShadeAlert
	ShadeGold
	ShadeGreen
	ShadeViolet
	ShadeCyan
	ShadeHot
)

var shadeStyles = [...]lipgloss.Style{
	ShadeNone:   lipgloss.NewStyle(),
	ShadeDim:    lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	ShadeCalm:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	ShadeWarn:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	ShadeAlert:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	ShadeGold:   lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	ShadeGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("83")),
	ShadeViolet: lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	ShadeCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("80")),
	ShadeHot:    lipgloss.NewStyle().Foreground(lipgloss.Color("231")),
}

// Canvas is a braille pixel grid with one shade per character cell.
// The drawable subpixel space is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	grid          [][]rune
	shade         [][]Shade
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		grid:   make([][]rune, h),
		shade:  make([][]Shade, h),
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
		c.shade[i] = make([]Shade, w)
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
	return c
}

// Clear resets every cell to the empty braille glyph.
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
			c.shade[i][j] = ShadeNone
		}
	}
}

// Set lights a subpixel at (x, y) and stamps its cell with s.
func (c *Canvas) Set(x, y int, s Shade) {
	if x < 0 || y < 0 {
		return
	}
	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= pixelMap[y%4][x%2]
	c.shade[row][col] = s
}

// Line draws a shaded line between subpixels using Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, s Shade) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, s)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid with one ANSI style per run of equally
// shaded cells.
func (c *Canvas) String() string {
	var b strings.Builder
	run := make([]rune, 0, c.Width)
	for row := range c.grid {
		cur := ShadeNone
		flush := func() {
			if len(run) == 0 {
				return
			}
			if cur == ShadeNone {
				b.WriteString(string(run))
			} else {
				b.WriteString(shadeStyles[cur].Render(string(run)))
			}
			run = run[:0]
		}
		for col := range c.grid[row] {
			if s := c.shade[row][col]; s != cur {
				flush()
				cur = s
			}
			run = append(run, c.grid[row][col])
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

// Classifier thresholds against scene buffer colors: the near-black
// resting shade sits under the floor, full activation pushes the
// dominant channel past 1 for the bloom pass.
const (
	shadeFloor  = 0.06
	shadeDimMax = 0.5
	shadeHotMin = 1.05
)

// shadeFor maps a scene color to a terminal shade class. Flash and
// ambient floor lift all channels equally and activation scales them
// equally, so channel ordering survives both and recovers the region
// family; the blue-dominant hues split violet from cyan on red versus
// green.
func shadeFor(r, g, b float32) Shade {
	c := r
	if g > c {
		c = g
	}
	if b > c {
		c = b
	}
	switch {
	case c < shadeFloor:
		return ShadeNone
	case c > shadeHotMin:
		return ShadeHot
	case c < shadeDimMax:
		return ShadeDim
	}
	switch {
	case r >= g && r >= b:
		return ShadeGold
	case g >= b:
		return ShadeGreen
	case r > g:
		return ShadeViolet
	default:
		return ShadeCyan
	}
}

// ringShade picks the halo shade from the ring's resolved color.
func ringShade(c [3]float32) Shade {
	switch {
	case c[2] > c[0]:
		return ShadeCalm
	case c[1] > 0.3:
		return ShadeWarn
	default:
		return ShadeAlert
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
