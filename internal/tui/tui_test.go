package tui

import (
	"strings"
	"testing"

	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/feed"
	"github.com/san-kum/glassbrain/internal/scene"
)

func TestCanvasBrailleCells(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0, ShadeGold)
	if c.grid[0][0] != 0x2801 {
		t.Errorf("expected 0x2801, got %#x", c.grid[0][0])
	}
	c.Set(1, 3, ShadeGold)
	if c.grid[0][0] != 0x2801|0x80 {
		t.Errorf("expected dots to accumulate in one cell, got %#x", c.grid[0][0])
	}
	c.Set(2, 4, ShadeGreen)
	if c.grid[1][1] != 0x2801 {
		t.Errorf("expected subpixel (2,4) in cell (1,1), got %#x", c.grid[1][1])
	}
	if c.shade[1][1] != ShadeGreen {
		t.Errorf("expected ShadeGreen, got %d", c.shade[1][1])
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(-1, 0, ShadeGold)
	c.Set(0, -5, ShadeGold)
	c.Set(100, 100, ShadeGold)
	for row := range c.grid {
		for col := range c.grid[row] {
			if c.grid[row][col] != 0x2800 {
				t.Fatalf("out of range Set touched cell (%d,%d)", row, col)
			}
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 1)
	c.Line(0, 0, 7, 0, ShadeDim)
	for x := 0; x <= 7; x++ {
		bit := pixelMap[0][x%2]
		if c.grid[0][x/2]&bit == 0 {
			t.Errorf("line missing subpixel %d", x)
		}
	}
	if c.grid[0][4] != 0x2800 {
		t.Errorf("line overshot into cell 4: %#x", c.grid[0][4])
	}
}

func TestCanvasShadeLastWins(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0, ShadeDim)
	c.Set(1, 0, ShadeGold)
	if c.shade[0][0] != ShadeGold {
		t.Errorf("expected later shade to win, got %d", c.shade[0][0])
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Line(0, 0, 5, 11, ShadeHot)
	c.Clear()
	for row := range c.grid {
		for col := range c.grid[row] {
			if c.grid[row][col] != 0x2800 || c.shade[row][col] != ShadeNone {
				t.Fatal("clear left residue")
			}
		}
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(5, 3)
	got := c.String()
	if n := strings.Count(got, "\n"); n != 3 {
		t.Errorf("expected 3 lines, got %d", n)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := &Camera{Dist: 3, Zoom: 1}
	x, y, _, ok := cam.Project(Vec3{}, 160, 96)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != 80 || y != 48 {
		t.Errorf("expected center (80,48), got (%d,%d)", x, y)
	}
}

func TestCameraProjectOffsets(t *testing.T) {
	cam := &Camera{Dist: 3, Zoom: 1}
	x, y, _, ok := cam.Project(Vec3{X: 0.5}, 160, 96)
	if !ok || x <= 80 || y != 48 {
		t.Errorf("expected +X right of center, got (%d,%d) ok=%v", x, y, ok)
	}
	_, y, _, ok = cam.Project(Vec3{Y: 0.5}, 160, 96)
	if !ok || y >= 48 {
		t.Errorf("expected +Y above center, got y=%d ok=%v", y, ok)
	}
}

func TestCameraCullsBehindEye(t *testing.T) {
	cam := &Camera{Dist: 3, Zoom: 1}
	if _, _, _, ok := cam.Project(Vec3{Z: 5}, 160, 96); ok {
		t.Error("point behind the eye should be culled")
	}
}

func TestCameraPerspective(t *testing.T) {
	cam := &Camera{Dist: 3, Zoom: 1}
	near, _, _, _ := cam.Project(Vec3{X: 0.5, Z: 1}, 160, 96)
	far, _, _, _ := cam.Project(Vec3{X: 0.5, Z: -1}, 160, 96)
	if near <= far {
		t.Errorf("expected nearer point further from center, got near=%d far=%d", near, far)
	}
}

func TestCameraClamps(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 30; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 8 {
		t.Errorf("zoom exceeded cap: %f", cam.Zoom)
	}
	for i := 0; i < 60; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.2 {
		t.Errorf("zoom under floor: %f", cam.Zoom)
	}
	cam.Tilt(10)
	if cam.Pitch > 1.2 {
		t.Errorf("pitch exceeded clamp: %f", cam.Pitch)
	}
	cam.Tilt(-10)
	if cam.Pitch < -1.2 {
		t.Errorf("pitch under clamp: %f", cam.Pitch)
	}
}

func TestShadeFor(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b float32
		want    Shade
	}{
		{"black", 0, 0, 0, ShadeNone},
		{"resting", 0.02, 0.02, 0.02, ShadeNone},
		{"bloom", 1.3, 0.9, 0.3, ShadeHot},
		{"weak link", 0.25, 0.30, 0.45, ShadeDim},
		{"semantic", 0.9, 0.76, 0.3, ShadeGold},
		{"auditory", 0.3, 0.9, 0.45, ShadeGreen},
		{"association", 0.36, 0.59, 0.69, ShadeCyan},
		{"limbic", 0.6, 0.35, 0.9, ShadeViolet},
	}
	for _, tc := range cases {
		if got := shadeFor(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("%s: expected shade %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestRingShade(t *testing.T) {
	if got := ringShade([3]float32{0.25, 0.55, 0.95}); got != ShadeCalm {
		t.Errorf("calm ring misclassified: %d", got)
	}
	if got := ringShade([3]float32{1.0, 0.55, 0.10}); got != ShadeWarn {
		t.Errorf("warn ring misclassified: %d", got)
	}
	if got := ringShade([3]float32{1.0, 0.12, 0.08}); got != ShadeAlert {
		t.Errorf("alert ring misclassified: %d", got)
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0, 10); got != strings.Repeat("░", 10) {
		t.Errorf("empty bar wrong: %q", got)
	}
	if got := ProgressBar(1, 10); got != strings.Repeat("█", 10) {
		t.Errorf("full bar wrong: %q", got)
	}
	if got := ProgressBar(2.5, 10); len([]rune(got)) != 10 {
		t.Errorf("overflow not clamped: %q", got)
	}
	if got := ProgressBar(-1, 10); got != strings.Repeat("░", 10) {
		t.Errorf("negative not clamped: %q", got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 8); got != strings.Repeat("─", 8) {
		t.Errorf("empty input wrong: %q", got)
	}
	lows := Sparkline(make([]float64, 16), 8)
	if lows != strings.Repeat("▁", 8) {
		t.Errorf("zeros should floor: %q", lows)
	}
	ones := make([]float64, 16)
	for i := range ones {
		ones[i] = 1
	}
	if got := Sparkline(ones, 8); got != strings.Repeat("█", 8) {
		t.Errorf("ones should peak: %q", got)
	}
}

func testParams() scene.Params {
	return scene.Params{
		Seed:         1,
		MaxNodes:     8,
		ConceptCount: 4,
		PairTarget:   4,
		PairAttempts: 200,
		InjectLines:  8,
		AudioLines:   8,
		WebLines:     8,
	}
}

func TestDrawFromEngine(t *testing.T) {
	m := NewModel(feed.NewHolder(), nil, testParams())
	snap := &brain.Snapshot{
		ReservoirSize: 2,
		Activity:      []float64{0.9, 0.9},
		RegionMap:     []brain.Region{brain.Semantic, brain.Auditory},
		Positions:     []float32{10, 0, 0, -10, 0, 0},
	}
	m.lastSnap = snap
	m.engine.Step(snap, 0)
	m.draw()

	lit := 0
	for row := range m.canvas.grid {
		for col := range m.canvas.grid[row] {
			if m.canvas.grid[row][col] != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("expected the ring and nodes to light cells")
	}
}

func TestDrawEmptyUntilFirstPacket(t *testing.T) {
	m := NewModel(feed.NewHolder(), nil, testParams())
	m.draw()
	for row := range m.canvas.grid {
		for col := range m.canvas.grid[row] {
			if m.canvas.grid[row][col] != 0x2800 {
				t.Fatal("canvas should stay empty before the first packet")
			}
		}
	}
}

func TestViewWaiting(t *testing.T) {
	m := NewModel(feed.NewHolder(), nil, testParams())
	if got := m.View(); !strings.Contains(got, "waiting for telemetry") {
		t.Error("expected waiting banner before first packet")
	}
}
