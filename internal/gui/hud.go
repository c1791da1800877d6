package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/glassbrain/internal/brain"
)

func (a *App) DrawHUD() {
	snap := a.lastSnap

	a.drawText("glassbrain", 30, 26, 24, ColSelect)
	if snap == nil {
		a.drawText(":: waiting for telemetry", 175, 31, 16, ColTextDim)
		a.drawHelp()
		return
	}
	a.drawText(fmt.Sprintf(":: %d nodes  %.1f pkt/s", snap.ActiveCount(), a.packetRate), 175, 31, 16, ColText)

	a.drawTraumaLine(snap)
	a.drawVitals(snap)
	a.drawChemBars(snap)
	a.drawEntropyGraph(snap)
	a.drawAudioBars(snap)
	a.drawMemory(snap)
	a.drawVisualCortex(snap)
	a.drawStatus()
	a.drawHelp()
}

func (a *App) drawTraumaLine(snap *brain.Snapshot) {
	label := snap.TraumaState
	if label == "" {
		label = brain.TraumaStable
	}
	if brain.TraumaAlert(label) {
		pulse := 0.6 + 0.4*math.Abs(math.Sin(a.Time*4))
		col := rl.NewColor(255, 60, 40, uint8(255*pulse))
		a.drawText(label, a.width/2-len(label)*6, 26, 22, col)
		return
	}
	a.drawText(label, a.width-30-len(label)*10, 26, 18, ColText)
}

func (a *App) drawVitals(snap *brain.Snapshot) {
	x := a.width - 250
	y := 70
	line := func(s string) {
		a.drawText(s, x, y, 15, ColText)
		y += 22
	}
	if snap.CurrentState != "" {
		line(fmt.Sprintf("state  %s", snap.CurrentState))
	}
	line(fmt.Sprintf("heart  %3.0f bpm", snap.HeartRate))
	line(fmt.Sprintf("lucid  %.2f", snap.Lucidity))
	line(fmt.Sprintf("loop   %.1f hz", snap.LoopFrequency))
	line(fmt.Sprintf("cpu    %.0f%%", snap.CPUUsage))
	line(fmt.Sprintf("hebb   %d", snap.HebbianEvents))
}

func (a *App) drawChemBars(snap *brain.Snapshot) {
	type chem struct {
		label string
		value float64
	}
	chems := []chem{
		{"DOP", snap.Dopamine},
		{"SER", snap.Serotonin},
		{"COR", snap.Cortisol},
		{"ADE", snap.Adenosine},
		{"OXY", snap.Oxytocin},
	}

	x := 30
	y := a.height - 210
	for _, c := range chems {
		a.drawBar(c.label, c.value, x, y, chemColors[c.label])
		y += 26
	}
}

func (a *App) drawBar(label string, value float64, x, y int, col rl.Color) {
	const barW = 140
	v := value
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	a.drawText(label, x, y, 14, ColTextDim)
	rl.DrawRectangle(int32(x+44), int32(y+3), barW, 10, rl.NewColor(25, 25, 30, 255))
	rl.DrawRectangle(int32(x+44), int32(y+3), int32(v*barW), 10, col)
	a.drawText(fmt.Sprintf("%.2f", value), x+44+barW+8, y, 14, ColText)
}

// drawEntropyGraph plots the recent entropy trace as a line strip on a
// fixed 0..1 scale.
func (a *App) drawEntropyGraph(snap *brain.Snapshot) {
	values := a.Ent.Values()
	if len(values) < 2 {
		return
	}

	x, y := 30, a.height-60
	w, h := 260, 40

	rl.DrawRectangleLines(int32(x), int32(y-h), int32(w), int32(h), ColTextDim)
	points := make([]rl.Vector2, len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		points[i] = rl.NewVector2(
			float32(x)+(float32(i)/float32(len(values)-1))*float32(w),
			float32(y)-float32(v)*float32(h),
		)
	}
	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("H %.2f", snap.Entropy), x+w+10, y-18, 14, ColText)
}

func (a *App) drawAudioBars(snap *brain.Snapshot) {
	au := snap.Audio
	if len(au.Embedding) == 0 && au.RMS == 0 {
		return
	}
	x := 330
	y := a.height - 210
	bars := []struct {
		label string
		value float64
	}{
		{"BAS", au.Bass},
		{"MID", au.Mids},
		{"HI ", au.Highs},
	}
	for _, b := range bars {
		a.drawBar(b.label, b.value, x, y, rl.NewColor(90, 200, 120, 255))
		y += 26
	}
}

func (a *App) drawMemory(snap *brain.Snapshot) {
	if len(snap.ShortTermMemory) == 0 {
		return
	}
	x := a.width - 380
	y := a.height - 40 - 18*len(snap.ShortTermMemory)
	a.drawText("memory", x, y-20, 14, ColTextDim)
	for _, line := range snap.ShortTermMemory {
		if len(line) > 42 {
			line = line[:42]
		}
		a.drawText(line, x, y, 14, ColText)
		y += 18
	}
}

// drawVisualCortex paints the 16x16 field as a small heat grid.
func (a *App) drawVisualCortex(snap *brain.Snapshot) {
	const side = 16
	if len(snap.VisualCortex) < side*side {
		return
	}
	cell := 5
	x0 := a.width - 250
	y0 := 230
	a.drawText("v1", x0, y0-18, 14, ColTextDim)
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			v := snap.VisualCortex[row*side+col]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			shade := uint8(v * 255)
			rl.DrawRectangle(
				int32(x0+col*cell), int32(y0+row*cell),
				int32(cell-1), int32(cell-1),
				rl.NewColor(shade, shade, uint8(float32(shade)*0.8), 255),
			)
		}
	}
}

func (a *App) drawStatus() {
	if a.status == "" || a.Time-a.statusAt > 4 {
		return
	}
	a.drawText(a.status, a.width/2-len(a.status)*4, a.height-70, 15, ColAccent)
}

func (a *App) drawHelp() {
	help := "[SPACE] ORBIT  [P] PAUSE  [B] BLOOM  [W] WEB  [H] HUD  [T] TALK  [R] CAMERA  [Q] QUIT"
	a.drawText(help, a.width-30-len(help)*8, a.height-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, a.height-30, 14, ColTextDim)
}

func (a *App) drawPrompt() {
	w := 520
	x := a.width/2 - w/2
	y := a.height - 120
	rl.DrawRectangle(int32(x), int32(y), int32(w), 36, rl.NewColor(12, 12, 16, 230))
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), 36, ColTextDim)

	caret := ""
	if math.Mod(a.Time, 1) < 0.5 {
		caret = "_"
	}
	a.drawText(fmt.Sprintf("> %s%s", string(a.inputBuf), caret), x+10, y+8, 16, ColSelect)
}
