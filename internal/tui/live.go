// Package tui renders the live brain feed in the terminal. A braille
// canvas carries the projected point cloud and line layers at 2x4
// subpixels per cell; a side panel tracks chemistry, vitals and the
// entropy history.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/glassbrain/internal/analysis"
	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/feed"
	"github.com/san-kum/glassbrain/internal/scene"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	framePeriod   = time.Second / 60
	autoYawRate   = 0.12
	statusWindow  = 4 * time.Second

	// Positions divide by this so the reservoir shell and the ring
	// both land inside the camera's unit-ish viewing volume.
	worldScale = 1.0 / (brain.BrainRadius * 1.5)
)

// Sender pushes stimuli back to whatever feeds the holder.
type Sender interface {
	Send(brain.Stimulus) error
}

type TickMsg time.Time

// Model owns the terminal frame loop: it drains the holder, steps the
// scene engine and redraws the canvas on every tick.
type Model struct {
	holder *feed.Holder
	sender Sender
	engine *scene.Engine
	glow   *analysis.Glow
	ent    *analysis.History

	canvas *Canvas
	cam    *Camera

	time       float64
	last       time.Time
	paused     bool
	autoRotate bool
	showWeb    bool
	showHelp   bool

	typing bool
	input  string

	status   string
	statusAt time.Time

	lastSnap   *brain.Snapshot
	lastPacket time.Time
	packetRate float64
}

func NewModel(holder *feed.Holder, sender Sender, params scene.Params) Model {
	return Model{
		holder:     holder,
		sender:     sender,
		engine:     scene.NewEngine(params),
		glow:       analysis.DefaultGlow(),
		ent:        analysis.NewHistory(120),
		canvas:     NewCanvas(defaultWidth, defaultHeight),
		cam:        NewCamera(),
		autoRotate: true,
		showWeb:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(framePeriod, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		cw := msg.Width - panelStyle.GetWidth() - 4
		ch := msg.Height - 2
		if cw < 40 {
			cw = 40
		}
		if ch < 16 {
			ch = 16
		}
		m.canvas = NewCanvas(cw, ch)
		return m, nil
	case TickMsg:
		if !m.paused {
			m.step(time.Time(msg))
		}
		m.draw()
		return m, tea.Tick(framePeriod, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.typing {
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input)
			m.typing, m.input = false, ""
			if text == "" {
				return m, nil
			}
			if m.sender == nil {
				m.setStatus("no backend to stimulate")
				return m, nil
			}
			if err := m.sender.Send(brain.Stimulus{Text: text, Force: true}); err != nil {
				m.setStatus("send failed: " + err.Error())
			} else {
				m.setStatus("injected: " + text)
			}
		case "esc":
			m.typing, m.input = false, ""
		case "backspace":
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		default:
			if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
				m.input += msg.String()
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
	case "w":
		m.showWeb = !m.showWeb
	case "a":
		m.autoRotate = !m.autoRotate
	case "t":
		m.typing = true
	case "r":
		m.cam.Reset()
	case "?":
		m.showHelp = !m.showHelp
	case "left", "h":
		m.cam.Turn(-0.15)
	case "right", "l":
		m.cam.Turn(0.15)
	case "up", "k":
		m.cam.Tilt(0.1)
	case "down", "j":
		m.cam.Tilt(-0.1)
	case "+", "=":
		m.cam.ZoomIn()
	case "-", "_":
		m.cam.ZoomOut()
	}
	return m, nil
}

// step advances time, drains the holder and runs one engine pass.
func (m *Model) step(now time.Time) {
	dt := framePeriod.Seconds()
	if !m.last.IsZero() {
		if d := now.Sub(m.last).Seconds(); d > 0 && d < 0.25 {
			dt = d
		}
	}
	m.last = now

	if m.autoRotate {
		m.cam.Yaw += autoYawRate * dt
	}

	if snap := m.holder.Latest(); snap != nil && snap != m.lastSnap {
		m.glow.Add(snap.HebbianEvents)
		m.ent.Push(snap.Entropy)
		if !m.lastPacket.IsZero() {
			if gap := now.Sub(m.lastPacket).Seconds(); gap > 0 {
				m.packetRate = m.packetRate*0.8 + (1/gap)*0.2
			}
		}
		m.lastPacket = now
		m.lastSnap = snap
	}
	m.glow.Step(dt)

	if m.lastSnap != nil {
		m.engine.Step(m.lastSnap, m.time)
	}
	m.time += dt
}

// draw repaints the canvas back to front: web lattice, ring, flow
// lines, concepts, then reservoir nodes.
func (m *Model) draw() {
	m.canvas.Clear()
	if m.lastSnap == nil {
		return
	}
	if m.showWeb {
		m.drawLines(m.engine.Web)
	}
	m.drawRing()
	m.drawLines(m.engine.Audio)
	m.drawLines(m.engine.Inject)
	m.drawPoints(m.engine.Concepts)
	m.drawPoints(m.engine.Reservoir)
}

func (m *Model) drawPoints(buf *scene.PointBuffer) {
	sw, sh := m.canvas.Width*2, m.canvas.Height*4
	for i := 0; i < buf.Cap(); i++ {
		s := shadeFor(buf.Color[i*3], buf.Color[i*3+1], buf.Color[i*3+2])
		if s == ShadeNone || s == ShadeHot {
			continue
		}
		x, y, _, ok := m.cam.Project(m.worldPoint(buf.Pos, i), sw, sh)
		if !ok {
			continue
		}
		m.canvas.Set(x, y, s)
	}
	// hot nodes last so their splat stays on top
	for i := 0; i < buf.Cap(); i++ {
		if shadeFor(buf.Color[i*3], buf.Color[i*3+1], buf.Color[i*3+2]) != ShadeHot {
			continue
		}
		x, y, _, ok := m.cam.Project(m.worldPoint(buf.Pos, i), sw, sh)
		if !ok {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				m.canvas.Set(x+dx, y+dy, ShadeHot)
			}
		}
	}
}

func (m *Model) drawLines(buf *scene.LineBuffer) {
	sw, sh := m.canvas.Width*2, m.canvas.Height*4
	for i := 0; i < buf.Count(); i++ {
		from, to, col := buf.Segment(i)
		s := shadeFor(col[0], col[1], col[2])
		if s == ShadeNone {
			continue
		}
		x1, y1, _, ok1 := m.cam.Project(vec(from), sw, sh)
		x2, y2, _, ok2 := m.cam.Project(vec(to), sw, sh)
		if !ok1 || !ok2 {
			continue
		}
		m.canvas.Line(x1, y1, x2, y2, s)
	}
}

func (m *Model) drawRing() {
	const segments = 72
	sw, sh := m.canvas.Width*2, m.canvas.Height*4
	s := ringShade(m.engine.Ring.Color)
	radius := scene.RingRadius * worldScale

	px, py, prevOK := 0, 0, false
	for k := 0; k <= segments; k++ {
		a := float64(k) / segments * 2 * math.Pi
		p := Vec3{radius * math.Cos(a), 0, radius * math.Sin(a)}
		x, y, _, ok := m.cam.Project(p, sw, sh)
		if ok && prevOK {
			m.canvas.Line(px, py, x, y, s)
		}
		px, py, prevOK = x, y, ok
	}
}

func (m *Model) worldPoint(pos []float32, i int) Vec3 {
	return Vec3{
		float64(pos[i*3]) * worldScale,
		float64(pos[i*3+1]) * worldScale,
		float64(pos[i*3+2]) * worldScale,
	}
}

func vec(p [3]float32) Vec3 {
	return Vec3{
		float64(p[0]) * worldScale,
		float64(p[1]) * worldScale,
		float64(p[2]) * worldScale,
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusAt = time.Now()
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.canvas.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panelStyle.Render(m.statsView()))
	if m.showHelp {
		return helpBox + "\n" + main
	}
	return main
}

func (m Model) statsView() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("GLASSBRAIN") + " " + dimStyle.Render("live cortex feed") + "\n")

	status := okStyle.Render("LIVE")
	if m.paused {
		status = warnStyle.Render("PAUSED")
	}
	b.WriteString(fmt.Sprintf("%s  %.1f pkt/s\n\n", status, m.packetRate))

	snap := m.lastSnap
	if snap == nil {
		b.WriteString(dimStyle.Render("waiting for telemetry...") + "\n")
		b.WriteString(m.footer())
		return b.String()
	}

	if brain.TraumaAlert(snap.TraumaState) {
		b.WriteString(alertStyle.Render(snap.TraumaState) + "\n")
	} else {
		b.WriteString(labelStyle.Render("trauma") + valueStyle.Render(snap.TraumaState) + "\n")
	}
	b.WriteString(labelStyle.Render("state") + valueStyle.Render(snap.CurrentState) + "\n")
	b.WriteString(labelStyle.Render("nodes") + valueStyle.Render(fmt.Sprintf("%d", snap.ActiveCount())) + "\n")
	b.WriteString(labelStyle.Render("heart") + valueStyle.Render(fmt.Sprintf("%.0f bpm", snap.HeartRate)) + "\n")
	b.WriteString(labelStyle.Render("lucidity") + valueStyle.Render(fmt.Sprintf("%.2f", snap.Lucidity)) + "\n")
	b.WriteString(labelStyle.Render("loop") + valueStyle.Render(fmt.Sprintf("%.1f hz", snap.LoopFrequency)) + "\n")
	b.WriteString(labelStyle.Render("cpu") + valueStyle.Render(fmt.Sprintf("%.0f%%", snap.CPUUsage)) + "\n")
	b.WriteString(labelStyle.Render("glow") + okStyle.Render(ProgressBar(m.glow.Value(), 14)) + "\n")

	b.WriteString("\n")
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"DOP", snap.Dopamine},
		{"SER", snap.Serotonin},
		{"COR", snap.Cortisol},
		{"ADE", snap.Adenosine},
		{"OXY", snap.Oxytocin},
	} {
		bar := chemStyles[c.name].Render(ProgressBar(c.v, 14))
		b.WriteString(fmt.Sprintf("%s %s %.2f\n", labelStyle.Render(c.name), bar, c.v))
	}

	if vals := m.ent.Values(); len(vals) > 1 {
		chart := asciigraph.Plot(vals, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("entropy"))
		b.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	if len(snap.Audio.Embedding) == brain.AudioBands {
		b.WriteString("\n" + labelStyle.Render("audio") + okStyle.Render(Sparkline(snap.Audio.Embedding, 32)) + "\n")
		b.WriteString(labelStyle.Render("rms") + valueStyle.Render(fmt.Sprintf("%.2f", snap.Audio.RMS)) + "\n")
	}

	if len(snap.ShortTermMemory) > 0 {
		b.WriteString("\n" + dimStyle.Render("memory") + "\n")
		for _, line := range snap.ShortTermMemory {
			if len(line) > 36 {
				line = line[:33] + "..."
			}
			b.WriteString("  " + dimStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.typing:
		b.WriteString(promptStyle.Render("> "+m.input+"_") + "\n")
	case m.status != "" && time.Since(m.statusAt) < statusWindow:
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) footer() string {
	return helpStyle.Render("\nSP:Pause W:Web T:Talk A:Spin R:Reset\n←→↑↓:Orbit +/-:Zoom ?:Help Q:Quit")
}

const helpBox = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume rendering   ║
║  W        - Toggle hebbian web       ║
║  T        - Type a stimulus          ║
║  A        - Toggle auto-orbit        ║
║  R        - Reset camera             ║
║  Arrows   - Orbit camera             ║
║  + / -    - Zoom                     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run drives the terminal view until quit.
func Run(holder *feed.Holder, sender Sender, params scene.Params) error {
	return tea.NewProgram(NewModel(holder, sender, params), tea.WithAltScreen()).Start()
}
