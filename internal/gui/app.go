package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/glassbrain/internal/analysis"
	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/feed"
	"github.com/san-kum/glassbrain/internal/layout"
	"github.com/san-kum/glassbrain/internal/scene"
)

// HUD palette. Grayscale so the overlay never competes with the scene;
// the 3D layers are colored by the engine.
var (
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColAlert   = rl.NewColor(255, 60, 40, 255)
)

// Chemical bar hues.
var chemColors = map[string]rl.Color{
	"DOP": rl.NewColor(255, 200, 60, 255),
	"SER": rl.NewColor(80, 220, 160, 255),
	"COR": rl.NewColor(255, 90, 70, 255),
	"ADE": rl.NewColor(120, 120, 200, 255),
	"OXY": rl.NewColor(240, 140, 220, 255),
}

// Sender pushes a stimulus back to whatever produced the telemetry.
// Nil when the source has no return channel.
type Sender interface {
	Send(brain.Stimulus) error
}

// Options sizes the window and selects post-processing.
type Options struct {
	Width  int
	Height int
	FPS    int
	Bloom  bool
	Title  string
}

func DefaultOptions() Options {
	return Options{Width: 1280, Height: 720, FPS: 60, Bloom: true, Title: "glassbrain"}
}

type App struct {
	Holder *feed.Holder
	Sender Sender
	Engine *scene.Engine
	Glow   *analysis.Glow
	Ent    *analysis.History

	Camera rl.Camera3D
	Font   rl.Font

	// Visual Polish
	ParticleTex rl.Texture2D
	Stars       []float32

	// Post-Processing
	TargetTex   rl.RenderTexture2D
	BloomShader rl.Shader
	UseBloom    bool

	Time   float64
	Paused bool

	// Orbit state
	yaw, pitch, dist float64
	distTarget       float64
	orbiting         bool

	ShowHUD bool
	ShowWeb bool

	lastSnap   *brain.Snapshot
	lastPacket float64
	packetRate float64

	typing   bool
	inputBuf []rune
	status   string
	statusAt float64

	width, height int
	quit          bool
}

func initWindow(o Options) {
	rl.InitWindow(int32(o.Width), int32(o.Height), o.Title)
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wires the holder to a fresh engine. Window must already exist.
func NewApp(o Options, holder *feed.Holder, sender Sender, params scene.Params) *App {
	app := &App{
		Holder: holder,
		Sender: sender,
		Engine: scene.NewEngine(params),
		Glow:   analysis.DefaultGlow(),
		Ent:    analysis.NewHistory(240),
		Camera: rl.NewCamera3D(
			rl.NewVector3(0, 20, 110),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			45.0,
			rl.CameraPerspective,
		),
		Font:       loadFont(),
		UseBloom:   o.Bloom,
		yaw:        0.6,
		pitch:      0.25,
		dist:       110,
		distTarget: 110,
		orbiting:   true,
		ShowHUD:    true,
		ShowWeb:    true,
		width:      o.Width,
		height:     o.Height,
	}

	// Glow sprite for nodes
	img := rl.GenImageGradientRadial(32, 32, 0.0, rl.White, rl.NewColor(0, 0, 0, 0))
	app.ParticleTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	// Starfield, fixed for the session
	r := layout.NewRand(params.Seed ^ 0x57a2)
	numStars := 900
	app.Stars = make([]float32, numStars*3)
	for i := 0; i < numStars; i++ {
		theta := r.Float64() * 2 * math.Pi
		phi := math.Acos(2*r.Float64() - 1)
		rad := 400 + r.Float64()*400
		app.Stars[i*3] = float32(rad * math.Sin(phi) * math.Cos(theta))
		app.Stars[i*3+1] = float32(rad * math.Cos(phi))
		app.Stars[i*3+2] = float32(rad * math.Sin(phi) * math.Sin(theta))
	}

	app.TargetTex = rl.LoadRenderTexture(int32(o.Width), int32(o.Height))
	app.BloomShader = rl.LoadShader("", "assets/shaders/bloom.fs")

	return app
}

// Run opens the window and blocks until it closes.
func Run(o Options, holder *feed.Holder, sender Sender, params scene.Params) {
	initWindow(o)
	defer rl.CloseWindow()
	app := NewApp(o, holder, sender, params)
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	dt := float64(rl.GetFrameTime())

	if a.typing {
		a.updateTyping()
	} else {
		a.updateKeys()
	}
	a.updateCamera(dt)

	if !a.Paused {
		a.Time += dt
	}

	// Ingest whatever the feed holds. A missing or stale snapshot is
	// not an error; the engine darkens what it must and the frame
	// completes regardless.
	snap := a.Holder.Latest()
	if snap != a.lastSnap {
		a.Glow.Add(snap.HebbianEvents)
		a.Ent.Push(snap.Entropy)
		if a.lastPacket > 0 {
			if gap := a.Time - a.lastPacket; gap > 0 {
				a.packetRate = a.packetRate*0.8 + (1/gap)*0.2
			}
		}
		a.lastPacket = a.Time
		a.lastSnap = snap
	}
	a.Glow.Step(dt)

	a.Engine.Step(snap, a.Time)
}

func (a *App) updateKeys() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.orbiting = !a.orbiting
	}
	if rl.IsKeyPressed(rl.KeyP) {
		a.Paused = !a.Paused
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyB) {
		a.UseBloom = !a.UseBloom
	}
	if rl.IsKeyPressed(rl.KeyW) {
		a.ShowWeb = !a.ShowWeb
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.yaw, a.pitch, a.distTarget = 0.6, 0.25, 110
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.typing = true
		a.inputBuf = a.inputBuf[:0]
	}
}

func (a *App) updateTyping() {
	for {
		ch := rl.GetCharPressed()
		if ch == 0 {
			break
		}
		if ch >= 32 {
			a.inputBuf = append(a.inputBuf, ch)
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(a.inputBuf) > 0 {
		a.inputBuf = a.inputBuf[:len(a.inputBuf)-1]
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.typing = false
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		a.typing = false
		text := string(a.inputBuf)
		if text == "" {
			return
		}
		if a.Sender == nil {
			a.setStatus("no backend to stimulate")
			return
		}
		if err := a.Sender.Send(brain.Stimulus{Text: text, Force: true}); err != nil {
			a.setStatus(fmt.Sprintf("send failed: %v", err))
		} else {
			a.setStatus(fmt.Sprintf("sent: %s", text))
		}
	}
}

func (a *App) updateCamera(dt float64) {
	if a.orbiting && !a.Paused {
		a.yaw += 0.12 * dt
	}

	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.yaw -= float64(delta.X) * 0.005
		a.pitch += float64(delta.Y) * 0.005
	}
	if a.pitch > 1.2 {
		a.pitch = 1.2
	}
	if a.pitch < -1.2 {
		a.pitch = -1.2
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.distTarget -= float64(wheel) * 8
		if a.distTarget < 15 {
			a.distTarget = 15
		}
		if a.distTarget > 300 {
			a.distTarget = 300
		}
	}

	// Inertia on zoom only; rotation follows input directly
	lerp := 6 * dt
	if lerp > 1 {
		lerp = 1
	}
	a.dist += (a.distTarget - a.dist) * lerp

	cp := math.Cos(a.pitch)
	a.Camera.Position = rl.NewVector3(
		float32(a.dist*cp*math.Sin(a.yaw)),
		float32(a.dist*math.Sin(a.pitch)),
		float32(a.dist*cp*math.Cos(a.yaw)),
	)
	a.Camera.Target = rl.NewVector3(0, 0, 0)
}

func (a *App) Draw() {
	bg := colorFrom(a.Engine.Atmos.Background, 255)

	if a.UseBloom {
		rl.BeginTextureMode(a.TargetTex)
		rl.ClearBackground(bg)
		a.drawScene()
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(bg)
		rl.BeginShaderMode(a.BloomShader)
		rl.DrawTextureRec(
			a.TargetTex.Texture,
			rl.NewRectangle(0, 0, float32(a.width), -float32(a.height)),
			rl.NewVector2(0, 0),
			rl.White,
		)
		rl.EndShaderMode()
	} else {
		rl.BeginDrawing()
		rl.ClearBackground(bg)
		a.drawScene()
	}

	a.drawVeil()
	if a.ShowHUD {
		a.DrawHUD()
	}
	if a.typing {
		a.drawPrompt()
	}
	rl.EndDrawing()
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusAt = a.Time
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// colorFrom clamps engine floats into a drawable color. Components
// above 1 are bloom headroom, flattened here and re-lifted by the
// shader.
func colorFrom(c [3]float32, alpha uint8) rl.Color {
	ch := func(v float32) uint8 {
		if v > 1 {
			v = 1
		}
		if v < 0 {
			v = 0
		}
		return uint8(v * 255)
	}
	return rl.NewColor(ch(c[0]), ch(c[1]), ch(c[2]), alpha)
}
