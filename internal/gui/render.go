package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/glassbrain/internal/scene"
)

func (a *App) drawScene() {
	rl.BeginMode3D(a.Camera)

	a.drawStars()
	if a.ShowWeb {
		a.drawLineBuffer(a.Engine.Web, 230)
	}
	a.drawLineBuffer(a.Engine.Inject, 200)
	a.drawLineBuffer(a.Engine.Audio, 200)
	a.drawNodes(a.Engine.Concepts, 0.5)
	a.drawNodes(a.Engine.Reservoir, 0.9)
	a.drawRing()

	rl.EndMode3D()
}

func (a *App) drawStars() {
	n := len(a.Stars) / 3
	for i := 0; i < n; i++ {
		pos := rl.NewVector3(a.Stars[i*3], a.Stars[i*3+1], a.Stars[i*3+2])
		shade := uint8(70 + (i%3)*30)
		rl.DrawPoint3D(pos, rl.NewColor(shade, shade, uint8(float32(shade)*1.15), 255))
	}
}

// drawNodes renders one population as glow sprites. Resting nodes are
// near-black and skipped; brightness drives sprite size so hot nodes
// swell as well as lighten.
func (a *App) drawNodes(buf *scene.PointBuffer, baseSize float32) {
	n := buf.Cap()
	for i := 0; i < n; i++ {
		r := buf.Color[i*3]
		g := buf.Color[i*3+1]
		b := buf.Color[i*3+2]
		bright := r
		if g > bright {
			bright = g
		}
		if b > bright {
			bright = b
		}
		if bright < 0.03 {
			continue
		}

		pos := rl.NewVector3(buf.Pos[i*3], buf.Pos[i*3+1], buf.Pos[i*3+2])
		size := baseSize * (0.5 + 0.9*minf32(bright, 1.6)/1.6)
		rl.DrawBillboard(a.Camera, a.ParticleTex, pos, size, colorFrom([3]float32{r, g, b}, 255))
	}
}

func (a *App) drawLineBuffer(buf *scene.LineBuffer, alpha uint8) {
	for i := 0; i < buf.Count(); i++ {
		from, to, col := buf.Segment(i)
		rl.DrawLine3D(
			rl.NewVector3(from[0], from[1], from[2]),
			rl.NewVector3(to[0], to[1], to[2]),
			colorFrom(col, alpha),
		)
	}
}

// drawRing draws the state halo as three concentric circles lying in
// the horizontal plane, giving the single-pixel primitive some body.
func (a *App) drawRing() {
	ring := a.Engine.Ring
	center := rl.NewVector3(0, 0, 0)
	axis := rl.NewVector3(1, 0, 0)

	core := colorFrom(ring.Color, uint8(255*minf32(ring.Alpha, 1)))
	halo := colorFrom(ring.Color, uint8(110*minf32(ring.Alpha, 1)))

	rl.DrawCircle3D(center, scene.RingRadius, axis, 90, core)
	rl.DrawCircle3D(center, scene.RingRadius*0.985, axis, 90, halo)
	rl.DrawCircle3D(center, scene.RingRadius*1.015, axis, 90, halo)
}

// drawVeil composites atmosphere fog and the plasticity flash as
// full-screen washes over the rendered scene.
func (a *App) drawVeil() {
	fog := a.Engine.Atmos.FogDensity
	alpha := uint8(minf32(fog*1400, 90))
	rl.DrawRectangle(0, 0, int32(a.width), int32(a.height), colorFrom(a.Engine.Atmos.Background, alpha))

	if g := a.Glow.Value(); g > 0.01 {
		rl.DrawRectangle(0, 0, int32(a.width), int32(a.height), rl.NewColor(255, 240, 220, uint8(28*g)))
	}
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
