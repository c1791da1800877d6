package tui

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects normalized world points onto the subpixel grid. Yaw
// spins around the vertical axis, pitch tilts toward the poles. Dist
// is the eye distance in normalized units, so points live roughly in
// the unit sphere after division by the world radius.
type Camera struct {
	Yaw, Pitch float64
	Dist       float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Yaw: 0.6, Pitch: 0.25, Dist: 3.0, Zoom: 1.0}
}

func (c *Camera) Turn(d float64) { c.Yaw += d }

// Tilt adjusts pitch, clamped short of the poles.
func (c *Camera) Tilt(d float64) {
	c.Pitch += d
	if c.Pitch > 1.2 {
		c.Pitch = 1.2
	}
	if c.Pitch < -1.2 {
		c.Pitch = -1.2
	}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(8, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.2, c.Zoom/1.2) }

// Reset restores the default orbit.
func (c *Camera) Reset() {
	c.Yaw, c.Pitch, c.Zoom = 0.6, 0.25, 1.0
}

// Rotate applies the camera orientation to a point.
func (c *Camera) Rotate(p Vec3) Vec3 {
	cy, sy := math.Cos(c.Yaw), math.Sin(c.Yaw)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.Pitch), math.Sin(c.Pitch)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project converts a normalized world point to subpixel coordinates.
// Returns x, y, view depth, and whether the point lands in front of
// the eye and inside the grid.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.Rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Dist-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Dist / (c.Dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}
