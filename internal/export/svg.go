// Package export writes the generated anatomy out for inspection: an
// SVG projection of the point cloud and a JSON dump of the raw layout.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/scene"
)

// Projection planes for LayoutSVG.
const (
	ViewTop   = "top"   // x across, z up: looking down on the cortex
	ViewSide  = "side"  // z across, y up: hemisphere profile
	ViewFront = "front" // x across, y up: face on
)

// LayoutSVG renders an orthographic projection of the anatomy with
// nodes colored by region. pairs, when non-nil, are drawn as faint
// strokes underneath the nodes.
func LayoutSVG(positions []float32, regions []brain.Region, pairs []scene.Pair, view string, width, height int) string {
	n := len(positions) / 3
	if n == 0 {
		return ""
	}

	px := make([]float64, n)
	py := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(positions[i*3])
		y := float64(positions[i*3+1])
		z := float64(positions[i*3+2])
		switch view {
		case ViewSide:
			px[i], py[i] = z, y
		case ViewFront:
			px[i], py[i] = x, y
		default:
			px[i], py[i] = x, z
		}
	}

	minX, maxX := px[0], px[0]
	minY, maxY := py[0], py[0]
	for i := 1; i < n; i++ {
		if px[i] < minX {
			minX = px[i]
		}
		if px[i] > maxX {
			maxX = px[i]
		}
		if py[i] < minY {
			minY = py[i]
		}
		if py[i] > maxY {
			maxY = py[i]
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toScreen := func(i int) (float64, float64) {
		x := (px[i] - minX) / rangeX * float64(width)
		y := float64(height) - (py[i]-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if len(pairs) > 0 {
		sb.WriteString(`<g stroke="#2a3550" stroke-width="0.6" stroke-opacity="0.4">
`)
		for _, p := range pairs {
			i, j := int(p.I), int(p.J)
			if i >= n || j >= n {
				continue
			}
			x1, y1 := toScreen(i)
			x2, y2 := toScreen(j)
			sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, x1, y1, x2, y2))
		}
		sb.WriteString("</g>\n")
	}

	for i := 0; i < n; i++ {
		x, y := toScreen(i)
		tag := brain.Association
		if i < len(regions) {
			tag = regions[i]
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="1.6" fill="%s"/>
`, x, y, hexColor(scene.RegionColorVec(tag))))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func hexColor(c [3]float32) string {
	channel := func(v float32) int {
		if v > 1 {
			v = 1
		}
		if v < 0 {
			v = 0
		}
		return int(v * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c[0]), channel(c[1]), channel(c[2]))
}
