package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/glassbrain/internal/brain"
	"github.com/san-kum/glassbrain/internal/layout"
	"github.com/san-kum/glassbrain/internal/scene"
)

func TestLayoutSVG(t *testing.T) {
	positions := layout.Generate(7, 50)
	regions := layout.Regions(positions)

	svg := LayoutSVG(positions, regions, nil, ViewTop, 800, 600)
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("expected xml header")
	}
	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Error("expected requested dimensions")
	}
	if got := strings.Count(svg, "<circle"); got != 50 {
		t.Errorf("expected 50 node circles, got %d", got)
	}
	if strings.Contains(svg, "<line") {
		t.Error("expected no strokes without pairs")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("expected closing tag")
	}
}

func TestLayoutSVGPairs(t *testing.T) {
	positions := layout.Generate(7, 50)
	regions := layout.Regions(positions)
	pairs := []scene.Pair{{I: 0, J: 1}, {I: 2, J: 3}, {I: 0, J: 99}}

	svg := LayoutSVG(positions, regions, pairs, ViewSide, 400, 400)
	// The out-of-range pair is skipped.
	if got := strings.Count(svg, "<line"); got != 2 {
		t.Errorf("expected 2 strokes, got %d", got)
	}
}

func TestLayoutSVGViews(t *testing.T) {
	positions := []float32{1, 2, 3, -4, 5, -6}
	regions := []brain.Region{brain.Semantic, brain.Limbic}

	top := LayoutSVG(positions, regions, nil, ViewTop, 100, 100)
	side := LayoutSVG(positions, regions, nil, ViewSide, 100, 100)
	front := LayoutSVG(positions, regions, nil, ViewFront, 100, 100)
	if top == side || side == front || top == front {
		t.Error("expected distinct projections per view")
	}
}

func TestLayoutSVGEmpty(t *testing.T) {
	if svg := LayoutSVG(nil, nil, nil, ViewTop, 100, 100); svg != "" {
		t.Error("expected empty string for empty layout")
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct {
		c        [3]float32
		expected string
	}{
		{[3]float32{0, 0, 0}, "#000000"},
		{[3]float32{1, 1, 1}, "#ffffff"},
		{[3]float32{2.5, -1, 0.5}, "#ff007f"},
	}
	for _, tt := range tests {
		if got := hexColor(tt.c); got != tt.expected {
			t.Errorf("hexColor(%v): expected %s, got %s", tt.c, tt.expected, got)
		}
	}
}

func TestWriteLayoutJSON(t *testing.T) {
	positions := layout.Generate(7, 20)
	regions := layout.Regions(positions)
	concepts := layout.Concepts(7, 8)

	data := BuildLayoutData(7, positions, regions, concepts)
	if data.Nodes != 20 {
		t.Errorf("expected 20 nodes, got %d", data.Nodes)
	}
	if len(data.Positions) != 20 {
		t.Errorf("expected 20 position rows, got %d", len(data.Positions))
	}
	if len(data.Regions) != 20 {
		t.Errorf("expected 20 region names, got %d", len(data.Regions))
	}
	if len(data.Concepts) != 8 {
		t.Errorf("expected 8 concept rows, got %d", len(data.Concepts))
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutJSON(path, data); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var loaded LayoutData
	if err := json.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if loaded.Seed != 7 || loaded.Nodes != 20 {
		t.Errorf("expected seed 7 nodes 20, got %d/%d", loaded.Seed, loaded.Nodes)
	}
	if loaded.Radius != brain.BrainRadius {
		t.Errorf("expected radius %f, got %f", brain.BrainRadius, loaded.Radius)
	}
}
