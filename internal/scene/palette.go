package scene

import "github.com/san-kum/glassbrain/internal/brain"

// Region hues. Shared by node coloring and the web's pair lookup so the
// two layers read as one system.
var regionPalette = [4][3]float32{
	brain.Semantic:    {1.00, 0.84, 0.30}, // gold
	brain.Auditory:    {0.30, 0.95, 0.55}, // green
	brain.Limbic:      {0.80, 0.35, 0.95}, // violet
	brain.Association: {0.35, 0.80, 1.00}, // cyan
}

// dimLink colors edges between unrelated specialized regions.
var dimLink = [3]float32{0.25, 0.30, 0.45}

// RegionColor returns the base hue for a node tag.
func RegionColor(r brain.Region) (float32, float32, float32) {
	c := RegionColorVec(r)
	return c[0], c[1], c[2]
}

// RegionColorVec is RegionColor as a vector.
func RegionColorVec(r brain.Region) [3]float32 {
	if r < brain.Semantic || r > brain.Association {
		r = brain.Association
	}
	return regionPalette[r]
}

// PairColor resolves an edge hue from its endpoint tags: matched
// specialized regions keep their hue, anything touching association
// cortex goes cyan, the rest fall to a dim blue-grey.
func PairColor(a, b brain.Region) (float32, float32, float32) {
	switch {
	case a == brain.Semantic && b == brain.Semantic:
		return regionPalette[brain.Semantic][0], regionPalette[brain.Semantic][1], regionPalette[brain.Semantic][2]
	case a == brain.Auditory && b == brain.Auditory:
		return regionPalette[brain.Auditory][0], regionPalette[brain.Auditory][1], regionPalette[brain.Auditory][2]
	case a == brain.Limbic && b == brain.Limbic:
		return regionPalette[brain.Limbic][0], regionPalette[brain.Limbic][1], regionPalette[brain.Limbic][2]
	case a == brain.Association || b == brain.Association:
		return regionPalette[brain.Association][0], regionPalette[brain.Association][1], regionPalette[brain.Association][2]
	default:
		return dimLink[0], dimLink[1], dimLink[2]
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
