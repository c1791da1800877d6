package export

import (
	"encoding/json"
	"os"

	"github.com/san-kum/glassbrain/internal/brain"
)

// LayoutData is the JSON form of a generated anatomy.
type LayoutData struct {
	Seed      int64        `json:"seed"`
	Nodes     int          `json:"nodes"`
	Radius    float64      `json:"radius"`
	Positions [][3]float64 `json:"positions"`
	Regions   []string     `json:"regions"`
	Concepts  [][3]float64 `json:"concepts,omitempty"`
}

// BuildLayoutData packages flat position arrays into the export shape.
func BuildLayoutData(seed int64, positions []float32, regions []brain.Region, concepts []float32) LayoutData {
	data := LayoutData{
		Seed:      seed,
		Nodes:     len(positions) / 3,
		Radius:    brain.BrainRadius,
		Positions: triplets(positions),
		Concepts:  triplets(concepts),
	}
	data.Regions = make([]string, 0, len(regions))
	for _, r := range regions {
		data.Regions = append(data.Regions, r.String())
	}
	return data
}

// WriteLayoutJSON writes the layout to path, indented.
func WriteLayoutJSON(path string, data LayoutData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func triplets(flat []float32) [][3]float64 {
	out := make([][3]float64, 0, len(flat)/3)
	for i := 0; i+2 < len(flat); i += 3 {
		out = append(out, [3]float64{float64(flat[i]), float64(flat[i+1]), float64(flat[i+2])})
	}
	return out
}
