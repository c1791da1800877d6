package scene

import "github.com/san-kum/glassbrain/internal/brain"

// Auditory flow tuning. Band values at or below the floor stay silent;
// the ear anchors sit just outside the lateral shells.
const (
	AuditoryCap   = 128
	AuditoryFloor = 0.05
	earOffsetX    = 52.0
)

// AuditoryFlow draws one line per sounding band, from an ear anchor into
// auditory cortex. Target resolution is deterministic: scan forward from
// a band-specific offset for an auditory-tagged node, and when a cloud
// has none, fall back to a band-specific pseudo-scatter index so the
// band still lands somewhere stable.
type AuditoryFlow struct{}

// Step rebuilds the layer's draw range for this frame.
func (AuditoryFlow) Step(snap *brain.Snapshot, nodePos []float32, regions []brain.Region, out *LineBuffer) {
	out.Reset()
	if snap == nil {
		return
	}
	n := activeNodes(snap, nodePos, len(nodePos)/3)
	if n == 0 {
		return
	}

	bands := snap.Audio.Embedding
	if len(bands) > brain.AudioBands {
		bands = bands[:brain.AudioBands]
	}

	for band, val := range bands {
		if val <= AuditoryFloor {
			continue
		}

		target := -1
		start := (band * 5) % n
		for k := 0; k < n; k++ {
			idx := (start + k) % n
			if regionAt(regions, idx) == brain.Auditory {
				target = idx
				break
			}
		}
		if target < 0 {
			target = (band * 13) % n
		}

		tx := nodePos[target*3]
		ty := nodePos[target*3+1]
		tz := nodePos[target*3+2]

		earX := float32(earOffsetX)
		if tx < 0 {
			earX = -earX
		}

		v := float32(clamp01(val))
		base := RegionColorVec(brain.Auditory)
		ok := out.Append(
			earX, 0, 0,
			tx, ty, tz,
			base[0]*(0.25+v), base[1]*(0.25+v), base[2]*(0.25+v),
		)
		if !ok {
			return
		}
	}
}
