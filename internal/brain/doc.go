// Package brain defines the telemetry domain model shared by every layer
// of the visualization: the snapshot value streamed from the backend, the
// region taxonomy, and the trauma-state vocabulary.
//
// The package is deliberately free of rendering and transport concerns:
//
//   - [Snapshot]: one immutable telemetry update, everything a frame needs
//   - [Region]: categorical node label driving color and connectivity
//   - [Decode]: wire JSON to [Snapshot], tolerant of both accepted
//     activity shapes and of the enveloped packet form
//
// # Defaults
//
// Decoding never fails on missing fields. Absent scalars come back zero,
// absent arrays empty, and unmapped region tags collapse to [Association].
// Renderers are written against those defaults, so a sparse packet
// degrades the picture rather than the frame loop.
//
// # Thread Safety
//
// A decoded Snapshot is never mutated after publication. Sharing it across
// goroutines by reference is safe as long as the producer stamps it before
// handing it to the holder.
package brain
