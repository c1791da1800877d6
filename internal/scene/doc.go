// Package scene is the render core: fixed-capacity buffers, the
// small-world pair sampler, and the per-frame layers that turn a
// telemetry snapshot into positions and colors.
//
//   - [PointBuffer], [LineBuffer]: arenas allocated once at capacity,
//     mutated in place, exposed to the GPU upload path via a dirty flag
//     and a draw count
//   - [SamplePairs]: bounded proximity-biased edge candidates, recomputed
//     only when topology changes
//   - [Engine]: owns the buffers and advances every layer once per frame
//
// # Frame discipline
//
// Nothing in this package allocates or blocks on the per-frame path.
// Renderers write into preallocated arenas; missing snapshot fields
// degrade to dark nodes and zero lines, never to an error. Colors are
// intentionally allowed past 1.0 where the compositor blooms them.
//
// # Thread Safety
//
// The engine is single-threaded: one goroutine calls Step and reads the
// buffers. Cross-thread traffic happens one level up, in the feed holder.
package scene
