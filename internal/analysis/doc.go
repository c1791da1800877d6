// Package analysis provides the scalar estimators around the render
// loop: signal summaries the frontends display and the glow lift the
// compositor applies.
//
//   - [Entropy]: normalized activation entropy, matching the backend's
//     own histogram estimator
//   - [Glow]: decaying accumulator over hebbian plasticity events
//   - [History]: fixed-capacity sample ring feeding terminal sparklines
package analysis
