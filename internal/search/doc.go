// Package search implements the bitrate-targeting quality search engine:
// sample planning, a proportional feedback loop with oscillation handling,
// and the multi-pass refinement sequence that converges the full-file
// bitrate onto a target.
//
// The engine never invokes external tools itself. Encoding and measurement
// are supplied by the caller through the [SampleEncoder], [FullEncoder],
// and [Measurer] interfaces, which keeps every decision function here pure
// and testable without ffmpeg on PATH.
//
// Layout:
//   - sample.go      duration → sample windows
//   - controller.go  proportional quality step
//   - oscillation.go evaluation history + cycle detection
//   - interpolate.go two-point linear solve for pass 3
//   - tolerance.go   ±5% acceptance band + resolution targets
//   - search.go      the sample search state machine
//   - refine.go      the three-pass full-file refinement
package search
