// Package pipeline orchestrates file discovery, per-file bitrate-targeted
// encoding, and batch summary reporting.
//
// Each file goes through the same sequence: validate, probe, resolve the
// target bitrate, pre-check whether the source already satisfies it, run
// the sample-based quality search, then the multi-pass full-file
// refinement, and finally move the accepted output into place. Failures
// are isolated per file; the batch always continues.
package pipeline
