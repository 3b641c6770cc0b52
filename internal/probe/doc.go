// Package probe provides ffprobe-based media inspection and typed result
// structures. A single JSON call per file yields everything the pipeline
// needs: duration, vertical resolution, source bitrate, and file size.
//
// ffprobe reports numbers as strings, sometimes with trailing whitespace
// from the underlying tools; all numeric conversion happens at one parsing
// boundary here so no other package ever touches raw textual output.
package probe
