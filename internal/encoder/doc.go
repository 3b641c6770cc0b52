// Package encoder wraps the external encoding tools (ffmpeg with
// hevc_videotoolbox, HandBrakeCLI with vt_h265) behind the interfaces the
// search engine consumes, plus a probe-backed bitrate measurer.
//
// Both backends expose a single quality knob in the 0-100 range where a
// higher value produces a higher bitrate, which is what the search engine
// assumes. Invocations are synchronous and are never retried; a failed
// encode surfaces as an error with the tail of the tool's stderr attached.
package encoder
