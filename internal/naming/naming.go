// Package naming implements the output filename marker scheme and output
// path construction.
//
// Every file this tool produces carries a marker segment between the stem
// and the extension, recording how the file was made:
//
//	movie.orig.mp4  copied unchanged (source already at or below target)
//	movie.fmpg.mp4  encoded with ffmpeg (hevc_videotoolbox)
//	movie.hbrk.mp4  encoded with HandBrakeCLI (vt_h265)
//
// The marker doubles as a processed-file sentinel: discovery skips any
// file whose name already carries one, so re-running over a directory that
// mixes sources and outputs never re-encodes an output.
package naming

import (
	"path/filepath"
	"strings"
)

// Marker identifies how an output file was produced.
type Marker string

const (
	MarkerOriginal  Marker = "orig" // copied as-is
	MarkerFFmpeg    Marker = "fmpg" // ffmpeg hevc_videotoolbox
	MarkerHandBrake Marker = "hbrk" // HandBrakeCLI vt_h265
)

var knownMarkers = map[string]bool{
	string(MarkerOriginal):  true,
	string(MarkerFFmpeg):    true,
	string(MarkerHandBrake): true,
}

// HasMarker reports whether a filename already carries a marker segment,
// i.e. its second-to-last dot-separated segment is a known marker.
func HasMarker(name string) bool {
	base := filepath.Base(name)
	parts := strings.Split(base, ".")
	if len(parts) < 3 {
		return false
	}
	return knownMarkers[parts[len(parts)-2]]
}

// WithMarker builds an output filename from a source basename: the original
// extension is dropped and replaced with ".<marker>.<container>".
func WithMarker(basename string, m Marker, container string) string {
	stem := strings.TrimSuffix(basename, filepath.Ext(basename))
	return stem + "." + string(m) + "." + container
}

// OutputPath maps a source file under inputDir to its output location under
// outputDir, preserving the relative directory structure and applying the
// marker. For MarkerOriginal the source extension is kept (the file is
// copied, not remuxed).
func OutputPath(inputPath, inputDir, outputDir string, m Marker, container string) string {
	rel, err := filepath.Rel(inputDir, inputPath)
	if err != nil {
		rel = filepath.Base(inputPath)
	}

	ext := container
	if m == MarkerOriginal {
		ext = strings.TrimPrefix(filepath.Ext(inputPath), ".")
	}

	dir := filepath.Dir(rel)
	name := WithMarker(filepath.Base(rel), m, ext)
	if dir == "." {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(outputDir, dir, name)
}
