package naming

import (
	"testing"
)

func TestHasMarker(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"ffmpeg marker", "movie.fmpg.mp4", true},
		{"handbrake marker", "movie.hbrk.mkv", true},
		{"original marker", "movie.orig.mkv", true},
		{"plain source", "movie.mkv", false},
		{"dots but no marker", "My.Show.S01E05.mkv", false},
		{"marker not in marker position", "movie.fmpg.extra.mkv", false},
		{"full path", "/out/season 1/ep.hbrk.mp4", true},
		{"no extension", "movie", false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasMarker(tt.in); got != tt.want {
				t.Errorf("HasMarker(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestWithMarker(t *testing.T) {
	cases := []struct {
		basename  string
		marker    Marker
		container string
		want      string
	}{
		{"movie.mkv", MarkerFFmpeg, "mp4", "movie.fmpg.mp4"},
		{"movie.mkv", MarkerHandBrake, "mkv", "movie.hbrk.mkv"},
		{"My.Show.S01E05.mkv", MarkerFFmpeg, "mp4", "My.Show.S01E05.fmpg.mp4"},
		{"noext", MarkerOriginal, "mkv", "noext.orig.mkv"},
	}
	for _, tt := range cases {
		if got := WithMarker(tt.basename, tt.marker, tt.container); got != tt.want {
			t.Errorf("WithMarker(%q, %q, %q) = %q, want %q",
				tt.basename, tt.marker, tt.container, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		marker    Marker
		container string
		want      string
	}{
		{
			"top level encode",
			"/in/movie.mkv", MarkerFFmpeg, "mp4",
			"/out/movie.fmpg.mp4",
		},
		{
			"nested structure preserved",
			"/in/Show/Season 01/ep01.mkv", MarkerHandBrake, "mp4",
			"/out/Show/Season 01/ep01.hbrk.mp4",
		},
		{
			"original keeps source extension",
			"/in/movie.mkv", MarkerOriginal, "mp4",
			"/out/movie.orig.mkv",
		},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(tt.input, "/in", "/out", tt.marker, tt.container)
			if got != tt.want {
				t.Errorf("OutputPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
