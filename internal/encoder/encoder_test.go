package encoder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/ratemaster/internal/config"
)

func hasArgPair(args []string, flag, value string) bool {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}

func hasArg(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func TestBuildFFmpegArgs_Sample(t *testing.T) {
	cfg := config.DefaultConfig()
	args := buildSampleArgs(&cfg, "/in/movie.mkv", "/tmp/out.mp4", 30, 60, 55)

	if args[0] != "ffmpeg" {
		t.Fatalf("binary = %q, want ffmpeg", args[0])
	}
	if !hasArgPair(args, "-ss", "30") {
		t.Errorf("missing -ss 30 in %v", args)
	}
	if !hasArgPair(args, "-t", "60") {
		t.Errorf("missing -t 60 in %v", args)
	}
	if !hasArgPair(args, "-c:v", "hevc_videotoolbox") {
		t.Errorf("missing videotoolbox encoder in %v", args)
	}
	if !hasArgPair(args, "-q:v", "55") {
		t.Errorf("missing -q:v 55 in %v", args)
	}
	if !hasArgPair(args, "-c:a", "copy") {
		t.Errorf("missing audio copy in %v", args)
	}
	if args[len(args)-1] != "/tmp/out.mp4" {
		t.Errorf("output not last arg: %v", args)
	}

	// Seek must come before the input for fast seeking.
	ssIdx, inIdx := -1, -1
	for i, a := range args {
		if a == "-ss" {
			ssIdx = i
		}
		if a == "-i" {
			inIdx = i
		}
	}
	if ssIdx == -1 || inIdx == -1 || ssIdx > inIdx {
		t.Errorf("-ss must precede -i: %v", args)
	}
}

func TestBuildFFmpegArgs_Full(t *testing.T) {
	cfg := config.DefaultConfig()
	args := buildFullArgs(&cfg, "/in/movie.mkv", "/tmp/out.mp4", 62)

	if hasArg(args, "-ss") || hasArg(args, "-t") {
		t.Errorf("full encode must not carry a sample window: %v", args)
	}
	if !hasArgPair(args, "-q:v", "62") {
		t.Errorf("missing -q:v 62 in %v", args)
	}
	if !hasArgPair(args, "-movflags", "+faststart") {
		t.Errorf("mp4 output should set faststart: %v", args)
	}
}

func TestBuildFFmpegArgs_MKVNoFaststart(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputContainer = config.ContainerMKV
	args := buildFullArgs(&cfg, "/in/a.mkv", "/tmp/out.mkv", 50)
	if hasArg(args, "-movflags") {
		t.Errorf("mkv output must not set movflags: %v", args)
	}
}

func TestBuildHandBrakeArgs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.EncoderMode = config.EncoderHandBrake
	args := buildSampleArgs(&cfg, "/in/movie.mkv", "/tmp/out.mp4", 12.5, 60, 48)

	if args[0] != "HandBrakeCLI" {
		t.Fatalf("binary = %q, want HandBrakeCLI", args[0])
	}
	if !hasArgPair(args, "--encoder", "vt_h265") {
		t.Errorf("missing vt_h265 encoder in %v", args)
	}
	if !hasArgPair(args, "--quality", "48") {
		t.Errorf("missing --quality 48 in %v", args)
	}
	if !hasArgPair(args, "--start-at", "seconds:12.500") {
		t.Errorf("missing fractional start in %v", args)
	}
	if !hasArgPair(args, "--stop-at", "seconds:60") {
		t.Errorf("missing stop in %v", args)
	}
	if !hasArgPair(args, "--format", "av_mp4") {
		t.Errorf("missing container format in %v", args)
	}

	full := buildFullArgs(&cfg, "/in/movie.mkv", "/tmp/out.mp4", 48)
	if hasArg(full, "--start-at") || hasArg(full, "--stop-at") {
		t.Errorf("full encode must not carry a sample window: %v", full)
	}
}

func TestNextPathSequencing(t *testing.T) {
	cfg := config.DefaultConfig()
	e := New(&cfg, "/tmp/work")

	p1 := e.nextPath("sample", 60)
	p2 := e.nextPath("sample", 60)
	if p1 == p2 {
		t.Errorf("repeated quality must yield distinct paths: %q", p1)
	}
	if filepath.Dir(p1) != "/tmp/work" {
		t.Errorf("output not in work dir: %q", p1)
	}
	if !strings.Contains(filepath.Base(p1), "q060") {
		t.Errorf("path should embed quality: %q", p1)
	}
	if filepath.Ext(p1) != ".mp4" {
		t.Errorf("extension = %q, want .mp4", filepath.Ext(p1))
	}
}

func TestStderrTail(t *testing.T) {
	in := "line one\n\nline two\nline three\nline four\n"
	got := stderrTail(in)
	want := "line two; line three; line four"
	if got != want {
		t.Errorf("stderrTail = %q, want %q", got, want)
	}
	if stderrTail("  \n \n") != "" {
		t.Error("blank stderr should produce empty tail")
	}
}

func TestMeasureBitrate_SizeFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	// 1 MB of zeroes; not valid media, so ffprobe (if present) fails and
	// the size/duration fallback kicks in.
	if err := os.WriteFile(path, make([]byte, 1_000_000), 0o644); err != nil {
		t.Fatal(err)
	}

	var m Measurer
	got, err := m.MeasureBitrate(context.Background(), path, 10)
	if err != nil {
		t.Fatalf("MeasureBitrate: %v", err)
	}
	if got != 800_000 {
		t.Errorf("bitrate = %d, want 800000 (size*8/duration)", got)
	}
}

func TestMeasureBitrate_Unavailable(t *testing.T) {
	var m Measurer
	_, err := m.MeasureBitrate(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"), 10)
	if !errors.Is(err, ErrBitrateUnavailable) {
		t.Errorf("error = %v, want ErrBitrateUnavailable", err)
	}
}
