package encoder

import (
	"fmt"
	"strconv"

	"github.com/backmassage/ratemaster/internal/config"
)

// buildSampleArgs constructs the argument slice for a clip encode with the
// configured backend. args[0] is the binary name.
func buildSampleArgs(cfg *config.Config, input, output string, start, duration float64, quality int) []string {
	if cfg.EncoderMode == config.EncoderHandBrake {
		return buildHandBrakeArgs(cfg, input, output, start, duration, quality)
	}
	return buildFFmpegArgs(cfg, input, output, start, duration, quality)
}

// buildFullArgs constructs the argument slice for a whole-file encode.
func buildFullArgs(cfg *config.Config, input, output string, quality int) []string {
	if cfg.EncoderMode == config.EncoderHandBrake {
		return buildHandBrakeArgs(cfg, input, output, -1, -1, quality)
	}
	return buildFFmpegArgs(cfg, input, output, -1, -1, quality)
}

// buildFFmpegArgs builds an ffmpeg command using the hevc_videotoolbox
// encoder. A negative start/duration means a whole-file encode. The seek
// is placed before -i for keyframe-fast seeking; sample windows never need
// frame accuracy.
func buildFFmpegArgs(cfg *config.Config, input, output string, start, duration float64, quality int) []string {
	args := make([]string, 0, 24)
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	if cfg.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	if start >= 0 {
		args = append(args, "-ss", formatSeconds(start))
	}
	args = append(args, "-i", input)
	if duration > 0 {
		args = append(args, "-t", formatSeconds(duration))
	}

	args = append(args,
		"-map", "0:v:0",
		"-map", "0:a?",
		"-sn", "-dn",
		"-c:v", "hevc_videotoolbox",
		"-q:v", strconv.Itoa(quality),
		"-tag:v", "hvc1",
		"-c:a", "copy",
	)

	if cfg.OutputContainer == config.ContainerMP4 {
		args = append(args, "-movflags", "+faststart")
	}

	args = append(args, output)
	return args
}

// buildHandBrakeArgs builds a HandBrakeCLI command using the vt_h265
// encoder. A negative start/duration means a whole-file encode.
func buildHandBrakeArgs(cfg *config.Config, input, output string, start, duration float64, quality int) []string {
	args := make([]string, 0, 24)
	args = append(args, "HandBrakeCLI",
		"--input", input,
		"--output", output,
		"--format", "av_"+string(cfg.OutputContainer),
		"--encoder", "vt_h265",
		"--quality", strconv.Itoa(quality),
		"--aencoder", "copy",
	)

	if start >= 0 {
		args = append(args, "--start-at", "seconds:"+formatSeconds(start))
	}
	if duration > 0 {
		args = append(args, "--stop-at", "seconds:"+formatSeconds(duration))
	}

	if !cfg.Verbose {
		args = append(args, "--verbose=0")
	}
	return args
}

// formatSeconds renders a seconds value without trailing zeros noise
// (both tools accept fractional seconds).
func formatSeconds(s float64) string {
	if s == float64(int64(s)) {
		return strconv.FormatInt(int64(s), 10)
	}
	return fmt.Sprintf("%.3f", s)
}
