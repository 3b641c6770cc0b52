// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// EncoderMode selects the encoding backend.
type EncoderMode string

const (
	EncoderFFmpeg    EncoderMode = "ffmpeg"    // ffmpeg with hevc_videotoolbox (default).
	EncoderHandBrake EncoderMode = "handbrake" // HandBrakeCLI with vt_h265.
)

// Container is the output container format.
type Container string

const (
	ContainerMP4 Container = "mp4" // MP4 (default; broadest player support).
	ContainerMKV Container = "mkv" // Matroska.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid with a YAML config file by [LoadFile], and then
// mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string

	// Encoder settings.
	EncoderMode     EncoderMode
	OutputContainer Container

	// Target bitrate. 0 means derive from the source's vertical resolution;
	// a caller-supplied value (via --target or the config file) overrides.
	TargetBitrate  int64
	TargetOverride string // raw --target / config-file value, normalized by Validate

	// Behavior flags.
	DryRun       bool
	SkipExisting bool // Default: true. Cleared by --force.

	// Display and logging.
	ConfigFile    string // explicit --config path; empty means env/default lookup
	Verbose       bool
	ShowFileStats bool      // Default: true.
	ColorMode     ColorMode // Default: "auto".
	LogFile       string    // Optional log file path.
	CheckOnly     bool      // Run --check diagnostics and exit.
	AnalyzeOnly   bool      // Run --analyze report and exit.
}

// DefaultConfig returns a Config with all defaults.
func DefaultConfig() Config {
	return Config{
		EncoderMode:     EncoderFFmpeg,
		OutputContainer: ContainerMP4,
		SkipExisting:    true,
		ShowFileStats:   true,
		ColorMode:       ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an
// empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and normalizes the target bitrate override.
// When not in CheckOnly mode it also requires the positional directory
// paths (input only for AnalyzeOnly, input and output otherwise).
func (c *Config) Validate() error {
	switch c.EncoderMode {
	case EncoderFFmpeg, EncoderHandBrake:
		// valid
	default:
		return errors.New("invalid mode (use 'ffmpeg' or 'handbrake')")
	}

	switch c.OutputContainer {
	case ContainerMP4, ContainerMKV:
		// valid
	default:
		return errors.New("invalid container (use 'mp4' or 'mkv')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.TargetOverride != "" {
		bps, err := parseBitrate(c.TargetOverride)
		if err != nil {
			return err
		}
		c.TargetBitrate = bps
	}

	if c.CheckOnly {
		return nil
	}
	if c.AnalyzeOnly {
		if c.InputDir == "" {
			return errors.New("need input_dir")
		}
		return nil
	}
	if c.InputDir == "" || c.OutputDir == "" {
		return errors.New("need exactly input_dir and output_dir")
	}
	return nil
}

// parseBitrate converts user bitrate input into bits/second.
// Accepted forms: "8000000" (bps), "8000k"/"8000K" (kbps), "8M"/"8m"
// (Mbps, fractional allowed as in "2.5M").
func parseBitrate(raw string) (int64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, errors.New("target bitrate must not be empty")
	}

	mult := 1.0
	switch {
	case strings.HasSuffix(s, "m"):
		mult = 1_000_000
		s = strings.TrimSpace(strings.TrimSuffix(s, "m"))
	case strings.HasSuffix(s, "k"):
		mult = 1_000
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid target bitrate %q (use bps, or a k/M suffix, e.g. 8M)", raw)
	}
	return int64(v * mult), nil
}

// ValidatePaths ensures the resolved output directory is not inside (or
// equal to) the resolved input directory, which would let the pipeline
// discover its own output files. Both arguments must be absolute,
// symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory must not be inside input directory")
	}
	return nil
}
