// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe, HandBrakeCLI, and
// the VideoToolbox encoders.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/ratemaster/internal/config"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound     = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound    = errors.New("ffprobe not found on PATH")
	ErrHandBrakeNotFound  = errors.New("HandBrakeCLI not found on PATH")
	ErrVideoToolboxFailed = errors.New("hevc_videotoolbox test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// ffprobe, HandBrakeCLI, and runs a VideoToolbox test encode.
// This is informational only; it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkTool(log, "ffmpeg", "-version")
	checkTool(log, "ffprobe", "-version")
	checkTool(log, "HandBrakeCLI", "--version")
	checkHEVCEncoders(log)
	checkVideoToolbox(log)
}

// checkTool verifies a binary is on PATH and logs its version string.
func checkTool(log Logger, name, versionFlag string) {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return
	}
	out, err := exec.Command(name, versionFlag).Output()
	if err != nil {
		log.Warn("%s found but %s failed: %v", name, versionFlag, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", name, firstLine)
}

// checkHEVCEncoders lists all HEVC-related encoders reported by ffmpeg.
func checkHEVCEncoders(log Logger) {
	log.Info("HEVC encoders:")
	out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "hevc") || strings.Contains(lower, "265") {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}

// checkVideoToolbox runs a minimal hevc_videotoolbox encode.
func checkVideoToolbox(log Logger) {
	log.Info("Testing VideoToolbox HEVC...")
	if runSilent("ffmpeg", videoToolboxTestArgs()...) {
		log.Success("hevc_videotoolbox works")
	} else {
		log.Error("hevc_videotoolbox test encode failed")
	}
}

// CheckDeps is the pre-pipeline validation: it verifies that ffmpeg and
// ffprobe are on PATH (both backends need ffprobe for measurement), that
// HandBrakeCLI exists when that backend is selected, and that the
// VideoToolbox encoder actually works in ffmpeg mode.
// Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}

	if cfg.EncoderMode == config.EncoderHandBrake {
		if _, err := exec.LookPath("HandBrakeCLI"); err != nil {
			return ErrHandBrakeNotFound
		}
		return nil
	}

	if !runSilent("ffmpeg", videoToolboxTestArgs()...) {
		return ErrVideoToolboxFailed
	}
	return nil
}

// videoToolboxTestArgs returns the ffmpeg arguments for a minimal
// hevc_videotoolbox test encode. Shared by checkVideoToolbox and CheckDeps.
func videoToolboxTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "hevc_videotoolbox",
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
