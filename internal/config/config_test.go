package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.EncoderMode != EncoderFFmpeg {
		t.Errorf("EncoderMode = %q, want ffmpeg", cfg.EncoderMode)
	}
	if cfg.OutputContainer != ContainerMP4 {
		t.Errorf("OutputContainer = %q, want mp4", cfg.OutputContainer)
	}
	if !cfg.SkipExisting {
		t.Error("SkipExisting should default to true")
	}
	if !cfg.ShowFileStats {
		t.Error("ShowFileStats should default to true")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("ColorMode = %q, want auto", cfg.ColorMode)
	}
	if cfg.TargetBitrate != 0 {
		t.Errorf("TargetBitrate = %d, want 0 (derive from resolution)", cfg.TargetBitrate)
	}
}

func TestParseBitrate(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"8M", 8_000_000, false},
		{"8m", 8_000_000, false},
		{"2.5M", 2_500_000, false},
		{"5000k", 5_000_000, false},
		{"5000K", 5_000_000, false},
		{"8000000", 8_000_000, false},
		{" 11M ", 11_000_000, false},
		{"", 0, true},
		{"fast", 0, true},
		{"-5M", 0, true},
		{"0", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBitrate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseBitrate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseBitrate(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.InputDir = "/in"
	valid.OutputDir = "/out"
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	target := valid
	target.TargetOverride = "8M"
	if err := target.Validate(); err != nil {
		t.Fatalf("target override rejected: %v", err)
	}
	if target.TargetBitrate != 8_000_000 {
		t.Errorf("TargetBitrate = %d, want 8000000", target.TargetBitrate)
	}

	badMode := valid
	badMode.EncoderMode = "vaapi"
	if err := badMode.Validate(); err == nil {
		t.Error("expected error for unknown encoder mode")
	}

	badContainer := valid
	badContainer.OutputContainer = "avi"
	if err := badContainer.Validate(); err == nil {
		t.Error("expected error for unknown container")
	}

	badTarget := valid
	badTarget.TargetOverride = "banana"
	if err := badTarget.Validate(); err == nil {
		t.Error("expected error for malformed target")
	}

	missing := DefaultConfig()
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing directories")
	}

	check := DefaultConfig()
	check.CheckOnly = true
	if err := check.Validate(); err != nil {
		t.Errorf("check-only should not require directories: %v", err)
	}

	analyze := DefaultConfig()
	analyze.AnalyzeOnly = true
	analyze.InputDir = "/in"
	if err := analyze.Validate(); err != nil {
		t.Errorf("analyze-only should only require input dir: %v", err)
	}
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/media/in/", "/media/in"},
		{"/media/in///", "/media/in"},
		{"/media/in", "/media/in"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := NormalizeDirArg(tt.in); got != tt.want {
			t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePaths(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidatePaths("/media/in", "/media/out"); err != nil {
		t.Errorf("sibling dirs rejected: %v", err)
	}
	if err := cfg.ValidatePaths("/media/in", "/media/in"); err == nil {
		t.Error("expected error for identical dirs")
	}
	if err := cfg.ValidatePaths("/media/in", "/media/in/out"); err == nil {
		t.Error("expected error for output inside input")
	}
	// Prefix of the name, not of the path: must be allowed.
	if err := cfg.ValidatePaths("/media/in", "/media/input"); err != nil {
		t.Errorf("name-prefix sibling rejected: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
mode: handbrake
container: mkv
target: 5000k
color: never
verbose: true
stats: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.EncoderMode != EncoderHandBrake {
		t.Errorf("EncoderMode = %q, want handbrake", cfg.EncoderMode)
	}
	if cfg.OutputContainer != ContainerMKV {
		t.Errorf("OutputContainer = %q, want mkv", cfg.OutputContainer)
	}
	if cfg.TargetOverride != "5000k" {
		t.Errorf("TargetOverride = %q, want 5000k", cfg.TargetOverride)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if !cfg.Verbose {
		t.Error("Verbose not applied from file")
	}
	if cfg.ShowFileStats {
		t.Error("stats: false not applied from file")
	}
}

func TestLoadFile_MissingIsOK(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, filepath.Join(t.TempDir(), "nope.yaml")); err != nil {
		t.Errorf("missing config file should not error: %v", err)
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("mode: [not, a, string"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestFilePathFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"separate value", []string{"--config", "/etc/rm.yaml", "/in", "/out"}, "/etc/rm.yaml"},
		{"equals form", []string{"--config=/etc/rm.yaml"}, "/etc/rm.yaml"},
		{"single dash", []string{"-config", "/etc/rm.yaml"}, "/etc/rm.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilePathFromArgs(tt.args); got != tt.want {
				t.Errorf("FilePathFromArgs(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("RATEMASTER_CONFIG", "/env/rm.yaml")
		if got := FilePathFromArgs([]string{"/in", "/out"}); got != "/env/rm.yaml" {
			t.Errorf("env fallback = %q, want /env/rm.yaml", got)
		}
	})
}

func TestLoadFile_BadEnum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("mode: vaapi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("expected error for unknown mode in config file")
	}
}
