package config

// Optional YAML config file. Values here sit between DefaultConfig() and
// CLI flags in precedence: defaults < file < flags. All fields are
// pointers/strings so an absent key never clobbers a default.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFileEnv names the environment variable that overrides the config
// file location.
const configFileEnv = "RATEMASTER_CONFIG"

// fileConfig mirrors the YAML config file schema.
type fileConfig struct {
	Mode      string `yaml:"mode"`      // ffmpeg | handbrake
	Container string `yaml:"container"` // mp4 | mkv
	Target    string `yaml:"target"`    // e.g. "8M", "5000k"
	Color     string `yaml:"color"`     // auto | always | never
	LogFile   string `yaml:"log_file"`
	Verbose   *bool  `yaml:"verbose"`
	Stats     *bool  `yaml:"stats"`
}

// FilePath returns the config file location: $RATEMASTER_CONFIG if set,
// otherwise ~/.config/ratemaster/config.yaml.
func FilePath() string {
	if p := os.Getenv(configFileEnv); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ratemaster", "config.yaml")
}

// FilePathFromArgs resolves the config file location with an explicit
// --config argument taking precedence over FilePath. The file must be
// loaded before flags are parsed (flags override file values), so the
// argument is scanned here rather than through the flag package.
func FilePathFromArgs(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--config" || a == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-config="):
			return strings.TrimPrefix(a, "-config=")
		}
	}
	return FilePath()
}

// LoadFile overlays the YAML config file at path onto cfg. A missing file
// is not an error (the file is optional); a malformed one is.
func LoadFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %q: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return applyFile(cfg, &fc)
}

// applyFile copies set fields from fc into cfg. Enum values are validated
// here so a typo in the file fails fast rather than surfacing later.
func applyFile(cfg *Config, fc *fileConfig) error {
	if fc.Mode != "" {
		var v encoderModeValue
		v.p = &cfg.EncoderMode
		if err := v.Set(fc.Mode); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}
	if fc.Container != "" {
		var v containerValue
		v.p = &cfg.OutputContainer
		if err := v.Set(fc.Container); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}
	if fc.Target != "" {
		cfg.TargetOverride = fc.Target
	}
	if fc.Color != "" {
		switch ColorMode(fc.Color) {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.ColorMode = ColorMode(fc.Color)
		default:
			return fmt.Errorf("config file: invalid color mode %q", fc.Color)
		}
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	if fc.Stats != nil {
		cfg.ShowFileStats = *fc.Stats
	}
	return nil
}
