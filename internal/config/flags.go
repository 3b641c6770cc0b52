package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into encoding, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// version is shown in --version and help; override at build time with -ldflags "-X main.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional args).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("ratemaster", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() and the config file hold unless
	// the user passes the flag.
	var negated negatedFlags

	defineEncodingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "ratemaster v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. force -> SkipExisting=false) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	noStats     bool
	force       bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineEncodingFlags registers -m/--mode, -t/--target, --container.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&encoderModeValue{&cfg.EncoderMode}, "mode", "Encoder backend: ffmpeg | handbrake")
	fs.Var(&encoderModeValue{&cfg.EncoderMode}, "m", "Same as --mode")
	fs.StringVar(&cfg.TargetOverride, "target", cfg.TargetOverride, "Fixed target bitrate (e.g. 8M, 5000k)")
	fs.StringVar(&cfg.TargetOverride, "t", cfg.TargetOverride, "Same as --target")
	fs.Var(&containerValue{&cfg.OutputContainer}, "container", "Output container: mp4 | mkv")
}

// defineBehaviorFlags registers dry-run, force, stats.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not encode")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.force, "force", false, "Overwrite existing output files")
	fs.BoolVar(&n.force, "f", false, "Same as --force")
	fs.BoolVar(&n.noStats, "no-stats", false, "Hide per-file source stats")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --analyze, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&cfg.AnalyzeOnly, "analyze", false, "Report bitrate statistics for a directory and exit")
	fs.BoolVar(&cfg.AnalyzeOnly, "a", false, "Same as --analyze")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --config, --version, and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	// --config is consumed before flag parsing (see FilePathFromArgs);
	// registered here so the flag set accepts it.
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Path to YAML config file")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg (e.g. force -> SkipExisting=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noStats {
		cfg.ShowFileStats = false
	}
	if n.force {
		cfg.SkipExisting = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets InputDir and OutputDir from the positional args.
// --check takes none; --analyze takes only the input directory.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if cfg.AnalyzeOnly {
		if len(args) != 1 {
			return fmt.Errorf("need input_dir")
		}
		cfg.InputDir = NormalizeDirArg(args[0])
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly input_dir and output_dir")
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputDir = NormalizeDirArg(args[1])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Ratemaster v" + version + " — bitrate-targeted VideoToolbox encoder"},
		{"", ""},
		{"  ratemaster [OPTIONS] <input_dir> <output_dir>", ""},
		{"", ""},
		{"Encoding", ""},
		{"  -m, --mode <ffmpeg|handbrake>", "Encoder backend (default: ffmpeg)"},
		{"  -t, --target <rate>", "Fixed target bitrate, e.g. 8M or 5000k (default: by resolution)"},
		{"  --container <mp4|mkv>", "Output container (default: mp4)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -f, --force", "Overwrite existing output files"},
		{"  -d, --dry-run", "Preview only; do not encode"},
		{"", ""},
		{"Display", ""},
		{"  --no-stats", "Hide per-file source stats"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "YAML config file (default: ~/.config/ratemaster/config.yaml)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -a, --analyze", "Report bitrate statistics for a directory"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, HandBrakeCLI, VideoToolbox)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (EncoderMode, Container) with flag.Var.

type encoderModeValue struct{ p *EncoderMode }

func (e *encoderModeValue) String() string { return string(*e.p) }
func (e *encoderModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "ffmpeg":
		*e.p = EncoderFFmpeg
	case "handbrake":
		*e.p = EncoderHandBrake
	default:
		return fmt.Errorf("invalid mode %q (use 'ffmpeg' or 'handbrake')", s)
	}
	return nil
}

type containerValue struct{ p *Container }

func (c *containerValue) String() string { return string(*c.p) }
func (c *containerValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "mp4":
		*c.p = ContainerMP4
	case "mkv":
		*c.p = ContainerMKV
	default:
		return fmt.Errorf("invalid container %q (use 'mp4' or 'mkv')", s)
	}
	return nil
}
