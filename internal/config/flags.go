package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into estimation, encoding, behavior, display, and utility.
// Negated flags (e.g. --no-color) are applied after Parse so Config defaults
// hold unless set. The optional TOML config file is overlaid separately via
// [LoadConfigFile] once the source dir is resolved, for every field the user
// did not pass explicitly.

import (
	"flag"
	"fmt"
	"os"
)

// Version and Commit identify the build in --version, help, and the run
// header. Overridden at release time via -ldflags
// "-X github.com/framereel/framereel/internal/config.Version=...".
var (
	Version = "1.0.0"
	Commit  = "unknown"
)

// ParseFlags parses args (os.Args[1:] in production) into cfg. On --help or
// --version it prints and exits. On error it returns non-nil (e.g. unknown
// flag, too many positional args).
func ParseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("framereel", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	// Negated/override flags: we capture bools then apply to cfg after Parse,
	// so that defaults from DefaultConfig() hold unless the user passes the flag.
	var negated negatedFlags

	defineEstimationFlags(fs, cfg)
	defineEncodingFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, cfg, &negated)

	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "framereel v"+Version)
		os.Exit(0)
	}

	if err := parsePositionalArgs(fs, cfg); err != nil {
		return err
	}

	// Record the explicitly passed flags; [LoadConfigFile] consults them
	// once the source dir is known (argument or interactive prompt).
	cfg.setFlags = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { cfg.setFlags[f.Name] = true })
	return nil
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (e.g. force -> SkipExisting=false) or trigger
// exit (showHelp, showVersion).
type negatedFlags struct {
	force       bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineEstimationFlags registers --default-fps, --metadata, --ext.
func defineEstimationFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.DefaultFPS, "default-fps", cfg.DefaultFPS, "Fallback frame rate when no timing signal exists")
	fs.StringVar(&cfg.MetadataName, "metadata", cfg.MetadataName, "Per-frame timing descriptor filename inside each archive")
	fs.StringVar(&cfg.FrameExt, "ext", cfg.FrameExt, "Frame image extension (e.g. .png)")
}

// defineEncodingFlags registers --bitrate, --pix-fmt, --color-spec.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.VideoBitrate, "bitrate", cfg.VideoBitrate, "Target video bitrate (e.g. 2M)")
	fs.StringVar(&cfg.PixelFormat, "pix-fmt", cfg.PixelFormat, "Output pixel format")
	fs.StringVar(&cfg.ColorSpec, "color-spec", cfg.ColorSpec, "Colorspace/primaries/transfer tag")
}

// defineBehaviorFlags registers dry-run and force.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not invoke the encoder")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&n.force, "force", false, "Overwrite existing output files")
	fs.BoolVar(&n.force, "f", false, "Same as --force")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (includes live ffmpeg stderr)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --config, --version and --help.
func defineUtilityFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.ConfigFile, "config", "", "TOML config file (default: framereel.toml in source dir)")
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg
// (e.g. force -> SkipExisting=false).
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.force {
		cfg.SkipExisting = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets SourceDir from the optional positional arg when
// not in CheckOnly mode. A missing arg is allowed; the source folder is then
// chosen interactively.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	switch len(args) {
	case 0:
		// Resolved via interactive prompt later.
	case 1:
		cfg.SourceDir = NormalizeDirArg(args[0])
	default:
		return fmt.Errorf("expected at most one source_dir argument, got %d", len(args))
	}
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "framereel v" + Version + " - ZIP frame archives to MP4 batch converter"},
		{"", ""},
		{"  framereel [OPTIONS] [source_dir]", ""},
		{"", ""},
		{"  Without source_dir, an interactive folder prompt is shown.", ""},
		{"", ""},
		{"FPS estimation", ""},
		{"  --default-fps <n>", "Fallback frame rate (default: 30)"},
		{"  --metadata <name>", "Timing descriptor filename (default: metadata.json)"},
		{"  --ext <.png>", "Frame image extension (default: .png)"},
		{"", ""},
		{"Encoding", ""},
		{"  --bitrate <rate>", "Video bitrate (default: 2M)"},
		{"  --pix-fmt <fmt>", "Pixel format (default: yuv420p)"},
		{"  --color-spec <tag>", "Color tagging (default: bt709)"},
		{"", ""},
		{"Output & behavior", ""},
		{"  -f, --force", "Overwrite existing output files"},
		{"  -d, --dry-run", "Preview only; do not invoke the encoder"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  --config <path>", "TOML config file"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, libx264, two-pass)"},
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
