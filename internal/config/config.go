// Package config holds runtime configuration: defaults, CLI flag parsing, an
// optional TOML config file, and validation. Flags take precedence over the
// config file, which takes precedence over defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Source directory containing the ZIP archives (positional arg or prompt).
	SourceDir string

	// FPS estimation.
	DefaultFPS   float64 // Fallback frame rate when no usable signal exists. Default: 30.
	MetadataName string  // Descriptor filename inside each archive. Default: "metadata.json".

	// Frame handling.
	FrameExt string // Image extension (with leading dot). Default: ".png".

	// Encoder settings (fixed per the output contract unless overridden).
	VideoBitrate string // Default: "2M".
	PixelFormat  string // Default: "yuv420p".
	ColorSpec    string // BT.709 tagging value. Default: "bt709".

	// Behavior flags.
	DryRun       bool
	SkipExisting bool // Default: true. Cleared by --force.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.

	// Config file path (--config). Empty means look for framereel.toml in
	// the source directory.
	ConfigFile string

	// setFlags records which flag names were passed explicitly, so the
	// config-file overlay never overrides them. Populated by ParseFlags.
	setFlags map[string]bool
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		DefaultFPS:   30,
		MetadataName: "metadata.json",
		FrameExt:     ".png",
		VideoBitrate: "2M",
		PixelFormat:  "yuv420p",
		ColorSpec:    "bt709",
		DryRun:       false,
		SkipExisting: true,
		Verbose:      false,
		ColorMode:    ColorAuto,
		CheckOnly:    false,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum and numeric fields. SourceDir is allowed to be empty
// here; it is resolved interactively later when missing.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.DefaultFPS <= 0 {
		return fmt.Errorf("default FPS must be positive (got %g)", c.DefaultFPS)
	}

	ext, err := normalizeFrameExt(c.FrameExt)
	if err != nil {
		return err
	}
	c.FrameExt = ext

	if strings.TrimSpace(c.MetadataName) == "" {
		return errors.New("metadata filename must not be empty")
	}
	if strings.ContainsAny(c.MetadataName, "/\\") {
		return fmt.Errorf("metadata filename must be a bare name (got %q)", c.MetadataName)
	}

	return validateBitrate(c.VideoBitrate)
}

// normalizeFrameExt validates and canonicalizes the frame extension.
// Accepted forms: "png", ".png", "PNG". Output is lowercase with leading dot.
func normalizeFrameExt(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("frame extension must not be empty")
	}
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	if len(s) < 2 || strings.ContainsAny(s[1:], "./\\") {
		return "", fmt.Errorf("invalid frame extension %q", raw)
	}
	return s, nil
}

// validateBitrate accepts ffmpeg-style bitrate strings: a positive integer
// with an optional k/K/m/M suffix (e.g. "2M", "2500k").
func validateBitrate(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return errors.New("video bitrate must not be empty")
	}
	digits := s
	switch s[len(s)-1] {
	case 'k', 'K', 'm', 'M':
		digits = s[:len(s)-1]
	}
	if digits == "" {
		return fmt.Errorf("invalid video bitrate %q", raw)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid video bitrate %q (use e.g. 2M or 2500k)", raw)
		}
	}
	if strings.TrimLeft(digits, "0") == "" {
		return fmt.Errorf("video bitrate must be positive (got %q)", raw)
	}
	return nil
}
