package config

// This file implements the optional TOML config file layer. The file carries
// the same knobs as the CLI flags; fields left out of the file keep their
// current values, and any flag the user passed explicitly still wins.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file looked up in the source directory when
// --config is not given.
const DefaultFileName = "framereel.toml"

// fileSchema mirrors the user-settable subset of Config. Pointer fields
// distinguish "absent" from zero values so partial files work.
type fileSchema struct {
	DefaultFPS   *float64 `toml:"default_fps"`
	MetadataName *string  `toml:"metadata_name"`
	FrameExt     *string  `toml:"frame_ext"`
	VideoBitrate *string  `toml:"video_bitrate"`
	PixelFormat  *string  `toml:"pixel_format"`
	ColorSpec    *string  `toml:"color_spec"`
	SkipExisting *bool    `toml:"skip_existing"`
	Verbose      *bool    `toml:"verbose"`
	ColorMode    *string  `toml:"color"`
	LogFile      *string  `toml:"log_file"`
}

// LoadFile overlays cfg with values from the TOML file at path, skipping any
// field whose flag name appears in flagSet (explicitly passed on the command
// line). A missing file is only an error when explicit is true (the user
// named the path).
func LoadFile(path string, cfg *Config, explicit bool, flagSet map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}

	var f fileSchema
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	if f.DefaultFPS != nil && !flagSet["default-fps"] {
		cfg.DefaultFPS = *f.DefaultFPS
	}
	if f.MetadataName != nil && !flagSet["metadata"] {
		cfg.MetadataName = *f.MetadataName
	}
	if f.FrameExt != nil && !flagSet["ext"] {
		cfg.FrameExt = *f.FrameExt
	}
	if f.VideoBitrate != nil && !flagSet["bitrate"] {
		cfg.VideoBitrate = *f.VideoBitrate
	}
	if f.PixelFormat != nil && !flagSet["pix-fmt"] {
		cfg.PixelFormat = *f.PixelFormat
	}
	if f.ColorSpec != nil && !flagSet["color-spec"] {
		cfg.ColorSpec = *f.ColorSpec
	}
	if f.SkipExisting != nil && !flagSet["force"] {
		cfg.SkipExisting = *f.SkipExisting
	}
	if f.Verbose != nil && !flagSet["verbose"] && !flagSet["v"] {
		cfg.Verbose = *f.Verbose
	}
	if f.ColorMode != nil && !flagSet["color"] && !flagSet["no-color"] {
		cfg.ColorMode = ColorMode(*f.ColorMode)
	}
	if f.LogFile != nil && !flagSet["log"] && !flagSet["l"] {
		cfg.LogFile = *f.LogFile
	}
	return nil
}

// LoadConfigFile overlays cfg with the resolved config file, if any. Called
// after the source directory is known so the default framereel.toml lookup
// works whether the folder came from the argument or the interactive prompt.
// Flags the user passed explicitly keep their values.
func LoadConfigFile(cfg *Config) error {
	path, explicit := ResolveFilePath(cfg)
	if path == "" {
		return nil
	}
	return LoadFile(path, cfg, explicit, cfg.setFlags)
}

// ResolveFilePath returns the config file path to load and whether the user
// named it explicitly. With no --config and no source dir yet there is
// nothing to load.
func ResolveFilePath(cfg *Config) (path string, explicit bool) {
	if cfg.ConfigFile != "" {
		return cfg.ConfigFile, true
	}
	if cfg.SourceDir != "" {
		return filepath.Join(cfg.SourceDir, DefaultFileName), false
	}
	return "", false
}
