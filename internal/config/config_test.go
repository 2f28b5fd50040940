package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DefaultFPS != 30 {
		t.Errorf("DefaultFPS: got %g, want 30", cfg.DefaultFPS)
	}
	if cfg.MetadataName != "metadata.json" {
		t.Errorf("MetadataName: got %q", cfg.MetadataName)
	}
	if cfg.FrameExt != ".png" {
		t.Errorf("FrameExt: got %q", cfg.FrameExt)
	}
	if cfg.VideoBitrate != "2M" || cfg.PixelFormat != "yuv420p" || cfg.ColorSpec != "bt709" {
		t.Errorf("encoder defaults: got %q/%q/%q", cfg.VideoBitrate, cfg.PixelFormat, cfg.ColorSpec)
	}
	if !cfg.SkipExisting {
		t.Error("SkipExisting should default to true")
	}
	if cfg.ColorMode != ColorAuto {
		t.Errorf("ColorMode: got %q", cfg.ColorMode)
	}
}

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/data/captures/", "/data/captures"},
		{"/data/captures///", "/data/captures"},
		{"/data/captures", "/data/captures"},
		{"/", "/"},
	}
	for _, tt := range tests {
		if got := NormalizeDirArg(tt.in); got != tt.want {
			t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"bad color mode", func(c *Config) { c.ColorMode = "sometimes" }, false},
		{"zero fps", func(c *Config) { c.DefaultFPS = 0 }, false},
		{"negative fps", func(c *Config) { c.DefaultFPS = -24 }, false},
		{"empty ext", func(c *Config) { c.FrameExt = "" }, false},
		{"ext with slash", func(c *Config) { c.FrameExt = ".p/ng" }, false},
		{"bare dot ext", func(c *Config) { c.FrameExt = "." }, false},
		{"empty metadata name", func(c *Config) { c.MetadataName = "  " }, false},
		{"metadata with path", func(c *Config) { c.MetadataName = "sub/meta.json" }, false},
		{"empty bitrate", func(c *Config) { c.VideoBitrate = "" }, false},
		{"bitrate letters", func(c *Config) { c.VideoBitrate = "fast" }, false},
		{"bitrate zero", func(c *Config) { c.VideoBitrate = "0M" }, false},
		{"bitrate kilobits", func(c *Config) { c.VideoBitrate = "2500k" }, true},
		{"bitrate plain", func(c *Config) { c.VideoBitrate = "800000" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate() = %v, wantOK=%v", err, tt.wantOK)
			}
		})
	}
}

func TestValidate_NormalizesExtension(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"png", ".png"},
		{".PNG", ".png"},
		{" jpg ", ".jpg"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.FrameExt = tt.in
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate(%q): %v", tt.in, err)
		}
		if cfg.FrameExt != tt.want {
			t.Errorf("FrameExt %q normalized to %q, want %q", tt.in, cfg.FrameExt, tt.want)
		}
	}
}

func TestParseFlags_PositionalSourceDir(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"/data/captures/"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.SourceDir != "/data/captures" {
		t.Errorf("SourceDir: got %q", cfg.SourceDir)
	}
}

func TestParseFlags_NoPositionalLeavesSourceEmpty(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.SourceDir != "" {
		t.Errorf("SourceDir: got %q, want empty (prompt resolves it)", cfg.SourceDir)
	}
}

func TestParseFlags_TooManyArgs(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"a", "b"}); err == nil {
		t.Fatal("expected error for two positional args")
	}
}

func TestParseFlags_ForceClearsSkipExisting(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--force"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.SkipExisting {
		t.Error("--force should clear SkipExisting")
	}

	cfg = DefaultConfig()
	if err := ParseFlags(&cfg, []string{"-f"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.SkipExisting {
		t.Error("-f should clear SkipExisting")
	}
}

func TestParseFlags_ColorModes(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--color"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.ColorMode != ColorAlways {
		t.Errorf("--color: got %q", cfg.ColorMode)
	}

	cfg = DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--no-color"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("--no-color: got %q", cfg.ColorMode)
	}

	// --no-color wins when both are passed.
	cfg = DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--color", "--no-color"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("--color --no-color: got %q", cfg.ColorMode)
	}
}

func TestParseFlags_EncoderOverrides(t *testing.T) {
	cfg := DefaultConfig()
	args := []string{"--bitrate", "4M", "--pix-fmt", "yuv444p", "--default-fps", "24", "-d", "-v"}
	if err := ParseFlags(&cfg, args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.VideoBitrate != "4M" || cfg.PixelFormat != "yuv444p" {
		t.Errorf("encoder flags: got %q/%q", cfg.VideoBitrate, cfg.PixelFormat)
	}
	if cfg.DefaultFPS != 24 {
		t.Errorf("DefaultFPS: got %g", cfg.DefaultFPS)
	}
	if !cfg.DryRun || !cfg.Verbose {
		t.Error("-d and -v should set DryRun and Verbose")
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--bogus"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestLoadFile_OverlaysAbsentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	writeFile(t, path, strings.Join([]string{
		`default_fps = 24.0`,
		`video_bitrate = "1M"`,
		`skip_existing = false`,
	}, "\n"))

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg, false, nil); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DefaultFPS != 24 {
		t.Errorf("DefaultFPS: got %g, want 24", cfg.DefaultFPS)
	}
	if cfg.VideoBitrate != "1M" {
		t.Errorf("VideoBitrate: got %q", cfg.VideoBitrate)
	}
	if cfg.SkipExisting {
		t.Error("skip_existing=false not applied")
	}
	// Fields absent from the file keep their values.
	if cfg.PixelFormat != "yuv420p" {
		t.Errorf("PixelFormat changed: %q", cfg.PixelFormat)
	}
}

func TestLoadFile_ExplicitFlagWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	writeFile(t, path, `video_bitrate = "1M"`)

	cfg := DefaultConfig()
	cfg.VideoBitrate = "5M"
	if err := LoadFile(path, &cfg, false, map[string]bool{"bitrate": true}); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.VideoBitrate != "5M" {
		t.Errorf("flag value overridden by config file: got %q", cfg.VideoBitrate)
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent.toml")

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg, false, nil); err != nil {
		t.Errorf("implicit missing file should be ignored: %v", err)
	}
	if err := LoadFile(path, &cfg, true, nil); err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestLoadFile_MalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	writeFile(t, path, `default_fps = `)

	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg, false, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfigFile_FromSourceDirArg(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultFileName), `video_bitrate = "3M"`)

	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{dir}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if err := LoadConfigFile(&cfg); err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.VideoBitrate != "3M" {
		t.Errorf("config file in source dir not loaded: got %q", cfg.VideoBitrate)
	}
}

func TestLoadConfigFile_PromptChosenSourceDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultFileName), `video_bitrate = "3M"`)

	// No positional arg: the source dir arrives later, as the interactive
	// prompt delivers it. The overlay must still pick up the file.
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cfg.SourceDir = dir

	if err := LoadConfigFile(&cfg); err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.VideoBitrate != "3M" {
		t.Errorf("config file not loaded for prompt-chosen dir: got %q", cfg.VideoBitrate)
	}
}

func TestLoadConfigFile_ExplicitFlagStillWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, DefaultFileName), `video_bitrate = "1M"`)

	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, []string{"--bitrate", "5M"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cfg.SourceDir = dir

	if err := LoadConfigFile(&cfg); err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.VideoBitrate != "5M" {
		t.Errorf("explicit --bitrate overridden by config file: got %q", cfg.VideoBitrate)
	}
}

func TestLoadConfigFile_NothingToLoad(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	// No --config and no source dir: a clean no-op.
	if err := LoadConfigFile(&cfg); err != nil {
		t.Errorf("LoadConfigFile: %v", err)
	}
}

func TestResolveFilePath(t *testing.T) {
	cfg := DefaultConfig()
	if path, _ := ResolveFilePath(&cfg); path != "" {
		t.Errorf("no source dir and no --config: got %q", path)
	}

	cfg.SourceDir = "/data"
	path, explicit := ResolveFilePath(&cfg)
	if explicit || path != filepath.Join("/data", DefaultFileName) {
		t.Errorf("source-dir lookup: got %q explicit=%v", path, explicit)
	}

	cfg.ConfigFile = "/etc/framereel.toml"
	path, explicit = ResolveFilePath(&cfg)
	if !explicit || path != "/etc/framereel.toml" {
		t.Errorf("--config lookup: got %q explicit=%v", path, explicit)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
