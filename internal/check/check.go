// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg and the libx264 encoder.
package check

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound = errors.New("ffmpeg not found on PATH")
	ErrX264TestFailed = errors.New("libx264 test encode failed")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability of ffmpeg,
// H.264 encoders, and a single/two-pass libx264 test encode. This is
// informational only; it does not stop on failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	checkFfmpeg(log)
	checkH264Encoders(log)
	checkX264(log)
	checkTwoPass(log)
}

// checkFfmpeg verifies ffmpeg is on PATH and logs its version string.
func checkFfmpeg(log Logger) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		log.Error("ffmpeg not found")
		return
	}
	cmd := exec.Command("ffmpeg", "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("ffmpeg found but -version failed: %v", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("ffmpeg: %s", firstLine)
}

// checkH264Encoders lists all H.264-related encoders reported by ffmpeg.
func checkH264Encoders(log Logger) {
	log.Info("H.264 encoders:")
	cmd := exec.Command("ffmpeg", "-hide_banner", "-encoders")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return
	}
	for _, line := range strings.Split(string(out), "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "h264") || strings.Contains(lower, "264") {
			log.Info("  %s", strings.TrimSpace(line))
		}
	}
}

// checkX264 runs a minimal libx264 encode to verify the encoder works.
func checkX264(log Logger) {
	log.Info("Testing libx264...")
	if runSilent("ffmpeg", x264TestArgs()...) {
		log.Success("libx264 works")
	} else {
		log.Error("libx264 test encode failed")
	}
}

// checkTwoPass verifies that pass-1 statistics mode is usable.
func checkTwoPass(log Logger) {
	log.Info("Testing two-pass analysis...")
	if runSilent("ffmpeg", twoPassTestArgs()...) {
		log.Success("two-pass analysis works")
	} else {
		log.Error("two-pass analysis test failed")
	}
}

// CheckDeps is the pre-pipeline validation: ffmpeg must be on PATH and a
// quick libx264 encode must succeed. Returns a sentinel error on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if !runSilent("ffmpeg", x264TestArgs()...) {
		return ErrX264TestFailed
	}
	return nil
}

// --- internal helpers ---

// x264TestArgs returns the ffmpeg arguments for a minimal libx264 test encode.
func x264TestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264",
		"-f", "null", "-",
	}
}

// twoPassTestArgs adds the pass-1 marker so rate-control statistics mode is
// exercised; the stats prefix points at the system temp dir and the media
// output is discarded.
func twoPassTestArgs() []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264", "-b:v", "500k",
		"-pass", "1", "-passlogfile", filepath.Join(os.TempDir(), "framereel-passcheck"),
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
