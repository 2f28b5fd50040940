package ffmpeg

import (
	"os"
	"path/filepath"
	"strconv"
)

// Pass selects which of the two encoder invocations to build.
type Pass int

const (
	PassAnalyze Pass = 1 // Statistics only; media output discarded.
	PassEncode  Pass = 2 // Final video, consuming pass-1 statistics.
)

// passLogPrefix names the rate-control statistics files ffmpeg writes inside
// the working folder ("<prefix>-0.log" and "<prefix>-0.log.mbtree").
const passLogPrefix = "ffmpeg2pass"

// Job describes one archive's encode: the estimated frame rate, the
// normalized frame input pattern, and the output video path. Ephemeral,
// constructed per archive.
type Job struct {
	FPS          float64
	InputPattern string // image2 pattern, e.g. workdir/frame_%04d.png
	WorkDir      string // Holds the pass-log side files.
	OutputPath   string

	Bitrate     string
	PixelFormat string
	ColorSpec   string

	Verbose bool
}

// Build constructs the complete ffmpeg argument slice for one pass. Both
// passes share the input, codec, bitrate, and color arguments; only the
// pass marker and the output destination differ.
func Build(job *Job, pass Pass) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	// Loglevel: info when verbose, otherwise error.
	if job.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input: fixed-width sequential frames at the estimated rate ---
	args = append(args,
		"-framerate", strconv.FormatFloat(job.FPS, 'f', -1, 64),
		"-start_number", "0",
		"-i", job.InputPattern,
	)

	// --- Video codec and rate control ---
	args = append(args,
		"-c:v", "libx264",
		"-b:v", job.Bitrate,
		"-pix_fmt", job.PixelFormat,
	)

	// --- Color tagging ---
	args = append(args,
		"-colorspace", job.ColorSpec,
		"-color_primaries", job.ColorSpec,
		"-color_trc", job.ColorSpec,
	)

	// --- Two-pass wiring ---
	args = append(args,
		"-pass", strconv.Itoa(int(pass)),
		"-passlogfile", filepath.Join(job.WorkDir, passLogPrefix),
		"-an",
	)

	// --- Output ---
	if pass == PassAnalyze {
		args = append(args, "-f", "mp4", os.DevNull)
	} else {
		args = append(args, job.OutputPath)
	}

	return args
}
