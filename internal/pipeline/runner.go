// Package pipeline orchestrates archive discovery, per-archive conversion,
// and batch summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/framereel/framereel/internal/archive"
	"github.com/framereel/framereel/internal/config"
	"github.com/framereel/framereel/internal/display"
	"github.com/framereel/framereel/internal/ffmpeg"
	"github.com/framereel/framereel/internal/fps"
	"github.com/framereel/framereel/internal/frames"
	"github.com/framereel/framereel/internal/logging"
)

// Run is the top-level batch entry point. It discovers archives in the
// source directory, processes each one sequentially, and returns aggregate
// stats. Zero discovered archives is surfaced through stats.Total; the
// caller treats it as a terminal condition.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats

	archives, err := archive.Discover(cfg.SourceDir)
	if err != nil {
		log.Error("Archive discovery failed: %v", err)
		return stats
	}

	stats.Total = len(archives)
	if stats.Total == 0 {
		log.Error("No ZIP archives found in %s", cfg.SourceDir)
		return stats
	}

	logBatchHeader(cfg, log, &stats)

	for i, path := range archives {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processArchive(ctx, cfg, log, path, &stats)
	}

	logSummary(cfg, log, &stats)
	return stats
}

// processArchive handles one archive: extract → estimate FPS → normalize →
// encode (two passes) → clean pass logs. Failures are logged and counted,
// never batch-fatal.
func processArchive(
	ctx context.Context,
	cfg *config.Config,
	log *logging.Logger,
	path string,
	stats *RunStats,
) {
	base := archive.BaseName(path)
	log.Info("[%d/%d] %s", stats.Current, stats.Total, filepath.Base(path))

	outputPath := filepath.Join(cfg.SourceDir, base+".mp4")

	// --- Skip-existing check ---
	if cfg.SkipExisting {
		if _, err := os.Stat(outputPath); err == nil {
			log.Warn("Skip (exists): %s", filepath.Base(outputPath))
			stats.Skipped++
			fmt.Println()
			return
		}
	}

	// --- Extract ---
	workDir := archive.WorkDirFor(path)
	log.Extract("Unpacking into %s", filepath.Base(workDir))
	if err := archive.Extract(path, workDir); err != nil {
		log.Error("Extraction failed: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}

	// --- Estimate FPS ---
	est := fps.Estimate(workDir, cfg.MetadataName, cfg.FrameExt, cfg.DefaultFPS)
	switch est.Source {
	case fps.SourceMetadata:
		log.Info("  FPS: %s (metadata, %d delays)", display.FormatFPS(est.FPS), est.Samples)
	case fps.SourceTimestamps:
		log.Info("  FPS: %s (timestamps, %d deltas)", display.FormatFPS(est.FPS), est.Samples)
	default:
		log.Info("  FPS: %s (default)", display.FormatFPS(est.FPS))
	}

	// --- Normalize frame names ---
	norm, err := frames.Normalize(workDir, cfg.FrameExt, log)
	if err != nil {
		log.Error("Frame listing failed: %v", err)
		stats.Failed++
		fmt.Println()
		return
	}
	if norm.Total == 0 {
		log.Warn("No %s frames in archive, skipping", cfg.FrameExt)
		stats.Skipped++
		fmt.Println()
		return
	}
	if norm.Failed > 0 {
		log.Warn("  %d of %d frames could not be renamed; output sequence has gaps", norm.Failed, norm.Total)
	}
	log.Debug("  Frames: %d normalized as %s", norm.Renamed, frames.Name(0, cfg.FrameExt))
	stats.TotalFrames += norm.Total

	job := &ffmpeg.Job{
		FPS:          est.FPS,
		InputPattern: frames.InputPattern(workDir, cfg.FrameExt),
		WorkDir:      workDir,
		OutputPath:   outputPath,
		Bitrate:      cfg.VideoBitrate,
		PixelFormat:  cfg.PixelFormat,
		ColorSpec:    cfg.ColorSpec,
		Verbose:      cfg.Verbose,
	}

	// --- Dry-run ---
	if cfg.DryRun {
		log.Success("[DRY] Would encode %d frames at %s fps -> %s",
			norm.Total, display.FormatFPS(est.FPS), filepath.Base(outputPath))
		stats.Converted++
		fmt.Println()
		return
	}

	// --- Encode: two sequential passes, then clean pass logs regardless ---
	start := time.Now()
	encodeErr := runPasses(ctx, log, job)

	if err := ffmpeg.CleanPassLogs(workDir); err != nil {
		log.Warn("Pass-log cleanup: %v", err)
	}

	if encodeErr != nil {
		log.Error("Encode failed: %v", encodeErr)
		stats.Failed++
		fmt.Println()
		return
	}

	var outSize int64
	if info, err := os.Stat(outputPath); err == nil {
		outSize = info.Size()
	}
	stats.TotalOutputBytes += outSize
	stats.Converted++

	log.Success("Converted in %ds: %s (%s, %d frames at %s fps)",
		int(time.Since(start).Seconds()), filepath.Base(outputPath),
		display.FormatBytes(outSize), norm.Total, display.FormatFPS(est.FPS))
	fmt.Println()
}

// runPasses executes the analysis pass and the final pass in order. Each
// pass runs to completion regardless of the other's outcome; failures are
// logged as they happen and the first error is returned.
func runPasses(ctx context.Context, log *logging.Logger, job *ffmpeg.Job) error {
	var firstErr error

	log.Encode("Pass 1/2 (analysis)")
	if res := ffmpeg.Run(ctx, job, ffmpeg.PassAnalyze); res.Err != nil {
		logStderr(log, res.Stderr)
		firstErr = fmt.Errorf("pass 1: %w", res.Err)
	}

	if ctx.Err() != nil {
		if firstErr != nil {
			return firstErr
		}
		return ctx.Err()
	}

	log.Encode("Pass 2/2 (final)")
	if res := ffmpeg.Run(ctx, job, ffmpeg.PassEncode); res.Err != nil {
		logStderr(log, res.Stderr)
		if firstErr == nil {
			firstErr = fmt.Errorf("pass 2: %w", res.Err)
		}
	}
	return firstErr
}

func logStderr(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d archives", stats.Total)
	log.Info("Source: %s", cfg.SourceDir)
	log.Info("Encode: libx264 two-pass, %s, %s, %s tagging",
		cfg.VideoBitrate, cfg.PixelFormat, cfg.ColorSpec)
	log.Info("FPS: %s descriptor, timestamp fallback, default %s",
		cfg.MetadataName, display.FormatFPS(cfg.DefaultFPS))
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
	if !cfg.SkipExisting {
		log.Info("Existing outputs will be overwritten")
	}
	fmt.Println()
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d converted, %d skipped, %d failed", stats.Converted, stats.Skipped, stats.Failed)
	log.Info("Summary report:")
	log.Info("  Archives processed: %d", stats.Current)
	log.Info("  Frames seen: %d", stats.TotalFrames)
	if cfg.DryRun {
		log.Info("  Output size: n/a (dry run)")
		return
	}
	log.Info("  Output size: %s", display.FormatBytes(stats.TotalOutputBytes))
}
