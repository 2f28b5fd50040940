// Command framereel is the CLI entrypoint for the frame-archive converter.
//
// It parses flags, resolves the source folder (argument or interactive
// prompt), and either runs system diagnostics (--check) or the batch
// conversion pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/framereel/framereel/internal/check"
	"github.com/framereel/framereel/internal/config"
	"github.com/framereel/framereel/internal/display"
	"github.com/framereel/framereel/internal/logging"
	"github.com/framereel/framereel/internal/pipeline"
	"github.com/framereel/framereel/internal/prompt"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output
	// goes through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "framereel: %v\n", err)
		return 1
	}

	// Resolve the source folder before the config-file overlay, so the
	// default framereel.toml lookup also works when the folder comes from
	// the interactive prompt. Cancelling the prompt aborts the whole run.
	if !cfg.CheckOnly && cfg.SourceDir == "" {
		dir, err := prompt.ChooseSourceDir(os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "framereel: %v\n", err)
			return promptExitCode(err)
		}
		cfg.SourceDir = dir
	}

	if err := config.LoadConfigFile(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "framereel: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "framereel: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "framereel: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		check.RunCheck(log)
		return 0
	}

	srcAbs, err := absPath(cfg.SourceDir)
	if err != nil {
		log.Error("Source folder not found: %s", cfg.SourceDir)
		return 1
	}
	cfg.SourceDir = srcAbs

	log.Info("=== framereel v%s (%s) ===", config.Version, config.Commit)
	log.Info("Source: %s", cfg.SourceDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: no videos will be written")
	}
	log.Info("")

	// Fail fast if ffmpeg or libx264 are unavailable (skipped in dry-run,
	// which never invokes the encoder).
	if !cfg.DryRun {
		if err := check.CheckDeps(); err != nil {
			log.Error("%v", err)
			return 1
		}
	}

	// Phase 3: Signal handling. Cancel the context on SIGINT/SIGTERM so the
	// pipeline can stop between archives and between encoder passes.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current archive…")
		cancel()
	}()

	// Phase 4: Run pipeline (discover → extract → estimate → normalize →
	// encode → clean). Per-archive failures do not change the exit code;
	// finding no archives at all does.
	stats := pipeline.Run(ctx, &cfg, log)

	if stats.Total == 0 {
		return 1
	}
	return 0
}

// promptExitCode maps folder-selection failures to exit codes: no terminal
// to ask on is a usage error (2); cancellation and anything else is 1.
func promptExitCode(err error) int {
	if errors.Is(err, prompt.ErrNoTerminal) {
		return 2
	}
	return 1
}

// absPath returns the absolute, symlink-resolved path of the source folder.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
