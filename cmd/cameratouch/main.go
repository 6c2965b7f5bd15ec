// Command cameratouch is the CLI entrypoint for the CameraTouch photo
// organizer.
//
// It parses flags, validates configuration and paths, and runs either the
// environment diagnostics (--check), the property-code listing
// (--list-codes), or the rename/organize pipeline, optionally followed by
// watch mode.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/check"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/config"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/display"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/logging"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/pipeline"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/watch"
)

// version and commit are injected at build time via -ldflags. When built
// with plain "go build" these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr. Once NewLogger succeeds, all output goes through
	// the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.LoadFile(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "cameratouch: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if errors.Is(err, config.ErrShowVersion) {
			fmt.Printf("cameratouch v%s (%s)\n", version, commit)
			return 0
		}
		fmt.Fprintf(os.Stderr, "cameratouch: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "cameratouch: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cameratouch: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available.
	if cfg.ListCodes {
		fmt.Print(display.RenderCodeTable(property.NewRegistry()))
		return 0
	}

	display.PrintBanner(log.ColorEnabled())

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// Resolve and validate paths: input must exist, output is created if
	// needed, and output must not be inside input (prevents the pipeline
	// from discovering its own output).
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		log.Error("Input not found: %s", cfg.InputDir)
		return 1
	}
	if !cfg.StatsOnly {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			log.Error("Cannot create output directory: %s", cfg.OutputDir)
			return 1
		}
		outputAbs, err := absPath(cfg.OutputDir)
		if err != nil {
			log.Error("Cannot resolve output path: %s", cfg.OutputDir)
			return 1
		}
		if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
			log.Error("%v", err)
			log.Error("Choose an output path outside: %s", cfg.InputDir)
			return 1
		}
	}

	log.Info("=== CameraTouch v%s (%s) ===", version, commit)
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be touched")
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pipeline can stop between files without leaving partial output.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	// Phase 4: Run the pipeline, then optionally keep watching.
	runner, err := pipeline.NewRunner(&cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	defer runner.Close()

	stats := runner.Run(ctx)

	if cfg.Watch && ctx.Err() == nil {
		if code := runWatch(ctx, &cfg, log, runner); code != 0 {
			return code
		}
		stats = runner.Stats()
	}

	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// runWatch blocks until interrupted, feeding late-arriving files through the
// same runner so collision tracking and statistics carry over.
func runWatch(ctx context.Context, cfg *config.Config, log *logging.Logger, runner *pipeline.Runner) int {
	w, err := watch.New(cfg.InputDir, cfg.WatchMinAge, func(ctx context.Context, path string) {
		runner.ProcessFile(ctx, path)
	}, log)
	if err != nil {
		log.Error("Cannot start watcher: %v", err)
		return 1
	}
	if err := w.Run(ctx); err != nil {
		log.Error("Watcher stopped: %v", err)
		return 1
	}
	// Re-print statistics so the report reflects watched files too.
	runner.ReportStats()
	return 0
}

// absPath returns the absolute path with symlinks resolved, for comparing
// input vs output hierarchy.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
