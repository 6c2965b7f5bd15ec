// Package pipeline orchestrates file discovery, per-file metadata
// extraction, name generation, placement, and batch summary reporting.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/config"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/display"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/extract"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/logging"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/naming"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/stats"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/template"
)

const minFileSize = 16

// Runner holds the per-run machinery: the selected metadata reader, the
// compiled templates, the collision resolver, and the statistics aggregator.
// One Runner serves a whole run, including watch mode's follow-up files.
type Runner struct {
	cfg      *config.Config
	log      *logging.Logger
	registry *property.Registry
	reader   extract.Reader
	builder  *record.Builder
	namePat  *template.Pattern
	dirPat   *template.Pattern
	resolver *naming.CollisionResolver

	// mu guards counters and the aggregator. The batch loop is sequential,
	// but watch mode delivers settled files from one goroutine each.
	mu    sync.Mutex
	agg   *stats.Aggregator
	stats RunStats
}

// NewRunner selects the metadata reader and compiles the naming templates.
// Call Close when the run (including any watch phase) is over.
func NewRunner(cfg *config.Config, log *logging.Logger) (*Runner, error) {
	reader, err := extract.Select(string(cfg.Reader))
	if err != nil {
		return nil, err
	}
	return newRunner(cfg, log, reader), nil
}

func newRunner(cfg *config.Config, log *logging.Logger, reader extract.Reader) *Runner {
	reg := property.NewRegistry()
	r := &Runner{
		cfg:      cfg,
		log:      log,
		registry: reg,
		reader:   reader,
		builder:  record.NewBuilder(reg),
		namePat:  template.Compile(cfg.NameTemplate),
		resolver: naming.NewCollisionResolver(),
		agg:      stats.New(reg),
	}
	if cfg.DirTemplate != "" {
		r.dirPat = template.Compile(cfg.DirTemplate)
	}

	if unknown := r.namePat.UnknownCodes(reg); len(unknown) > 0 {
		log.Warn("Name template references unknown codes: %s", strings.Join(unknown, ", "))
	}
	if r.dirPat != nil {
		if unknown := r.dirPat.UnknownCodes(reg); len(unknown) > 0 {
			log.Warn("Dir template references unknown codes: %s", strings.Join(unknown, ", "))
		}
	}
	return r
}

// Close releases the metadata reader.
func (r *Runner) Close() error { return r.reader.Close() }

// Stats returns the counters accumulated so far.
func (r *Runner) Stats() RunStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Run is the top-level batch entry point: discover files, process each one
// sequentially, print the summary and (when enabled) the statistics report.
func (r *Runner) Run(ctx context.Context) RunStats {
	files, err := Discover(r.cfg.InputDir)
	if err != nil {
		r.log.Error("File discovery failed: %v", err)
		r.stats.Failed++
		return r.stats
	}

	r.stats.Total = len(files)
	r.logBatchHeader()

	if r.cfg.StatsOnly {
		r.scanOnly(ctx, files)
	} else {
		for _, path := range files {
			if ctx.Err() != nil {
				r.log.Warn("Interrupted")
				break
			}
			r.ProcessFile(ctx, path)
		}
	}

	r.logSummary()
	r.ReportStats()
	return r.stats
}

// scanOnly reads metadata for the statistics report without touching any
// file, with a progress line on a TTY.
func (r *Runner) scanOnly(ctx context.Context, files []string) {
	tty := isTerminal(os.Stdout)
	for i, path := range files {
		r.stats.Current = i + 1
		if ctx.Err() != nil {
			clearProgress(tty)
			r.log.Warn("Interrupted")
			return
		}
		printProgress(tty, i+1, len(files), r.stats.Failed, filepath.Base(path))

		rec, fi, ok := r.readRecord(ctx, path)
		if !ok {
			r.stats.Failed++
			continue
		}
		r.agg.Aggregate(rec)
		r.stats.Scanned++
		r.stats.TotalBytes += fi.Size()
	}
	clearProgress(tty)
}

// ProcessFile handles one photo: read metadata, generate the output name,
// resolve collisions, and move or copy the file into place. Watch mode calls
// this directly for files appearing after the initial pass.
func (r *Runner) ProcessFile(ctx context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.Current++
	basename := filepath.Base(path)
	r.log.Debug("[%d/%d] %s", r.stats.Current, r.stats.Total, basename)

	rec, fi, ok := r.readRecord(ctx, path)
	if !ok {
		r.stats.Failed++
		return
	}
	r.agg.Aggregate(rec)

	name := r.namePat.Render(rec)
	if name == "" {
		// A record with no usable properties still gets organized.
		name = strings.TrimSuffix(basename, filepath.Ext(basename))
	}
	rec.OutputName = name
	if r.dirPat != nil {
		rec.DirSegments = naming.SplitSegments(r.dirPat.Render(rec))
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	outPath := naming.BuildOutputPath(r.cfg.OutputDir, rec.DirSegments, name, ext)
	outPath = r.resolver.Resolve(path, outPath)
	rec.DedupKey = outPath

	if outPath == path {
		r.log.Debug("Already in place: %s", basename)
		r.stats.Skipped++
		return
	}

	rel := outPath
	if p, err := filepath.Rel(r.cfg.OutputDir, outPath); err == nil {
		rel = p
	}

	if r.cfg.DryRun {
		r.log.Info("[DRY] %s", r.log.Detail(basename+" -> "+rel))
		r.stats.Organized++
		r.stats.TotalBytes += fi.Size()
		return
	}

	if err := placeFile(path, outPath, r.cfg.CopyMode); err != nil {
		r.log.Error("Cannot place %s: %v", basename, err)
		r.stats.Failed++
		return
	}

	verb := "Moved"
	if r.cfg.CopyMode {
		verb = "Copied"
	}
	r.log.Info("%s %s", verb, r.log.Detail(basename+" -> "+rel))
	r.stats.Organized++
	r.stats.TotalBytes += fi.Size()
}

// readRecord stats the file, extracts its tag groups, and builds the
// metadata record. Extraction failure is soft: the record is built from
// file attributes alone so date- and name-based templates still work.
func (r *Runner) readRecord(ctx context.Context, path string) (*record.MetadataRecord, os.FileInfo, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		r.log.Error("File not found: %s", path)
		return nil, nil, false
	}
	if fi.Size() < minFileSize {
		r.log.Error("File too small (possibly corrupt): %s", path)
		return nil, nil, false
	}

	groups, err := r.reader.Extract(ctx, path)
	if err != nil {
		r.log.Warn("Metadata read failed for %s, using file attributes only: %v",
			filepath.Base(path), err)
		groups = nil
	}

	base := filepath.Base(path)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(base)), ".")
	rec := r.builder.Build(path, groups, record.FileDefaults{
		Timestamp: fi.ModTime(),
		Extension: ext,
		BaseName:  strings.TrimSuffix(base, filepath.Ext(base)),
		Size:      fi.Size(),
	})
	return rec, fi, true
}

// ReportStats prints the statistics report when enabled.
func (r *Runner) ReportStats() {
	if !r.cfg.ShowStats && !r.cfg.StatsOnly {
		return
	}
	r.mu.Lock()
	report := r.agg.Report()
	r.mu.Unlock()
	if report == "" {
		return
	}
	fmt.Println()
	r.log.Raw(report)
}

// --- Logging helpers ---

func (r *Runner) logBatchHeader() {
	r.log.Info("Found %s in %s", display.FormatFileCount(r.stats.Total), r.cfg.InputDir)
	r.log.Info("Reader: %s", r.reader.Name())
	r.log.Info("Name template: %s", r.namePat.Source())
	if r.dirPat != nil {
		r.log.Info("Dir template: %s", r.dirPat.Source())
	}

	switch {
	case r.cfg.StatsOnly:
		r.log.Info("Mode: statistics only (no files touched)")
	case r.cfg.DryRun:
		r.log.Info("Mode: dry run (no files touched)")
	case r.cfg.CopyMode:
		r.log.Info("Mode: copy to %s", r.cfg.OutputDir)
	default:
		r.log.Info("Mode: move to %s", r.cfg.OutputDir)
	}
	fmt.Println()
}

func (r *Runner) logSummary() {
	r.log.Info("==============================")
	counted := r.stats.Organized
	if r.cfg.StatsOnly {
		counted = r.stats.Scanned
		r.log.Info("Done: %d scanned, %d failed (no files touched)", r.stats.Scanned, r.stats.Failed)
	} else {
		r.log.Info("Done: %d organized, %d skipped, %d failed", r.stats.Organized, r.stats.Skipped, r.stats.Failed)
	}
	if r.stats.TotalBytes > 0 {
		r.log.Info("Processed %s in %s",
			display.FormatBytes(r.stats.TotalBytes),
			display.FormatFileCount(counted))
	}
}
