// Package check implements the --check diagnostics: reader availability,
// template sanity, and output directory writability.
package check

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/config"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/extract"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/template"
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// (rather than importing the logging package) so that check stays
// dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the --check flow: reports reader availability, which reader
// the current config would select, whether the templates reference known
// codes, and whether the output directory is writable. Informational only;
// it does not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== Environment Check ===")

	checkExiftool(log)
	checkActiveReader(cfg, log)
	checkTemplates(cfg, log)
	checkOutputDir(cfg, log)
}

func checkExiftool(log Logger) {
	path, err := exec.LookPath("exiftool")
	if err != nil {
		log.Warn("exiftool not found on PATH (native reader will be used)")
		return
	}
	out, err := exec.Command(path, "-ver").Output()
	if err != nil {
		log.Warn("exiftool found at %s but -ver failed: %v", path, err)
		return
	}
	log.Success("exiftool %s (%s)", strings.TrimSpace(string(out)), path)
}

func checkActiveReader(cfg *config.Config, log Logger) {
	r, err := extract.Select(string(cfg.Reader))
	if err != nil {
		log.Error("reader %q unavailable: %v", cfg.Reader, err)
		return
	}
	defer r.Close()
	log.Success("active reader: %s (mode %s)", r.Name(), cfg.Reader)
}

func checkTemplates(cfg *config.Config, log Logger) {
	reg := property.NewRegistry()
	reportTemplate(log, "name template", cfg.NameTemplate, reg)
	if cfg.DirTemplate != "" {
		reportTemplate(log, "dir template", cfg.DirTemplate, reg)
	}
}

func reportTemplate(log Logger, label, source string, reg *property.Registry) {
	p := template.Compile(source)
	if unknown := p.UnknownCodes(reg); len(unknown) > 0 {
		log.Warn("%s %q references unknown codes: %s", label, source, strings.Join(unknown, ", "))
		return
	}
	log.Success("%s: %q", label, source)
}

func checkOutputDir(cfg *config.Config, log Logger) {
	if cfg.OutputDir == "" {
		log.Info("no output directory given, skipping write check")
		return
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Error("cannot create output directory %s: %v", cfg.OutputDir, err)
		return
	}
	probe := filepath.Join(cfg.OutputDir, ".cameratouch-write-check")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		log.Error("output directory %s is not writable: %v", cfg.OutputDir, err)
		return
	}
	_ = os.Remove(probe)
	log.Success("output directory writable: %s", cfg.OutputDir)
}
