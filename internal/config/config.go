// Package config holds runtime configuration: defaults, config-file loading,
// CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ReaderMode selects the metadata extraction backend.
type ReaderMode string

const (
	ReaderAuto     ReaderMode = "auto"     // prefer exiftool, fall back to native
	ReaderExiftool ReaderMode = "exiftool" // require the exiftool binary
	ReaderNative   ReaderMode = "native"   // built-in EXIF decoder only
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // colors when stdout is a TTY
	ColorAlways ColorMode = "always" // force colors on
	ColorNever  ColorMode = "never"  // disable colors entirely
)

// DefaultNameTemplate is the name pattern applied when the user supplies none.
const DefaultNameTemplate = "$dt[yyyy-MM-dd_HH-mm-ss]_$fi"

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid from a config file by [LoadFile], and finally mutated
// by [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args).
	InputDir  string
	OutputDir string

	// Naming templates.
	NameTemplate string // default: DefaultNameTemplate
	DirTemplate  string // default: "" (flat output); '/' splits segments

	// Extraction.
	Reader ReaderMode

	// Behavior.
	DryRun    bool // preview only; no filesystem mutation
	CopyMode  bool // copy instead of move
	ShowStats bool // print the statistics report after the run
	StatsOnly bool // aggregate statistics without organizing files
	Watch     bool // keep watching the input directory after the initial pass

	// WatchMinAge is the settle time before a newly seen file is processed.
	WatchMinAge time.Duration

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode
	LogFile   string // optional log file path
	CheckOnly bool   // run environment diagnostics and exit
	ListCodes bool   // print the property-code table and exit
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		NameTemplate: DefaultNameTemplate,
		DirTemplate:  "",
		Reader:       ReaderAuto,
		ShowStats:    true,
		WatchMinAge:  2 * time.Second,
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path. The
// filesystem root "/" is returned unchanged so we don't produce an empty
// string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and template presence. When not in an
// exit-early mode (check, list-codes) it also requires the input directory,
// and the output directory unless stats-only.
func (c *Config) Validate() error {
	switch c.Reader {
	case ReaderAuto, ReaderExiftool, ReaderNative:
	default:
		return errors.New("invalid reader (use 'auto', 'exiftool', or 'native')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.New("invalid color mode (use 'auto', 'always', or 'never')")
	}

	if c.NameTemplate == "" {
		return errors.New("name template must not be empty")
	}
	if c.WatchMinAge < 0 {
		return errors.New("watch min age must not be negative")
	}

	if c.CheckOnly || c.ListCodes {
		return nil
	}
	if c.InputDir == "" {
		return errors.New("need an input_dir")
	}
	if !c.StatsOnly && c.OutputDir == "" {
		return errors.New("need an output_dir (or pass --stats-only)")
	}
	if c.StatsOnly && c.Watch {
		return errors.New("--watch and --stats-only are mutually exclusive")
	}
	return nil
}

// ValidatePaths ensures the resolved output directory is not inside (or equal
// to) the resolved input directory, which would let the pipeline discover its
// own output. Both arguments must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return fmt.Errorf("output directory %q is inside input directory %q", outputAbs, inputAbs)
	}
	return nil
}
