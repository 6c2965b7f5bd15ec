package config

import (
	"flag"
	"fmt"
	"io"
)

// readerValue adapts ReaderMode to the flag.Value interface so enum
// validation happens at parse time.
type readerValue struct {
	target *ReaderMode
}

func (v readerValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v readerValue) Set(s string) error {
	switch ReaderMode(s) {
	case ReaderAuto, ReaderExiftool, ReaderNative:
		*v.target = ReaderMode(s)
		return nil
	}
	return fmt.Errorf("must be 'auto', 'exiftool', or 'native'")
}

// colorValue adapts ColorMode to the flag.Value interface.
type colorValue struct {
	target *ColorMode
}

func (v colorValue) String() string {
	if v.target == nil {
		return ""
	}
	return string(*v.target)
}

func (v colorValue) Set(s string) error {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		*v.target = ColorMode(s)
		return nil
	}
	return fmt.Errorf("must be 'auto', 'always', or 'never'")
}

// negatedFlags collects boolean flags that invert or override a Config field,
// applied after parsing so flag order doesn't matter.
type negatedFlags struct {
	noStats    bool
	forceColor bool
	noColor    bool
	showHelp   bool
	showVer    bool
}

// ParseFlags parses command-line arguments into cfg, which should already
// carry defaults (and any config-file overlay). Returns flag.ErrHelp when
// usage was requested. The two positional arguments are input_dir and
// output_dir; output_dir may be omitted with --stats-only, and both may be
// omitted with --check or --list-codes.
func ParseFlags(cfg *Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("cameratouch", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { printUsage(out) }

	var neg negatedFlags

	fs.StringVar(&cfg.NameTemplate, "t", cfg.NameTemplate, "")
	fs.StringVar(&cfg.NameTemplate, "template", cfg.NameTemplate, "")
	fs.StringVar(&cfg.DirTemplate, "dir-template", cfg.DirTemplate, "")
	fs.Var(readerValue{&cfg.Reader}, "reader", "")

	fs.BoolVar(&cfg.DryRun, "d", cfg.DryRun, "")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "")
	fs.BoolVar(&cfg.CopyMode, "copy", cfg.CopyMode, "")
	fs.BoolVar(&cfg.ShowStats, "stats", cfg.ShowStats, "")
	fs.BoolVar(&cfg.StatsOnly, "stats-only", cfg.StatsOnly, "")
	fs.BoolVar(&neg.noStats, "no-stats", false, "")
	fs.BoolVar(&cfg.Watch, "w", cfg.Watch, "")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "")
	fs.DurationVar(&cfg.WatchMinAge, "watch-min-age", cfg.WatchMinAge, "")

	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "")
	fs.Var(colorValue{&cfg.ColorMode}, "color", "")
	fs.BoolVar(&neg.forceColor, "force-color", false, "")
	fs.BoolVar(&neg.noColor, "no-color", false, "")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "")

	fs.BoolVar(&cfg.CheckOnly, "c", cfg.CheckOnly, "")
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "")
	fs.BoolVar(&cfg.ListCodes, "list-codes", cfg.ListCodes, "")
	fs.BoolVar(&neg.showHelp, "h", false, "")
	fs.BoolVar(&neg.showHelp, "help", false, "")
	fs.BoolVar(&neg.showVer, "version", false, "")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if neg.showHelp {
		printUsage(out)
		return flag.ErrHelp
	}
	if neg.showVer {
		return ErrShowVersion
	}

	applyNegatedFlags(cfg, neg)
	return parsePositionalArgs(cfg, fs.Args())
}

// ErrShowVersion asks main to print version information and exit cleanly.
var ErrShowVersion = fmt.Errorf("show version")

func applyNegatedFlags(cfg *Config, neg negatedFlags) {
	if neg.noStats {
		cfg.ShowStats = false
	}
	if neg.forceColor {
		cfg.ColorMode = ColorAlways
	}
	if neg.noColor {
		cfg.ColorMode = ColorNever
	}
}

func parsePositionalArgs(cfg *Config, rest []string) error {
	if len(rest) > 2 {
		return fmt.Errorf("unexpected argument %q", rest[2])
	}
	if len(rest) >= 1 {
		cfg.InputDir = NormalizeDirArg(rest[0])
	}
	if len(rest) == 2 {
		cfg.OutputDir = NormalizeDirArg(rest[1])
	}
	return nil
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "usage: cameratouch [flags] <input_dir> <output_dir>")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Renames and organizes photos using their metadata. Names are built from")
	fmt.Fprintln(out, "a template of $-prefixed two-letter property codes, e.g.:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cameratouch -t '%s' ~/incoming ~/photos\n", DefaultNameTemplate)
	fmt.Fprintln(out)

	sections := []struct {
		title string
		rows  []struct{ flags, desc string }
	}{
		{"Template", []struct{ flags, desc string }{
			{"-t, --template <pattern>", "file name template (default above)"},
			{"--dir-template <pattern>", "subdirectory template, '/' separates levels"},
			{"--list-codes", "print the property code table and exit"},
		}},
		{"Behavior", []struct{ flags, desc string }{
			{"--reader <mode>", "metadata reader: auto, exiftool, native (default auto)"},
			{"-d, --dry-run", "preview renames without touching files"},
			{"--copy", "copy files instead of moving them"},
			{"--stats", "print the statistics report after the run (default true)"},
			{"--stats-only", "aggregate statistics without organizing"},
			{"--no-stats", "skip the statistics report"},
			{"-w, --watch", "keep watching input_dir for new files"},
			{"--watch-min-age <dur>", "settle time before processing new files (default 2s)"},
		}},
		{"Display", []struct{ flags, desc string }{
			{"-v, --verbose", "per-file detail output"},
			{"--color <mode>", "color output: auto, always, never"},
			{"--no-color", "shorthand for --color never"},
			{"--force-color", "shorthand for --color always"},
			{"-l, --log <file>", "append output to a log file"},
		}},
		{"Utility", []struct{ flags, desc string }{
			{"-c, --check", "verify readers and environment, then exit"},
			{"--version", "print version and exit"},
			{"-h, --help", "show this help"},
		}},
	}

	for _, sec := range sections {
		fmt.Fprintf(out, "%s:\n", sec.title)
		for _, row := range sec.rows {
			fmt.Fprintf(out, "  %-26s %s\n", row.flags, row.desc)
		}
		fmt.Fprintln(out)
	}
}
