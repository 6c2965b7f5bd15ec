// Package logging provides leveled, styled terminal output with an optional
// plain-text file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/config"
)

// Level styles. Rendered only when color is enabled; the file sink always
// receives plain text.
var (
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleDebug   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleDetail  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Logger writes leveled lines to stdout (stderr for errors) and, when
// configured, appends plain copies to a log file. Safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	color    bool
	verbose  bool
	file     *os.File
	filePath string
}

// NewLogger resolves color mode from cfg and opens cfg.LogFile when set.
// Call Close when done if a log file was opened.
func NewLogger(cfg *config.Config) (*Logger, error) {
	l := &Logger{verbose: cfg.Verbose}
	switch cfg.ColorMode {
	case config.ColorAlways:
		l.color = true
	case config.ColorNever:
		l.color = false
	case config.ColorAuto:
		l.color = isTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = cfg.LogFile
	}
	return l, nil
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// ColorEnabled reports whether styled output was resolved on.
func (l *Logger) ColorEnabled() bool { return l.color }

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, style lipgloss.Style, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	if l.color {
		_, _ = io.WriteString(out, ts+" "+style.Render("["+level+"]")+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", styleInfo, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level.
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", styleSuccess, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", styleWarn, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level, to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", styleError, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level only when verbose was enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", styleDebug, fmt.Sprintf(format, args...))
}

// Raw writes text straight to stdout (and the file sink) without a level
// prefix. Used for reports and tables whose layout matters.
func (l *Logger) Raw(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(os.Stdout, text)
	if l.file != nil {
		_, _ = io.WriteString(l.file, text)
	}
}

// Detail styles secondary text (old -> new rename lines under a header).
// Returns the input unchanged when color is off.
func (l *Logger) Detail(text string) string {
	if !l.color {
		return text
	}
	return styleDetail.Render(text)
}
