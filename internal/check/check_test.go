package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/config"
)

// memLogger records formatted lines per level.
type memLogger struct {
	lines []string
}

func (m *memLogger) log(level, format string, args []interface{}) {
	m.lines = append(m.lines, level+": "+fmt.Sprintf(format, args...))
}

func (m *memLogger) Info(f string, a ...interface{})    { m.log("INFO", f, a) }
func (m *memLogger) Success(f string, a ...interface{}) { m.log("SUCCESS", f, a) }
func (m *memLogger) Warn(f string, a ...interface{})    { m.log("WARN", f, a) }
func (m *memLogger) Error(f string, a ...interface{})   { m.log("ERROR", f, a) }

func (m *memLogger) joined() string { return strings.Join(m.lines, "\n") }

func TestRunCheck_ReportsReaderAndTemplates(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()

	log := &memLogger{}
	RunCheck(&cfg, log)

	out := log.joined()
	assert.Contains(t, out, "active reader:")
	assert.Contains(t, out, "name template")
	assert.Contains(t, out, "output directory writable")
}

func TestRunCheck_FlagsUnknownCodes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.NameTemplate = "$zz_$fi"

	log := &memLogger{}
	RunCheck(&cfg, log)

	assert.Contains(t, log.joined(), "unknown codes: zz")
}

func TestRunCheck_SkipsWriteCheckWithoutOutputDir(t *testing.T) {
	cfg := config.DefaultConfig()

	log := &memLogger{}
	RunCheck(&cfg, log)

	assert.Contains(t, log.joined(), "skipping write check")
}

func TestRunCheck_UnwritableOutputDir(t *testing.T) {
	cfg := config.DefaultConfig()
	// A path under a regular file cannot be created as a directory.
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.OutputDir = filepath.Join(blocker, "out")

	log := &memLogger{}
	RunCheck(&cfg, log)

	assert.Contains(t, log.joined(), "ERROR: cannot create output directory")
}
