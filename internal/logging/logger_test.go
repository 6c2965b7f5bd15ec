package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "cameratouch.log")

	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Info("to file")
	l.Raw("raw line\n")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO]")
	assert.Contains(t, string(b), "to file")
	assert.Contains(t, string(b), "raw line")
}

func TestNewLogger_CreatesLogDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "nested", "dir", "run.log")

	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Warn("hello")
	require.NoError(t, l.Close())

	_, err = os.Stat(cfg.LogFile)
	assert.NoError(t, err)
}

func TestDebug_SuppressedWithoutVerbose(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.Debug("should not appear")
	require.NoError(t, l.Close())

	b, _ := os.ReadFile(cfg.LogFile)
	assert.NotContains(t, string(b), "should not appear")
}

func TestDetail_PlainWithoutColor(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()
	assert.Equal(t, "a -> b", l.Detail("a -> b"))
}
