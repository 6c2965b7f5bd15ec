package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"typical raw file", 26214400, "25.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatFileCount(t *testing.T) {
	assert.Equal(t, "0 files", FormatFileCount(0))
	assert.Equal(t, "1 file", FormatFileCount(1))
	assert.Equal(t, "42 files", FormatFileCount(42))
}

func TestRenderCodeTable(t *testing.T) {
	out := RenderCodeTable(property.NewRegistry())
	assert.Contains(t, out, "$dt")
	assert.Contains(t, out, "Date/Time")
	assert.Contains(t, out, "$mk")
	assert.Contains(t, out, "omitted from statistics")
}
