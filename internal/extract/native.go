package extract

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
)

// NativeReader decodes EXIF directly from JPEG/TIFF bytes. No external
// binary required, at the cost of narrower format and tag coverage.
type NativeReader struct{}

// NewNativeReader returns the stateless native reader.
func NewNativeReader() *NativeReader { return &NativeReader{} }

func (r *NativeReader) Name() string { return "native" }

func (r *NativeReader) Close() error { return nil }

// Extract decodes path's EXIF block and reports its fields as one group.
func (r *NativeReader) Extract(ctx context.Context, path string) ([]record.TagGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode EXIF %q: %w", path, err)
	}

	w := &fieldWalker{group: record.TagGroup{Name: "Exif"}}
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("walk EXIF %q: %w", path, err)
	}
	return []record.TagGroup{w.group}, nil
}

// fieldWalker collects normalized tags during the EXIF walk.
type fieldWalker struct {
	group record.TagGroup
}

func (w *fieldWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	raw := tagValue(tag)
	if raw == "" {
		return nil
	}
	if t, ok := normalizeTag(string(name), raw); ok {
		w.group.Tags = append(w.group.Tags, t)
	}
	return nil
}

// tagValue extracts a tag's printable value; ASCII tags arrive quoted from
// the tiff layer and are unwrapped here.
func tagValue(tag *tiff.Tag) string {
	s := tag.String()
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}
