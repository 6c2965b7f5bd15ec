package extract

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/barasher/go-exiftool"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
)

// ExiftoolReader extracts metadata through a stay-open exiftool subprocess.
// It is the preferred reader: exiftool understands far more formats (HEIC,
// RAW variants) than the native decoder.
type ExiftoolReader struct {
	et *exiftool.Exiftool
}

// NewExiftoolReader starts the exiftool subprocess. The returned reader must
// be closed to reap it.
func NewExiftoolReader() (*ExiftoolReader, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &ExiftoolReader{et: et}, nil
}

func (r *ExiftoolReader) Name() string { return "exiftool" }

// Close terminates the subprocess.
func (r *ExiftoolReader) Close() error { return r.et.Close() }

// Extract reads all of path's metadata in one exiftool call. Thumbnail tags
// land in their own group so downstream filtering drops them; everything
// else is reported as a single group.
func (r *ExiftoolReader) Extract(ctx context.Context, path string) ([]record.TagGroup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fms := r.et.ExtractMetadata(path)
	if len(fms) == 0 {
		return nil, fmt.Errorf("exiftool returned no result for %q", path)
	}
	fm := fms[0]
	if fm.Err != nil {
		return nil, fmt.Errorf("exiftool %q: %w", path, fm.Err)
	}

	main := record.TagGroup{Name: "ExifTool"}
	thumb := record.TagGroup{Name: "ExifTool Thumbnail"}

	for key, val := range fm.Fields {
		raw := stringifyField(val)
		if raw == "" {
			continue
		}
		tag, ok := normalizeTag(key, raw)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(key), "thumbnail") {
			thumb.Tags = append(thumb.Tags, tag)
			continue
		}
		main.Tags = append(main.Tags, tag)
	}

	return []record.TagGroup{main, thumb}, nil
}

// stringifyField renders an exiftool JSON field value as the raw string the
// property parsers expect. Integral floats print without a decimal point.
func stringifyField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
