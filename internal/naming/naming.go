// Package naming assembles final output paths from rendered template parts
// and resolves in-run collisions between records that compile to the same
// name.
package naming

import (
	"path/filepath"
	"strings"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
)

// BuildOutputPath joins the output root, the sanitized directory segments,
// and the sanitized output name with the source file's extension. Empty
// segments (from templates resolving to nothing) are dropped rather than
// producing empty path components.
func BuildOutputPath(outputDir string, dirSegments []string, name, ext string) string {
	parts := make([]string, 0, len(dirSegments)+2)
	parts = append(parts, outputDir)
	for _, seg := range dirSegments {
		seg = strings.TrimSpace(property.FileSafe(seg))
		if seg != "" {
			parts = append(parts, seg)
		}
	}

	file := strings.TrimSpace(property.FileSafe(name))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	parts = append(parts, file+strings.ToLower(ext))
	return filepath.Join(parts...)
}

// SplitSegments breaks a rendered directory-template string into ordered
// path segments. Slashes in the template are segment separators; blank
// segments collapse away.
func SplitSegments(rendered string) []string {
	if rendered == "" {
		return nil
	}
	raw := strings.Split(rendered, "/")
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
