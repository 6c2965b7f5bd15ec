package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Supported photo file extensions (lowercase, with leading dot).
var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".gif":  true,
	".heic": true,
	".dng":  true,
	".arw":  true,
	".cr2":  true,
	".nef":  true,
	".raf":  true,
	".webp": true,
	".bmp":  true,
}

// IsPhoto reports whether path carries a supported photo extension.
func IsPhoto(path string) bool {
	return photoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Discover walks inputDir, collects files with photo extensions, prunes
// hidden directories (dot-prefixed, e.g. .thumbnails), and returns the paths
// sorted lexicographically for deterministic processing order.
func Discover(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsPhoto(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
