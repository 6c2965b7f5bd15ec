// Package extract reads embedded metadata from photo files and exposes it as
// named groups of raw (tagName, rawValue) pairs — the wire contract consumed
// by the record builder.
//
// Two readers are provided: an exiftool-backed reader (richest tag coverage,
// requires the exiftool binary) and a native EXIF decoder used as fallback.
package extract

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
)

// Reader extracts metadata tag groups from a single file.
type Reader interface {
	// Name identifies the reader in logs and diagnostics.
	Name() string
	// Extract reads path's metadata. Tag names are normalized to the
	// registry's wire names; unreadable metadata is an error, which the
	// caller treats as a per-file (not per-run) failure.
	Extract(ctx context.Context, path string) ([]record.TagGroup, error)
	// Close releases any held resources (e.g. a stay-open subprocess).
	Close() error
}

// Mode selects which reader Select returns.
const (
	ModeAuto     = "auto"
	ModeExiftool = "exiftool"
	ModeNative   = "native"
)

// ExiftoolAvailable reports whether the exiftool binary is on PATH.
func ExiftoolAvailable() bool {
	_, err := exec.LookPath("exiftool")
	return err == nil
}

// Select resolves a reader mode into a ready reader. Auto prefers exiftool
// and silently falls back to the native decoder when the binary is missing.
func Select(mode string) (Reader, error) {
	switch mode {
	case ModeExiftool:
		return NewExiftoolReader()
	case ModeNative:
		return NewNativeReader(), nil
	case ModeAuto:
		if ExiftoolAvailable() {
			if r, err := NewExiftoolReader(); err == nil {
				return r, nil
			}
		}
		return NewNativeReader(), nil
	}
	return nil, fmt.Errorf("unknown reader mode %q (use exiftool, native, or auto)", mode)
}
