// Package record builds one MetadataRecord per source file from the raw tag
// groups produced by a metadata reader, resolving duplicate tags and
// injecting filesystem-derived defaults for codes the tags did not supply.
package record

import (
	"sort"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
)

// Tag is one raw (name, value) pair as reported by a metadata reader.
type Tag struct {
	Name  string
	Value string
}

// TagGroup is a named group of tags (e.g. an EXIF directory).
type TagGroup struct {
	Name string
	Tags []Tag
}

// PropertyValue is a resolved property on a record: the raw reported value,
// its typed form, and the file-safe rendered form used in generated names.
type PropertyValue struct {
	Code     string
	Name     string
	Raw      string
	Typed    property.Value
	FileSafe string
}

// MetadataRecord is the per-file collection of resolved properties plus the
// naming outputs attached during generation. Properties are unique by code.
type MetadataRecord struct {
	SourcePath string

	// Attached during name generation; read-only afterwards.
	OutputName  string
	DirSegments []string
	DedupKey    string

	props map[string]PropertyValue
}

// Lookup returns the property with the given code, if present.
func (r *MetadataRecord) Lookup(code string) (PropertyValue, bool) {
	pv, ok := r.props[code]
	return pv, ok
}

// Properties returns all resolved properties in code-ascending order.
func (r *MetadataRecord) Properties() []PropertyValue {
	out := make([]PropertyValue, 0, len(r.props))
	for _, pv := range r.props {
		out = append(out, pv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of resolved properties.
func (r *MetadataRecord) Len() int { return len(r.props) }

// attach adds a property, resolving duplicates: a later value replaces an
// earlier one only when its typed value compares strictly greater. Kinds
// without an ordering keep the first occurrence.
func (r *MetadataRecord) attach(pv PropertyValue) {
	existing, ok := r.props[pv.Code]
	if !ok {
		r.props[pv.Code] = pv
		return
	}
	if c, comparable := pv.Typed.Compare(existing.Typed); comparable && c > 0 {
		r.props[pv.Code] = pv
	}
}
