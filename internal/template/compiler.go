// Package template compiles the naming template language into reusable,
// pure name-generating functions over a metadata record.
//
// A template is literal text interleaved with $-prefixed two-character
// property codes; the date code additionally accepts a bracketed sub-format:
//
//	$dt[yyyy-MM-dd]_$is_$fl_Image
//
// Compilation never fails. Unknown codes, incomplete trailing codes, and
// codes absent from a record all degrade to the empty string at evaluation
// time. A compiled Pattern is stateless and safe for concurrent use.
package template

import (
	"strings"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
)

// Sigil introduces a property code inside a template.
const Sigil = '$'

// segment is one compiled unit of a pattern. Segments are pure: no segment
// observes output produced by another.
type segment interface {
	render(rec *record.MetadataRecord) string
}

// literalSegment always returns its fixed text.
type literalSegment struct {
	text string
}

func (s literalSegment) render(*record.MetadataRecord) string { return s.text }

// fieldSegment returns the file-safe value of the record's property with the
// captured code, or "" when the record has no such code.
type fieldSegment struct {
	code string
}

func (s fieldSegment) render(rec *record.MetadataRecord) string {
	pv, ok := rec.Lookup(s.code)
	if !ok {
		return ""
	}
	return pv.FileSafe
}

// dateSegment formats the record's date property with a layout translated
// from the bracketed sub-format at compile time.
type dateSegment struct {
	layout string
}

func (s dateSegment) render(rec *record.MetadataRecord) string {
	pv, ok := rec.Lookup(property.CodeDate)
	if !ok {
		return ""
	}
	return property.FileSafe(pv.Typed.Time().Format(s.layout))
}

// Pattern is a compiled template: an ordered segment list whose rendered
// outputs are concatenated in source order.
type Pattern struct {
	source   string
	segments []segment
}

// scanner states.
const (
	stateLiteral = iota
	stateCode
	stateDateFormat
)

// Compile turns a template string into a Pattern in a single left-to-right
// scan. It always succeeds; malformed trailing input compiles to segments
// that evaluate to the empty string.
func Compile(pattern string) *Pattern {
	p := &Pattern{source: pattern}

	state := stateLiteral
	var buf strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		switch state {
		case stateLiteral:
			if c == Sigil {
				if buf.Len() > 0 {
					p.segments = append(p.segments, literalSegment{text: buf.String()})
					buf.Reset()
				}
				state = stateCode
				continue
			}
			buf.WriteByte(c)

		case stateCode:
			buf.WriteByte(c)
			if buf.Len() < 2 {
				continue
			}
			code := buf.String()
			buf.Reset()
			if code == property.CodeDate && i+1 < len(pattern) && pattern[i+1] == '[' {
				i++ // consume the opening bracket
				state = stateDateFormat
				continue
			}
			p.segments = append(p.segments, fieldSegment{code: code})
			state = stateLiteral

		case stateDateFormat:
			if c == ']' {
				p.segments = append(p.segments, dateSegment{
					layout: property.TranslateDateFormat(buf.String()),
				})
				buf.Reset()
				state = stateLiteral
				continue
			}
			buf.WriteByte(c)
		}
	}

	// Flush whatever the final state accumulated. A trailing partial code
	// becomes a field lookup that resolves to "", and an unterminated date
	// format keeps its captured text.
	switch state {
	case stateLiteral:
		if buf.Len() > 0 {
			p.segments = append(p.segments, literalSegment{text: buf.String()})
		}
	case stateCode:
		p.segments = append(p.segments, fieldSegment{code: buf.String()})
	case stateDateFormat:
		p.segments = append(p.segments, dateSegment{
			layout: property.TranslateDateFormat(buf.String()),
		})
	}

	return p
}

// Render evaluates the pattern against one record. It is deterministic for
// a given record and safe to call concurrently across records.
func (p *Pattern) Render(rec *record.MetadataRecord) string {
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteString(s.render(rec))
	}
	return b.String()
}

// Source returns the original template text.
func (p *Pattern) Source() string { return p.source }

// UnknownCodes reports, in source order, the field codes the pattern
// references that the registry does not define. Diagnostics only; rendering
// treats unknown codes as empty.
func (p *Pattern) UnknownCodes(reg *property.Registry) []string {
	var unknown []string
	seen := map[string]bool{}
	for _, s := range p.segments {
		fs, ok := s.(fieldSegment)
		if !ok || seen[fs.code] {
			continue
		}
		seen[fs.code] = true
		if _, ok := reg.ByCode(fs.code); !ok {
			unknown = append(unknown, fs.code)
		}
	}
	return unknown
}
