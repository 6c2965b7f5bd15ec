package property

import "sort"

// Well-known codes referenced outside the catalog.
const (
	CodeDate         = "dt"
	CodeExtension    = "ex"
	CodeFileName     = "fi"
	CodeFileSize     = "sz"
	CodeType         = "ty"
	CodeTypeLongName = "tl"
)

// Registry is the immutable catalog of property descriptors, keyed by both
// code and reported tag name. Codes in the exclusion set are never counted
// by the statistics aggregator.
type Registry struct {
	byCode   map[string]*Descriptor
	byName   map[string]*Descriptor
	excluded map[string]bool
}

// NewRegistry builds the standard descriptor catalog. Call once at startup.
func NewRegistry() *Registry {
	r := &Registry{
		byCode: make(map[string]*Descriptor),
		byName: make(map[string]*Descriptor),
		excluded: map[string]bool{
			CodeDate:     true,
			CodeFileName: true,
			CodeFileSize: true,
		},
	}

	for _, d := range standardDescriptors() {
		r.register(d)
	}
	return r
}

func (r *Registry) register(d Descriptor) {
	copy := d
	r.byCode[d.Code] = &copy
	r.byName[d.Name] = &copy
}

// ByCode looks a descriptor up by its two-character code.
func (r *Registry) ByCode(code string) (*Descriptor, bool) {
	d, ok := r.byCode[code]
	return d, ok
}

// ByName looks a descriptor up by its reported tag name.
func (r *Registry) ByName(name string) (*Descriptor, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// IsExcluded reports whether a code is excluded from statistics.
func (r *Registry) IsExcluded(code string) bool { return r.excluded[code] }

// Codes returns all registered codes in ascending order, for help and
// report output.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.byCode))
	for c := range r.byCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// standardDescriptors enumerates the property-code table. The tag names form
// the wire contract with the metadata readers in internal/extract.
func standardDescriptors() []Descriptor {
	return []Descriptor{
		{Code: "cf", Name: "CFA Pattern", Parse: parseCFA, Render: renderText},
		{Code: "cm", Name: "Compression", Parse: parseText, Render: renderText},
		{Code: CodeDate, Name: "Date/Time", Parse: parseTimestamp, Render: renderTimestamp},
		{Code: "et", Name: "Exposure Time", Parse: parseExposure, Render: renderExposure},
		{Code: CodeExtension, Name: "Extension", Parse: parseText, Render: renderText},
		{Code: CodeFileName, Name: "File Name", Parse: parseText, Render: renderText},
		{Code: "fl", Name: "Focal Length", Parse: parseFirstTokenInt, Render: renderFocalLength},
		{Code: "fn", Name: "F-Number", Parse: parseFNumber, Render: renderFNumber},
		{Code: "ih", Name: "Image Height", Parse: parseFirstTokenInt, Render: renderInt},
		{Code: "is", Name: "ISO Speed Ratings", Parse: parseFirstTokenInt, Render: renderISO},
		{Code: "iw", Name: "Image Width", Parse: parseFirstTokenInt, Render: renderInt},
		{Code: "lm", Name: "Lens Model", Parse: parseText, Render: renderText},
		{Code: "ls", Name: "Lens Specification", Parse: parseText, Render: renderText},
		{Code: "md", Name: "Model", Parse: parseText, Render: renderText},
		{Code: "mk", Name: "Make", Parse: parseText, Render: renderText},
		{Code: "or", Name: "Orientation", Parse: parseText, Render: renderText},
		{Code: "pi", Name: "Photometric Interpretation", Parse: parseText, Render: renderText},
		{Code: "ru", Name: "Resolution Unit", Parse: parseText, Render: renderText},
		{Code: "rx", Name: "X Resolution", Parse: parseFirstTokenInt, Render: renderInt},
		{Code: "ry", Name: "Y Resolution", Parse: parseFirstTokenInt, Render: renderInt},
		{Code: "sw", Name: "Software", Parse: parseText, Render: renderText},
		{Code: CodeFileSize, Name: "File Size", Parse: parseFirstTokenLong, Render: renderInt},
		{Code: CodeTypeLongName, Name: "Detected File Type Long Name", Parse: parseText, Render: renderText},
		{Code: CodeType, Name: "Detected File Type Name", Parse: parseText, Render: renderText},
	}
}
