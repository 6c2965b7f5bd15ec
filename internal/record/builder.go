package record

import (
	"strconv"
	"strings"
	"time"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
)

// FileDefaults carries the filesystem-derived values injected for codes the
// metadata tags did not supply: a timestamp, the file's extension (without
// dot), the base name (without extension), and the byte length.
type FileDefaults struct {
	Timestamp time.Time
	Extension string
	BaseName  string
	Size      int64
}

// Builder turns raw tag groups into metadata records using the descriptor
// catalog. It holds no per-file state; one Builder serves a whole run.
type Builder struct {
	reg *property.Registry
}

// NewBuilder creates a builder over the given registry.
func NewBuilder(reg *property.Registry) *Builder {
	return &Builder{reg: reg}
}

// Build produces the record for one source file. Groups whose name contains
// "thumbnail" are skipped entirely; tags whose name is not in the registry
// are dropped; a tag whose value fails to parse drops only that property.
// A record is valid even when zero tags are recognized — defaults guarantee
// a minimum property set.
func (b *Builder) Build(sourcePath string, groups []TagGroup, defaults FileDefaults) *MetadataRecord {
	rec := &MetadataRecord{
		SourcePath: sourcePath,
		props:      make(map[string]PropertyValue),
	}

	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.Name), "thumbnail") {
			continue
		}
		for _, tag := range g.Tags {
			d, ok := b.reg.ByName(tag.Name)
			if !ok {
				continue
			}
			typed, err := d.Parse(tag.Value)
			if err != nil {
				continue
			}
			rec.attach(PropertyValue{
				Code:     d.Code,
				Name:     d.Name,
				Raw:      tag.Value,
				Typed:    typed,
				FileSafe: property.FileSafe(d.Render(typed)),
			})
		}
	}

	b.injectDefaults(rec, defaults)
	return rec
}

// injectDefaults fills the default codes from filesystem metadata, but only
// where tag scanning produced nothing for the code.
func (b *Builder) injectDefaults(rec *MetadataRecord, d FileDefaults) {
	ext := strings.TrimPrefix(strings.ToLower(d.Extension), ".")
	short, long := detectType(ext)

	b.injectRaw(rec, property.CodeDate, d.Timestamp.Format("2006:01:02 15:04:05"))
	b.injectRaw(rec, property.CodeType, short)
	b.injectRaw(rec, property.CodeTypeLongName, long)
	b.injectRaw(rec, property.CodeExtension, ext)
	b.injectRaw(rec, property.CodeFileName, d.BaseName)
	b.injectRaw(rec, property.CodeFileSize, strconv.FormatInt(d.Size, 10))
}

func (b *Builder) injectRaw(rec *MetadataRecord, code, raw string) {
	if _, present := rec.Lookup(code); present {
		return
	}
	d, ok := b.reg.ByCode(code)
	if !ok {
		return
	}
	typed, err := d.Parse(raw)
	if err != nil {
		return
	}
	rec.attach(PropertyValue{
		Code:     code,
		Name:     d.Name,
		Raw:      raw,
		Typed:    typed,
		FileSafe: property.FileSafe(d.Render(typed)),
	})
}

// knownTypes maps common photo extensions to detected-type names.
var knownTypes = map[string][2]string{
	"jpg":  {"JPEG", "Joint Photographic Experts Group"},
	"jpeg": {"JPEG", "Joint Photographic Experts Group"},
	"png":  {"PNG", "Portable Network Graphics"},
	"tif":  {"TIFF", "Tagged Image File Format"},
	"tiff": {"TIFF", "Tagged Image File Format"},
	"gif":  {"GIF", "Graphics Interchange Format"},
	"heic": {"HEIC", "High Efficiency Image Container"},
	"dng":  {"DNG", "Digital Negative"},
	"arw":  {"ARW", "Sony Alpha Raw"},
	"cr2":  {"CR2", "Canon Raw 2"},
	"nef":  {"NEF", "Nikon Electronic Format"},
	"raf":  {"RAF", "Fujifilm Raw"},
	"webp": {"WebP", "Web Picture"},
	"bmp":  {"BMP", "Bitmap"},
}

// detectType resolves an extension into (short, long) type names, falling
// back to the upper-cased extension for both when unknown.
func detectType(ext string) (string, string) {
	if t, ok := knownTypes[ext]; ok {
		return t[0], t[1]
	}
	u := strings.ToUpper(ext)
	return u, u
}
