package extract

import (
	"strconv"
	"strings"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/record"
)

// tagAliases maps the tag keys emitted by the concrete readers onto the
// registry's canonical tag names. Multiple source keys may feed one name;
// the record builder's duplicate resolution picks the survivor.
var tagAliases = map[string]string{
	// exiftool keys
	"Make":                      "Make",
	"Model":                     "Model",
	"Software":                  "Software",
	"Orientation":               "Orientation",
	"Compression":               "Compression",
	"ISO":                       "ISO Speed Ratings",
	"FNumber":                   "F-Number",
	"FocalLength":               "Focal Length",
	"ExposureTime":              "Exposure Time",
	"DateTimeOriginal":          "Date/Time",
	"CreateDate":                "Date/Time",
	"ImageWidth":                "Image Width",
	"ImageHeight":               "Image Height",
	"ExifImageWidth":            "Image Width",
	"ExifImageHeight":           "Image Height",
	"XResolution":               "X Resolution",
	"YResolution":               "Y Resolution",
	"ResolutionUnit":            "Resolution Unit",
	"PhotometricInterpretation": "Photometric Interpretation",
	"CFAPattern":                "CFA Pattern",
	"LensModel":                 "Lens Model",
	"LensInfo":                  "Lens Specification",
	"FileTypeExtension":         "Extension",
	"FileType":                  "Detected File Type Name",
	"FileTypeLongName":          "Detected File Type Long Name",

	// goexif keys that differ from the above
	"ISOSpeedRatings":   "ISO Speed Ratings",
	"DateTime":          "Date/Time",
	"PixelXDimension":   "Image Width",
	"PixelYDimension":   "Image Height",
	"ImageLength":       "Image Height",
	"LensSpecification": "Lens Specification",
}

// rationalFields lists tag names whose native EXIF value arrives as a
// num/den rational that must be collapsed to a decimal before parsing.
// Exposure Time is deliberately absent: its fraction is meaningful.
var rationalFields = map[string]bool{
	"F-Number":     true,
	"Focal Length": true,
	"X Resolution": true,
	"Y Resolution": true,
}

// normalizeTag maps a reader-specific key and raw value onto the registry's
// wire contract. Returns false for keys with no registered alias.
func normalizeTag(key, value string) (record.Tag, bool) {
	name, ok := tagAliases[key]
	if !ok {
		return record.Tag{}, false
	}
	if rationalFields[name] {
		value = collapseRational(value)
	}
	return record.Tag{Name: name, Value: value}, true
}

// collapseRational converts "28/10" to "2.8" and "206/1" to "206";
// non-rational input passes through untouched.
func collapseRational(s string) string {
	num, den, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return s
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return s
	}
	return strconv.FormatFloat(n/d, 'f', -1, 64)
}
