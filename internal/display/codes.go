package display

import (
	"fmt"
	"strings"

	"github.com/DeepSkyWorkflows/CameraTouch/internal/property"
)

// RenderCodeTable returns the property-code reference printed by
// --list-codes: one row per code, sorted by code, with the tag name it maps
// to and whether it may appear in templates.
func RenderCodeTable(reg *property.Registry) string {
	var b strings.Builder
	b.WriteString("Template codes (use as $xx, date codes take an optional [format]):\n\n")
	fmt.Fprintf(&b, "  %-4s %-30s %s\n", "Code", "Property", "Notes")
	for _, code := range reg.Codes() {
		desc, _ := reg.ByCode(code)
		note := ""
		if code == property.CodeDate {
			note = "accepts [format], e.g. $dt[yyyy-MM-dd]"
		}
		if reg.IsExcluded(code) {
			if note != "" {
				note += "; "
			}
			note += "omitted from statistics"
		}
		fmt.Fprintf(&b, "  $%-3s %-30s %s\n", code, desc.Name, note)
	}
	return b.String()
}
