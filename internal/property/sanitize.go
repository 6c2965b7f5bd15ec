package property

import (
	"strings"
	"unicode"
)

// FileSafe replaces characters that are problematic in file or directory
// names. Letters, digits, spaces, hyphens, underscores, and dots are kept;
// everything else becomes an underscore. Dots stay because several renders
// legitimately carry them (f2.8, 0.004s).
func FileSafe(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) ||
			r == ' ' || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
