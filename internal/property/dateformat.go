package property

import "strings"

// TranslateDateFormat converts a template date sub-format written with
// yyyy-MM-dd style tokens into a Go reference-time layout. The sub-format is
// captured verbatim by the template compiler; translation happens once, at
// compile time, never per record.
//
// Unrecognized letters and all punctuation pass through as literals.
func TranslateDateFormat(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); {
		c := format[i]
		if !isASCIILetter(c) {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		for j < len(format) && format[j] == c {
			j++
		}
		b.WriteString(layoutToken(c, j-i))
		i = j
	}
	return b.String()
}

func layoutToken(c byte, n int) string {
	switch c {
	case 'y':
		if n >= 3 {
			return "2006"
		}
		return "06"
	case 'M':
		switch {
		case n >= 4:
			return "January"
		case n == 3:
			return "Jan"
		case n == 2:
			return "01"
		}
		return "1"
	case 'd':
		switch {
		case n >= 4:
			return "Monday"
		case n == 3:
			return "Mon"
		case n == 2:
			return "02"
		}
		return "2"
	case 'H':
		return "15"
	case 'h':
		if n >= 2 {
			return "03"
		}
		return "3"
	case 'm':
		if n >= 2 {
			return "04"
		}
		return "4"
	case 's':
		if n >= 2 {
			return "05"
		}
		return "5"
	case 't':
		return "PM"
	case 'f':
		return strings.Repeat("0", n)
	}
	return strings.Repeat(string(c), n)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
