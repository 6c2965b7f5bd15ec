package property

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseFunc converts a raw reported tag value into a typed value.
type ParseFunc func(raw string) (Value, error)

// RenderFunc converts a typed value into the string form used for names.
// The result is sanitized with [FileSafe] before it reaches a filename.
type RenderFunc func(v Value) string

// Descriptor is the immutable contract for one recognized property: a unique
// two-character code, the tag name reported by the metadata reader, and the
// parse/render pair.
type Descriptor struct {
	Code   string
	Name   string
	Parse  ParseFunc
	Render RenderFunc
}

// --- Parse functions ---

// parseFirstTokenInt extracts the first whitespace-delimited token and
// converts it to an integer ("4000 pixels" → 4000).
func parseFirstTokenInt(raw string) (Value, error) {
	tok := firstToken(raw)
	n, err := strconv.Atoi(tok)
	if err != nil {
		return Value{}, fmt.Errorf("integer property %q: %w", raw, err)
	}
	return Int(n), nil
}

// parseFirstTokenLong is parseFirstTokenInt at 64-bit width, for file sizes.
func parseFirstTokenLong(raw string) (Value, error) {
	tok := firstToken(raw)
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("long property %q: %w", raw, err)
	}
	return Long(n), nil
}

// parseFNumber takes the substring after the first '/' and converts it to a
// real ("f/2.8" → 2.8). Bare reals without the slash are accepted as-is.
func parseFNumber(raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		s = s[idx+1:]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Value{}, fmt.Errorf("f-number %q: %w", raw, err)
	}
	return Real(f), nil
}

// parseExposure reads a sequence of (magnitude, unit) token pairs, where a
// magnitude may be a simple real or a numerator/denominator fraction and the
// unit is matched on its first letter (hour/minute/second, case-insensitive).
// A trailing magnitude with no unit token is read as seconds; exiftool
// reports bare fractions like "1/250" while other readers emit "1/250 sec".
func parseExposure(raw string) (Value, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Value{}, fmt.Errorf("empty exposure duration")
	}

	var totalSec float64
	for i := 0; i < len(tokens); i += 2 {
		mag, err := parseMagnitude(tokens[i])
		if err != nil {
			return Value{}, fmt.Errorf("exposure %q: %w", raw, err)
		}
		unit := "s"
		if i+1 < len(tokens) {
			unit = tokens[i+1]
		}
		switch strings.ToLower(unit[:1]) {
		case "h":
			totalSec += mag * 3600
		case "m":
			totalSec += mag * 60
		case "s":
			totalSec += mag
		default:
			return Value{}, fmt.Errorf("exposure %q: unknown unit %q", raw, unit)
		}
	}
	return Duration(time.Duration(math.Round(totalSec * float64(time.Second)))), nil
}

func parseMagnitude(tok string) (float64, error) {
	if num, den, ok := strings.Cut(tok, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator in %q", tok)
		}
		return n / d, nil
	}
	return strconv.ParseFloat(tok, 64)
}

// parseTimestamp splits on a single space into date and time parts. The date
// separator is ':' if present, '-' otherwise ("2021:10:26 00:00:00").
func parseTimestamp(raw string) (Value, error) {
	datePart, timePart, _ := strings.Cut(strings.TrimSpace(raw), " ")

	sep := "-"
	if strings.Contains(datePart, ":") {
		sep = ":"
	}
	dp := strings.Split(datePart, sep)
	if len(dp) != 3 {
		return Value{}, fmt.Errorf("timestamp %q: want 3 date parts, got %d", raw, len(dp))
	}
	nums := make([]int, 0, 6)
	for _, p := range dp {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Value{}, fmt.Errorf("timestamp %q: %w", raw, err)
		}
		nums = append(nums, n)
	}
	for _, p := range strings.Split(timePart, ":") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return Value{}, fmt.Errorf("timestamp %q: %w", raw, err)
		}
		nums = append(nums, n)
	}
	for len(nums) < 6 {
		nums = append(nums, 0)
	}

	t := time.Date(nums[0], time.Month(nums[1]), nums[2], nums[3], nums[4], nums[5], 0, time.Local)
	return Timestamp(t), nil
}

var cfaWords = strings.NewReplacer("red", "r", "green", "g", "blue", "b")

// parseCFA normalizes a color filter array description to its letter pattern
// ("Red,Green,Green,Blue" → "RGGB").
func parseCFA(raw string) (Value, error) {
	s := strings.ToUpper(cfaWords.Replace(strings.ToLower(raw)))
	var b strings.Builder
	for _, r := range s {
		switch r {
		case 'R', 'G', 'B':
			b.WriteRune(r)
		}
	}
	return Text(b.String()), nil
}

func parseText(raw string) (Value, error) { return Text(raw), nil }

func firstToken(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// --- Render functions ---

func renderText(v Value) string { return v.Text() }

func renderInt(v Value) string { return strconv.FormatInt(v.Int(), 10) }

func renderFNumber(v Value) string { return "f" + formatReal(v.Real()) }

func renderISO(v Value) string { return "iso" + strconv.FormatInt(v.Int(), 10) }

func renderFocalLength(v Value) string { return strconv.FormatInt(v.Int(), 10) + "mm" }

// renderExposure emits an hour component only when the total reaches an hour
// and a minute component only when the remainder reaches a minute; the
// seconds component is always present, even at zero. No separators.
func renderExposure(v Value) string {
	sec := v.Dur().Seconds()
	var b strings.Builder
	if sec >= 3600 {
		h := math.Floor(sec / 3600)
		b.WriteString(strconv.FormatFloat(h, 'f', -1, 64))
		b.WriteByte('h')
		sec -= h * 3600
	}
	if sec >= 60 {
		m := math.Floor(sec / 60)
		b.WriteString(strconv.FormatFloat(m, 'f', -1, 64))
		b.WriteByte('m')
		sec -= m * 60
	}
	b.WriteString(formatReal(sec))
	b.WriteByte('s')
	return b.String()
}

// shortTimestampLayout is the default render when a template carries no
// explicit date sub-format.
const shortTimestampLayout = "01/02/2006 15:04"

func renderTimestamp(v Value) string { return v.Time().Format(shortTimestampLayout) }

func formatReal(f float64) string {
	// Round away float artifacts from fraction arithmetic before printing.
	f = math.Round(f*1e6) / 1e6
	return strconv.FormatFloat(f, 'f', -1, 64)
}
