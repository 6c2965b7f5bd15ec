package property

import (
	"strconv"
	"time"
)

// Kind identifies which member of the value union is populated.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindLong
	KindReal
	KindTimestamp
	KindDuration
)

// String returns a short label for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindReal:
		return "real"
	case KindTimestamp:
		return "timestamp"
	case KindDuration:
		return "duration"
	}
	return "unknown"
}

// Value is a closed tagged union over the kinds a metadata tag can carry.
// Only the field matching Kind() is meaningful; the zero Value is empty text.
type Value struct {
	kind Kind
	text string
	num  int64
	real float64
	ts   time.Time
	dur  time.Duration
}

func Text(s string) Value          { return Value{kind: KindText, text: s} }
func Int(n int) Value              { return Value{kind: KindInt, num: int64(n)} }
func Long(n int64) Value           { return Value{kind: KindLong, num: n} }
func Real(f float64) Value         { return Value{kind: KindReal, real: f} }
func Timestamp(t time.Time) Value  { return Value{kind: KindTimestamp, ts: t} }
func Duration(d time.Duration) Value { return Value{kind: KindDuration, dur: d} }

func (v Value) Kind() Kind { return v.kind }

// Text returns the text member (empty for non-text kinds).
func (v Value) Text() string { return v.text }

// Int returns the integer member, shared by int and long kinds.
func (v Value) Int() int64 { return v.num }

// Real returns the real member.
func (v Value) Real() float64 { return v.real }

// Time returns the timestamp member.
func (v Value) Time() time.Time { return v.ts }

// Dur returns the duration member.
func (v Value) Dur() time.Duration { return v.dur }

// Orderable reports whether values of this kind have a meaningful ordering.
// Text does not: duplicate text properties keep the first occurrence.
func (v Value) Orderable() bool { return v.kind != KindText }

// Compare orders v against other. The second return is false when the two
// values are of different kinds or the kind has no ordering; callers must
// treat that as "not comparable" rather than equal.
func (v Value) Compare(other Value) (int, bool) {
	if v.kind != other.kind || !v.Orderable() {
		return 0, false
	}
	switch v.kind {
	case KindInt, KindLong:
		return cmpInt64(v.num, other.num), true
	case KindReal:
		switch {
		case v.real < other.real:
			return -1, true
		case v.real > other.real:
			return 1, true
		}
		return 0, true
	case KindTimestamp:
		return v.ts.Compare(other.ts), true
	case KindDuration:
		return cmpInt64(int64(v.dur), int64(other.dur)), true
	}
	return 0, false
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String renders a default textual form, used for diagnostics only.
// Renders intended for filenames go through the descriptor's Render.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt, KindLong:
		return strconv.FormatInt(v.num, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'f', -1, 64)
	case KindTimestamp:
		return v.ts.Format("2006-01-02 15:04:05")
	case KindDuration:
		return v.dur.String()
	}
	return ""
}
