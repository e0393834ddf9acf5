package command

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultBackgroundKeyword starts a background colour command.
const DefaultBackgroundKeyword = "background"

// Line accumulates characters typed on the root window until Enter.
type Line struct {
	buf   []rune
	limit int
}

// NewLine creates a line buffer holding at most limit runes. A limit of
// zero or less means 256.
func NewLine(limit int) *Line {
	if limit <= 0 {
		limit = 256
	}
	return &Line{limit: limit}
}

// Insert appends r; input past the limit is dropped.
func (l *Line) Insert(r rune) {
	if len(l.buf) >= l.limit {
		return
	}
	l.buf = append(l.buf, r)
}

// Backspace removes the last rune, if any.
func (l *Line) Backspace() {
	if len(l.buf) > 0 {
		l.buf = l.buf[:len(l.buf)-1]
	}
}

// Reset discards the buffered text.
func (l *Line) Reset() {
	l.buf = l.buf[:0]
}

// String returns the buffered text.
func (l *Line) String() string {
	return string(l.buf)
}

// Submit returns the buffered text and clears the buffer.
func (l *Line) Submit() string {
	s := string(l.buf)
	l.Reset()
	return s
}

// ParseBackground extracts the hex token of a "<keyword> ... #RRGGBB" line.
// The token is the text after the first '#' up to the next whitespace; it
// is not validated.
func ParseBackground(line, keyword string) (string, bool) {
	if keyword == "" {
		keyword = DefaultBackgroundKeyword
	}
	if !strings.HasPrefix(line, keyword) {
		return "", false
	}

	idx := strings.IndexByte(line, '#')
	if idx < 0 {
		return "", false
	}

	hex := line[idx+1:]
	if end := strings.IndexFunc(hex, unicode.IsSpace); end >= 0 {
		hex = hex[:end]
	}
	return hex, true
}

// ParseColor parses a base-16 colour value. Anything that does not parse
// as a 32-bit hex number yields 0.
func ParseColor(hex string) uint32 {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
