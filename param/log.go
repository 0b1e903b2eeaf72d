package param

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultLogLimit caps describe output when no explicit limit is given.
const DefaultLogLimit = 4096

const ellipsis = "..."

// LogBuffer is the diagnostics sink traits describe values into. Output beyond
// the limit is dropped and the rendering ends with "...".
type LogBuffer struct {
	b         strings.Builder
	limit     int
	truncated bool
}

func NewLogBuffer(limit int) *LogBuffer {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	return &LogBuffer{limit: limit}
}

// WriteString appends s, cutting on a rune boundary once the limit is reached.
func (l *LogBuffer) WriteString(s string) {
	if l.truncated {
		return
	}
	room := l.limit - l.b.Len()
	if len(s) <= room {
		l.b.WriteString(s)
		return
	}
	cut := room
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	l.b.WriteString(s[:cut])
	l.truncated = true
}

func (l *LogBuffer) Printf(format string, args ...any) {
	if l.truncated {
		return
	}
	l.WriteString(fmt.Sprintf(format, args...))
}

// Truncated reports whether output was dropped.
func (l *LogBuffer) Truncated() bool { return l.truncated }

func (l *LogBuffer) Len() int { return l.b.Len() }

func (l *LogBuffer) String() string {
	if l.truncated {
		return l.b.String() + ellipsis
	}
	return l.b.String()
}
