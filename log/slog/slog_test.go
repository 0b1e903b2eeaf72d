//go:build go1.21

package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/paramwire"
)

func TestSlogLoggerRendersSortedAttrs(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("dropped", paramwire.Fields{"a": 1})
	l.Warn("paramwire: message too large", paramwire.Fields{"type": "url", "limit": 8, "size": 9})

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("debug should be filtered: %q", out)
	}
	if !strings.Contains(out, `msg="paramwire: message too large" limit=8 size=9 type=url`) {
		t.Fatalf("unexpected output %q", out)
	}
}
