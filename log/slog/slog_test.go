package slog

import (
	"bytes"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/asidecache"
)

func TestFieldsSortedAndLevelFiltered(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("dropped", asidecache.Fields{"a": 1})
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered: %s", buf.String())
	}
	l.Info("cache filled", asidecache.Fields{"key": "region:1", "count": 2})
	out := buf.String()
	if strings.Index(out, "count=2") > strings.Index(out, "key=region:1") {
		t.Fatalf("fields not sorted: %s", out)
	}
}

func TestNilLogger(t *testing.T) {
	Logger{}.Error("x", nil)
}
