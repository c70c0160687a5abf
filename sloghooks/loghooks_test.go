package sloghooks

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
)

func newBufLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestReadFaultSampling(t *testing.T) {
	l, buf := newBufLogger()
	h := New(l, Options{ReadFaultEvery: 3})
	for i := 0; i < 9; i++ {
		h.CacheReadFault("region:1", errors.New("down"))
	}
	if n := strings.Count(buf.String(), "asidecache.cache_read_fault"); n != 3 {
		t.Fatalf("logged %d read faults, want 3", n)
	}
}

func TestKeysRedacted(t *testing.T) {
	l, buf := newBufLogger()
	h := New(l, Options{})
	h.SourceFault("region:42", errors.New("down"))
	if strings.Contains(buf.String(), "region:42") {
		t.Fatalf("raw key leaked: %s", buf.String())
	}

	buf.Reset()
	h = New(l, Options{Redact: func(k string) string { return "K" }})
	h.EmptyResultSkipped("region:42")
	if !strings.Contains(buf.String(), "key=K") {
		t.Fatalf("custom redactor not used: %s", buf.String())
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	h := New(nil, Options{})
	h.CacheReadFault("k", nil)
	h.CacheDecodeFault("k", "decode", nil)
	h.CacheWriteFault("k", "provider", nil)
	h.ProviderSetRejected("k")
	h.EmptyResultSkipped("k")
	h.SourceFault("k", nil)
}

func TestSample(t *testing.T) {
	var ctr atomic.Uint64
	if !sample(0, &ctr) || !sample(1, &ctr) {
		t.Fatalf("n<=1 must always sample")
	}
}
