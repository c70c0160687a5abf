package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/asidecache"
)

type Options struct {
	// Sampling to avoid floods during a cache outage; 0/1 = log all.
	ReadFaultEvery  uint64
	WriteFaultEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	readFaultCtr  atomic.Uint64
	writeFaultCtr atomic.Uint64
}

var _ asidecache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) CacheReadFault(storageKey string, err error) {
	if h.l == nil || !sample(h.opts.ReadFaultEvery, &h.readFaultCtr) {
		return
	}
	h.l.Warn("asidecache.cache_read_fault",
		"key", h.redact(storageKey),
		"err", err)
}

func (h *Hooks) CacheDecodeFault(storageKey, reason string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("asidecache.cache_decode_fault",
		"key", h.redact(storageKey),
		"reason", reason,
		"err", err)
}

func (h *Hooks) CacheWriteFault(storageKey, reason string, err error) {
	if h.l == nil || !sample(h.opts.WriteFaultEvery, &h.writeFaultCtr) {
		return
	}
	h.l.Warn("asidecache.cache_write_fault",
		"key", h.redact(storageKey),
		"reason", reason,
		"err", err)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Info("asidecache.provider_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) EmptyResultSkipped(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Debug("asidecache.empty_result_skipped",
		"key", h.redact(storageKey))
}

func (h *Hooks) SourceFault(storageKey string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("asidecache.source_fault",
		"key", h.redact(storageKey),
		"err", err)
}
