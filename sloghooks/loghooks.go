// Package sloghooks reports paramwire hook events through log/slog, with
// sampling for the high-volume events.
package sloghooks

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/paramwire"
	"github.com/unkn0wn-root/paramwire/wire"
)

type Options struct {
	// Sampling: log every Nth event; 0/1 = log all.
	EncodedEvery      uint64
	DecodeFailedEvery uint64
	// LogEncoded enables per-message encode events (Debug). Off by default.
	LogEncoded bool
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	encodedCtr      atomic.Uint64
	decodeFailedCtr atomic.Uint64
}

var _ paramwire.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) MessageEncoded(name string, size int) {
	if h.l == nil || !h.opts.LogEncoded || !sample(h.opts.EncodedEvery, &h.encodedCtr) {
		return
	}
	h.l.Debug("paramwire.message_encoded",
		"type", name,
		"size", size)
}

func (h *Hooks) DecodeFailed(name string, kind wire.Kind, size int) {
	if h.l == nil || !sample(h.opts.DecodeFailedEvery, &h.decodeFailedCtr) {
		return
	}
	// a malformed message means a misbehaving peer; truncation is usually transport
	level := slog.LevelInfo
	if kind == wire.KindMalformed {
		level = slog.LevelWarn
	}
	h.l.Log(context.Background(), level, "paramwire.decode_failed",
		"type", name,
		"kind", kind.String(),
		"size", size)
}

func (h *Hooks) MessageOversized(name, op string, size, limit int) {
	if h.l == nil {
		return
	}
	h.l.Warn("paramwire.message_oversized",
		"type", name,
		"op", op,
		"size", size,
		"limit", limit)
}

func (h *Hooks) DescribeTruncated(name string, limit int) {
	if h.l == nil {
		return
	}
	h.l.Debug("paramwire.describe_truncated",
		"type", name,
		"limit", limit)
}
