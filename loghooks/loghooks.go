// Package loghooks is a swkit.Hooks implementation backed by log/slog.
// Self-heal events fire on the fetch hot path and can be sampled; the
// rest are rare and always logged.
package loghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/swkit"
)

type Options struct {
	// Sampling for self-heal events to avoid floods; 0/1 = log all.
	SelfHealEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix so raw URLs never
	// land in logs.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	selfHealCtr atomic.Uint64
}

var _ swkit.Hooks = (*Hooks)(nil)

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

func (h *Hooks) EntrySelfHeal(storageKey, reason string) {
	if h.l == nil || !sample(h.opts.SelfHealEvery, &h.selfHealCtr) {
		return
	}
	h.l.Debug("swkit.entry_self_heal",
		"key", h.redact(storageKey),
		"reason", reason)
}

func (h *Hooks) AssetFetchFailed(path string, err error) {
	if h.l == nil {
		return
	}
	h.l.Error("swkit.asset_fetch_failed", "path", path, "err", err)
}

func (h *Hooks) GenerationPurged(name string) {
	if h.l == nil {
		return
	}
	h.l.Info("swkit.generation_purged", "generation", name)
}

func (h *Hooks) PayloadDecodeError(err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("swkit.payload_decode_error", "err", err)
}

func (h *Hooks) ProviderSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Debug("swkit.provider_set_rejected", "key", h.redact(storageKey))
}

func (h *Hooks) SyncFailed(tag string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("swkit.sync_failed", "tag", tag, "err", err)
}

func (h *Hooks) WindowOpenFailed(url string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("swkit.window_open_failed", "url", h.redact(url), "err", err)
}
