// Package asynchook decouples hook consumers from the worker's hot paths:
// events are queued and replayed on background goroutines, and dropped
// when the queue is full rather than blocking an event handler.
//
// usage:
//
//	raw := loghooks.New(slog.Default(), loghooks.Options{SelfHealEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	w, _ := swkit.New(swkit.Options{
//	    Version:  "marketplace-v2",
//	    Provider: provider,
//	    Fetcher:  fetcher,
//	    Renderer: renderer,
//	    Hooks:    hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/swkit"
)

type Hooks struct {
	inner swkit.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ swkit.Hooks = (*Hooks)(nil)

func New(inner swkit.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) EntrySelfHeal(k, r string)      { h.try(func() { h.inner.EntrySelfHeal(k, r) }) }
func (h *Hooks) GenerationPurged(name string)   { h.try(func() { h.inner.GenerationPurged(name) }) }
func (h *Hooks) PayloadDecodeError(err error)   { h.try(func() { h.inner.PayloadDecodeError(err) }) }
func (h *Hooks) ProviderSetRejected(key string) { h.try(func() { h.inner.ProviderSetRejected(key) }) }
func (h *Hooks) AssetFetchFailed(path string, err error) {
	h.try(func() { h.inner.AssetFetchFailed(path, err) })
}
func (h *Hooks) SyncFailed(tag string, err error) {
	h.try(func() { h.inner.SyncFailed(tag, err) })
}
func (h *Hooks) WindowOpenFailed(url string, err error) {
	h.try(func() { h.inner.WindowOpenFailed(url, err) })
}
