// Package host binds a swkit.Worker to a local runtime. It is the thin
// adapter layer: the worker's handler methods hold all the logic, and the
// runtime only delivers events and keeps them alive until their handler
// resolves.
package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"

	"github.com/unkn0wn-root/swkit"
)

var ErrClosed = errors.New("host: runtime closed")

type Options struct {
	// PeriodicSyncSpec is a cron spec (e.g. "@every 15m") firing periodic
	// sync with swkit.TagFetchNotifications. Empty disables scheduling.
	PeriodicSyncSpec string

	Logger swkit.Logger // if nil, NopLogger is used
}

// Runtime delivers events to a worker. Every dispatched event is tracked
// until its handler returns, so Shutdown can wait for outstanding work
// instead of abandoning it - the same guarantee a browser gives a service
// worker that registered its pending operations.
type Runtime struct {
	w    *swkit.Worker
	log  swkit.Logger
	cron *cron.Cron

	wg     sync.WaitGroup
	closed atomic.Bool
}

func New(w *swkit.Worker, opts Options) (*Runtime, error) {
	if w == nil {
		return nil, errors.New("host: nil worker")
	}
	r := &Runtime{w: w, log: opts.Logger}
	if r.log == nil {
		r.log = swkit.NopLogger{}
	}

	if opts.PeriodicSyncSpec != "" {
		r.cron = cron.New()
		_, err := r.cron.AddFunc(opts.PeriodicSyncSpec, func() {
			r.PeriodicSync(swkit.TagFetchNotifications)
		})
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Start installs and activates the worker, then begins periodic-sync
// scheduling. Install failure leaves the previous version (if any) in
// charge; the error is returned and nothing is scheduled.
func (r *Runtime) Start(ctx context.Context) error {
	if err := r.w.HandleInstall(ctx); err != nil {
		return err
	}
	if err := r.w.HandleActivate(ctx); err != nil {
		return err
	}
	if r.cron != nil {
		r.cron.Start()
	}
	r.log.Info("worker activated", swkit.Fields{"version": r.w.Version()})
	return nil
}

// dispatch runs fn on its own goroutine, tracked for Shutdown.
func (r *Runtime) dispatch(kind string, fn func(context.Context) error) {
	if r.closed.Load() {
		r.log.Warn("event dropped after shutdown", swkit.Fields{"kind": kind})
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := fn(context.Background()); err != nil {
			r.log.Error("event handler failed", swkit.Fields{"kind": kind, "err": err})
		}
	}()
}

// Push delivers a push event's raw payload bytes.
func (r *Runtime) Push(raw []byte) {
	r.dispatch("push", func(ctx context.Context) error {
		return r.w.HandlePush(ctx, raw)
	})
}

// NotificationClick delivers a notification activation.
func (r *Runtime) NotificationClick(n swkit.Notification) {
	r.dispatch("notificationclick", func(ctx context.Context) error {
		return r.w.HandleNotificationClick(ctx, n)
	})
}

// Sync delivers a deferred-sync trigger.
func (r *Runtime) Sync(tag string) {
	r.dispatch("sync", func(ctx context.Context) error {
		return r.w.HandleSync(ctx, tag)
	})
}

// PeriodicSync delivers a periodic-sync trigger.
func (r *Runtime) PeriodicSync(tag string) {
	r.dispatch("periodicsync", func(ctx context.Context) error {
		return r.w.HandlePeriodicSync(ctx, tag)
	})
}

// Shutdown stops scheduling, refuses new events and waits for in-flight
// handlers until ctx expires.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if r.cron != nil {
		r.cron.Stop()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
