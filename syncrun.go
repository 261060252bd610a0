package swkit

import "context"

// Sync trigger tags. Any other tag is ignored by both handlers: the
// handler settles immediately with no work done.
const (
	// TagSyncNotifications gates deferred sync: flush notification state
	// queued while offline.
	TagSyncNotifications = "sync-notifications"
	// TagFetchNotifications gates periodic sync: poll the server for new
	// notifications and render them locally.
	TagFetchNotifications = "fetch-notifications"
)

// Backend is the pluggable server side of sync. Both operations must be
// idempotent: the platform redelivers sync events after failures, and
// re-running after a partial failure must not duplicate visible
// notifications (rendering goes through tag coalescing).
type Backend interface {
	// FlushQueued pushes locally queued notification state to the server
	// and clears it.
	FlushQueued(ctx context.Context) error
	// Poll fetches pending notification payloads, raw in the push delivery
	// shape; each is rendered through the normal push path.
	Poll(ctx context.Context) ([][]byte, error)
}

// NopBackend satisfies the sync completion contract with no server wired.
type NopBackend struct{}

func (NopBackend) FlushQueued(context.Context) error      { return nil }
func (NopBackend) Poll(context.Context) ([][]byte, error) { return nil, nil }

// HandleSync runs one deferred-sync delivery. Failures are logged and
// returned to settle the event; there is no local retry - the platform's
// own backoff governs redelivery.
func (w *Worker) HandleSync(ctx context.Context, tag string) error {
	if tag != TagSyncNotifications {
		w.log.Debug("ignoring sync tag", Fields{"tag": tag})
		return nil
	}
	if err := w.sync.FlushQueued(ctx); err != nil {
		w.hooks.SyncFailed(tag, err)
		w.log.Error("deferred sync failed", Fields{"tag": tag, "err": err})
		return err
	}
	return nil
}

// HandlePeriodicSync runs one periodic-sync delivery: poll, then render
// every returned payload through the push path. Tag coalescing bounds the
// visible notifications if a prior partial run already rendered some.
func (w *Worker) HandlePeriodicSync(ctx context.Context, tag string) error {
	if tag != TagFetchNotifications {
		w.log.Debug("ignoring periodic sync tag", Fields{"tag": tag})
		return nil
	}

	payloads, err := w.sync.Poll(ctx)
	if err != nil {
		w.hooks.SyncFailed(tag, err)
		w.log.Error("periodic sync poll failed", Fields{"tag": tag, "err": err})
		return err
	}
	for _, raw := range payloads {
		if err := w.HandlePush(ctx, raw); err != nil {
			w.hooks.SyncFailed(tag, err)
			w.log.Error("periodic sync render failed", Fields{"tag": tag, "err": err})
			return err
		}
	}
	return nil
}
