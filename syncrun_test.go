package swkit

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingBackend struct {
	mu       sync.Mutex
	flushes  int
	flushErr error
	polls    int
	payloads [][]byte
	pollErr  error
}

var _ Backend = (*recordingBackend)(nil)

func (b *recordingBackend) FlushQueued(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushes++
	return b.flushErr
}

func (b *recordingBackend) Poll(context.Context) ([][]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.polls++
	if b.pollErr != nil {
		return nil, b.pollErr
	}
	return b.payloads, nil
}

func TestSyncTagGating(t *testing.T) {
	ctx := context.Background()
	be := &recordingBackend{}
	rig := newTestWorker(t, "v1", func(o *Options) { o.Sync = be })

	for _, tag := range []string{"", "unknown", TagFetchNotifications} {
		if err := rig.w.HandleSync(ctx, tag); err != nil {
			t.Fatalf("HandleSync(%q): %v", tag, err)
		}
	}
	if be.flushes != 0 {
		t.Fatalf("flushes=%d want 0 for foreign tags", be.flushes)
	}

	if err := rig.w.HandleSync(ctx, TagSyncNotifications); err != nil {
		t.Fatalf("HandleSync: %v", err)
	}
	if be.flushes != 1 {
		t.Fatalf("flushes=%d want 1", be.flushes)
	}
}

func TestSyncFailureSettlesWithError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("server 503")
	be := &recordingBackend{flushErr: boom}
	rig := newTestWorker(t, "v1", func(o *Options) { o.Sync = be })

	if err := rig.w.HandleSync(ctx, TagSyncNotifications); !errors.Is(err, boom) {
		t.Fatalf("err=%v want backend error", err)
	}
	// no local retry happened
	if be.flushes != 1 {
		t.Fatalf("flushes=%d want 1", be.flushes)
	}
}

func TestPeriodicSyncTagGating(t *testing.T) {
	ctx := context.Background()
	be := &recordingBackend{}
	rig := newTestWorker(t, "v1", func(o *Options) { o.Sync = be })

	for _, tag := range []string{"", "unknown", TagSyncNotifications} {
		if err := rig.w.HandlePeriodicSync(ctx, tag); err != nil {
			t.Fatalf("HandlePeriodicSync(%q): %v", tag, err)
		}
	}
	if be.polls != 0 {
		t.Fatalf("polls=%d want 0 for foreign tags", be.polls)
	}
}

// TestPeriodicSyncRendersPolled: polled payloads go through the normal
// push path; same-tag payloads coalesce, so a re-run after a partial
// failure cannot stack duplicates.
func TestPeriodicSyncRendersPolled(t *testing.T) {
	ctx := context.Background()
	be := &recordingBackend{payloads: [][]byte{
		[]byte(`{"tag":"messages","body":"1 new message"}`),
		[]byte(`{"tag":"favorites","body":"Your listing was favorited"}`),
	}}
	rig := newTestWorker(t, "v1", func(o *Options) { o.Sync = be })

	if err := rig.w.HandlePeriodicSync(ctx, TagFetchNotifications); err != nil {
		t.Fatalf("HandlePeriodicSync: %v", err)
	}
	if rig.surface.visibleCount() != 2 {
		t.Fatalf("visible=%d want 2", rig.surface.visibleCount())
	}

	// idempotent re-run: same payloads, still two visible notifications
	if err := rig.w.HandlePeriodicSync(ctx, TagFetchNotifications); err != nil {
		t.Fatal(err)
	}
	if rig.surface.visibleCount() != 2 {
		t.Fatalf("visible=%d after re-run, want 2", rig.surface.visibleCount())
	}
}

func TestPeriodicSyncPollErrorSettlesWithError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("poll timeout")
	be := &recordingBackend{pollErr: boom}
	rig := newTestWorker(t, "v1", func(o *Options) { o.Sync = be })

	if err := rig.w.HandlePeriodicSync(ctx, TagFetchNotifications); !errors.Is(err, boom) {
		t.Fatalf("err=%v want poll error", err)
	}
	if rig.surface.visibleCount() != 0 {
		t.Fatalf("nothing should render on poll failure")
	}
}

// The default backend is a no-op: both handlers settle cleanly with no
// server wired.
func TestSyncDefaultBackend(t *testing.T) {
	ctx := context.Background()
	rig := newTestWorker(t, "v1", nil)

	if err := rig.w.HandleSync(ctx, TagSyncNotifications); err != nil {
		t.Fatalf("HandleSync: %v", err)
	}
	if err := rig.w.HandlePeriodicSync(ctx, TagFetchNotifications); err != nil {
		t.Fatalf("HandlePeriodicSync: %v", err)
	}
}
