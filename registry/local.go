package registry

import (
	"context"
	"sync"
)

// Local keeps generation names in-process (default). Suitable when the
// provider is in-memory too: both vanish together on restart, so the set
// and the store cannot drift.
type Local struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

var _ Registry = (*Local)(nil)

func NewLocal() *Local {
	return &Local{names: make(map[string]struct{})}
}

func (l *Local) Add(_ context.Context, name string) error {
	l.mu.Lock()
	l.names[name] = struct{}{}
	l.mu.Unlock()
	return nil
}

func (l *Local) Names(_ context.Context) ([]string, error) {
	l.mu.RLock()
	out := make([]string, 0, len(l.names))
	for n := range l.names {
		out = append(out, n)
	}
	l.mu.RUnlock()
	return out, nil
}

func (l *Local) Remove(_ context.Context, name string) error {
	l.mu.Lock()
	delete(l.names, name)
	l.mu.Unlock()
	return nil
}

func (l *Local) Close(context.Context) error { return nil }
