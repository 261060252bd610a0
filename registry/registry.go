// Package registry tracks the set of cache generation names. Activation
// cleanup must enumerate generations created by earlier worker versions -
// possibly in earlier processes - so the set has to live somewhere the
// byte store alone cannot answer for.
package registry

import "context"

// Registry abstracts where generation names live.
// Use Local (default) for in-process names, or Redis for names that
// survive restarts alongside a durable provider.
type Registry interface {
	// Add records name; adding an existing name is a no-op.
	Add(ctx context.Context, name string) error
	// Names returns every recorded generation name, order unspecified.
	Names(ctx context.Context) ([]string, error)
	// Remove forgets name; removing an unknown name is a no-op.
	Remove(ctx context.Context, name string) error
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
