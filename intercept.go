package swkit

import "context"

// Fetcher is the live network capability. The lifecycle manager uses it to
// precache manifest assets and the fetch handler uses it for cache misses.
type Fetcher interface {
	Fetch(ctx context.Context, id Identity) (Response, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id Identity) (Response, error)

func (f FetcherFunc) Fetch(ctx context.Context, id Identity) (Response, error) {
	return f(ctx, id)
}

// HandleFetch resolves an intercepted request: cache-first, network
// fallback.
//
// A hit is served as stored, with no freshness check - staleness is only
// corrected by a version bump, never per-request revalidation. A miss goes
// to the network exactly once and the result is returned as-is; it is NOT
// written back to the cache (only the install manifest populates it).
// Network failures propagate to the caller unchanged; cache read errors
// degrade to a miss so the request is never left unresolved by the cache
// path.
func (w *Worker) HandleFetch(ctx context.Context, id Identity) (Response, error) {
	gen := &generation{s: w.store, name: w.version}

	resp, ok, err := gen.match(ctx, id)
	if err != nil {
		w.log.Warn("cache match error, falling through to network", Fields{"url": id.URL, "err": err})
	}
	if ok {
		w.log.Debug("cache hit", Fields{"url": id.URL, "generation": w.version})
		return resp, nil
	}

	return w.fetcher.Fetch(ctx, id)
}
