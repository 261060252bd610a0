package swkit

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// State is the worker lifecycle position. Exactly one worker version is
// ever activated at a time; the hosting environment guarantees mutual
// exclusion between versions, so transitions here only guard against
// events arriving out of order for this instance.
type State int32

const (
	StateParsed State = iota
	StateInstalling
	StateInstalled
	StateActivating
	StateActivated
	StateRedundant // terminal; superseded or failed install
)

func (s State) String() string {
	switch s {
	case StateParsed:
		return "parsed"
	case StateInstalling:
		return "installing"
	case StateInstalled:
		return "installed"
	case StateActivating:
		return "activating"
	case StateActivated:
		return "activated"
	case StateRedundant:
		return "redundant"
	default:
		return "unknown"
	}
}

// HandleInstall opens the current generation and precaches every manifest
// asset. Assets are fetched concurrently and the install fails as a whole
// if any of them fails - no partial cache is committed as current, and the
// half-written generation is torn down so the previous worker version
// keeps serving.
func (w *Worker) HandleInstall(ctx context.Context) error {
	if err := w.transition(StateParsed, StateInstalling); err != nil {
		return err
	}

	gen, err := w.store.open(ctx, w.version)
	if err != nil {
		w.setState(StateRedundant)
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range w.manifest {
		path := path
		g.Go(func() error {
			id := Identity{Method: http.MethodGet, URL: path}
			resp, err := w.fetcher.Fetch(ctx, id)
			if err != nil {
				w.hooks.AssetFetchFailed(path, err)
				return &InstallError{Asset: path, FetchErr: err}
			}
			if err := gen.put(ctx, id, resp); err != nil {
				return &InstallError{Asset: path, StoreErr: err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		w.log.Error("install failed", Fields{"version": w.version, "err": err})
		_ = w.store.delete(ctx, w.version)
		w.setState(StateRedundant)
		return err
	}

	w.log.Info("install complete", Fields{"version": w.version, "assets": len(w.manifest)})
	w.setState(StateInstalled)
	return nil
}

// HandleActivate purges every generation whose name differs from the
// current version tag. It does not complete until all stale generations
// are gone, so after activation at most one generation is reachable.
// A purge failure leaves the worker in the activating state; the event may
// be redelivered to retry.
func (w *Worker) HandleActivate(ctx context.Context) error {
	if err := w.transition(StateInstalled, StateActivating); err != nil {
		// allow retry after a failed purge
		if w.State() != StateActivating {
			return err
		}
	}

	names, err := w.store.names(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == w.version {
			continue
		}
		if err := w.store.delete(ctx, name); err != nil {
			w.log.Error("stale generation purge failed", Fields{"generation": name, "err": err})
			return err
		}
		w.hooks.GenerationPurged(name)
		w.log.Info("purged stale generation", Fields{"generation": name})
	}

	w.setState(StateActivated)
	return nil
}

// Supersede marks this worker redundant, e.g. when a newer version has
// activated. Terminal.
func (w *Worker) Supersede() { w.setState(StateRedundant) }
