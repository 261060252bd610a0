package swkit

import (
	"errors"
	"fmt"
)

// ErrNoWindowClient is returned by HandleNotificationClick when no
// WindowClient capability was configured.
var ErrNoWindowClient = errors.New("swkit: no window client configured")

// InstallError reports the manifest asset that sank an install attempt.
// FetchErr is set when the network fetch failed, StoreErr when the asset
// could not be written to the cache.
type InstallError struct {
	Asset    string
	FetchErr error
	StoreErr error
}

func (e *InstallError) Error() string {
	switch {
	case e.FetchErr != nil && e.StoreErr != nil:
		return fmt.Sprintf("install asset %q: fetch and store failed: fetch=%v; store=%v",
			e.Asset, e.FetchErr, e.StoreErr)
	case e.FetchErr != nil:
		return fmt.Sprintf("install asset %q: fetch failed: %v", e.Asset, e.FetchErr)
	case e.StoreErr != nil:
		return fmt.Sprintf("install asset %q: store failed: %v", e.Asset, e.StoreErr)
	default:
		return fmt.Sprintf("install asset %q: unknown error", e.Asset)
	}
}

func (e *InstallError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.FetchErr != nil {
		errs = append(errs, e.FetchErr)
	}
	if e.StoreErr != nil {
		errs = append(errs, e.StoreErr)
	}
	return errs
}

// TransitionError reports an event arriving while the worker is in a state
// that cannot accept it (e.g. activate before install).
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("swkit: invalid state transition %s -> %s", e.From, e.To)
}
