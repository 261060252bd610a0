package swkit

import "context"

// Notification is the state the router needs from an activated
// notification: its dedup tag and the data bag it was rendered with.
type Notification struct {
	Tag  string
	Data Data
}

// Window is a live reference to an open application window. Transient:
// enumerated fresh on every activation, never cached.
type Window interface {
	URL() string
	Focus(ctx context.Context) error
}

// WindowClient enumerates and creates application windows.
type WindowClient interface {
	Windows(ctx context.Context) ([]Window, error)
	OpenWindow(ctx context.Context, url string) (Window, error)
}

// HandleNotificationClick dismisses the notification and brings a window
// to the target URL into focus: the first already-open window whose URL
// exactly equals the target wins; otherwise exactly one new window is
// opened. The target defaults to the site root when the notification
// carries no URL.
func (w *Worker) HandleNotificationClick(ctx context.Context, n Notification) error {
	// Dismiss first; routing failures must not leave the notification up.
	if err := w.renderer.Close(ctx, n.Tag); err != nil {
		w.log.Warn("notification close failed", Fields{"tag": n.Tag, "err": err})
	}

	if w.windows == nil {
		return ErrNoWindowClient
	}

	target := coalesce(n.Data.URL, w.siteRoot)

	wins, err := w.windows.Windows(ctx)
	if err != nil {
		return err
	}
	for _, win := range wins {
		if win.URL() == target {
			w.log.Debug("focusing existing window", Fields{"url": target})
			return win.Focus(ctx)
		}
	}

	w.log.Debug("opening window", Fields{"url": target})
	if _, err := w.windows.OpenWindow(ctx, target); err != nil {
		w.hooks.WindowOpenFailed(target, err)
		return err
	}
	return nil
}
