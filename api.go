package swkit

import (
	"fmt"
	"time"

	c "github.com/unkn0wn-root/swkit/codec"
	pr "github.com/unkn0wn-root/swkit/provider"
	reg "github.com/unkn0wn-root/swkit/registry"
)

// DefaultManifest is the asset set precached at install time: the shell
// page, the offline fallback page, the two app icons and the badge.
// Changing the content behind any of these paths requires bumping
// Options.Version so activation purges the old generation.
var DefaultManifest = []string{
	"/",
	"/offline.html",
	"/icon-192.png",
	"/icon-512.png",
	"/badge-72.png",
}

// Options tune the behavior of the worker.
// Version, Provider, Fetcher and Renderer are required; others have
// sensible defaults.
type Options struct {
	// Required
	Version  string // generation tag, e.g. "marketplace-v2"; exactly one generation is current
	Provider pr.Provider
	Fetcher  Fetcher
	Renderer Renderer

	Manifest []string            // assets precached at install; nil => DefaultManifest
	Scope    string              // key namespace to avoid collisions; "" => "swkit"
	Registry reg.Registry        // generation names; nil => registry.NewLocal()
	Codec    c.Codec[Response]   // stored response serialization; nil => CBOR
	Windows  WindowClient        // nil => notification clicks fail with ErrNoWindowClient
	Sync     Backend             // deferred/periodic sync work; nil => NopBackend
	EntryTTL time.Duration       // per-entry TTL; 0 => entries live until generation purge

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	// Notification defaults, substituted for absent or undecodable push
	// payload fields.
	DefaultTitle string // "" => "New notification"
	DefaultBody  string // "" => "You have a new update."
	DefaultIcon  string // "" => "/icon-192.png"
	DefaultBadge string // "" => "/badge-72.png"

	// SiteRoot is the click target when a notification carries no URL.
	// "" => "/".
	SiteRoot string
}

// New wires the worker from its capabilities. The returned Worker is in the
// parsed state; drive it through HandleInstall and HandleActivate before
// routing fetch events to it.
func New(opts Options) (*Worker, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("swkit: version is required")
	}
	if opts.Provider == nil {
		return nil, fmt.Errorf("swkit: provider is required")
	}
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("swkit: fetcher is required")
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("swkit: renderer is required")
	}

	w := &Worker{
		version:  opts.Version,
		fetcher:  opts.Fetcher,
		renderer: opts.Renderer,
		windows:  opts.Windows,
	}

	// defaults
	w.log = coalesce[Logger](opts.Logger, NopLogger{})
	w.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	w.siteRoot = coalesce(opts.SiteRoot, "/")

	w.manifest = opts.Manifest
	if w.manifest == nil {
		w.manifest = DefaultManifest
	}

	w.sync = opts.Sync
	if w.sync == nil {
		w.sync = NopBackend{}
	}

	codec := opts.Codec
	if codec == nil {
		cb, err := c.NewCBOR[Response]()
		if err != nil {
			return nil, fmt.Errorf("swkit: default codec: %w", err)
		}
		codec = cb
	}

	registry := opts.Registry
	if registry == nil {
		registry = reg.NewLocal()
	}

	w.store = &store{
		scope: coalesce(opts.Scope, "swkit"),
		p:     opts.Provider,
		reg:   registry,
		codec: codec,
		ttl:   opts.EntryTTL,
		log:   w.log,
		hooks: w.hooks,
	}

	w.defaults = Payload{
		Title: coalesce(opts.DefaultTitle, "New notification"),
		Body:  coalesce(opts.DefaultBody, "You have a new update."),
		Icon:  coalesce(opts.DefaultIcon, "/icon-192.png"),
		Badge: coalesce(opts.DefaultBadge, "/badge-72.png"),
		Tag:   DefaultTag,
	}

	return w, nil
}
