// Package swkit implements a host-independent service-worker runtime:
// a versioned offline asset cache, cache-first fetch interception, push
// notification normalization and rendering, notification-click window
// routing, and background sync coordination.
//
// Components:
//   - Provider: byte store with TTL (e.g. Ristretto, BigCache, Redis).
//   - Registry: durable set of cache generation names. Local (in-process)
//     by default, optional Redis implementation so activation cleanup can
//     purge generations created before a restart.
//   - Codec[V]: (de)serializes stored response snapshots <-> []byte.
//   - Capabilities: Fetcher (network), Renderer (OS notification surface),
//     WindowClient (open window enumeration/creation) - all injected so the
//     core logic is testable without a browser host.
//
// Keys:
//
//	entry:<scope>:<generation>:<method>:<url>[#varyhash] - cached responses
//
// Event model: one handler method per event kind (install, activate, fetch,
// push, notification click, sync, periodic sync). Each handler runs to
// completion before returning; the returned error is the event's settlement.
// A thin adapter (see the host package) binds the handlers to a runtime and
// keeps events alive until their handler resolves.
package swkit
