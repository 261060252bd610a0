package swkit

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The worker calls them on hot paths.
type Hooks interface {
	// A cached entry was deleted by the store on read.
	// reason ∈ {"corrupt", "kind", "value_decode"}
	EntrySelfHeal(storageKey, reason string)

	// A manifest asset could not be fetched or stored during install.
	// The whole install attempt fails when this fires.
	AssetFetchFailed(path string, err error)

	// A stale cache generation was removed during activation cleanup.
	GenerationPurged(name string)

	// An inbound push payload failed to decode; defaults were substituted.
	PayloadDecodeError(err error)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)

	// A sync or periodic-sync run failed. Not retried locally.
	SyncFailed(tag string, err error)

	// Opening a window for a notification activation failed.
	WindowOpenFailed(url string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) EntrySelfHeal(string, string)   {}
func (NopHooks) AssetFetchFailed(string, error) {}
func (NopHooks) GenerationPurged(string)        {}
func (NopHooks) PayloadDecodeError(error)       {}
func (NopHooks) ProviderSetRejected(string)     {}
func (NopHooks) SyncFailed(string, error)       {}
func (NopHooks) WindowOpenFailed(string, error) {}
