package swkit

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/swkit/codec"
	"github.com/unkn0wn-root/swkit/internal/util"
	"github.com/unkn0wn-root/swkit/internal/wire"
	pr "github.com/unkn0wn-root/swkit/provider"
	reg "github.com/unkn0wn-root/swkit/registry"
)

// Identity is the cache key for an intercepted request: two requests with
// equal identity are interchangeable for cache lookup. Vary carries only
// the headers relevant to response selection, not the full header set.
type Identity struct {
	Method string
	URL    string
	Vary   map[string]string
}

// Response is an immutable snapshot of a network response captured at
// cache-write time. Never mutated after insertion; replaced only by
// re-insertion under the same identity.
type Response struct {
	Status int               `json:"status"`
	Header map[string]string `json:"header,omitempty"`
	Body   []byte            `json:"body,omitempty"`
}

// store manages cache generations over a byte provider. Each generation is
// a key-prefix slice of the provider plus a record in the registry; a
// generation is destroyed by deleting its prefix and its record.
type store struct {
	scope string
	p     pr.Provider
	reg   reg.Registry
	codec c.Codec[Response]
	ttl   time.Duration
	log   Logger
	hooks Hooks
}

// generation is one versioned view of the store. Put/Match are safe for
// concurrent use on the same identity; the last put wins.
type generation struct {
	s    *store
	name string
}

func (s *store) entryPrefix(name string) string {
	return "entry:" + s.scope + ":" + name
}

// open returns the named generation, recording it for later cleanup.
// Idempotent: re-opening an existing generation is a no-op on the registry.
func (s *store) open(ctx context.Context, name string) (*generation, error) {
	if err := s.reg.Add(ctx, name); err != nil {
		return nil, err
	}
	return &generation{s: s, name: name}, nil
}

func (s *store) names(ctx context.Context) ([]string, error) {
	return s.reg.Names(ctx)
}

// delete destroys a whole generation: every entry under its prefix plus
// its registry record. Entries first, so a crash between the two steps
// leaves a name that a later cleanup can retry, never orphaned bytes.
func (s *store) delete(ctx context.Context, name string) error {
	if err := s.p.DelPrefix(ctx, s.entryPrefix(name)); err != nil {
		return err
	}
	return s.reg.Remove(ctx, name)
}

func (s *store) close(ctx context.Context) error {
	if s.reg != nil {
		_ = s.reg.Close(ctx)
	}
	if s.p != nil {
		return s.p.Close(ctx)
	}
	return nil
}

func (g *generation) key(id Identity) string {
	return util.EntryKey(g.s.entryPrefix(g.name), id.Method, id.URL, id.Vary)
}

// put inserts or replaces the entry for id (last-write-wins, no per-entry
// versioning).
func (g *generation) put(ctx context.Context, id Identity, resp Response) error {
	payload, err := g.s.codec.Encode(resp)
	if err != nil {
		return err
	}
	k := g.key(id)
	ok, err := g.s.p.Set(ctx, k, wire.Encode(wire.KindResponse, payload), g.s.ttl)
	if err != nil {
		return err
	}
	if !ok {
		g.s.hooks.ProviderSetRejected(k)
		g.s.log.Debug("put rejected by provider (pressure)", Fields{"key": k})
	}
	return nil
}

// match is an exact-key lookup. A miss is (zero, false, nil), not an
// error. Corrupt or undecodable entries are deleted and reported as a miss
// (self-heal); the caller falls through to the network.
func (g *generation) match(ctx context.Context, id Identity) (Response, bool, error) {
	var zero Response
	k := g.key(id)
	raw, ok, err := g.s.p.Get(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}
	kind, payload, err := wire.Decode(raw)
	if err != nil {
		g.selfHeal(ctx, k, "corrupt")
		return zero, false, nil
	}
	if kind != wire.KindResponse {
		g.selfHeal(ctx, k, "kind")
		return zero, false, nil
	}
	resp, err := g.s.codec.Decode(payload)
	if err != nil {
		g.selfHeal(ctx, k, "value_decode")
		return zero, false, nil
	}
	return resp, true, nil
}

func (g *generation) selfHeal(ctx context.Context, key, reason string) {
	_ = g.s.p.Del(ctx, key)
	g.s.hooks.EntrySelfHeal(key, reason)
	g.s.log.Warn("dropped bad cache entry", Fields{"key": key, "reason": reason})
}
