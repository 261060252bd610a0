package ristretto

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	rc "github.com/dgraph-io/ristretto"
)

// Provider adapts dgraph-io/ristretto. Ristretto offers no key iteration,
// so the provider shadows the live keyset to support DelPrefix (generation
// purges). Entry cost is the value length in bytes.
type Provider struct {
	c *rc.Cache

	mu   sync.Mutex
	keys map[string]struct{}
}

type Config struct {
	NumCounters int64
	MaxCost     int64 // total cache budget in bytes
	BufferItems int64
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, errors.New("ristretto: invalid config")
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c, keys: make(map[string]struct{})}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// drop unexpected entry shape
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

func (p *Provider) Set(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	cost := int64(len(value))
	if cost == 0 {
		cost = 1
	}
	var ok bool
	if ttl > 0 {
		ok = p.c.SetWithTTL(key, value, cost, ttl)
	} else {
		ok = p.c.Set(key, value, cost)
	}
	if ok {
		p.mu.Lock()
		p.keys[key] = struct{}{}
		p.mu.Unlock()
	}
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	p.mu.Lock()
	delete(p.keys, key)
	p.mu.Unlock()
	return nil
}

// DelPrefix removes all shadowed keys under prefix. Keys evicted by
// ristretto itself remain in the shadow set until purged here; deleting an
// already-evicted key is a no-op.
func (p *Provider) DelPrefix(_ context.Context, prefix string) error {
	p.mu.Lock()
	var match []string
	for k := range p.keys {
		if strings.HasPrefix(k, prefix) {
			match = append(match, k)
			delete(p.keys, k)
		}
	}
	p.mu.Unlock()

	for _, k := range match {
		p.c.Del(k)
	}
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}
