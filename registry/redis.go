package registry

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"
)

// Redis keeps generation names in a redis set so a freshly started worker
// can still see - and purge - generations an older version left behind.
// The scope should match the Options.Scope of the worker sharing the
// provider keyspace.
type Redis struct {
	rdb         goredis.UniversalClient
	scope       string
	closeClient bool
}

var _ Registry = (*Redis)(nil)

type RedisConfig struct {
	Client      goredis.UniversalClient
	Scope       string
	CloseClient bool // set true only if this registry exclusively owns the client
}

func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Client == nil {
		return nil, errors.New("registry: nil redis client")
	}
	return &Redis{rdb: cfg.Client, scope: cfg.Scope, closeClient: cfg.CloseClient}, nil
}

func (r *Redis) key() string { return "gens:" + r.scope }

func (r *Redis) Add(ctx context.Context, name string) error {
	return r.rdb.SAdd(ctx, r.key(), name).Err()
}

func (r *Redis) Names(ctx context.Context) ([]string, error) {
	return r.rdb.SMembers(ctx, r.key()).Result()
}

func (r *Redis) Remove(ctx context.Context, name string) error {
	return r.rdb.SRem(ctx, r.key(), name).Err()
}

func (r *Redis) Close(context.Context) error {
	if r.closeClient {
		if err := r.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
	}
	return nil
}
