package snapshot

import (
	"context"
	"fmt"
	"net/url"

	"github.com/go-redis/redis/v8"
)

// hashClient is the subset of the redis client used by RedisStore.
type hashClient interface {
	HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd
	TxPipelined(ctx context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error)
}

// RedisStore keeps a baseline in a redis hash, so several machines can diff
// against the same snapshots.
type RedisStore struct {
	client hashClient
	key    string
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr string
	DB   int
	Key  string
}

// NewRedisStore connects to the redis server at opts.Addr.
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: opts.Addr,
		DB:   opts.DB,
	})
	return NewRedisStoreWithClient(client, opts.Key)
}

// ParseRedisURL splits a redis:// or rediss:// location into client options
// and the hash key named by its key query parameter. Credentials, the
// database path and the remaining query parameters are handled by
// redis.ParseURL.
func ParseRedisURL(location string) (*redis.Options, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, "", err
	}
	if u.Host == "" {
		return nil, "", fmt.Errorf("redis location %q has no host", location)
	}
	q := u.Query()
	key := q.Get("key")
	q.Del("key")
	u.RawQuery = q.Encode()

	opts, err := redis.ParseURL(u.String())
	if err != nil {
		return nil, "", err
	}
	if opts.DB < 0 {
		return nil, "", fmt.Errorf("redis: invalid database number: %d", opts.DB)
	}
	return opts, key, nil
}

// NewRedisStoreFromURL connects to the server a redis:// location names.
func NewRedisStoreFromURL(location string) (*RedisStore, error) {
	opts, key, err := ParseRedisURL(location)
	if err != nil {
		return nil, err
	}
	return NewRedisStoreWithClient(redis.NewClient(opts), key), nil
}

// NewRedisStoreWithClient returns a store on an existing client.
func NewRedisStoreWithClient(client hashClient, key string) *RedisStore {
	if key == "" {
		key = "aspect:snapshots"
	}
	return &RedisStore{client: client, key: key}
}

// Key returns the hash key holding the snapshots.
func (r *RedisStore) Key() string {
	return r.key
}

// Load implements Store.
func (r *RedisStore) Load(ctx context.Context) (Snapshots, error) {
	m, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots from redis key %q: %w", r.key, err)
	}
	return Snapshots(m), nil
}

// Save implements Store. The hash is replaced in one MULTI/EXEC transaction,
// so removed snapshots disappear and a failed save keeps the old baseline.
func (r *RedisStore) Save(ctx context.Context, s Snapshots) error {
	values := make([]interface{}, 0, 2*len(s))
	for k, v := range s {
		values = append(values, k, v)
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if len(values) > 0 {
			pipe.HSet(ctx, r.key, values...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshots to redis key %q: %w", r.key, err)
	}
	return nil
}
