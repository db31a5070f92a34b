package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
)

// MemoryBroken is a process-local seen-broken set.
type MemoryBroken struct {
	mu  sync.RWMutex
	set map[string]struct{}
}

// NewMemoryBroken returns an empty set.
func NewMemoryBroken() *MemoryBroken {
	return &MemoryBroken{set: make(map[string]struct{})}
}

// Contains reports whether address was marked broken on chainID.
func (m *MemoryBroken) Contains(_ context.Context, chainID uint64, address string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.set[asset.Key(chainID, address)]
	return ok
}

// Add marks address as broken.
func (m *MemoryBroken) Add(_ context.Context, chainID uint64, address string) error {
	m.mu.Lock()
	m.set[asset.Key(chainID, address)] = struct{}{}
	m.mu.Unlock()
	return nil
}

// Remove clears a broken mark.
func (m *MemoryBroken) Remove(_ context.Context, chainID uint64, address string) error {
	m.mu.Lock()
	delete(m.set, asset.Key(chainID, address))
	m.mu.Unlock()
	return nil
}

// RedisConfig points the shared seen-broken set at a redis server.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	KeyPrefix   string
	DialTimeout time.Duration
}

// redisClient is the slice of redis the broken set needs; tests swap in a fake.
type redisClient interface {
	SAdd(ctx context.Context, key string, member string) error
	SIsMember(ctx context.Context, key string, member string) (bool, error)
	SRem(ctx context.Context, key string, member string) error
	Close() error
}

type goRedisClient struct {
	client *redis.Client
}

var _ redisClient = (*goRedisClient)(nil)

func newGoRedisClient(ctx context.Context, cfg RedisConfig) (*goRedisClient, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}
	opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return &goRedisClient{client: client}, nil
}

func (c *goRedisClient) SAdd(ctx context.Context, key string, member string) error {
	return c.client.SAdd(ctx, key, member).Err()
}

func (c *goRedisClient) SIsMember(ctx context.Context, key string, member string) (bool, error) {
	return c.client.SIsMember(ctx, key, member).Result()
}

func (c *goRedisClient) SRem(ctx context.Context, key string, member string) error {
	return c.client.SRem(ctx, key, member).Err()
}

func (c *goRedisClient) Close() error { return c.client.Close() }

// RedisBroken shares the seen-broken set between processes. Each chain gets one redis set
// under "{prefix}broken:{chainID}" holding lower-cased addresses.
type RedisBroken struct {
	client    redisClient
	keyPrefix string
	log       zerolog.Logger
}

// NewRedisBroken connects to redis and verifies the connection.
func NewRedisBroken(ctx context.Context, cfg RedisConfig, log zerolog.Logger) (*RedisBroken, error) {
	client, err := newGoRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newRedisBroken(client, cfg.KeyPrefix, log), nil
}

func newRedisBroken(client redisClient, prefix string, log zerolog.Logger) *RedisBroken {
	if prefix == "" {
		prefix = "assetcheck:"
	}
	return &RedisBroken{client: client, keyPrefix: prefix, log: log.With().Str("component", "broken_set").Logger()}
}

func (r *RedisBroken) key(chainID uint64) string {
	return fmt.Sprintf("%sbroken:%d", r.keyPrefix, chainID)
}

func member(address string) string { return strings.ToLower(strings.TrimSpace(address)) }

// Contains reports whether address is marked broken. Redis failures are logged and read as
// "not broken" so the engine falls through to the on-chain check.
func (r *RedisBroken) Contains(ctx context.Context, chainID uint64, address string) bool {
	ok, err := r.client.SIsMember(ctx, r.key(chainID), member(address))
	if err != nil {
		r.log.Warn().Err(err).Str("address", address).Msg("broken set lookup failed")
		return false
	}
	return ok
}

// Add marks address as broken.
func (r *RedisBroken) Add(ctx context.Context, chainID uint64, address string) error {
	if err := r.client.SAdd(ctx, r.key(chainID), member(address)); err != nil {
		return fmt.Errorf("mark %s broken: %w", address, err)
	}
	return nil
}

// Remove clears a broken mark.
func (r *RedisBroken) Remove(ctx context.Context, chainID uint64, address string) error {
	if err := r.client.SRem(ctx, r.key(chainID), member(address)); err != nil {
		return fmt.Errorf("clear broken mark for %s: %w", address, err)
	}
	return nil
}

// Close releases the redis connection.
func (r *RedisBroken) Close() error { return r.client.Close() }
