// Package registry keeps the local knowledge the validation engine consults before going to
// the chain: assets that were already committed, and addresses seen to be broken.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/asset"
)

// ErrNotFound is returned by Get when no asset is stored under the key.
var ErrNotFound = errors.New("registry: asset not found")

// CacheConfig sizes the in-process registry.
type CacheConfig struct {
	LifeWindow   time.Duration
	HardMaxMB    int
	MaxEntrySize int
}

// DefaultCacheConfig keeps entries for a day with no hard memory cap.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{LifeWindow: 24 * time.Hour, MaxEntrySize: 512}
}

// Cache stores validated assets keyed by chain id and address.
type Cache struct {
	cache *bigcache.BigCache
	log   zerolog.Logger
}

// NewCache builds the registry. Zero fields in cfg fall back to DefaultCacheConfig.
func NewCache(ctx context.Context, cfg CacheConfig, log zerolog.Logger) (*Cache, error) {
	def := DefaultCacheConfig()
	if cfg.LifeWindow <= 0 {
		cfg.LifeWindow = def.LifeWindow
	}
	if cfg.MaxEntrySize <= 0 {
		cfg.MaxEntrySize = def.MaxEntrySize
	}
	bc := bigcache.DefaultConfig(cfg.LifeWindow)
	// Token registries hold thousands of entries, not the default's hundreds of thousands.
	bc.Shards = 64
	bc.MaxEntriesInWindow = 10_000
	bc.CleanWindow = cfg.LifeWindow / 4
	bc.HardMaxCacheSize = cfg.HardMaxMB
	bc.MaxEntrySize = cfg.MaxEntrySize
	bc.Verbose = false

	cache, err := bigcache.New(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("create asset cache: %w", err)
	}
	return &Cache{cache: cache, log: log.With().Str("component", "registry").Logger()}, nil
}

// Get returns the asset stored under (chainID, address).
func (c *Cache) Get(chainID uint64, address string) (asset.Asset, error) {
	raw, err := c.cache.Get(asset.Key(chainID, address))
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return asset.Asset{}, ErrNotFound
		}
		return asset.Asset{}, fmt.Errorf("read asset %s: %w", asset.Key(chainID, address), err)
	}
	var a asset.Asset
	if err := json.Unmarshal(raw, &a); err != nil {
		return asset.Asset{}, fmt.Errorf("decode asset %s: %w", asset.Key(chainID, address), err)
	}
	return a, nil
}

// Lookup reports a previously remembered asset. Read failures other than a miss are logged
// and treated as a miss.
func (c *Cache) Lookup(_ context.Context, chainID uint64, address string) (asset.Asset, bool) {
	a, err := c.Get(chainID, address)
	switch {
	case err == nil:
		return a, true
	case errors.Is(err, ErrNotFound):
	default:
		c.log.Warn().Err(err).Msg("registry lookup failed")
	}
	return asset.Asset{}, false
}

// Remember stores a, replacing any previous entry for the same address.
func (c *Cache) Remember(_ context.Context, a asset.Asset) error {
	if a.Address == "" || a.ChainID == 0 {
		return fmt.Errorf("remember asset: address and chain id are required")
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode asset: %w", err)
	}
	if err := c.cache.Set(asset.Key(a.ChainID, a.Address), raw); err != nil {
		return fmt.Errorf("store asset %s: %w", a, err)
	}
	c.log.Debug().Str("asset", a.String()).Msg("asset remembered")
	return nil
}

// Preload remembers every asset in known, stopping at the first failure.
func (c *Cache) Preload(ctx context.Context, known []asset.Asset) error {
	for _, a := range known {
		if err := c.Remember(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Forget removes an entry; a missing entry is not an error.
func (c *Cache) Forget(chainID uint64, address string) error {
	err := c.cache.Delete(asset.Key(chainID, address))
	if err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return err
	}
	return nil
}

// Len returns the number of stored assets.
func (c *Cache) Len() int { return c.cache.Len() }

// Close releases the cache's background cleaner.
func (c *Cache) Close() error { return c.cache.Close() }
