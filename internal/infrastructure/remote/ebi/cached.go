package ebi

import (
	"context"
	"time"

	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/database/redis"
	apperrors "github.com/biotext/bioground/pkg/errors"
)

// CachedClient decorates a RemoteEntryClient with the shared Redis cache so
// that entry lookups are paid once per cluster, not once per process.
// Not-found results are null-cached by the cache layer.
type CachedClient struct {
	inner domaingrounding.RemoteEntryClient
	cache redis.Cache
	ttl   time.Duration
	obs   LookupObserver
}

// NewCachedClient wraps inner with cache.  ttl 0 uses the cache default;
// obs nil discards the cache-hit counts.
func NewCachedClient(inner domaingrounding.RemoteEntryClient, cache redis.Cache, ttl time.Duration, obs LookupObserver) *CachedClient {
	if obs == nil {
		obs = nopLookupObserver{}
	}
	return &CachedClient{inner: inner, cache: cache, ttl: ttl, obs: obs}
}

// FetchChEBIEntry implements grounding.RemoteEntryClient.
func (c *CachedClient) FetchChEBIEntry(ctx context.Context, id string) (*domaingrounding.ChEBIEntry, error) {
	bare := domaingrounding.StripChEBIPrefix(id)
	var entry domaingrounding.ChEBIEntry
	loaded := false
	err := c.cache.GetOrSet(ctx, "chebi:entry:"+bare, &entry, c.ttl,
		func(ctx context.Context) (interface{}, error) {
			loaded = true
			fetched, err := c.inner.FetchChEBIEntry(ctx, bare)
			if err != nil {
				return nil, err
			}
			if fetched == nil {
				return nil, nil // null-cached miss
			}
			return fetched, nil
		})
	if !loaded {
		// Answered from the cache, null-cached misses included.
		c.obs.CacheHit()
	}
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

//Personal.AI order the ending
