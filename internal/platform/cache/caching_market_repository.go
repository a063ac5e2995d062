// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"market_dashboard/internal/feature/quotes/domain/entity"
	"market_dashboard/internal/feature/quotes/usecase"
)

// CachingMarketRepository decorates a MarketRepository with Redis caching.
// History and Quote lookups are cached with a short TTL, Search always
// passes through.
type CachingMarketRepository struct {
	inner     usecase.MarketRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.MarketRepository = (*CachingMarketRepository)(nil)

// NewCachingMarketRepository decorates a MarketRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "market".
// A nil Redis client disables caching entirely.
func NewCachingMarketRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingMarketRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "market"
	}
	return &CachingMarketRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// History retrieves bars, checking cache first then falling back to the provider.
func (c *CachingMarketRepository) History(ctx context.Context, symbol, rng, interval string, includePrePost bool) ([]entity.Bar, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.History(ctx, symbol, rng, interval, includePrePost)
	}

	key := fmt.Sprintf("%s:hist:%s:%s:%s:%t",
		c.namespace, safe(symbol), safe(rng), safe(interval), includePrePost)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Bar
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to provider
	out, err := c.inner.History(ctx, symbol, rng, interval, includePrePost)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Quote retrieves enrichment data, checking cache first then falling back to the provider.
func (c *CachingMarketRepository) Quote(ctx context.Context, symbol string) (entity.QuoteFacts, error) {
	if c.rdb == nil {
		return c.inner.Quote(ctx, symbol)
	}

	key := fmt.Sprintf("%s:quote:%s", c.namespace, safe(symbol))

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.QuoteFacts
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Quote(ctx, symbol)
	if err != nil {
		return entity.QuoteFacts{}, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Search delegates to the provider without caching.
func (c *CachingMarketRepository) Search(ctx context.Context, query string, limit int) ([]entity.SearchResult, error) {
	return c.inner.Search(ctx, query, limit)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
