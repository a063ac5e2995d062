// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"market_dashboard/internal/feature/quotes/usecase"
	"market_dashboard/internal/platform/cache"
	"market_dashboard/internal/platform/externalapi/yahoo"
	infrahttp "market_dashboard/internal/platform/http"
)

// marketCacheTTL is how long polled quote/history responses stay cached.
const marketCacheTTL = time.Minute

// NewMarket creates a fully configured Yahoo Finance market repository,
// wrapped with Redis caching. A nil Redis client disables the cache layer.
func NewMarket(rdb *redis.Client) usecase.MarketRepository {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	market := yahoo.NewYahooMarket(cfg, httpClient)
	return cache.NewCachingMarketRepository(rdb, marketCacheTTL, market, "market")
}
