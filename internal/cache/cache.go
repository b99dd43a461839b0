// Package cache holds the loaded portfolio tree for the session and mirrors
// it into redis so other processes can read the last known state.
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"portal-server/internal/models"
)

// Redis keys for the serialized representations.
const (
	KeyPortfolios  = "portal:portfolios"
	KeyProducts    = "portal:products"
	KeyLastUpdated = "portal:last_updated"
)

// PortfolioCache is an explicitly owned cache object: constructor-injected,
// lifecycle tied to the hosting process, no module-level state.
type PortfolioCache struct {
	mu          sync.RWMutex
	portfolios  []models.Portfolio
	lastUpdated time.Time

	redis  *redis.Client
	logger *zap.Logger
}

// flattened is the products-indexed mirror written alongside the portfolio
// tree.
type flattened struct {
	Portfolios []models.Portfolio `json:"portfolios"`
	Products   []models.Product   `json:"products"`
}

// New creates an empty cache. The redis client may be nil, in which case
// only the in-memory copy is maintained.
func New(redisClient *redis.Client, logger *zap.Logger) *PortfolioCache {
	return &PortfolioCache{
		redis:  redisClient,
		logger: logger,
	}
}

// Get returns the cached tree, or nil when the cache is empty.
func (c *PortfolioCache) Get() []models.Portfolio {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.portfolios
}

// Set replaces the cached tree and mirrors both serialized forms plus the
// last-update timestamp into redis. Mirror failures are logged, not fatal.
func (c *PortfolioCache) Set(ctx context.Context, portfolios []models.Portfolio) {
	now := time.Now().UTC()

	c.mu.Lock()
	c.portfolios = portfolios
	c.lastUpdated = now
	c.mu.Unlock()

	if c.redis == nil {
		return
	}

	portfolioJSON, err := json.Marshal(portfolios)
	if err != nil {
		c.logger.Warn("failed to marshal portfolio cache", zap.Error(err))
		return
	}

	products := []models.Product{}
	for i := range portfolios {
		products = append(products, portfolios[i].Products...)
	}
	flatJSON, err := json.Marshal(flattened{Portfolios: portfolios, Products: products})
	if err != nil {
		c.logger.Warn("failed to marshal flattened cache", zap.Error(err))
		return
	}

	if err := c.redis.Set(ctx, KeyPortfolios, portfolioJSON, 0).Err(); err != nil {
		c.logger.Warn("failed to mirror portfolio cache to redis", zap.Error(err))
	}
	if err := c.redis.Set(ctx, KeyProducts, flatJSON, 0).Err(); err != nil {
		c.logger.Warn("failed to mirror flattened cache to redis", zap.Error(err))
	}
	if err := c.redis.Set(ctx, KeyLastUpdated, now.Format(time.RFC3339), 0).Err(); err != nil {
		c.logger.Warn("failed to mirror cache timestamp to redis", zap.Error(err))
	}
}

// Invalidate clears the in-memory tree and the timestamp key. The serialized
// data keys are intentionally left behind; callers reload through the loader.
func (c *PortfolioCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.portfolios = nil
	c.lastUpdated = time.Time{}
	c.mu.Unlock()

	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, KeyLastUpdated).Err(); err != nil {
		c.logger.Warn("failed to clear cache timestamp in redis", zap.Error(err))
	}
}

// Fresh reports whether the cache was updated within maxAge. Advisory only;
// nothing enforces a TTL.
func (c *PortfolioCache) Fresh(maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.portfolios == nil || c.lastUpdated.IsZero() {
		return false
	}
	return time.Since(c.lastUpdated) <= maxAge
}

// LastUpdated returns the timestamp of the last Set, zero when empty.
func (c *PortfolioCache) LastUpdated() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}
