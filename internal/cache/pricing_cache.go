package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pricebook/pricing_api/internal/models"
)

// PricingTableCache caches the computed pricing table per profile so reads
// do not re-join line items with product display fields on every request.
// Entries are invalidated whenever the owning profile is updated or deleted.
type PricingTableCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewPricingTableCache creates a PricingTableCache with the given TTL.
func NewPricingTableCache(redis *RedisClient, ttl time.Duration) *PricingTableCache {
	return &PricingTableCache{redis: redis, ttl: ttl}
}

func (c *PricingTableCache) key(profileID int) string {
	return fmt.Sprintf("pricing:table:%d", profileID)
}

// Get returns the cached pricing table for a profile, or false on a miss.
// Cache failures are logged and treated as misses.
func (c *PricingTableCache) Get(ctx context.Context, profileID int) ([]models.PricingTableRow, bool) {
	raw, err := c.redis.Get(ctx, c.key(profileID))
	if err != nil {
		return nil, false
	}
	var rows []models.PricingTableRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		log.Warn().Err(err).Int("profile_id", profileID).Msg("corrupt pricing table cache entry")
		return nil, false
	}
	return rows, true
}

// Set stores the pricing table for a profile.
func (c *PricingTableCache) Set(ctx context.Context, profileID int, rows []models.PricingTableRow) {
	raw, err := json.Marshal(rows)
	if err != nil {
		log.Warn().Err(err).Int("profile_id", profileID).Msg("failed to marshal pricing table")
		return
	}
	if err := c.redis.Set(ctx, c.key(profileID), string(raw), c.ttl); err != nil {
		log.Warn().Err(err).Int("profile_id", profileID).Msg("failed to cache pricing table")
	}
}

// Invalidate drops the cached pricing table for a profile.
func (c *PricingTableCache) Invalidate(ctx context.Context, profileID int) {
	if err := c.redis.Delete(ctx, c.key(profileID)); err != nil {
		log.Warn().Err(err).Int("profile_id", profileID).Msg("failed to invalidate pricing table cache")
	}
}
