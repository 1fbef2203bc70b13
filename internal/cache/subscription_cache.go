package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

const cachePrefix = "subscription:"

// subscriptionCache implements domain.SubscriptionCache on Redis. Cache
// failures are logged and swallowed; correctness falls back on the
// subscription repository.
type subscriptionCache struct {
	client *redis.Client
	repo   domain.SubscriptionRepository
	logger logger.Logger
}

// NewSubscriptionCache creates a Redis-backed subscription cache that
// loads through repo on a miss.
func NewSubscriptionCache(client *redis.Client, repo domain.SubscriptionRepository, logger logger.Logger) domain.SubscriptionCache {
	return &subscriptionCache{
		client: client,
		repo:   repo,
		logger: logger,
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("%s%s", cachePrefix, id)
}

// Put unconditionally overwrites the cached projection. Best-effort.
func (c *subscriptionCache) Put(ctx context.Context, sub *domain.Subscription) {
	data, err := json.Marshal(sub)
	if err != nil {
		c.logger.WithField("error", err.Error()).Warn("Failed to encode subscription for cache")
		return
	}

	if err := c.client.Set(ctx, cacheKey(sub.ID), data, 0).Err(); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"subscription_id": sub.ID,
			"error":           err.Error(),
		}).Warn("Failed to cache subscription")
	}
}

// Get returns the cached projection, or false on a miss, a corrupt
// entry, or any cache error.
func (c *subscriptionCache) Get(ctx context.Context, id string) (*domain.Subscription, bool) {
	raw, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"subscription_id": id,
			"error":           err.Error(),
		}).Warn("Subscription cache lookup failed")
		return nil, false
	}

	var sub domain.Subscription
	if err := json.Unmarshal(raw, &sub); err != nil {
		// Corrupt entry; treat as a miss so the caller reloads.
		c.logger.WithField("subscription_id", id).Warn("Corrupt subscription cache entry")
		return nil, false
	}

	return &sub, true
}

// Invalidate removes the cached projection. Best-effort.
func (c *subscriptionCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"subscription_id": id,
			"error":           err.Error(),
		}).Warn("Failed to invalidate subscription cache entry")
	}
}

// GetOrLoad returns the cached projection; on a miss it loads from the
// repository, writes through, and returns the loaded value. It returns
// ErrNotFound only when the repository has no such subscription.
func (c *subscriptionCache) GetOrLoad(ctx context.Context, id string) (*domain.Subscription, error) {
	if sub, ok := c.Get(ctx, id); ok {
		return sub, nil
	}

	sub, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Put(ctx, sub)
	return sub, nil
}
