package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"oja-pos-licensing/internal/domain/model"
	"oja-pos-licensing/internal/domain/ports/repository"
	"oja-pos-licensing/internal/infra/metrics"
	red "oja-pos-licensing/internal/infra/redis"
)

var _ repository.SubscriptionRepository = (*subscriptionRepoCacheDecorator)(nil)

const subscriptionCacheName = "shop_subscription"

// subscriptionRepoCacheDecorator serves status reads from Redis. Reads that
// run inside a transaction always go to Postgres.
type subscriptionRepoCacheDecorator struct {
	inner repository.SubscriptionRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewSubscriptionRepoCacheDecorator(inner repository.SubscriptionRepository, cache red.RedisClient, ttl time.Duration) repository.SubscriptionRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &subscriptionRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func (d *subscriptionRepoCacheDecorator) FindByShop(ctx context.Context, tx repository.Tx, shopID string) (*model.ShopSubscription, error) {
	if tx != nil {
		return d.inner.FindByShop(ctx, tx, shopID)
	}

	key := red.SubscriptionCacheKey(shopID)
	val, err := d.cache.Get(ctx, key)
	switch {
	case err == nil:
		var sub model.ShopSubscription
		if json.Unmarshal([]byte(val), &sub) == nil {
			metrics.IncCacheRequest(subscriptionCacheName, "hit")
			return &sub, nil
		}
	case !errors.Is(err, redis.Nil):
		metrics.IncCacheRequest(subscriptionCacheName, "error")
	}

	metrics.IncCacheRequest(subscriptionCacheName, "miss")
	sub, err := d.inner.FindByShop(ctx, tx, shopID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(sub); err == nil {
		_ = d.cache.Set(ctx, key, b, d.ttl)
	}
	return sub, nil
}

// Save invalidates before writing so a concurrent reader cannot keep the old
// row for longer than ttl.
func (d *subscriptionRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, sub *model.ShopSubscription) error {
	_ = d.cache.Del(ctx, red.SubscriptionCacheKey(sub.ShopID))
	return d.inner.Save(ctx, tx, sub)
}
