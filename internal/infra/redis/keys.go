package redis

import (
	"fmt"

	"oja-pos-licensing/internal/domain/activation"
)

// ActivationAttemptKey scopes the attempt counter to one device.
func ActivationAttemptKey(deviceID string) string {
	return fmt.Sprintf("rate_limit:activate:%s", deviceID)
}

// CodeLockKey scopes the redemption lock to one normalized code.
func CodeLockKey(code string) string {
	return "lock:activation:" + activation.Normalize(code)
}

// SubscriptionCacheKey holds the cached status of one shop.
func SubscriptionCacheKey(shopID string) string {
	return "subscription:shop:" + shopID
}
