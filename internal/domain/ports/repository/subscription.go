package repository

import (
	"context"

	"oja-pos-licensing/internal/domain/model"
)

// SubscriptionRepository is the port for shop activation state.
type SubscriptionRepository interface {
	// Save creates or replaces the subscription of sub.ShopID.
	Save(ctx context.Context, tx Tx, sub *model.ShopSubscription) error
	// FindByShop returns the shop's subscription or domain.ErrNotFound.
	FindByShop(ctx context.Context, tx Tx, shopID string) (*model.ShopSubscription, error)
}
