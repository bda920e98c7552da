package repository

import (
	"context"

	"oja-pos-licensing/internal/domain/model"
)

// RedemptionRepository is the port for the used-codes set.
type RedemptionRepository interface {
	// Save inserts a redemption. It returns domain.ErrCodeAlreadyUsed when the
	// code has been redeemed before.
	Save(ctx context.Context, tx Tx, r *model.Redemption) error
	// FindByCode returns the redemption of a normalized code or domain.ErrNotFound.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.Redemption, error)
	// CountByPlan returns redemption totals keyed by plan.
	CountByPlan(ctx context.Context, tx Tx) (map[string]int, error)
}
