package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"oja-pos-licensing/internal/domain"
	"oja-pos-licensing/internal/domain/activation"
	"oja-pos-licensing/internal/domain/model"
	"oja-pos-licensing/internal/domain/ports/repository"
)

// Ensure subscriptionRepo implements repository.SubscriptionRepository
var _ repository.SubscriptionRepository = (*subscriptionRepo)(nil)

type subscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) repository.SubscriptionRepository {
	return &subscriptionRepo{pool: pool}
}

// Save upserts on shop_id: a shop holds exactly one subscription row.
func (r *subscriptionRepo) Save(ctx context.Context, tx repository.Tx, s *model.ShopSubscription) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	const q = `
INSERT INTO shop_subscriptions (id, shop_id, plan, activated_at, expires_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (shop_id) DO UPDATE SET
  plan=EXCLUDED.plan, activated_at=EXCLUDED.activated_at,
  expires_at=EXCLUDED.expires_at, updated_at=EXCLUDED.updated_at;`

	_, err := execSQL(ctx, r.pool, tx, q, s.ID, s.ShopID, string(s.Plan), s.ActivatedAt, s.ExpiresAt, s.UpdatedAt)
	return err
}

func (r *subscriptionRepo) FindByShop(ctx context.Context, tx repository.Tx, shopID string) (*model.ShopSubscription, error) {
	const q = `
SELECT id, shop_id, plan, activated_at, expires_at, updated_at
  FROM shop_subscriptions
 WHERE shop_id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, shopID)
	if err != nil {
		return nil, err
	}

	var s model.ShopSubscription
	var plan string
	if err := row.Scan(&s.ID, &s.ShopID, &plan, &s.ActivatedAt, &s.ExpiresAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	s.Plan = activation.Plan(plan)
	return &s, nil
}
