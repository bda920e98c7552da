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

// Ensure implementation satisfies the interface.
var _ repository.RedemptionRepository = (*redemptionRepo)(nil)

type redemptionRepo struct {
	pool *pgxpool.Pool
}

func NewRedemptionRepo(pool *pgxpool.Pool) repository.RedemptionRepository {
	return &redemptionRepo{pool: pool}
}

// Save inserts a redemption. The UNIQUE constraint on code is what makes a
// code single-use; a second insert of the same code reports ErrCodeAlreadyUsed.
func (r *redemptionRepo) Save(ctx context.Context, tx repository.Tx, red *model.Redemption) error {
	if red.ID == "" {
		red.ID = uuid.NewString()
	}

	const q = `
INSERT INTO activation_redemptions (id, code, shop_id, device_id, plan, days, redeemed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		red.ID, red.Code, red.ShopID, red.DeviceID, string(red.Plan), red.Days, red.RedeemedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCodeAlreadyUsed
		}
		return err
	}
	return nil
}

// FindByCode looks a normalized code up in the used-codes set.
func (r *redemptionRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.Redemption, error) {
	const q = `
SELECT id, code, shop_id, device_id, plan, days, redeemed_at
  FROM activation_redemptions
 WHERE code = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}

	var red model.Redemption
	var plan string
	err = row.Scan(&red.ID, &red.Code, &red.ShopID, &red.DeviceID, &plan, &red.Days, &red.RedeemedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	red.Plan = activation.Plan(plan)
	return &red, nil
}

func (r *redemptionRepo) CountByPlan(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	const q = `SELECT plan, COUNT(*) FROM activation_redemptions GROUP BY plan;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var plan string
		var n int
		if err := rows.Scan(&plan, &n); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out[plan] = n
	}
	return out, rows.Err()
}
