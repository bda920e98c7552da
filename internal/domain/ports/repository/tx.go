package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
)

// Tx is an infra-defined transaction handle (pgx.Tx for Postgres).
// Repositories accept nil to run outside a transaction.
type Tx interface{}

// TransactionManager runs fn inside a transaction, committing when fn
// returns nil and rolling back otherwise.
//
//	tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx Tx) error {
//		if err := redemptions.Save(ctx, tx, r); err != nil {
//			return err
//		}
//		return subs.Save(ctx, tx, s)
//	})
type TransactionManager interface {
	WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error
}

// NoTX tells a repository to use its pool directly.
var NoTX Tx = nil
