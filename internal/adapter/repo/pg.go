package repo

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"crowdfund/internal/sqlinline"
	"crowdfund/pkg/tx"
)

// PgxTxRunner opens one database transaction per state transition and hands
// it to the stores through context. Commit and rollback give the
// all-or-nothing semantics the escrow service requires.
type PgxTxRunner struct {
	pool *pgxpool.Pool
}

func NewPgxTxRunner(pool *pgxpool.Pool) *PgxTxRunner {
	return &PgxTxRunner{pool: pool}
}

func (r *PgxTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx.WithTx(ctx, t)); err != nil {
		_ = t.Rollback(ctx)
		return err
	}
	return t.Commit(ctx)
}

// EnsureSchema creates the escrow tables when they do not exist yet. The
// schema constant is executed statement by statement.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema := sqlinline.QSchema
	if idx := strings.Index(schema, "\n"); idx >= 0 && strings.HasPrefix(schema, "--sql ") {
		schema = schema[idx+1:]
	}
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
