package repo

import (
	"context"
	"fmt"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
)

// PostgresBalanceLedger implements the balance ledger on PostgreSQL. The
// debit statement is guarded on the current balance, so a transfer against a
// short account changes nothing. Transfer is meant to run inside the
// transaction opened by PgxTxRunner; the debit and credit then commit as one.
type PostgresBalanceLedger struct {
	db *infra.SQLRunner
}

func NewPostgresBalanceLedger(db *infra.SQLRunner) *PostgresBalanceLedger {
	return &PostgresBalanceLedger{db: db}
}

func (l *PostgresBalanceLedger) Transfer(ctx context.Context, from, to string, amount uint64) error {
	tag, err := l.db.Exec(ctx, sqlinline.QDebitBalance, from, int64(amount))
	if err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}
	if _, err := l.db.Exec(ctx, sqlinline.QCreditBalance, to, int64(amount)); err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	return nil
}

func (l *PostgresBalanceLedger) Balance(ctx context.Context, account string) (uint64, error) {
	var balance int64
	if err := l.db.QueryRow(ctx, sqlinline.QGetBalance, account).Scan(&balance); err != nil {
		return 0, err
	}
	return uint64(balance), nil
}

// Credit seeds an account outside any escrow transition. Intended for
// operational tooling and development seeding.
func (l *PostgresBalanceLedger) Credit(ctx context.Context, account string, amount uint64) error {
	_, err := l.db.Exec(ctx, sqlinline.QCreditBalance, account, int64(amount))
	return err
}
