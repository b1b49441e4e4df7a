package repo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
	"crowdfund/pkg/tx"
)

// recordingTx captures the SQL routed to an open transaction.
type recordingTx struct {
	queries []string
}

func (x *recordingTx) Begin(ctx context.Context) (pgx.Tx, error) { return x, nil }
func (x *recordingTx) Commit(ctx context.Context) error          { return nil }
func (x *recordingTx) Rollback(ctx context.Context) error        { return nil }
func (x *recordingTx) CopyFrom(ctx context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (x *recordingTx) SendBatch(ctx context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (x *recordingTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (x *recordingTx) Prepare(ctx context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (x *recordingTx) Exec(ctx context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	x.queries = append(x.queries, sql)
	return pgconn.CommandTag{}, nil
}
func (x *recordingTx) Query(ctx context.Context, sql string, _ ...any) (pgx.Rows, error) {
	x.queries = append(x.queries, sql)
	return nil, pgx.ErrNoRows
}
func (x *recordingTx) QueryRow(ctx context.Context, sql string, _ ...any) pgx.Row {
	x.queries = append(x.queries, sql)
	return noRow{}
}
func (x *recordingTx) Conn() *pgx.Conn { return nil }

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

func TestCampaignGetLocksRowInsideTx(t *testing.T) {
	rec := &recordingTx{}
	ctx := tx.WithTx(context.Background(), rec)
	registry := NewPostgresCampaignRegistry(infra.NewSQLRunner(nil, zerolog.Nop()))

	_, err := registry.Get(ctx, "c1")
	if !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("got %v, want ErrCampaignNotFound", err)
	}
	if len(rec.queries) != 1 {
		t.Fatalf("queries routed to tx = %d, want 1", len(rec.queries))
	}
	if !strings.Contains(strings.ToLower(rec.queries[0]), "for update") {
		t.Fatalf("transactional read must lock the campaign row, got: %s", rec.queries[0])
	}
}

func TestCampaignGetOutsideTxDoesNotLock(t *testing.T) {
	if strings.Contains(strings.ToLower(sqlinline.QGetCampaign), "for update") {
		t.Fatal("plain campaign read must not take a row lock")
	}
	if !strings.Contains(strings.ToLower(sqlinline.QGetCampaignForUpdate), "for update") {
		t.Fatal("transactional campaign read must take a row lock")
	}
}
