package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
)

// PostgresDonationLedger implements the donation ledger on PostgreSQL.
type PostgresDonationLedger struct {
	db *infra.SQLRunner
}

func NewPostgresDonationLedger(db *infra.SQLRunner) *PostgresDonationLedger {
	return &PostgresDonationLedger{db: db}
}

func (l *PostgresDonationLedger) Append(ctx context.Context, record *domain.DonationRecord) error {
	_, err := l.db.Exec(ctx, sqlinline.QInsertDonation,
		record.ID, record.CampaignID, record.Donor, int64(record.Amount), record.Timestamp)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateDonation
	}
	return err
}

func (l *PostgresDonationLedger) Get(ctx context.Context, id string) (*domain.DonationRecord, error) {
	row := l.db.QueryRow(ctx, sqlinline.QGetDonation, id)
	record, err := scanDonation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrDonationNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (l *PostgresDonationLedger) ListByCampaign(ctx context.Context, campaignID string) ([]domain.DonationRecord, error) {
	rows, err := l.db.Query(ctx, sqlinline.QListDonationsByCampaign, campaignID)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

func (l *PostgresDonationLedger) ListByDonor(ctx context.Context, campaignID, donor string) ([]domain.DonationRecord, error) {
	rows, err := l.db.Query(ctx, sqlinline.QListDonationsByDonor, campaignID, donor)
	if err != nil {
		return nil, err
	}
	return collectDonations(rows)
}

func (l *PostgresDonationLedger) Remove(ctx context.Context, id string) error {
	tag, err := l.db.Exec(ctx, sqlinline.QDeleteDonation, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDonationNotFound
	}
	return nil
}

func collectDonations(rows pgx.Rows) ([]domain.DonationRecord, error) {
	defer rows.Close()
	var items []domain.DonationRecord
	for rows.Next() {
		record, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *record)
	}
	return items, rows.Err()
}

func scanDonation(row pgx.Row) (*domain.DonationRecord, error) {
	var record domain.DonationRecord
	var amount int64
	if err := row.Scan(&record.ID, &record.CampaignID, &record.Donor, &amount, &record.Timestamp); err != nil {
		return nil, err
	}
	record.Amount = uint64(amount)
	return &record, nil
}
