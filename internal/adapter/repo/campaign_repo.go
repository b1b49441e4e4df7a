package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"crowdfund/internal/domain"
	"crowdfund/internal/infra"
	"crowdfund/internal/sqlinline"
	"crowdfund/pkg/tx"
)

// PostgresCampaignRegistry implements the campaign registry on PostgreSQL.
type PostgresCampaignRegistry struct {
	db *infra.SQLRunner
}

func NewPostgresCampaignRegistry(db *infra.SQLRunner) *PostgresCampaignRegistry {
	return &PostgresCampaignRegistry{db: db}
}

func (r *PostgresCampaignRegistry) Create(ctx context.Context, campaign *domain.Campaign) error {
	_, err := r.db.Exec(ctx, sqlinline.QInsertCampaign,
		campaign.ID, campaign.Creator, campaign.Title, campaign.Description, campaign.MetadataURI,
		int64(campaign.GoalAmount), int64(campaign.DonatedAmount), campaign.Deadline, campaign.CreatedAt, campaign.IsActive)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicateCampaign
	}
	return err
}

// Get reads one campaign. Inside a transaction the row is locked, so two
// concurrent state transitions on the same campaign serialize and the second
// re-reads the committed donated_amount instead of writing back a stale one.
func (r *PostgresCampaignRegistry) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	query := sqlinline.QGetCampaign
	if _, ok := tx.From(ctx); ok {
		query = sqlinline.QGetCampaignForUpdate
	}
	row := r.db.QueryRow(ctx, query, id)
	campaign, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (r *PostgresCampaignRegistry) Update(ctx context.Context, campaign *domain.Campaign) error {
	tag, err := r.db.Exec(ctx, sqlinline.QUpdateCampaign,
		campaign.ID, int64(campaign.DonatedAmount), campaign.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *PostgresCampaignRegistry) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, sqlinline.QDeleteCampaign, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *PostgresCampaignRegistry) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.Query(ctx, sqlinline.QListCampaigns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *campaign)
	}
	return items, rows.Err()
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var campaign domain.Campaign
	var goal, donated int64
	if err := row.Scan(&campaign.ID, &campaign.Creator, &campaign.Title, &campaign.Description,
		&campaign.MetadataURI, &goal, &donated, &campaign.Deadline, &campaign.CreatedAt, &campaign.IsActive); err != nil {
		return nil, err
	}
	campaign.GoalAmount = uint64(goal)
	campaign.DonatedAmount = uint64(donated)
	return &campaign, nil
}
