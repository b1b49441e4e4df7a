package escrow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
	"crowdfund/pkg/metrics"
)

// Service is the escrow state machine. It is the only component that mutates
// campaigns and donation records; every operation re-reads entity state inside
// the transaction boundary and either commits all of its effects or none.
type Service struct {
	campaigns domain.CampaignRegistry
	donations domain.DonationLedger
	balances  domain.BalanceLedger
	tx        domain.TxRunner
	clock     domain.Clock
	notifier  domain.Notifier

	// reserve is the minimum balance kept on the escrow account while the
	// campaign record persists. It is funded by the creator at creation and
	// returned on delete.
	reserve uint64

	log zerolog.Logger
}

// NewService wires the escrow state machine to its collaborators.
func NewService(
	campaigns domain.CampaignRegistry,
	donations domain.DonationLedger,
	balances domain.BalanceLedger,
	tx domain.TxRunner,
	clock domain.Clock,
	notifier domain.Notifier,
	reserve uint64,
	log zerolog.Logger,
) *Service {
	return &Service{
		campaigns: campaigns,
		donations: donations,
		balances:  balances,
		tx:        tx,
		clock:     clock,
		notifier:  notifier,
		reserve:   reserve,
		log:       log,
	}
}

// Create opens a new campaign for (creator, title) and funds its storage
// reserve from the creator's balance.
func (s *Service) Create(ctx context.Context, input domain.NewCampaignInput) (campaign *domain.Campaign, err error) {
	defer func() { s.observe("create", err) }()

	campaign, err = domain.NewCampaign(input, s.clock.Now())
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		// Duplicate check precedes the reserve transfer so a failed create
		// never strands the reserve on an escrow account it does not own.
		if _, err := s.campaigns.Get(ctx, campaign.ID); err == nil {
			return domain.ErrDuplicateCampaign
		} else if !errors.Is(err, domain.ErrCampaignNotFound) {
			return err
		}
		if s.reserve > 0 {
			if err := s.transfer(ctx, campaign.Creator, campaign.EscrowAccount(), s.reserve); err != nil {
				return err
			}
		}
		return s.campaigns.Create(ctx, campaign)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, domain.EventCampaignCreated, campaign.ID, campaign.Creator, campaign.GoalAmount)
	return campaign, nil
}

// Donate accepts a contribution against an active, unexpired campaign. The
// value transfer, the donation record, and the donated-total bump are one
// atomic unit.
func (s *Service) Donate(ctx context.Context, campaignID, donor string, amount uint64) (record *domain.DonationRecord, err error) {
	defer func() { s.observe("donate", err) }()

	if amount == 0 {
		return nil, domain.ErrInvalidDonationAmount
	}
	if amount > domain.MaxAmount {
		return nil, domain.ErrOverflow
	}

	now := s.clock.Now()
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		campaign, err := s.campaigns.Get(ctx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.IsActive {
			return domain.ErrCampaignNotActive
		}
		if campaign.Expired(now) {
			return domain.ErrCampaignExpired
		}

		total, err := domain.CheckedAdd(campaign.DonatedAmount, amount)
		if err != nil {
			return err
		}
		if total > domain.MaxAmount {
			return domain.ErrOverflow
		}

		record = domain.NewDonationRecord(campaign.ID, donor, amount, now)
		if _, err := s.donations.Get(ctx, record.ID); err == nil {
			return domain.ErrDuplicateDonation
		} else if !errors.Is(err, domain.ErrDonationNotFound) {
			return err
		}

		if err := s.transfer(ctx, donor, campaign.EscrowAccount(), amount); err != nil {
			return err
		}
		if err := s.donations.Append(ctx, record); err != nil {
			return err
		}
		campaign.DonatedAmount = total
		return s.campaigns.Update(ctx, campaign)
	})
	if err != nil {
		return nil, err
	}

	metrics.EscrowedAmount.WithLabelValues("in").Add(float64(amount))
	s.emit(ctx, domain.EventCampaignDonated, campaignID, donor, amount)
	return record, nil
}

// Withdraw releases the escrowed donations (balance minus the storage
// reserve) to the creator once the deadline has passed with the goal met.
// It deactivates the campaign, so it can succeed at most once.
func (s *Service) Withdraw(ctx context.Context, campaignID, requester string) (amount uint64, err error) {
	defer func() { s.observe("withdraw", err) }()

	now := s.clock.Now()
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		campaign, err := s.campaigns.Get(ctx, campaignID)
		if err != nil {
			return err
		}
		if campaign.Creator != requester {
			return domain.ErrUnauthorized
		}
		if !campaign.IsActive {
			return domain.ErrCampaignNotActive
		}
		if !campaign.Expired(now) {
			return domain.ErrCampaignNotExpired
		}
		if !campaign.GoalReached() {
			return domain.ErrGoalNotReached
		}

		balance, err := s.balances.Balance(ctx, campaign.EscrowAccount())
		if err != nil {
			return fmt.Errorf("read escrow balance: %w", err)
		}
		amount, err = domain.CheckedSub(balance, s.reserve)
		if err != nil {
			// The reserve was funded at creation, so a short balance here is
			// an accounting integrity failure, not a caller mistake.
			return domain.ErrInsufficientFunds
		}

		if err := s.transfer(ctx, campaign.EscrowAccount(), campaign.Creator, amount); err != nil {
			return err
		}
		campaign.IsActive = false
		return s.campaigns.Update(ctx, campaign)
	})
	if err != nil {
		return 0, err
	}

	metrics.EscrowedAmount.WithLabelValues("out").Add(float64(amount))
	s.emit(ctx, domain.EventCampaignWithdrawn, campaignID, requester, amount)
	return amount, nil
}

// Refund returns one donation record's exact amount to its donor after the
// deadline has passed with the goal unmet, and destroys the record. A
// destroyed record cannot be refunded again.
func (s *Service) Refund(ctx context.Context, campaignID, donor, donationID string) (amount uint64, err error) {
	defer func() { s.observe("refund", err) }()

	now := s.clock.Now()
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		campaign, err := s.campaigns.Get(ctx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.Expired(now) {
			return domain.ErrCampaignNotExpired
		}
		if campaign.GoalReached() {
			return domain.ErrGoalReached
		}

		record, err := s.donations.Get(ctx, donationID)
		if err != nil {
			return err
		}
		if record.CampaignID != campaign.ID {
			return domain.ErrInvalidCampaign
		}
		if record.Donor != donor {
			return domain.ErrUnauthorized
		}

		total, err := domain.CheckedSub(campaign.DonatedAmount, record.Amount)
		if err != nil {
			return err
		}

		if err := s.transfer(ctx, campaign.EscrowAccount(), record.Donor, record.Amount); err != nil {
			return err
		}
		if err := s.donations.Remove(ctx, record.ID); err != nil {
			return err
		}
		amount = record.Amount
		campaign.DonatedAmount = total
		return s.campaigns.Update(ctx, campaign)
	})
	if err != nil {
		return 0, err
	}

	metrics.EscrowedAmount.WithLabelValues("out").Add(float64(amount))
	s.emit(ctx, domain.EventCampaignRefunded, campaignID, donor, amount)
	return amount, nil
}

// RefundDonor refunds every live donation record the donor holds against the
// campaign, one record at a time, and returns the total returned.
func (s *Service) RefundDonor(ctx context.Context, campaignID, donor string) (uint64, int, error) {
	records, err := s.donations.ListByDonor(ctx, campaignID, donor)
	if err != nil {
		return 0, 0, err
	}
	if len(records) == 0 {
		return 0, 0, domain.ErrDonationNotFound
	}

	var total uint64
	for _, record := range records {
		amount, err := s.Refund(ctx, campaignID, donor, record.ID)
		if err != nil {
			return total, 0, err
		}
		total += amount
	}
	return total, len(records), nil
}

// Delete destroys a campaign that holds no donations and returns the
// remaining escrow balance (the storage reserve) to the creator.
func (s *Service) Delete(ctx context.Context, campaignID, requester string) (err error) {
	defer func() { s.observe("delete", err) }()

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		campaign, err := s.campaigns.Get(ctx, campaignID)
		if err != nil {
			return err
		}
		if campaign.Creator != requester {
			return domain.ErrUnauthorized
		}
		if campaign.DonatedAmount != 0 {
			return domain.ErrCampaignHasDonations
		}

		balance, err := s.balances.Balance(ctx, campaign.EscrowAccount())
		if err != nil {
			return fmt.Errorf("read escrow balance: %w", err)
		}
		if balance > 0 {
			if err := s.transfer(ctx, campaign.EscrowAccount(), campaign.Creator, balance); err != nil {
				return err
			}
		}
		return s.campaigns.Delete(ctx, campaign.ID)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, domain.EventCampaignDeleted, campaignID, requester, 0)
	return nil
}

// Campaign reads one campaign by ID.
func (s *Service) Campaign(ctx context.Context, campaignID string) (*domain.Campaign, error) {
	return s.campaigns.Get(ctx, campaignID)
}

// Campaigns lists all campaigns.
func (s *Service) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	return s.campaigns.List(ctx)
}

// Donations lists the live donation records for a campaign, optionally
// narrowed to one donor.
func (s *Service) Donations(ctx context.Context, campaignID, donor string) ([]domain.DonationRecord, error) {
	if donor != "" {
		return s.donations.ListByDonor(ctx, campaignID, donor)
	}
	return s.donations.ListByCampaign(ctx, campaignID)
}

func (s *Service) transfer(ctx context.Context, from, to string, amount uint64) error {
	err := s.balances.Transfer(ctx, from, to, amount)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInsufficientFunds):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
}

func (s *Service) emit(ctx context.Context, kind domain.EventType, campaignID, actor string, amount uint64) {
	event := domain.Event{
		ID:         uuid.NewString(),
		Type:       kind,
		CampaignID: campaignID,
		Actor:      actor,
		Amount:     amount,
		At:         s.clock.Now().UTC(),
	}
	// Notifications are informational; a failed emit never fails the
	// operation that produced it.
	if err := s.notifier.Emit(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event", string(kind)).Str("campaign_id", campaignID).Msg("event emit failed")
	}
}

func (s *Service) observe(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.Operations.WithLabelValues(operation, outcome).Inc()
}
