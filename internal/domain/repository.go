package domain

import (
	"context"
	"time"
)

// CampaignRegistry owns the set of campaigns.
type CampaignRegistry interface {
	// Create persists a new campaign, returning ErrDuplicateCampaign when one
	// already exists under the same ID.
	Create(ctx context.Context, campaign *Campaign) error
	Get(ctx context.Context, id string) (*Campaign, error)
	// Update rewrites the mutable fields (DonatedAmount, IsActive).
	Update(ctx context.Context, campaign *Campaign) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Campaign, error)
}

// DonationLedger owns the donation records, one per accepted contribution.
type DonationLedger interface {
	Append(ctx context.Context, record *DonationRecord) error
	Get(ctx context.Context, id string) (*DonationRecord, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]DonationRecord, error)
	ListByDonor(ctx context.Context, campaignID, donor string) ([]DonationRecord, error)
	// Remove destroys a record. Refund relies on this being a one-shot
	// operation: a second Remove of the same ID reports ErrDonationNotFound.
	Remove(ctx context.Context, id string) error
}

// BalanceLedger moves value between accounts. It is the only component that
// touches balances; campaigns and donation records are pure metadata.
type BalanceLedger interface {
	// Transfer atomically moves amount from one account to the other,
	// returning ErrInsufficientFunds when the source balance is short.
	Transfer(ctx context.Context, from, to string, amount uint64) error
	Balance(ctx context.Context, account string) (uint64, error)
}

// TxRunner executes fn with all-or-nothing semantics: every store mutation
// made inside fn is either committed as a unit or discarded.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock supplies the current time. Expiry is always a fresh comparison
// against this clock; no background timer drives state transitions.
type Clock interface {
	Now() time.Time
}

// Notifier publishes one event per successful operation.
type Notifier interface {
	Emit(ctx context.Context, event Event) error
}
