package repo

import (
	"context"
	"math"
	"sort"
	"sync"

	"crowdfund/internal/domain"
)

// In-memory adapters back the unit tests and the no-database development
// mode. A single mutex per store keeps each operation atomic; the
// MemoryTxRunner serializes whole state transitions the way the production
// platform does.

// MemoryCampaignRegistry stores campaigns keyed by derived ID.
type MemoryCampaignRegistry struct {
	mu        sync.RWMutex
	campaigns map[string]domain.Campaign
}

func NewMemoryCampaignRegistry() *MemoryCampaignRegistry {
	return &MemoryCampaignRegistry{campaigns: make(map[string]domain.Campaign)}
}

func (r *MemoryCampaignRegistry) Create(_ context.Context, campaign *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[campaign.ID]; ok {
		return domain.ErrDuplicateCampaign
	}
	r.campaigns[campaign.ID] = *campaign
	return nil
}

func (r *MemoryCampaignRegistry) Get(_ context.Context, id string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if campaign, ok := r.campaigns[id]; ok {
		return &campaign, nil
	}
	return nil, domain.ErrCampaignNotFound
}

func (r *MemoryCampaignRegistry) Update(_ context.Context, campaign *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[campaign.ID]; !ok {
		return domain.ErrCampaignNotFound
	}
	r.campaigns[campaign.ID] = *campaign
	return nil
}

func (r *MemoryCampaignRegistry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[id]; !ok {
		return domain.ErrCampaignNotFound
	}
	delete(r.campaigns, id)
	return nil
}

func (r *MemoryCampaignRegistry) List(_ context.Context) ([]domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	items := make([]domain.Campaign, 0, len(r.campaigns))
	for _, campaign := range r.campaigns {
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

// MemoryDonationLedger stores donation records keyed by derived ID.
type MemoryDonationLedger struct {
	mu      sync.RWMutex
	records map[string]domain.DonationRecord
}

func NewMemoryDonationLedger() *MemoryDonationLedger {
	return &MemoryDonationLedger{records: make(map[string]domain.DonationRecord)}
}

func (l *MemoryDonationLedger) Append(_ context.Context, record *domain.DonationRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.records[record.ID]; ok {
		return domain.ErrDuplicateDonation
	}
	l.records[record.ID] = *record
	return nil
}

func (l *MemoryDonationLedger) Get(_ context.Context, id string) (*domain.DonationRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if record, ok := l.records[id]; ok {
		return &record, nil
	}
	return nil, domain.ErrDonationNotFound
}

func (l *MemoryDonationLedger) ListByCampaign(_ context.Context, campaignID string) ([]domain.DonationRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filter(func(r domain.DonationRecord) bool { return r.CampaignID == campaignID }), nil
}

func (l *MemoryDonationLedger) ListByDonor(_ context.Context, campaignID, donor string) ([]domain.DonationRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.filter(func(r domain.DonationRecord) bool {
		return r.CampaignID == campaignID && r.Donor == donor
	}), nil
}

func (l *MemoryDonationLedger) Remove(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.records[id]; !ok {
		return domain.ErrDonationNotFound
	}
	delete(l.records, id)
	return nil
}

// filter must be called with the lock held.
func (l *MemoryDonationLedger) filter(keep func(domain.DonationRecord) bool) []domain.DonationRecord {
	var items []domain.DonationRecord
	for _, record := range l.records {
		if keep(record) {
			items = append(items, record)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Timestamp.Before(items[j].Timestamp) })
	return items
}

// MemoryBalanceLedger keeps account balances in a map. Transfer debits and
// credits under one lock, so a transfer either applies fully or not at all.
type MemoryBalanceLedger struct {
	mu       sync.RWMutex
	balances map[string]uint64
}

func NewMemoryBalanceLedger() *MemoryBalanceLedger {
	return &MemoryBalanceLedger{balances: make(map[string]uint64)}
}

// Credit seeds an account balance, clamping at the maximum instead of
// wrapping. Intended for development mode and tests.
func (l *MemoryBalanceLedger) Credit(account string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next, err := domain.CheckedAdd(l.balances[account], amount)
	if err != nil {
		next = math.MaxUint64
	}
	l.balances[account] = next
}

func (l *MemoryBalanceLedger) Transfer(_ context.Context, from, to string, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from] < amount {
		return domain.ErrInsufficientFunds
	}
	next, err := domain.CheckedAdd(l.balances[to], amount)
	if err != nil {
		return err
	}
	l.balances[from] -= amount
	l.balances[to] = next
	return nil
}

func (l *MemoryBalanceLedger) Balance(_ context.Context, account string) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account], nil
}

// MemoryTxRunner serializes state transitions with a mutex. It provides
// mutual exclusion, not rollback: callers order every fallible check before
// the first mutation, and the balance transfer itself is atomic.
type MemoryTxRunner struct {
	mu sync.Mutex
}

func NewMemoryTxRunner() *MemoryTxRunner {
	return &MemoryTxRunner{}
}

func (r *MemoryTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(ctx)
}
