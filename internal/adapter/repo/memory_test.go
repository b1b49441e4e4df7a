package repo

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"crowdfund/internal/domain"
)

func TestMemoryCampaignRegistry(t *testing.T) {
	ctx := context.Background()
	registry := NewMemoryCampaignRegistry()

	campaign := &domain.Campaign{ID: "c1", Creator: "alice", GoalAmount: 100, IsActive: true}
	if err := registry.Create(ctx, campaign); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := registry.Create(ctx, campaign); !errors.Is(err, domain.ErrDuplicateCampaign) {
		t.Fatalf("duplicate create: got %v", err)
	}

	got, err := registry.Get(ctx, "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// Stored by value: mutating the returned copy must not leak back.
	got.DonatedAmount = 999
	again, _ := registry.Get(ctx, "c1")
	if again.DonatedAmount != 0 {
		t.Fatal("registry must hand out copies")
	}

	got.DonatedAmount = 40
	if err := registry.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ = registry.Get(ctx, "c1")
	if again.DonatedAmount != 40 {
		t.Fatalf("donated = %d after update, want 40", again.DonatedAmount)
	}

	if err := registry.Delete(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := registry.Get(ctx, "c1"); !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("get after delete: got %v", err)
	}
	if err := registry.Delete(ctx, "c1"); !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestMemoryDonationLedger(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryDonationLedger()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	records := []*domain.DonationRecord{
		{ID: "d1", CampaignID: "c1", Donor: "bob", Amount: 100, Timestamp: base},
		{ID: "d2", CampaignID: "c1", Donor: "bob", Amount: 200, Timestamp: base.Add(time.Second)},
		{ID: "d3", CampaignID: "c1", Donor: "carol", Amount: 300, Timestamp: base.Add(2 * time.Second)},
		{ID: "d4", CampaignID: "c2", Donor: "bob", Amount: 400, Timestamp: base.Add(3 * time.Second)},
	}
	for _, record := range records {
		if err := ledger.Append(ctx, record); err != nil {
			t.Fatalf("append %s: %v", record.ID, err)
		}
	}
	if err := ledger.Append(ctx, records[0]); !errors.Is(err, domain.ErrDuplicateDonation) {
		t.Fatalf("duplicate append: got %v", err)
	}

	byCampaign, err := ledger.ListByCampaign(ctx, "c1")
	if err != nil || len(byCampaign) != 3 {
		t.Fatalf("ListByCampaign = %d records, %v; want 3", len(byCampaign), err)
	}
	if byCampaign[0].ID != "d1" || byCampaign[2].ID != "d3" {
		t.Fatalf("records must be ordered by timestamp, got %v", byCampaign)
	}

	byDonor, err := ledger.ListByDonor(ctx, "c1", "bob")
	if err != nil || len(byDonor) != 2 {
		t.Fatalf("ListByDonor = %d records, %v; want 2", len(byDonor), err)
	}

	if err := ledger.Remove(ctx, "d1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := ledger.Remove(ctx, "d1"); !errors.Is(err, domain.ErrDonationNotFound) {
		t.Fatalf("second remove: got %v", err)
	}
	if _, err := ledger.Get(ctx, "d1"); !errors.Is(err, domain.ErrDonationNotFound) {
		t.Fatalf("get after remove: got %v", err)
	}
}

func TestMemoryBalanceLedger_Transfer(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryBalanceLedger()
	ledger.Credit("alice", 100)

	if err := ledger.Transfer(ctx, "alice", "bob", 60); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if balance, _ := ledger.Balance(ctx, "alice"); balance != 40 {
		t.Fatalf("alice = %d, want 40", balance)
	}
	if balance, _ := ledger.Balance(ctx, "bob"); balance != 60 {
		t.Fatalf("bob = %d, want 60", balance)
	}

	if err := ledger.Transfer(ctx, "alice", "bob", 41); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("short transfer: got %v", err)
	}
	// A failed transfer moves nothing.
	if balance, _ := ledger.Balance(ctx, "alice"); balance != 40 {
		t.Fatalf("alice = %d after failed transfer, want 40", balance)
	}
	if balance, _ := ledger.Balance(ctx, "bob"); balance != 60 {
		t.Fatalf("bob = %d after failed transfer, want 60", balance)
	}

	if balance, _ := ledger.Balance(ctx, "nobody"); balance != 0 {
		t.Fatalf("unknown account = %d, want 0", balance)
	}
}

func TestMemoryBalanceLedger_NeverWraps(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryBalanceLedger()
	ledger.Credit("escrow", math.MaxUint64-10)
	ledger.Credit("alice", 100)

	if err := ledger.Transfer(ctx, "alice", "escrow", 100); !errors.Is(err, domain.ErrOverflow) {
		t.Fatalf("overflowing transfer: got %v, want ErrOverflow", err)
	}
	// A rejected transfer moves nothing on either side.
	if balance, _ := ledger.Balance(ctx, "alice"); balance != 100 {
		t.Fatalf("alice = %d after rejected transfer, want 100", balance)
	}
	if balance, _ := ledger.Balance(ctx, "escrow"); balance != math.MaxUint64-10 {
		t.Fatalf("escrow = %d after rejected transfer, want max-10", balance)
	}

	// Seeding past the maximum clamps instead of wrapping.
	ledger.Credit("escrow", 100)
	if balance, _ := ledger.Balance(ctx, "escrow"); balance != math.MaxUint64 {
		t.Fatalf("escrow = %d after clamped credit, want max", balance)
	}
}
