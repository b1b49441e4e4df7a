package domain

import "time"

// DonationRecord is the receipt for one accepted contribution. A donor may
// hold several records against the same campaign; each one is refundable on
// its own. Records are immutable and destroyed exactly once, on refund.
type DonationRecord struct {
	ID         string
	CampaignID string
	Donor      string
	Amount     uint64
	Timestamp  time.Time
}

// NewDonationRecord builds the record bound to a campaign, donor, and the
// acceptance instant. The ID is derived from all three, so two donations by
// the same donor at distinct instants stay independently refundable.
func NewDonationRecord(campaignID, donor string, amount uint64, at time.Time) *DonationRecord {
	return &DonationRecord{
		ID:         DonationID(campaignID, donor, at),
		CampaignID: campaignID,
		Donor:      donor,
		Amount:     amount,
		Timestamp:  at.UTC(),
	}
}
