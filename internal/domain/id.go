package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// IDs are derived, not allocated: hashing the identifying tuple gives every
// caller the same address for the same entity, which is what makes the
// duplicate-campaign check and refund lookups work without a separate index.

// CampaignID derives the stable identifier for a (creator, title) pair.
func CampaignID(creator, title string) string {
	return deriveID("campaign", creator, title)
}

// DonationID derives the stable identifier for one contribution event.
func DonationID(campaignID, donor string, at time.Time) string {
	return deriveID("donation", campaignID, donor, strconv.FormatInt(at.UnixNano(), 10))
}

// EscrowAccount names the balance-ledger account that custodies a campaign's
// escrowed value.
func EscrowAccount(campaignID string) string {
	return "escrow:" + campaignID
}

func deriveID(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
