package domain

import (
	"strings"
	"time"
)

// Field length bounds enforced at campaign creation.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MaxMetadataURILen = 200
)

// Campaign is a time-boxed fundraising entity. All fields except
// DonatedAmount and IsActive are immutable after creation.
type Campaign struct {
	ID            string
	Creator       string
	Title         string
	Description   string
	MetadataURI   string
	GoalAmount    uint64
	DonatedAmount uint64
	Deadline      time.Time
	CreatedAt     time.Time
	IsActive      bool
}

// NewCampaignInput carries the caller-supplied fields for campaign creation.
type NewCampaignInput struct {
	Creator     string
	Title       string
	Description string
	MetadataURI string
	GoalAmount  uint64
	Deadline    time.Time
}

// NewCampaign validates the input against the creation preconditions and
// returns a fresh active campaign with a deterministic ID. The ID only
// depends on (creator, title), so re-creating the same pair collides in the
// registry instead of minting a second campaign.
func NewCampaign(input NewCampaignInput, now time.Time) (*Campaign, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.GoalAmount == 0 || input.GoalAmount > MaxAmount {
		return nil, ErrInvalidGoalAmount
	}
	if !input.Deadline.After(now) {
		return nil, ErrInvalidDeadline
	}
	if len(input.Title) == 0 {
		return nil, ErrInvalidTitle
	}
	if len(input.Title) > MaxTitleLen {
		return nil, ErrFieldTooLong
	}
	if len(input.Description) > MaxDescriptionLen {
		return nil, ErrFieldTooLong
	}
	if len(input.MetadataURI) > MaxMetadataURILen {
		return nil, ErrFieldTooLong
	}

	return &Campaign{
		ID:            CampaignID(input.Creator, input.Title),
		Creator:       input.Creator,
		Title:         input.Title,
		Description:   input.Description,
		MetadataURI:   input.MetadataURI,
		GoalAmount:    input.GoalAmount,
		DonatedAmount: 0,
		Deadline:      input.Deadline.UTC(),
		CreatedAt:     now.UTC(),
		IsActive:      true,
	}, nil
}

// Expired reports whether the deadline has passed at the given instant.
func (c *Campaign) Expired(now time.Time) bool {
	return !now.Before(c.Deadline)
}

// GoalReached reports whether the running donated total meets the goal.
func (c *Campaign) GoalReached() bool {
	return c.DonatedAmount >= c.GoalAmount
}

// EscrowAccount returns the ledger account holding this campaign's escrowed
// value (donations plus the storage reserve).
func (c *Campaign) EscrowAccount() string {
	return EscrowAccount(c.ID)
}
