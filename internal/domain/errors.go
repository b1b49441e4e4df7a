package domain

import "errors"

// Errors are grouped by the taxonomy the escrow service reports to callers:
// validation, authorization, state, arithmetic, and integrity. Handlers map
// each group to an HTTP status; the escrow core never retries on any of them.
var (
	// Validation.
	ErrInvalidGoalAmount     = errors.New("goal amount must be positive")
	ErrInvalidDeadline       = errors.New("deadline must be in the future")
	ErrInvalidTitle          = errors.New("title must not be empty")
	ErrFieldTooLong          = errors.New("field exceeds maximum length")
	ErrInvalidDonationAmount = errors.New("donation amount must be positive")

	// Authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// State.
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrDonationNotFound     = errors.New("donation record not found")
	ErrDuplicateCampaign    = errors.New("campaign already exists for creator and title")
	ErrDuplicateDonation    = errors.New("donation record already exists")
	ErrCampaignNotActive    = errors.New("campaign is not active")
	ErrCampaignExpired      = errors.New("campaign deadline has passed")
	ErrCampaignNotExpired   = errors.New("campaign deadline has not passed")
	ErrGoalNotReached       = errors.New("funding goal not reached")
	ErrGoalReached          = errors.New("funding goal reached")
	ErrInvalidCampaign      = errors.New("donation record does not belong to campaign")
	ErrCampaignHasDonations = errors.New("campaign still holds donations")

	// Arithmetic.
	ErrOverflow          = errors.New("amount overflow")
	ErrUnderflow         = errors.New("amount underflow")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrTransferFailed wraps balance ledger failures that are not a plain
	// insufficient balance.
	ErrTransferFailed = errors.New("balance transfer failed")
)
