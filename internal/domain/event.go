package domain

import "time"

// EventType enumerates the notifications emitted after each successful
// escrow transition.
type EventType string

const (
	EventCampaignCreated   EventType = "campaign.created"
	EventCampaignDonated   EventType = "campaign.donated"
	EventCampaignWithdrawn EventType = "campaign.withdrawn"
	EventCampaignRefunded  EventType = "campaign.refunded"
	EventCampaignDeleted   EventType = "campaign.deleted"
)

// Event carries the key outcome fields of one completed operation. Events are
// informational for external observers; the escrow core never consumes them.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	CampaignID string    `json:"campaign_id"`
	Actor      string    `json:"actor"`
	Amount     uint64    `json:"amount"`
	At         time.Time `json:"at"`
}
