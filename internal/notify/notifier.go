package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"crowdfund/internal/domain"
)

// LogNotifier writes each event as a structured log line. It is the default
// notifier when no broker is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Emit(_ context.Context, event domain.Event) error {
	n.log.Info().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Str("campaign_id", event.CampaignID).
		Str("actor", event.Actor).
		Uint64("amount", event.Amount).
		Time("at", event.At).
		Msg("escrow event")
	return nil
}

// MemoryNotifier records emitted events for assertions in tests.
type MemoryNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

func (n *MemoryNotifier) Emit(_ context.Context, event domain.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (n *MemoryNotifier) Events() []domain.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Event{}, n.events...)
}
