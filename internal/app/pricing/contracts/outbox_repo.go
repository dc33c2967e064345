package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
)

// EventFilter narrows an outbox listing.
type EventFilter struct {
	EventType *string
	Status    *string
	Limit     int
}

// OutboxReader lists persisted change events, newest first.
type OutboxReader interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*m_outbox.Data, error)
}

// OutboxJanitor counts and purges events of one status processed before a cutoff.
type OutboxJanitor interface {
	CountProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error)
	PurgeProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error)
}
