package list_events

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Request contains filtering parameters for listing events.
type Request struct {
	EventType *string // e.g. "pricing.price.created"
	Status    *string // "pending", "completed", "failed"
	Limit     int
}

// Query handles the list events query use case.
type Query struct {
	reader contracts.OutboxReader
}

// NewQuery creates a new list events query.
func NewQuery(reader contracts.OutboxReader) *Query {
	return &Query{
		reader: reader,
	}
}

// Execute retrieves events, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*m_outbox.Data, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return q.reader.ListEvents(ctx, contracts.EventFilter{
		EventType: req.EventType,
		Status:    req.Status,
		Limit:     limit,
	})
}
