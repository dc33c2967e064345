package events

import (
	"context"
	"sort"
	"sync"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

const defaultMemoryLimit = 50

// MemoryOutbox keeps outbox rows in process. It backs the events endpoint
// when the service runs on the in-memory store.
type MemoryOutbox struct {
	mu       sync.RWMutex
	rows     []*m_outbox.Data
	envelope envelopeFactory
}

func NewMemoryOutbox(clk clock.Clock) *MemoryOutbox {
	return &MemoryOutbox{envelope: newEnvelopeFactory(clk)}
}

func (o *MemoryOutbox) Emit(_ context.Context, name string, data []domain.EventData) error {
	row := outboxRow(o.envelope.wrap(name, data))

	o.mu.Lock()
	o.rows = append(o.rows, row)
	o.mu.Unlock()
	return nil
}

// ListEvents returns matching rows, newest first.
func (o *MemoryOutbox) ListEvents(_ context.Context, filter contracts.EventFilter) ([]*m_outbox.Data, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultMemoryLimit
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*m_outbox.Data, 0, len(o.rows))
	for i := len(o.rows) - 1; i >= 0; i-- {
		row := o.rows[i]
		if filter.EventType != nil && row.EventType != *filter.EventType {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		c := *row
		out = append(out, &c)
	}
	// Insertion order already breaks ties between equal timestamps.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var (
	_ contracts.EventSink    = (*MemoryOutbox)(nil)
	_ contracts.OutboxReader = (*MemoryOutbox)(nil)
)
