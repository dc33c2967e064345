// Package events delivers pricing change events to their consumers: the
// Spanner outbox, Pub/Sub, the in-memory outbox and the log.
package events

import (
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/ids"
)

const eventIDPrefix = "evt"

// Envelope is the serialized form of one change event.
type Envelope struct {
	EventID    string             `json:"event_id"`
	Name       string             `json:"name"`
	OccurredAt time.Time          `json:"occurred_at"`
	Data       []domain.EventData `json:"data"`
}

type envelopeFactory struct {
	clock clock.Clock
	newID func(prefix string) string
}

func newEnvelopeFactory(clk clock.Clock) envelopeFactory {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return envelopeFactory{clock: clk, newID: ids.New}
}

func (f envelopeFactory) wrap(name string, data []domain.EventData) Envelope {
	return Envelope{
		EventID:    f.newID(eventIDPrefix),
		Name:       name,
		OccurredAt: f.clock.Now(),
		Data:       append([]domain.EventData(nil), data...),
	}
}
