package events

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

type planApplier interface {
	Apply(ctx context.Context, plan *committer.CommitPlan) error
}

// OutboxSink records each event as a pending row of outbox_events.
type OutboxSink struct {
	applier  planApplier
	model    *m_outbox.Model
	envelope envelopeFactory
}

// NewOutboxSink creates an OutboxSink writing through applier, normally a
// *committer.Committer.
func NewOutboxSink(applier planApplier, clk clock.Clock) *OutboxSink {
	return &OutboxSink{
		applier:  applier,
		model:    m_outbox.NewModel(),
		envelope: newEnvelopeFactory(clk),
	}
}

func (s *OutboxSink) Emit(ctx context.Context, name string, data []domain.EventData) error {
	row := outboxRow(s.envelope.wrap(name, data))

	plan := committer.NewPlan()
	plan.Add(s.model.InsertMut(row))
	if err := s.applier.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to write outbox event %s: %w", name, err)
	}
	return nil
}

func outboxRow(env Envelope) *m_outbox.Data {
	return &m_outbox.Data{
		EventID:     env.EventID,
		EventType:   env.Name,
		Payload:     spanner.NullJSON{Value: env, Valid: true},
		EntityCount: int64(len(env.Data)),
		Status:      m_outbox.StatusPending,
		CreatedAt:   env.OccurredAt,
	}
}

var _ contracts.EventSink = (*OutboxSink)(nil)
