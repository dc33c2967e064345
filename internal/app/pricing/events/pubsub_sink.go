package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
)

const defaultPublishTimeout = 15 * time.Second

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

// PubSubSink publishes each event as one Pub/Sub message and waits for the
// server ack.
type PubSubSink struct {
	publisher publisher
	envelope  envelopeFactory
	timeout   time.Duration
}

// NewPubSubSink creates a sink publishing to p.
func NewPubSubSink(p *gcppubsub.Publisher, clk clock.Clock) *PubSubSink {
	return newPubSubSink(&gcpPublisher{Publisher: p}, clk)
}

func newPubSubSink(p publisher, clk clock.Clock) *PubSubSink {
	return &PubSubSink{
		publisher: p,
		envelope:  newEnvelopeFactory(clk),
		timeout:   defaultPublishTimeout,
	}
}

func (s *PubSubSink) Emit(ctx context.Context, name string, data []domain.EventData) error {
	env := s.envelope.wrap(name, data)
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", name, err)
	}

	msg := &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_id":     env.EventID,
			"event_type":   env.Name,
			"entity_count": strconv.Itoa(len(env.Data)),
			"created_at":   env.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result := s.publisher.Publish(publishCtx, msg)
	if result == nil {
		return fmt.Errorf("publisher unavailable for event %s", name)
	}
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", name, err)
	}
	return nil
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	if p == nil || p.Publisher == nil {
		return nil
	}
	return &gcpPublishResult{PublishResult: p.Publisher.Publish(ctx, msg)}
}

type gcpPublishResult struct {
	*gcppubsub.PublishResult
}

func (r *gcpPublishResult) Get(ctx context.Context) (string, error) {
	return r.PublishResult.Get(ctx)
}

var _ contracts.EventSink = (*PubSubSink)(nil)
