package events

import (
	"context"

	"go.uber.org/multierr"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Fanout delivers every event to all sinks. One failing sink does not stop
// the others; their errors are combined.
type Fanout []contracts.EventSink

// NewFanout drops nil sinks.
func NewFanout(sinks ...contracts.EventSink) Fanout {
	out := make(Fanout, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f Fanout) Emit(ctx context.Context, name string, data []domain.EventData) error {
	var err error
	for _, sink := range f {
		err = multierr.Append(err, sink.Emit(ctx, name, data))
	}
	return err
}
