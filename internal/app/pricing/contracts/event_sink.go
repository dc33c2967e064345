package contracts

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// EventSink delivers change events after a batch has committed.
type EventSink interface {
	Emit(ctx context.Context, name string, data []domain.EventData) error
}
