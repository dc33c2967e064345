package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Invalidator is an event sink that retires every cached calculation on any
// pricing change.
type Invalidator struct {
	client *redis.Client
}

func NewInvalidator(client *redis.Client) *Invalidator {
	return &Invalidator{client: client}
}

func (i *Invalidator) Emit(ctx context.Context, name string, _ []domain.EventData) error {
	if err := i.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate price cache after %s: %w", name, err)
	}
	return nil
}

var _ contracts.EventSink = (*Invalidator)(nil)
