package repo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

const defaultEventsLimit = 50

// OutboxRepo reads and maintains the outbox_events table.
type OutboxRepo struct {
	client *spanner.Client
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(client *spanner.Client) *OutboxRepo {
	return &OutboxRepo{client: client}
}

// ListEvents returns events newest first.
func (r *OutboxRepo) ListEvents(ctx context.Context, filter contracts.EventFilter) ([]*m_outbox.Data, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEventsLimit
	}

	b := query.From(m_outbox.TableName).Select(m_outbox.Columns...)
	if filter.EventType != nil {
		b = b.Where(query.Eq(m_outbox.EventType, *filter.EventType))
	}
	if filter.Status != nil {
		b = b.Where(query.Eq(m_outbox.Status, *filter.Status))
	}
	stmt := b.OrderBy(m_outbox.CreatedAt, query.Desc).Limit(int64(limit)).Build()

	events, err := queryRows[m_outbox.Data](ctx, r.client.Single(), stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// CountProcessedBefore counts events of status processed before cutoff.
func (r *OutboxRepo) CountProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error) {
	stmt := processedBefore(status, cutoff).Count().Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	var count int64
	if err := row.Columns(&count); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return count, nil
}

// PurgeProcessedBefore deletes events of status processed before cutoff and
// returns the number of rows removed.
func (r *OutboxRepo) PurgeProcessedBefore(ctx context.Context, status string, cutoff time.Time) (int64, error) {
	stmt := spanner.Statement{
		SQL: fmt.Sprintf("DELETE FROM %s WHERE %s = @status AND %s < @cutoff",
			m_outbox.TableName, m_outbox.Status, m_outbox.ProcessedAt),
		Params: map[string]interface{}{
			"status": status,
			"cutoff": cutoff,
		},
	}

	var deleted int64
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		n, err := txn.Update(ctx, stmt)
		if err != nil {
			return err
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge events: %w", err)
	}
	return deleted, nil
}

func processedBefore(status string, cutoff time.Time) *query.Builder {
	return query.From(m_outbox.TableName).Where(
		query.Eq(m_outbox.Status, status),
		query.Lt(m_outbox.ProcessedAt, cutoff),
	)
}

var (
	_ contracts.OutboxReader  = (*OutboxRepo)(nil)
	_ contracts.OutboxJanitor = (*OutboxRepo)(nil)
)
