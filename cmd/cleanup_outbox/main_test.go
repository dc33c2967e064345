package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/logger"
)

type call struct {
	status string
	cutoff time.Time
}

type fakeJanitor struct {
	counts  map[string]int64
	counted []call
	purged  []call
	err     error
}

func (f *fakeJanitor) CountProcessedBefore(_ context.Context, status string, cutoff time.Time) (int64, error) {
	f.counted = append(f.counted, call{status, cutoff})
	return f.counts[status], f.err
}

func (f *fakeJanitor) PurgeProcessedBefore(_ context.Context, status string, cutoff time.Time) (int64, error) {
	f.purged = append(f.purged, call{status, cutoff})
	return f.counts[status], f.err
}

func TestCleanup(t *testing.T) {
	now := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	opts := Options{CompletedRetentionDays: 30, FailedRetentionDays: 90}
	counts := map[string]int64{m_outbox.StatusCompleted: 7, m_outbox.StatusFailed: 2}

	t.Run("purges each status with its own cutoff", func(t *testing.T) {
		janitor := &fakeJanitor{counts: counts}

		total, err := cleanup(context.Background(), janitor, opts, now, logger.Nop())
		require.NoError(t, err)

		assert.Equal(t, int64(9), total)
		assert.Empty(t, janitor.counted)
		assert.Equal(t, []call{
			{m_outbox.StatusCompleted, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
			{m_outbox.StatusFailed, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		}, janitor.purged)
	})

	t.Run("dry run only counts", func(t *testing.T) {
		janitor := &fakeJanitor{counts: counts}
		dry := opts
		dry.DryRun = true

		total, err := cleanup(context.Background(), janitor, dry, now, logger.Nop())
		require.NoError(t, err)

		assert.Equal(t, int64(9), total)
		assert.Len(t, janitor.counted, 2)
		assert.Empty(t, janitor.purged)
	})

	t.Run("stops on the first failure", func(t *testing.T) {
		janitor := &fakeJanitor{err: errors.New("deadline exceeded")}

		_, err := cleanup(context.Background(), janitor, opts, now, logger.Nop())
		assert.ErrorIs(t, err, janitor.err)
		assert.Len(t, janitor.purged, 1)
	})
}
