package testutil

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/models/m_outbox"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/ids"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// USD builds a price input in usd with optional attribute/value rule pairs.
func USD(amount int64, rules ...string) domain.PriceInput {
	in := domain.PriceInput{CurrencyCode: "usd", Amount: amount, Rules: map[string]*string{}}
	for i := 0; i+1 < len(rules); i += 2 {
		v := rules[i+1]
		in.Rules[rules[i]] = &v
	}
	return in
}

// SeedPriceSet writes a set with default prices through the Spanner store.
func SeedPriceSet(t *testing.T, client *spanner.Client, id string, prices ...domain.PriceInput) *domain.PriceSet {
	t.Helper()

	now := time.Now().UTC()
	ps := &domain.PriceSet{ID: id, CreatedAt: now}
	for _, in := range prices {
		p, err := domain.BuildPrice(in, id, nil, now, ids.New)
		require.NoError(t, err)
		ps.Prices = append(ps.Prices, p)
	}

	store := repo.NewStore(client, clock.NewRealClock())
	err := store.WithinTransaction(context.Background(), func(ctx context.Context, r contracts.Repository) error {
		return r.UpsertPriceSets(ctx, []*domain.PriceSet{ps})
	})
	require.NoError(t, err, "failed to seed price set")
	return ps
}

// SeedPriceList writes an active list, created at createdAt, through the
// Spanner store.
func SeedPriceList(t *testing.T, client *spanner.Client, in domain.PriceListInput, createdAt time.Time) *domain.PriceList {
	t.Helper()

	if in.Title == "" {
		in.Title = "Test list"
	}
	if in.Status == "" {
		in.Status = domain.PriceListStatusActive
	}
	pl, err := domain.NewPriceList(in, createdAt, ids.New)
	require.NoError(t, err)

	store := repo.NewStore(client, clock.NewRealClock())
	err = store.WithinTransaction(context.Background(), func(ctx context.Context, r contracts.Repository) error {
		return r.InsertPriceLists(ctx, []*domain.PriceList{pl})
	})
	require.NoError(t, err, "failed to seed price list")
	return pl
}

// AssertOutboxEventCount asserts how many outbox rows carry eventType.
func AssertOutboxEventCount(t *testing.T, client *spanner.Client, eventType string, expected int) {
	t.Helper()

	stmt := query.From(m_outbox.TableName).Where(query.Eq(m_outbox.EventType, eventType)).Count().Build()
	iter := client.Single().Query(context.Background(), stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to count outbox events")

	var count int64
	require.NoError(t, row.Columns(&count))
	require.Equal(t, int64(expected), count, "unexpected %s event count", eventType)
}
