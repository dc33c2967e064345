package list_price_sets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_prices"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_price_sets"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch/batchtest"
)

func seed(t *testing.T, env *batchtest.Env) {
	ids := batchtest.SeqIDs()
	var sets []*domain.PriceSet
	for i, id := range []string{"pset_a", "pset_b"} {
		p, err := domain.BuildPrice(domain.PriceInput{CurrencyCode: "usd", Amount: int64(1000 * (i + 1))}, id, nil, batchtest.Now, ids)
		require.NoError(t, err)
		sets = append(sets, &domain.PriceSet{ID: id, Prices: []*domain.Price{p}, CreatedAt: batchtest.Now})
	}
	require.NoError(t, env.Seed(sets, nil))
}

func TestQuery_Execute(t *testing.T) {
	env := batchtest.NewEnv()
	seed(t, env)
	q := list_price_sets.NewQuery(env.Store, calculate_prices.NewQuery(env.Store, env.Clock, nil))
	ctx := context.Background()

	t.Run("without context", func(t *testing.T) {
		views, err := q.Execute(ctx, &list_price_sets.Request{IDs: []string{"pset_b", "pset_missing", "pset_a"}})
		require.NoError(t, err)

		require.Len(t, views, 2)
		for _, v := range views {
			assert.Len(t, v.Prices, 1)
			assert.Nil(t, v.CalculatedPrice)
		}
	})

	t.Run("with context", func(t *testing.T) {
		views, err := q.Execute(ctx, &list_price_sets.Request{
			IDs:     []string{"pset_a", "pset_b"},
			Context: &domain.PricingContext{CurrencyCode: "usd"},
		})
		require.NoError(t, err)

		require.Len(t, views, 2)
		for _, v := range views {
			require.NotNil(t, v.CalculatedPrice)
			assert.Equal(t, v.ID, v.CalculatedPrice.PriceSetID)
			assert.Equal(t, v.Prices[0].Amount, *v.CalculatedPrice.CalculatedAmount)
		}
	})

	t.Run("rejects empty request", func(t *testing.T) {
		_, err := q.Execute(ctx, &list_price_sets.Request{})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
