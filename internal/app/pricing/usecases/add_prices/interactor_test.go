package add_prices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch/batchtest"
)

func seed(t *testing.T, env *batchtest.Env) {
	t.Helper()
	require.NoError(t, env.Seed([]*domain.PriceSet{{
		ID:        "pset_1",
		CreatedAt: batchtest.Now,
		Prices: []*domain.Price{
			{ID: "price_usd", PriceSetID: "pset_1", CurrencyCode: "usd", Amount: 1000, CreatedAt: batchtest.Now, Rules: domain.RuleSet{}},
		},
	}}, nil))
}

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("appends prices", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)
		uc := NewInteractor(env.Deps)

		added, err := uc.Execute(ctx, &Request{PriceSets: []SetPrices{{
			PriceSetID: "pset_1",
			Prices: []domain.PriceInput{
				{CurrencyCode: "usd", Amount: 900, MinQuantity: batchtest.Int64Ptr(10)},
				{CurrencyCode: "usd", Amount: 950, Rules: batchtest.Rules("region_id", "reg_1")},
			},
		}}})
		require.NoError(t, err)
		require.Len(t, added, 2)

		assert.Len(t, env.PriceSet("pset_1").Prices, 3)
		assert.Len(t, env.Sink.IDs(domain.EventPriceCreated), 2)
		assert.Len(t, env.Sink.IDs(domain.EventPriceRuleCreated), 1)
	})

	t.Run("conflicts with persisted sibling", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []SetPrices{{
			PriceSetID: "pset_1",
			Prices:     []domain.PriceInput{{CurrencyCode: "USD", Amount: 1}},
		}}})

		require.ErrorIs(t, err, domain.ErrConflict)
		var de *domain.Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "price_usd", de.IDs[0])
		assert.Len(t, env.PriceSet("pset_1").Prices, 1)
	})

	t.Run("conflicts within the batch across items of one set", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []SetPrices{
			{PriceSetID: "pset_1", Prices: []domain.PriceInput{{CurrencyCode: "eur", Amount: 1}}},
			{PriceSetID: "pset_1", Prices: []domain.PriceInput{{CurrencyCode: "eur", Amount: 2}}},
		}})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unknown set", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []SetPrices{
			{PriceSetID: "pset_1", Prices: []domain.PriceInput{{CurrencyCode: "eur", Amount: 1}}},
			{PriceSetID: "pset_nope", Prices: []domain.PriceInput{{CurrencyCode: "eur", Amount: 1}}},
		}})

		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Len(t, env.PriceSet("pset_1").Prices, 1)
		assert.Empty(t, env.Sink.Events())
	})

	t.Run("caller id already taken", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []SetPrices{{
			PriceSetID: "pset_1",
			Prices:     []domain.PriceInput{{ID: batchtest.StrPtr("price_usd"), CurrencyCode: "eur"}},
		}}})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
