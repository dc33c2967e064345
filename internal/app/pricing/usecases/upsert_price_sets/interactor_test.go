package upsert_price_sets

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
		ID:        "pset_main",
		CreatedAt: batchtest.Now,
		Prices: []*domain.Price{
			{ID: "price_usd", PriceSetID: "pset_main", CurrencyCode: "usd", Amount: 1000, Rules: domain.RuleSet{}, CreatedAt: batchtest.Now},
			{ID: "price_eur", PriceSetID: "pset_main", CurrencyCode: "eur", Amount: 900, Rules: domain.RuleSet{}, CreatedAt: batchtest.Now},
		},
	}}, nil))
}

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and updates in request order", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)
		uc := NewInteractor(env.Deps)

		sets, err := uc.Execute(ctx, &Request{PriceSets: []PriceSetUpsert{
			{Prices: []domain.PriceInput{{CurrencyCode: "usd", Amount: 50}}},
			{ID: batchtest.StrPtr("pset_main"), Prices: []domain.PriceInput{{ID: batchtest.StrPtr("price_usd"), CurrencyCode: "usd", Amount: 1100}}},
			{ID: batchtest.StrPtr("pset_new")},
		}})
		require.NoError(t, err)
		require.Len(t, sets, 3)
		assert.NotEqual(t, "pset_main", sets[0].ID)
		assert.Equal(t, "pset_main", sets[1].ID)
		assert.Equal(t, "pset_new", sets[2].ID)

		updated := env.PriceSet("pset_main")
		require.NotNil(t, updated)
		require.Len(t, updated.Prices, 1)
		assert.Equal(t, int64(1100), updated.Prices[0].Amount)
		assert.Nil(t, env.Price("price_eur"))

		require.NotNil(t, env.PriceSet(sets[0].ID))
		require.NotNil(t, env.PriceSet("pset_new"))

		assert.ElementsMatch(t, []string{sets[0].ID, "pset_new"}, env.Sink.IDs(domain.EventPriceSetCreated))
		assert.Equal(t, []string{"pset_main"}, env.Sink.IDs(domain.EventPriceSetUpdated))
		assert.Equal(t, []string{"price_usd"}, env.Sink.IDs(domain.EventPriceUpdated))
		assert.Equal(t, []string{"price_eur"}, env.Sink.IDs(domain.EventPriceDeleted))
		assert.Len(t, env.Sink.IDs(domain.EventPriceCreated), 1)
	})

	t.Run("nil prices leave an existing set untouched", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)

		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceSets: []PriceSetUpsert{{ID: batchtest.StrPtr("pset_main")}}})
		require.NoError(t, err)
		assert.Len(t, env.PriceSet("pset_main").Prices, 2)
		assert.Empty(t, env.Sink.IDs(domain.EventPriceDeleted))
	})

	t.Run("new set may not take a stored price id", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)

		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceSets: []PriceSetUpsert{
			{ID: batchtest.StrPtr("pset_2"), Prices: []domain.PriceInput{{ID: batchtest.StrPtr("price_usd"), CurrencyCode: "gbp", Amount: 1}}},
		}})
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.Nil(t, env.PriceSet("pset_2"))
		assert.Equal(t, "pset_main", env.Price("price_usd").PriceSetID)
	})

	t.Run("failure leaves every set untouched", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)

		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceSets: []PriceSetUpsert{
			{ID: batchtest.StrPtr("pset_new"), Prices: []domain.PriceInput{{CurrencyCode: "usd", Amount: 1}}},
			{ID: batchtest.StrPtr("pset_main"), Prices: []domain.PriceInput{
				{CurrencyCode: "usd", Amount: 1},
				{CurrencyCode: "USD", Amount: 2},
			}},
		}})
		require.ErrorIs(t, err, domain.ErrConflict)
		assert.Nil(t, env.PriceSet("pset_new"))
		assert.Len(t, env.PriceSet("pset_main").Prices, 2)
		assert.Empty(t, env.Sink.Events())
	})

	t.Run("repeated set id conflicts", func(t *testing.T) {
		env := batchtest.NewEnv()

		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceSets: []PriceSetUpsert{
			{ID: batchtest.StrPtr("pset_x")},
			{ID: batchtest.StrPtr("pset_x")},
		}})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
