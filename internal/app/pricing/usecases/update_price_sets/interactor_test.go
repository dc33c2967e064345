package update_price_sets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch/batchtest"
)

func seedSet(t *testing.T, env *batchtest.Env) {
	t.Helper()
	require.NoError(t, env.Seed([]*domain.PriceSet{{
		ID:        "pset_1",
		CreatedAt: batchtest.Now,
		Prices: []*domain.Price{
			{ID: "price_usd", PriceSetID: "pset_1", CurrencyCode: "usd", Amount: 1000, CreatedAt: batchtest.Now,
				Rules: domain.RuleSet{{ID: "prule_region", Attribute: "region_id", Value: "reg_1"}}},
			{ID: "price_eur", PriceSetID: "pset_1", CurrencyCode: "eur", Amount: 900, CreatedAt: batchtest.Now, Rules: domain.RuleSet{}},
		},
	}}, nil))
}

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("full replace of default prices", func(t *testing.T) {
		env := batchtest.NewEnv()
		seedSet(t, env)
		env.Clock.Advance(1)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []PriceSetUpdate{{
			ID: "pset_1",
			Prices: []domain.PriceInput{
				{ID: batchtest.StrPtr("price_usd"), CurrencyCode: "usd", Amount: 1100, Rules: batchtest.Rules("region_id", "reg_1", "channel", "web")},
				{CurrencyCode: "gbp", Amount: 800},
			},
		}}})
		require.NoError(t, err)

		ps := env.PriceSet("pset_1")
		require.Len(t, ps.Prices, 2)
		usd := env.Price("price_usd")
		assert.Equal(t, int64(1100), usd.Amount)
		assert.Equal(t, batchtest.Now, usd.CreatedAt)
		assert.Equal(t, 2, usd.RulesCount)
		regionRule, _ := usd.Rules.Get("region_id")
		assert.Equal(t, "reg_1", regionRule)
		assert.Contains(t, usd.Rules.IDs(), "prule_region")
		assert.Nil(t, env.Price("price_eur"))

		assert.Equal(t, []string{"pset_1"}, env.Sink.IDs(domain.EventPriceSetUpdated))
		assert.Len(t, env.Sink.IDs(domain.EventPriceCreated), 1)
		assert.Equal(t, []string{"price_usd"}, env.Sink.IDs(domain.EventPriceUpdated))
		assert.Equal(t, []string{"price_eur"}, env.Sink.IDs(domain.EventPriceDeleted))
		assert.Len(t, env.Sink.IDs(domain.EventPriceRuleCreated), 1)
	})

	t.Run("empty prices clears the set", func(t *testing.T) {
		env := batchtest.NewEnv()
		seedSet(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []PriceSetUpdate{{ID: "pset_1", Prices: []domain.PriceInput{}}}})
		require.NoError(t, err)
		assert.Empty(t, env.PriceSet("pset_1").Prices)
	})

	t.Run("missing set fails the whole batch", func(t *testing.T) {
		env := batchtest.NewEnv()
		seedSet(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []PriceSetUpdate{
			{ID: "pset_1", Prices: []domain.PriceInput{}},
			{ID: "pset_missing", Prices: []domain.PriceInput{}},
		}})

		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), "pset_missing")
		assert.Len(t, env.PriceSet("pset_1").Prices, 2)
		assert.Empty(t, env.Sink.Events())
	})

	t.Run("price id from another set is not found", func(t *testing.T) {
		env := batchtest.NewEnv()
		seedSet(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []PriceSetUpdate{{
			ID:     "pset_1",
			Prices: []domain.PriceInput{{ID: batchtest.StrPtr("price_elsewhere"), CurrencyCode: "usd"}},
		}}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicates in the replacement conflict", func(t *testing.T) {
		env := batchtest.NewEnv()
		seedSet(t, env)
		uc := NewInteractor(env.Deps)

		_, err := uc.Execute(ctx, &Request{PriceSets: []PriceSetUpdate{{
			ID: "pset_1",
			Prices: []domain.PriceInput{
				{ID: batchtest.StrPtr("price_eur"), CurrencyCode: "usd", Amount: 1},
				{CurrencyCode: "usd", Amount: 2},
			},
		}}})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}
