package update_price_list_prices

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch/batchtest"
)

func seed(t *testing.T, env *batchtest.Env) {
	t.Helper()
	listID := "plist_1"
	otherID := "plist_2"
	require.NoError(t, env.Seed(
		[]*domain.PriceSet{{ID: "pset_1", CreatedAt: batchtest.Now}, {ID: "pset_2", CreatedAt: batchtest.Now}},
		[]*domain.PriceList{
			{
				ID: listID, Title: "Sale", Type: domain.PriceListTypeSale, Status: domain.PriceListStatusActive, CreatedAt: batchtest.Now,
				Prices: []*domain.Price{
					{ID: "price_a", PriceSetID: "pset_1", PriceListID: &listID, CurrencyCode: "usd", Amount: 800, Rules: domain.RuleSet{}, CreatedAt: batchtest.Now},
					{ID: "price_b", PriceSetID: "pset_1", PriceListID: &listID, CurrencyCode: "eur", Amount: 700, Rules: domain.RuleSet{}, CreatedAt: batchtest.Now},
					{ID: "price_c", PriceSetID: "pset_2", PriceListID: &listID, CurrencyCode: "usd", Amount: 500, Rules: domain.RuleSet{}, CreatedAt: batchtest.Now},
				},
			},
			{
				ID: otherID, Title: "Other", Type: domain.PriceListTypeOverride, Status: domain.PriceListStatusActive, CreatedAt: batchtest.Now,
				Prices: []*domain.Price{
					{ID: "price_x", PriceSetID: "pset_1", PriceListID: &otherID, CurrencyCode: "usd", Amount: 1, Rules: domain.RuleSet{}, CreatedAt: batchtest.Now},
				},
			},
		},
	))
}

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces prices of named sets only", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)

		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceLists: []batch.ListPrices{{
			PriceListID: "plist_1",
			Prices: []domain.PriceInput{
				{ID: batchtest.StrPtr("price_a"), PriceSetID: "pset_1", CurrencyCode: "usd", Amount: 750},
				{PriceSetID: "pset_1", CurrencyCode: "gbp", Amount: 650},
			},
		}}})
		require.NoError(t, err)

		assert.Equal(t, int64(750), env.Price("price_a").Amount)
		assert.Nil(t, env.Price("price_b"))
		assert.NotNil(t, env.Price("price_c"))
		assert.Len(t, env.PriceList("plist_1").Prices, 3)

		assert.Equal(t, []string{"price_a"}, env.Sink.IDs(domain.EventPriceUpdated))
		assert.Equal(t, []string{"price_b"}, env.Sink.IDs(domain.EventPriceDeleted))
		assert.Len(t, env.Sink.IDs(domain.EventPriceCreated), 1)
	})

	t.Run("price of another list is rejected", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)

		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceLists: []batch.ListPrices{{
			PriceListID: "plist_1",
			Prices:      []domain.PriceInput{{ID: batchtest.StrPtr("price_x"), PriceSetID: "pset_1", CurrencyCode: "usd"}},
		}}})

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorIs(t, err, domain.ErrPriceNotInPriceList)
		assert.Equal(t, int64(1), env.Price("price_x").Amount)
	})

	t.Run("duplicate replacement prices conflict", func(t *testing.T) {
		env := batchtest.NewEnv()
		seed(t, env)

		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceLists: []batch.ListPrices{
			{PriceListID: "plist_1", Prices: []domain.PriceInput{{PriceSetID: "pset_2", CurrencyCode: "usd", Amount: 1}}},
			{PriceListID: "plist_1", Prices: []domain.PriceInput{{PriceSetID: "pset_2", CurrencyCode: "usd", Amount: 2}}},
		}})

		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NotNil(t, env.Price("price_c"))
	})
}
