//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/repo"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_set"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/ids"
	"github.com/light-bringer/pricing-service/tests/testutil"
)

func TestStore_PriceSets(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	store := repo.NewStore(client, clock.NewRealClock())

	seeded := testutil.SeedPriceSet(t, client, "pset_store",
		testutil.USD(1000),
		testutil.USD(900, "region_id", "reg_1", "customer_group_id", "vip"),
	)

	t.Run("loads prices with sorted rules", func(t *testing.T) {
		var sets []*domain.PriceSet
		err := store.WithinTransaction(ctx, func(ctx context.Context, r contracts.Repository) error {
			var err error
			sets, err = r.FindPriceSets(ctx, []string{"pset_store", "pset_missing"})
			return err
		})
		require.NoError(t, err)
		require.Len(t, sets, 1)
		require.Len(t, sets[0].Prices, 2)

		byAmount := map[int64]*domain.Price{}
		for _, p := range sets[0].Prices {
			byAmount[p.Amount] = p
		}
		assert.Equal(t, []string{"customer_group_id", "region_id"}, byAmount[900].Rules.Attributes())
		assert.Equal(t, 2, byAmount[900].RulesCount)
		assert.True(t, byAmount[1000].IsDefault())

		testutil.AssertRowCount(t, client, m_price_set.TableName, 1)
		testutil.AssertRowCount(t, client, m_price_rule.TableName, 2)
	})

	t.Run("upsert replaces default prices and their rules", func(t *testing.T) {
		kept := seeded.Prices[0].Clone()
		kept.Amount = 1100

		err := store.WithinTransaction(ctx, func(ctx context.Context, r contracts.Repository) error {
			return r.UpsertPriceSets(ctx, []*domain.PriceSet{{ID: seeded.ID, Prices: []*domain.Price{kept}, CreatedAt: seeded.CreatedAt}})
		})
		require.NoError(t, err)

		testutil.AssertRowCount(t, client, m_price.TableName, 1)
		testutil.AssertRowCount(t, client, m_price_rule.TableName, 0)

		var prices []*domain.Price
		err = store.WithinTransaction(ctx, func(ctx context.Context, r contracts.Repository) error {
			var err error
			prices, err = r.FindPrices(ctx, []string{kept.ID})
			return err
		})
		require.NoError(t, err)
		require.Len(t, prices, 1)
		assert.Equal(t, int64(1100), prices[0].Amount)
	})
}

func TestStore_PriceLists(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	store := repo.NewStore(client, clock.NewRealClock())
	testutil.SeedPriceSet(t, client, "pset_list", testutil.USD(1000))

	sale := testutil.USD(800)
	sale.PriceSetID = "pset_list"
	pl := testutil.SeedPriceList(t, client, domain.PriceListInput{
		Title:  "Summer",
		Rules:  map[string]*string{"customer_group_id": strPtr("vip")},
		Prices: []domain.PriceInput{sale},
	}, time.Now().UTC())

	testutil.AssertRowCount(t, client, m_price_list.TableName, 1)
	testutil.AssertRowCount(t, client, m_price_list_rule.TableName, 1)
	testutil.AssertRowCount(t, client, m_price.TableName, 2)

	t.Run("patch writes tracked fields and replaces rules", func(t *testing.T) {
		err := store.WithinTransaction(ctx, func(ctx context.Context, r contracts.Repository) error {
			lists, err := r.FindPriceLists(ctx, []string{pl.ID})
			if err != nil {
				return err
			}
			title := "Winter"
			if err := lists[0].ApplyPatch(domain.PriceListPatch{
				ID:    pl.ID,
				Title: &title,
				Rules: map[string]*string{"region_id": strPtr("reg_1"), "channel": strPtr("web")},
			}, time.Now().UTC(), ids.New); err != nil {
				return err
			}
			return r.UpdatePriceLists(ctx, lists)
		})
		require.NoError(t, err)

		var loaded []*domain.PriceList
		err = store.WithinTransaction(ctx, func(ctx context.Context, r contracts.Repository) error {
			var err error
			loaded, err = r.FindPriceLists(ctx, []string{pl.ID})
			return err
		})
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, "Winter", loaded[0].Title)
		assert.Equal(t, domain.PriceListStatusActive, loaded[0].Status)
		assert.Equal(t, []string{"channel", "region_id"}, loaded[0].Rules.Attributes())
		assert.Equal(t, 2, loaded[0].RulesCount)
		assert.Len(t, loaded[0].Prices, 1)
		testutil.AssertRowCount(t, client, m_price_list_rule.TableName, 2)
	})

	t.Run("delete cascades to list prices only", func(t *testing.T) {
		err := store.WithinTransaction(ctx, func(ctx context.Context, r contracts.Repository) error {
			return r.DeletePriceLists(ctx, []string{pl.ID})
		})
		require.NoError(t, err)

		testutil.AssertRowCount(t, client, m_price_list.TableName, 0)
		testutil.AssertRowCount(t, client, m_price_list_rule.TableName, 0)
		testutil.AssertRowCount(t, client, m_price.TableName, 1)
	})
}

func TestStore_RollsBackOnError(t *testing.T) {
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	store := repo.NewStore(client, clock.NewRealClock())
	boom := errors.New("boom")

	err := store.WithinTransaction(context.Background(), func(ctx context.Context, r contracts.Repository) error {
		if err := r.UpsertPriceSets(ctx, []*domain.PriceSet{{ID: "pset_rollback", CreatedAt: time.Now().UTC()}}); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	testutil.AssertRowCount(t, client, m_price_set.TableName, 0)
}

func strPtr(s string) *string {
	return &s
}
