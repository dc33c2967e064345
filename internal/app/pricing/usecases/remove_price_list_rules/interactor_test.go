package remove_price_list_rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch/batchtest"
)

func TestInteractor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("removes attributes", func(t *testing.T) {
		env := batchtest.NewEnv()
		require.NoError(t, env.Seed(nil, []*domain.PriceList{{
			ID: "plist_1", Title: "Sale", Type: domain.PriceListTypeSale, Status: domain.PriceListStatusActive,
			Rules: domain.RulesFromMap(map[string]string{"customer_group_id": "vip", "region_id": "reg_1"}),
		}}))

		pl, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceListID: "plist_1", Attributes: []string{"region_id"}})
		require.NoError(t, err)

		assert.Equal(t, 1, pl.RulesCount)
		assert.Equal(t, map[string]string{"customer_group_id": "vip"}, env.PriceList("plist_1").Rules.Map())
		assert.Equal(t, []string{domain.EventPriceListUpdated}, env.Sink.Names())
	})

	t.Run("requires attributes", func(t *testing.T) {
		env := batchtest.NewEnv()
		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceListID: "plist_1"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown list", func(t *testing.T) {
		env := batchtest.NewEnv()
		_, err := NewInteractor(env.Deps).Execute(ctx, &Request{PriceListID: "plist_1", Attributes: []string{"a"}})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
