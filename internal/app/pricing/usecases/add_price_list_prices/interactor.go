package add_price_list_prices

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request contains the prices to add to price lists.
type Request struct {
	PriceLists []batch.ListPrices `json:"price_lists" validate:"required,min=1,dive"`
}

// Interactor handles the add price list prices use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new add price list prices interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("add_price_list_prices", deps)}
}

// Execute appends prices to lists. New prices may not collide with the
// list's persisted prices or with each other.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.Price, error) {
	var added []*domain.Price
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		now := i.runner.Now()
		newID := i.runner.IDs()

		lists, err := batch.LoadPriceLists(ctx, repo, batch.ListIDs(req.PriceLists))
		if err != nil {
			return err
		}
		if setIDs := batch.ReferencedPriceSets(req.PriceLists); len(setIDs) > 0 {
			if _, err := batch.LoadPriceSets(ctx, repo, setIDs); err != nil {
				return err
			}
		}

		var inputs []domain.PriceInput
		for _, item := range req.PriceLists {
			inputs = append(inputs, item.Prices...)
		}
		if err := batch.EnsureNewPrices(ctx, repo, inputs); err != nil {
			return err
		}

		indexes := make(map[string]*domain.SignatureIndex, len(lists))
		var prices []*domain.Price
		for _, item := range req.PriceLists {
			pl := lists[item.PriceListID]
			idx, ok := indexes[pl.ID]
			if !ok {
				idx = domain.NewSignatureIndex(pl.Prices...)
				indexes[pl.ID] = idx
			}
			built, err := pl.BuildPrices(item.Prices, idx, now, newID)
			if err != nil {
				return err
			}
			prices = append(prices, built...)
		}

		if err := repo.UpsertPrices(ctx, prices); err != nil {
			return fmt.Errorf("failed to save prices: %w", err)
		}

		changes.RecordPricesCreated(prices...)
		added = prices
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}
