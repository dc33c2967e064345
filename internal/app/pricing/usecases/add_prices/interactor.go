package add_prices

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// SetPrices are prices to append to one set.
type SetPrices struct {
	PriceSetID string              `json:"price_set_id" validate:"required"`
	Prices     []domain.PriceInput `json:"prices" validate:"required,min=1,dive"`
}

// Request contains the prices to add.
type Request struct {
	PriceSets []SetPrices `json:"price_sets" validate:"required,min=1,dive"`
}

// Interactor handles the add prices use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new add prices interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("add_prices", deps)}
}

// Execute appends the prices. A new price may not share its signature with
// a persisted sibling or with another price of the batch.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.Price, error) {
	var added []*domain.Price
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		now := i.runner.Now()
		newID := i.runner.IDs()

		// 1. Load sets with their persisted default prices
		setIDs := make([]string, 0, len(req.PriceSets))
		var inputs []domain.PriceInput
		for _, item := range req.PriceSets {
			setIDs = append(setIDs, item.PriceSetID)
			inputs = append(inputs, item.Prices...)
		}
		sets, err := batch.LoadPriceSets(ctx, repo, setIDs)
		if err != nil {
			return err
		}
		if err := batch.EnsureNewPrices(ctx, repo, inputs); err != nil {
			return err
		}

		// 2. Build prices against one index per set
		indexes := make(map[string]*domain.SignatureIndex, len(sets))
		prices := make([]*domain.Price, 0)
		for _, item := range req.PriceSets {
			idx, ok := indexes[item.PriceSetID]
			if !ok {
				idx = domain.NewSignatureIndex(sets[item.PriceSetID].Prices...)
				indexes[item.PriceSetID] = idx
			}
			for _, in := range item.Prices {
				p, err := domain.BuildPrice(in, item.PriceSetID, nil, now, newID)
				if err != nil {
					return err
				}
				if err := idx.Add(p); err != nil {
					return err
				}
				prices = append(prices, p)
			}
		}

		// 3. Persist
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
