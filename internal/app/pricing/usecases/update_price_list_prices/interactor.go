package update_price_list_prices

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request contains the replacement prices per list.
type Request struct {
	PriceLists []batch.ListPrices `json:"price_lists" validate:"required,min=1,dive"`
}

// Interactor handles the update price list prices use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new update price list prices interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("update_price_list_prices", deps)}
}

// Execute replaces, for each list, its prices of the price sets named in the
// request. Prices of other sets stay as they are. A price id that belongs
// to another list is rejected.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.Price, error) {
	var result []*domain.Price
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

		// Merge items addressed to the same list
		inputs := make(map[string][]domain.PriceInput, len(lists))
		order := make([]string, 0, len(lists))
		for _, item := range req.PriceLists {
			if _, ok := inputs[item.PriceListID]; !ok {
				order = append(order, item.PriceListID)
			}
			inputs[item.PriceListID] = append(inputs[item.PriceListID], item.Prices...)
		}

		var (
			upserts []*domain.Price
			deletes []string
		)
		for _, listID := range order {
			pl := lists[listID]
			if err := ensureOwned(pl, inputs[listID]); err != nil {
				return err
			}

			targeted := make(map[string]struct{})
			for _, in := range inputs[listID] {
				targeted[in.PriceSetID] = struct{}{}
			}
			var current, untouched []*domain.Price
			for _, p := range pl.Prices {
				if _, ok := targeted[p.PriceSetID]; ok {
					current = append(current, p)
				} else {
					untouched = append(untouched, p)
				}
			}

			r, err := batch.ReplacePrices(current, inputs[listID], domain.NewSignatureIndex(untouched...), newID, func(in domain.PriceInput) (*domain.Price, error) {
				return domain.BuildPrice(in, in.PriceSetID, &listID, now, newID)
			})
			if err != nil {
				return err
			}
			upserts = append(upserts, r.Prices...)
			deletes = append(deletes, r.Deleted...)
			r.Record(changes)
		}

		if err := repo.DeletePrices(ctx, deletes); err != nil {
			return fmt.Errorf("failed to delete prices: %w", err)
		}
		if err := repo.UpsertPrices(ctx, upserts); err != nil {
			return fmt.Errorf("failed to save prices: %w", err)
		}

		result = upserts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ensureOwned rejects inputs whose id names a price outside pl, and inputs
// that would move an existing price to another set.
func ensureOwned(pl *domain.PriceList, inputs []domain.PriceInput) error {
	owned := make(map[string]*domain.Price, len(pl.Prices))
	for _, p := range pl.Prices {
		owned[p.ID] = p
	}
	for _, in := range inputs {
		if in.ID == nil || *in.ID == "" {
			continue
		}
		p, ok := owned[*in.ID]
		if !ok || p.PriceSetID != in.PriceSetID {
			return domain.ValidationFrom(domain.ErrPriceNotInPriceList, *in.ID, pl.ID)
		}
	}
	return nil
}
