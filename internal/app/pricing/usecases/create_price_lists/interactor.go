package create_price_lists

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request contains the price lists to create.
type Request struct {
	PriceLists []domain.PriceListInput `json:"price_lists" validate:"required,min=1,dive"`
}

// Interactor handles the create price lists use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new create price lists interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("create_price_lists", deps)}
}

// Execute creates every list with its rules and prices, or none of them.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.PriceList, error) {
	var created []*domain.PriceList
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		now := i.runner.Now()
		newID := i.runner.IDs()

		// 1. Build lists: windows, rules, price signatures
		lists := make([]*domain.PriceList, 0, len(req.PriceLists))
		seen := make(map[string]struct{}, len(req.PriceLists))
		var callerIDs, setIDs []string
		for _, in := range req.PriceLists {
			pl, err := domain.NewPriceList(in, now, newID)
			if err != nil {
				return err
			}
			if _, dup := seen[pl.ID]; dup {
				return domain.NewConflictError(fmt.Sprintf("price list %s appears more than once", pl.ID), pl.ID)
			}
			seen[pl.ID] = struct{}{}
			if in.ID != nil && *in.ID != "" {
				callerIDs = append(callerIDs, pl.ID)
			}
			for _, p := range pl.Prices {
				setIDs = append(setIDs, p.PriceSetID)
			}
			lists = append(lists, pl)
		}

		// 2. Referenced sets must exist, caller-chosen ids must be free
		if len(setIDs) > 0 {
			if _, err := batch.LoadPriceSets(ctx, repo, setIDs); err != nil {
				return err
			}
		}
		if len(callerIDs) > 0 {
			existing, err := repo.FindPriceLists(ctx, callerIDs)
			if err != nil {
				return fmt.Errorf("failed to load price lists: %w", err)
			}
			if len(existing) > 0 {
				taken := make([]string, 0, len(existing))
				for _, pl := range existing {
					taken = append(taken, pl.ID)
				}
				return domain.NewConflictError("price list already exists", taken...)
			}
		}

		// 3. Caller-chosen price ids must be unique and free
		var inputs []domain.PriceInput
		for _, in := range req.PriceLists {
			inputs = append(inputs, in.Prices...)
		}
		if err := batch.EnsureNewPrices(ctx, repo, inputs); err != nil {
			return err
		}

		// 4. Persist
		if err := repo.InsertPriceLists(ctx, lists); err != nil {
			return fmt.Errorf("failed to save price lists: %w", err)
		}

		// 5. Record events
		for _, pl := range lists {
			changes.Record(domain.EventPriceListCreated, pl.ID)
		}
		for _, pl := range lists {
			changes.Record(domain.EventPriceListRuleCreated, pl.Rules.IDs()...)
		}
		for _, pl := range lists {
			changes.RecordPricesCreated(pl.Prices...)
		}

		created = lists
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
