package update_price_sets

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// PriceSetUpdate replaces the default prices of one set. Prices carrying the
// id of an existing price update it; existing prices left out are deleted.
// A nil Prices leaves the set's prices untouched.
type PriceSetUpdate struct {
	ID     string              `json:"id" validate:"required"`
	Prices []domain.PriceInput `json:"prices" validate:"dive"`
}

// Request contains the price set updates.
type Request struct {
	PriceSets []PriceSetUpdate `json:"price_sets" validate:"required,min=1,dive"`
}

// Interactor handles the update price sets use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new update price sets interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("update_price_sets", deps)}
}

// Execute applies every update, or none of them.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.PriceSet, error) {
	var updated []*domain.PriceSet
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		now := i.runner.Now()
		newID := i.runner.IDs()

		// 1. Load sets
		ids := make([]string, 0, len(req.PriceSets))
		for _, u := range req.PriceSets {
			ids = append(ids, u.ID)
		}
		sets, err := batch.LoadPriceSets(ctx, repo, ids)
		if err != nil {
			return err
		}

		// 2. Replace prices set by set
		out := make([]*domain.PriceSet, 0, len(req.PriceSets))
		var replacements []*batch.PriceReplacement
		for _, u := range req.PriceSets {
			ps := sets[u.ID]
			if u.Prices != nil {
				r, err := batch.ReplaceSetPrices(ps, u.Prices, now, newID)
				if err != nil {
					return err
				}
				replacements = append(replacements, r)
			}
			out = append(out, ps)
		}

		// 3. Persist
		if err := repo.UpsertPriceSets(ctx, out); err != nil {
			return fmt.Errorf("failed to save price sets: %w", err)
		}

		// 4. Record events
		changes.Record(domain.EventPriceSetUpdated, batch.Unique(ids)...)
		for _, r := range replacements {
			r.Record(changes)
		}

		updated = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
