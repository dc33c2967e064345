package upsert_price_sets

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// PriceSetUpsert creates a set when ID is empty or unknown, and otherwise
// replaces the set's default prices. A nil Prices leaves an existing set
// untouched.
type PriceSetUpsert struct {
	ID     *string             `json:"id,omitempty"`
	Prices []domain.PriceInput `json:"prices,omitempty" validate:"dive"`
}

// Request contains the price sets to create or update.
type Request struct {
	PriceSets []PriceSetUpsert `json:"price_sets" validate:"required,min=1,dive"`
}

// Interactor handles the upsert price sets use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new upsert price sets interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("upsert_price_sets", deps)}
}

// Execute creates and updates in one unit of work. Sets are returned in
// request order.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.PriceSet, error) {
	var result []*domain.PriceSet
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		now := i.runner.Now()
		newID := i.runner.IDs()

		// 1. Resolve ids and load the sets that already exist
		ids := make([]string, len(req.PriceSets))
		var given []string
		seen := make(map[string]struct{}, len(req.PriceSets))
		for n, in := range req.PriceSets {
			if in.ID != nil && *in.ID != "" {
				ids[n] = *in.ID
				given = append(given, ids[n])
			} else {
				ids[n] = newID(domain.PrefixPriceSet)
			}
			if _, dup := seen[ids[n]]; dup {
				return domain.NewConflictError(fmt.Sprintf("price set %s appears more than once", ids[n]), ids[n])
			}
			seen[ids[n]] = struct{}{}
		}

		existing := make(map[string]*domain.PriceSet)
		if len(given) > 0 {
			found, err := repo.FindPriceSets(ctx, given)
			if err != nil {
				return fmt.Errorf("failed to load price sets: %w", err)
			}
			for _, ps := range found {
				existing[ps.ID] = ps
			}
		}

		// 2. Build new sets, replace prices of existing ones
		out := make([]*domain.PriceSet, 0, len(req.PriceSets))
		var (
			created, updated []string
			newSets          []*domain.PriceSet
			newInputs        []domain.PriceInput
			replacements     []*batch.PriceReplacement
		)
		for n, in := range req.PriceSets {
			if ps, ok := existing[ids[n]]; ok {
				if in.Prices != nil {
					r, err := batch.ReplaceSetPrices(ps, in.Prices, now, newID)
					if err != nil {
						return err
					}
					replacements = append(replacements, r)
				}
				updated = append(updated, ps.ID)
				out = append(out, ps)
				continue
			}

			ps, err := batch.NewPriceSet(ids[n], in.Prices, now, newID)
			if err != nil {
				return err
			}
			created = append(created, ps.ID)
			newSets = append(newSets, ps)
			newInputs = append(newInputs, in.Prices...)
			out = append(out, ps)
		}
		if err := batch.EnsureNewPrices(ctx, repo, newInputs); err != nil {
			return err
		}

		// 3. Persist
		if err := repo.UpsertPriceSets(ctx, out); err != nil {
			return fmt.Errorf("failed to save price sets: %w", err)
		}

		// 4. Record events
		changes.Record(domain.EventPriceSetCreated, created...)
		changes.Record(domain.EventPriceSetUpdated, updated...)
		for _, ps := range newSets {
			changes.RecordPricesCreated(ps.Prices...)
		}
		for _, r := range replacements {
			r.Record(changes)
		}

		result = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
