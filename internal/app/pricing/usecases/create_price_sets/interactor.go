package create_price_sets

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// PriceSetInput describes one set to create.
type PriceSetInput struct {
	ID     *string             `json:"id,omitempty"`
	Prices []domain.PriceInput `json:"prices,omitempty" validate:"dive"`
}

// Request contains the price sets to create.
type Request struct {
	PriceSets []PriceSetInput `json:"price_sets" validate:"required,min=1,dive"`
}

// Interactor handles the create price sets use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new create price sets interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("create_price_sets", deps)}
}

// Execute creates every set with its prices, or none of them.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.PriceSet, error) {
	var created []*domain.PriceSet
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		now := i.runner.Now()
		newID := i.runner.IDs()

		// 1. Build sets; signatures are unique per set
		sets := make([]*domain.PriceSet, 0, len(req.PriceSets))
		requested := make([]string, 0, len(req.PriceSets))
		seen := make(map[string]struct{}, len(req.PriceSets))
		var callerIDs []string
		for _, in := range req.PriceSets {
			id := newID(domain.PrefixPriceSet)
			if in.ID != nil && *in.ID != "" {
				id = *in.ID
				callerIDs = append(callerIDs, id)
			}
			if _, dup := seen[id]; dup {
				return domain.NewConflictError(fmt.Sprintf("price set %s appears more than once", id), id)
			}
			seen[id] = struct{}{}
			requested = append(requested, id)

			ps, err := batch.NewPriceSet(id, in.Prices, now, newID)
			if err != nil {
				return err
			}
			sets = append(sets, ps)
		}

		// 2. Caller-chosen ids must be free
		if len(callerIDs) > 0 {
			existing, err := repo.FindPriceSets(ctx, callerIDs)
			if err != nil {
				return fmt.Errorf("failed to load price sets: %w", err)
			}
			if len(existing) > 0 {
				taken := make([]string, 0, len(existing))
				for _, ps := range existing {
					taken = append(taken, ps.ID)
				}
				return domain.NewConflictError("price set already exists", taken...)
			}
		}

		// 3. Caller-chosen price ids must be unique and free
		var inputs []domain.PriceInput
		for _, in := range req.PriceSets {
			inputs = append(inputs, in.Prices...)
		}
		if err := batch.EnsureNewPrices(ctx, repo, inputs); err != nil {
			return err
		}

		// 4. Persist
		if err := repo.UpsertPriceSets(ctx, sets); err != nil {
			return fmt.Errorf("failed to save price sets: %w", err)
		}

		// 5. Record events
		changes.Record(domain.EventPriceSetCreated, requested...)
		for _, ps := range sets {
			changes.RecordPricesCreated(ps.Prices...)
		}

		created = sets
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
