package remove_prices

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request names the prices to delete.
type Request struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// Interactor handles the remove prices use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new remove prices interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("remove_prices", deps)}
}

// Execute deletes the prices and their rules. Every id must exist.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		ids := batch.Unique(req.IDs)
		prices, err := repo.FindPrices(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to load prices: %w", err)
		}
		found := make(map[string]struct{}, len(prices))
		for _, p := range prices {
			found[p.ID] = struct{}{}
		}
		if missing := batch.MissingIDs(ids, found); len(missing) > 0 {
			return domain.NewNotFoundError("price", missing...)
		}

		if err := repo.DeletePrices(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete prices: %w", err)
		}
		changes.Record(domain.EventPriceDeleted, ids...)
		return nil
	})
}
