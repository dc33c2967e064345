package delete_price_lists

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request names the price lists to delete.
type Request struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// Interactor handles the delete price lists use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new delete price lists interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("delete_price_lists", deps)}
}

// Execute deletes the lists with their rules and prices.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	return i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		ids := batch.Unique(req.IDs)
		if _, err := batch.LoadPriceLists(ctx, repo, ids); err != nil {
			return err
		}
		if err := repo.DeletePriceLists(ctx, ids); err != nil {
			return fmt.Errorf("failed to delete price lists: %w", err)
		}
		changes.Record(domain.EventPriceListDeleted, ids...)
		return nil
	})
}
