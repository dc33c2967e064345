package remove_price_list_rules

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request names the rule attributes to drop from a list. Unknown attributes
// are ignored.
type Request struct {
	PriceListID string   `json:"price_list_id" validate:"required"`
	Attributes  []string `json:"attributes" validate:"required,min=1"`
}

// Interactor handles the remove price list rules use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new remove price list rules interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("remove_price_list_rules", deps)}
}

// Execute removes the attributes and returns the updated list.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PriceList, error) {
	var updated *domain.PriceList
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		lists, err := batch.LoadPriceLists(ctx, repo, []string{req.PriceListID})
		if err != nil {
			return err
		}
		pl := lists[req.PriceListID]

		pl.RemoveRules(req.Attributes, i.runner.Now())

		if err := repo.UpdatePriceLists(ctx, []*domain.PriceList{pl}); err != nil {
			return fmt.Errorf("failed to save price list: %w", err)
		}

		changes.Record(domain.EventPriceListUpdated, pl.ID)
		updated = pl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
