package set_price_list_rules

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request merges Rules into the list's rule set. A nil or empty value
// removes the attribute.
type Request struct {
	PriceListID string             `json:"price_list_id" validate:"required"`
	Rules       map[string]*string `json:"rules" validate:"required"`
}

// Interactor handles the set price list rules use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new set price list rules interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("set_price_list_rules", deps)}
}

// Execute merges the rules and returns the updated list.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.PriceList, error) {
	var updated *domain.PriceList
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		lists, err := batch.LoadPriceLists(ctx, repo, []string{req.PriceListID})
		if err != nil {
			return err
		}
		pl := lists[req.PriceListID]

		diff := pl.SetRules(req.Rules, i.runner.Now(), i.runner.IDs())

		if err := repo.UpdatePriceLists(ctx, []*domain.PriceList{pl}); err != nil {
			return fmt.Errorf("failed to save price list: %w", err)
		}

		changes.Record(domain.EventPriceListUpdated, pl.ID)
		changes.Record(domain.EventPriceListRuleCreated, diff.Created.IDs()...)
		changes.Record(domain.EventPriceListRuleUpdated, diff.Updated.IDs()...)
		updated = pl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
