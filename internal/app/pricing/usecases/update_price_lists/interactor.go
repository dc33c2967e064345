package update_price_lists

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/batch"
)

// Request contains the price list patches.
type Request struct {
	PriceLists []domain.PriceListPatch `json:"price_lists" validate:"required,min=1,dive"`
}

// Interactor handles the update price lists use case.
type Interactor struct {
	runner *batch.Runner
}

// NewInteractor creates a new update price lists interactor.
func NewInteractor(deps batch.Deps) *Interactor {
	return &Interactor{runner: batch.NewRunner("update_price_lists", deps)}
}

// Execute patches every list, or none of them. Rules, when given, replace the
// whole list rule set.
func (i *Interactor) Execute(ctx context.Context, req *Request) ([]*domain.PriceList, error) {
	var updated []*domain.PriceList
	err := i.runner.Run(ctx, req, func(ctx context.Context, repo contracts.Repository, changes *domain.ChangeSet) error {
		now := i.runner.Now()
		newID := i.runner.IDs()

		ids := make([]string, 0, len(req.PriceLists))
		for _, p := range req.PriceLists {
			ids = append(ids, p.ID)
		}
		lists, err := batch.LoadPriceLists(ctx, repo, ids)
		if err != nil {
			return err
		}

		before := make(map[string]domain.RuleSet, len(lists))
		for id, pl := range lists {
			before[id] = pl.Rules.Clone()
		}
		for _, patch := range req.PriceLists {
			if err := lists[patch.ID].ApplyPatch(patch, now, newID); err != nil {
				return err
			}
		}

		out := make([]*domain.PriceList, 0, len(lists))
		for _, id := range batch.Unique(ids) {
			out = append(out, lists[id])
		}
		if err := repo.UpdatePriceLists(ctx, out); err != nil {
			return fmt.Errorf("failed to save price lists: %w", err)
		}

		for _, pl := range out {
			if pl.Changes().HasChanges() {
				changes.Record(domain.EventPriceListUpdated, pl.ID)
			}
		}
		for _, pl := range out {
			if !pl.Changes().Dirty(domain.FieldRules) {
				continue
			}
			diff := domain.DiffRules(before[pl.ID], pl.Rules)
			changes.Record(domain.EventPriceListRuleCreated, diff.Created.IDs()...)
			changes.Record(domain.EventPriceListRuleUpdated, diff.Updated.IDs()...)
		}

		updated = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
