package batch

import (
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceReplacement is the outcome of replacing a collection of prices.
type PriceReplacement struct {
	Prices  []*domain.Price
	Created []*domain.Price
	Updated []*domain.Price
	Deleted []string
	// NewRuleIDs are the rule ids minted while rebuilding updated prices.
	NewRuleIDs []string
}

// ReplacePrices computes the full replacement of current by inputs. An input
// whose id matches a current price rebuilds it in place; an input with an id
// that is not in current fails with NotFound, and an id given twice is a
// conflict. Current prices without a matching input are deleted. build
// creates brand new prices.
func ReplacePrices(
	current []*domain.Price,
	inputs []domain.PriceInput,
	idx *domain.SignatureIndex,
	newID domain.IDGenerator,
	build func(in domain.PriceInput) (*domain.Price, error),
) (*PriceReplacement, error) {
	byID := make(map[string]*domain.Price, len(current))
	for _, p := range current {
		byID[p.ID] = p
	}

	out := &PriceReplacement{Prices: make([]*domain.Price, 0, len(inputs))}
	kept := make(map[string]struct{}, len(inputs))
	var unknown []string
	for _, in := range inputs {
		if in.ID != nil && *in.ID != "" {
			if _, dup := kept[*in.ID]; dup {
				return nil, domain.NewConflictError(fmt.Sprintf("price %s appears more than once", *in.ID), *in.ID)
			}
			prev, ok := byID[*in.ID]
			if !ok {
				unknown = append(unknown, *in.ID)
				continue
			}
			p, err := domain.RebuildPrice(prev, in, newID)
			if err != nil {
				return nil, err
			}
			if err := idx.Add(p); err != nil {
				return nil, err
			}
			kept[p.ID] = struct{}{}
			out.Prices = append(out.Prices, p)
			out.Updated = append(out.Updated, p)
			for _, r := range p.Rules {
				if _, had := prev.Rules.Get(r.Attribute); !had {
					out.NewRuleIDs = append(out.NewRuleIDs, r.ID)
				}
			}
			continue
		}

		p, err := build(in)
		if err != nil {
			return nil, err
		}
		if err := idx.Add(p); err != nil {
			return nil, err
		}
		out.Prices = append(out.Prices, p)
		out.Created = append(out.Created, p)
	}
	if len(unknown) > 0 {
		return nil, domain.NewNotFoundError("price", unknown...)
	}

	for _, p := range current {
		if _, ok := kept[p.ID]; !ok {
			out.Deleted = append(out.Deleted, p.ID)
		}
	}
	return out, nil
}

// Record adds the replacement's events to changes.
func (r *PriceReplacement) Record(changes *domain.ChangeSet) {
	changes.RecordPricesCreated(r.Created...)
	for _, p := range r.Updated {
		changes.Record(domain.EventPriceUpdated, p.ID)
	}
	changes.Record(domain.EventPriceRuleCreated, r.NewRuleIDs...)
	changes.Record(domain.EventPriceDeleted, r.Deleted...)
}
