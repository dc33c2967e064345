package memory

import (
	"context"
	"sort"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// txRepository works on a private state copy. Values are cloned on the way
// in and out so callers never alias stored data.
type txRepository struct {
	st *state
}

func (r *txRepository) FindPriceSets(_ context.Context, ids []string) ([]*domain.PriceSet, error) {
	return findPriceSets(r.st, ids), nil
}

func (r *txRepository) FindPriceLists(_ context.Context, ids []string) ([]*domain.PriceList, error) {
	var lists []*domain.PriceList
	byID := make(map[string]*domain.PriceList)
	for _, id := range dedupe(ids) {
		stored, ok := r.st.lists[id]
		if !ok {
			continue
		}
		pl := stored.Clone()
		pl.Prices = []*domain.Price{}
		lists = append(lists, pl)
		byID[pl.ID] = pl
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })

	for _, p := range sortedPrices(r.st.prices) {
		if p.PriceListID == nil {
			continue
		}
		if pl, ok := byID[*p.PriceListID]; ok {
			pl.Prices = append(pl.Prices, p.Clone())
		}
	}
	return lists, nil
}

func (r *txRepository) FindPrices(_ context.Context, ids []string) ([]*domain.Price, error) {
	var prices []*domain.Price
	for _, id := range dedupe(ids) {
		if p, ok := r.st.prices[id]; ok {
			prices = append(prices, p.Clone())
		}
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].ID < prices[j].ID })
	return prices, nil
}

func (r *txRepository) UpsertPriceSets(_ context.Context, sets []*domain.PriceSet) error {
	keep := make(map[string]struct{})
	for _, ps := range sets {
		for _, p := range ps.Prices {
			keep[p.ID] = struct{}{}
		}
	}
	for _, ps := range sets {
		for id, p := range r.st.prices {
			if p.IsDefault() && p.PriceSetID == ps.ID {
				if _, ok := keep[id]; !ok {
					delete(r.st.prices, id)
				}
			}
		}
		r.st.sets[ps.ID] = priceSetRow{ID: ps.ID, CreatedAt: ps.CreatedAt}
		r.writePrices(ps.Prices)
	}
	return nil
}

func (r *txRepository) UpsertPrices(_ context.Context, prices []*domain.Price) error {
	r.writePrices(prices)
	return nil
}

func (r *txRepository) writePrices(prices []*domain.Price) {
	for _, p := range prices {
		c := p.Clone()
		c.RulesCount = c.Rules.Count()
		r.st.prices[c.ID] = c
	}
}

func (r *txRepository) InsertPriceLists(_ context.Context, lists []*domain.PriceList) error {
	for _, pl := range lists {
		r.st.lists[pl.ID] = storedList(pl)
		r.writePrices(pl.Prices)
	}
	return nil
}

func (r *txRepository) UpdatePriceLists(_ context.Context, lists []*domain.PriceList) error {
	for _, pl := range lists {
		if !pl.Changes().HasChanges() {
			continue
		}
		if _, ok := r.st.lists[pl.ID]; !ok {
			continue
		}
		r.st.lists[pl.ID] = storedList(pl)
	}
	return nil
}

func (r *txRepository) DeletePrices(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.st.prices, id)
	}
	return nil
}

func (r *txRepository) DeletePriceLists(_ context.Context, ids []string) error {
	for _, id := range ids {
		for priceID, p := range r.st.prices {
			if p.InPriceList(id) {
				delete(r.st.prices, priceID)
			}
		}
		delete(r.st.lists, id)
	}
	return nil
}

// storedList drops prices, which live in the price table.
func storedList(pl *domain.PriceList) *domain.PriceList {
	c := pl.Clone()
	c.Prices = nil
	c.RulesCount = c.Rules.Count()
	return c
}

var _ contracts.Repository = (*txRepository)(nil)
