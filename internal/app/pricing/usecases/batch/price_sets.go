package batch

import (
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// NewPriceSet builds a set with its default prices. No two prices of the set
// may share a signature.
func NewPriceSet(id string, inputs []domain.PriceInput, now time.Time, newID domain.IDGenerator) (*domain.PriceSet, error) {
	ps := &domain.PriceSet{ID: id, CreatedAt: now, Prices: make([]*domain.Price, 0, len(inputs))}
	idx := domain.NewSignatureIndex()
	for _, in := range inputs {
		p, err := domain.BuildPrice(in, id, nil, now, newID)
		if err != nil {
			return nil, err
		}
		if err := idx.Add(p); err != nil {
			return nil, err
		}
		ps.Prices = append(ps.Prices, p)
	}
	return ps, nil
}

// ReplaceSetPrices replaces the default prices of ps with inputs and returns
// what changed. ps.Prices holds the new collection afterwards.
func ReplaceSetPrices(ps *domain.PriceSet, inputs []domain.PriceInput, now time.Time, newID domain.IDGenerator) (*PriceReplacement, error) {
	setID := ps.ID
	r, err := ReplacePrices(ps.Prices, inputs, domain.NewSignatureIndex(), newID, func(in domain.PriceInput) (*domain.Price, error) {
		return domain.BuildPrice(in, setID, nil, now, newID)
	})
	if err != nil {
		return nil, err
	}
	ps.Prices = r.Prices
	return r, nil
}
