package domain

import (
	"math"
	"time"
)

// PriceSelector picks the calculated and original price of a price set from
// its candidates. It holds no state; Select is a pure function of its inputs.
type PriceSelector struct{}

func NewPriceSelector() *PriceSelector {
	return &PriceSelector{}
}

// Select resolves one price set. Candidates belonging to other sets are
// ignored. When nothing qualifies the result carries only the set id.
func (s *PriceSelector) Select(priceSetID string, candidates []Candidate, pctx PricingContext, now time.Time) *CalculatedPrice {
	var (
		best       *Candidate
		bestListed *Candidate
	)
	for i := range candidates {
		c := &candidates[i]
		if c.Price == nil || c.Price.PriceSetID != priceSetID || !s.qualifies(*c, pctx, now) {
			continue
		}
		if c.PriceList == nil {
			if best == nil || betterDefault(*c, *best) {
				best = c
			}
			continue
		}
		if bestListed == nil || betterListed(*c, *bestListed) {
			bestListed = c
		}
	}

	result := &CalculatedPrice{PriceSetID: priceSetID}
	switch {
	case bestListed != nil:
		setCalculated(result, *bestListed)
		if bestListed.PriceList.Type == PriceListTypeOverride {
			setOriginal(result, *bestListed)
			break
		}
		if original := s.originalFor(priceSetID, candidates, pctx, now, bestListed.Price.CurrencyCode); original != nil {
			setOriginal(result, *original)
		}
	case best != nil:
		setCalculated(result, *best)
		setOriginal(result, *best)
	}
	return result
}

// originalFor picks the default price shown next to a sale price. It must be
// in the same currency as the sale price.
func (s *PriceSelector) originalFor(priceSetID string, candidates []Candidate, pctx PricingContext, now time.Time, currency string) *Candidate {
	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Price == nil || c.PriceList != nil || c.Price.PriceSetID != priceSetID {
			continue
		}
		if c.Price.CurrencyCode != currency || !s.qualifies(*c, pctx, now) {
			continue
		}
		if best == nil || betterDefault(*c, *best) {
			best = c
		}
	}
	return best
}

func (s *PriceSelector) qualifies(c Candidate, pctx PricingContext, now time.Time) bool {
	if currency := pctx.Currency(); currency != "" && c.Price.CurrencyCode != currency {
		return false
	}
	if !c.Price.AcceptsQuantity(pctx.EffectiveQuantity()) {
		return false
	}
	if !c.Price.Rules.SatisfiedBy(pctx.Lookup) {
		return false
	}
	if c.PriceList != nil {
		if !c.PriceList.IsActiveAt(now) {
			return false
		}
		if !c.PriceList.Rules.SatisfiedBy(pctx.Lookup) {
			return false
		}
	}
	return true
}

// betterDefault orders default prices by specificity, then by the tighter
// quantity tier, then by id.
func betterDefault(a, b Candidate) bool {
	if a.Price.RulesCount != b.Price.RulesCount {
		return a.Price.RulesCount > b.Price.RulesCount
	}
	if better, ok := tighterTier(a.Price, b.Price); ok {
		return better
	}
	return a.Price.ID < b.Price.ID
}

// betterListed orders list prices: override before sale, then combined price
// and list specificity, then the tighter quantity tier, then the most
// recently created list, then ids.
func betterListed(a, b Candidate) bool {
	if ra, rb := typeRank(a.PriceList.Type), typeRank(b.PriceList.Type); ra != rb {
		return ra > rb
	}
	if sa, sb := listedSpecificity(a), listedSpecificity(b); sa != sb {
		return sa > sb
	}
	if better, ok := tighterTier(a.Price, b.Price); ok {
		return better
	}
	if !a.PriceList.CreatedAt.Equal(b.PriceList.CreatedAt) {
		return a.PriceList.CreatedAt.After(b.PriceList.CreatedAt)
	}
	if a.PriceList.ID != b.PriceList.ID {
		return a.PriceList.ID < b.PriceList.ID
	}
	return a.Price.ID < b.Price.ID
}

// tighterTier compares quantity bounds: the higher minimum wins, then the
// lower maximum. An absent bound is the loosest. ok is false when the bounds
// are equal.
func tighterTier(a, b *Price) (better, ok bool) {
	if ma, mb := minBound(a), minBound(b); ma != mb {
		return ma > mb, true
	}
	if ma, mb := maxBound(a), maxBound(b); ma != mb {
		return ma < mb, true
	}
	return false, false
}

func minBound(p *Price) int64 {
	if p.MinQuantity == nil {
		return math.MinInt64
	}
	return *p.MinQuantity
}

func maxBound(p *Price) int64 {
	if p.MaxQuantity == nil {
		return math.MaxInt64
	}
	return *p.MaxQuantity
}

func typeRank(t PriceListType) int {
	if t == PriceListTypeOverride {
		return 1
	}
	return 0
}

func listedSpecificity(c Candidate) int {
	return c.Price.RulesCount + c.PriceList.RulesCount
}

func setCalculated(r *CalculatedPrice, c Candidate) {
	amount := c.Price.Amount
	currency := c.Price.CurrencyCode
	r.CalculatedAmount = &amount
	r.CurrencyCode = &currency
	r.IsCalculatedPricePriceList = c.PriceList != nil
	r.CalculatedPrice = referenceFor(c)
}

func setOriginal(r *CalculatedPrice, c Candidate) {
	amount := c.Price.Amount
	r.OriginalAmount = &amount
	r.IsOriginalPricePriceList = c.PriceList != nil
	r.OriginalPrice = referenceFor(c)
}
