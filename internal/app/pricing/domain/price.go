package domain

import (
	"strings"
	"time"
)

// Price is one amount in one currency. A price with a nil PriceListID is a
// default price of its set; otherwise it is an override held by that list.
type Price struct {
	ID           string    `json:"id"`
	Title        *string   `json:"title"`
	PriceSetID   string    `json:"price_set_id"`
	PriceListID  *string   `json:"price_list_id"`
	CurrencyCode string    `json:"currency_code"`
	Amount       int64     `json:"amount"`
	MinQuantity  *int64    `json:"min_quantity"`
	MaxQuantity  *int64    `json:"max_quantity"`
	Rules        RuleSet   `json:"price_rules"`
	RulesCount   int       `json:"rules_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsDefault reports whether the price belongs directly to its set.
func (p *Price) IsDefault() bool {
	return p.PriceListID == nil
}

// InPriceList reports whether the price is held by the given list.
func (p *Price) InPriceList(priceListID string) bool {
	return p.PriceListID != nil && *p.PriceListID == priceListID
}

// AcceptsQuantity reports whether q falls inside the inclusive bounds.
func (p *Price) AcceptsQuantity(q int64) bool {
	if p.MinQuantity != nil && q < *p.MinQuantity {
		return false
	}
	if p.MaxQuantity != nil && q > *p.MaxQuantity {
		return false
	}
	return true
}

// Clone returns a deep copy.
func (p *Price) Clone() *Price {
	c := *p
	c.Title = cloneString(p.Title)
	c.PriceListID = cloneString(p.PriceListID)
	c.MinQuantity = cloneInt64(p.MinQuantity)
	c.MaxQuantity = cloneInt64(p.MaxQuantity)
	c.Rules = p.Rules.Clone()
	return &c
}

// PriceSet groups the prices of one sellable item.
type PriceSet struct {
	ID        string    `json:"id"`
	Prices    []*Price  `json:"prices"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultPrices returns the prices that belong to no list.
func (ps *PriceSet) DefaultPrices() []*Price {
	out := make([]*Price, 0, len(ps.Prices))
	for _, p := range ps.Prices {
		if p.IsDefault() {
			out = append(out, p)
		}
	}
	return out
}

// PriceInput describes a price to create or replace.
type PriceInput struct {
	ID *string `json:"id,omitempty"`
	// PriceSetID is required for price-list prices and ignored for set prices.
	PriceSetID   string             `json:"price_set_id,omitempty"`
	Title        *string            `json:"title,omitempty"`
	CurrencyCode string             `json:"currency_code" validate:"required,len=3"`
	Amount       int64              `json:"amount" validate:"gte=0"`
	MinQuantity  *int64             `json:"min_quantity,omitempty" validate:"omitempty,gte=0"`
	MaxQuantity  *int64             `json:"max_quantity,omitempty" validate:"omitempty,gte=0"`
	Rules        map[string]*string `json:"rules,omitempty"`
}

// IDGenerator produces a prefixed entity id.
type IDGenerator func(prefix string) string

// Entity id prefixes.
const (
	PrefixPriceSet      = "pset"
	PrefixPrice         = "price"
	PrefixPriceRule     = "prule"
	PrefixPriceList     = "plist"
	PrefixPriceListRule = "plrule"
)

// BuildPrice normalizes in into a Price owned by priceSetID and, when non-nil,
// priceListID. The caller checks the result against a SignatureIndex.
func BuildPrice(in PriceInput, priceSetID string, priceListID *string, now time.Time, newID IDGenerator) (*Price, error) {
	if strings.TrimSpace(priceSetID) == "" {
		return nil, ValidationFrom(ErrEmptyPriceSetID)
	}
	if in.MinQuantity != nil && in.MaxQuantity != nil && *in.MinQuantity > *in.MaxQuantity {
		return nil, ValidationFrom(ErrInvalidQuantityRange)
	}

	id := ""
	if in.ID != nil {
		id = *in.ID
	}
	if id == "" {
		id = newID(PrefixPrice)
	}

	rules := NormalizeRules(in.Rules)
	rules.AssignIDs(func() string { return newID(PrefixPriceRule) })

	return &Price{
		ID:           id,
		Title:        cloneString(in.Title),
		PriceSetID:   priceSetID,
		PriceListID:  cloneString(priceListID),
		CurrencyCode: strings.ToLower(strings.TrimSpace(in.CurrencyCode)),
		Amount:       in.Amount,
		MinQuantity:  cloneInt64(in.MinQuantity),
		MaxQuantity:  cloneInt64(in.MaxQuantity),
		Rules:        rules,
		RulesCount:   rules.Count(),
		CreatedAt:    now,
	}, nil
}

// RebuildPrice replaces prev with in. The id, owner and created_at of prev
// are kept, and rules whose attribute survives keep their id.
func RebuildPrice(prev *Price, in PriceInput, newID IDGenerator) (*Price, error) {
	raw := in.Rules
	in.ID = &prev.ID
	in.Rules = nil
	p, err := BuildPrice(in, prev.PriceSetID, prev.PriceListID, prev.CreatedAt, newID)
	if err != nil {
		return nil, err
	}
	rules := ReplaceRules(prev.Rules, raw)
	rules.AssignIDs(func() string { return newID(PrefixPriceRule) })
	p.Rules = rules
	p.RulesCount = rules.Count()
	return p, nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt64(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
