package domain

import "strings"

const attrCurrencyCode = "currency_code"

// PricingContext is the runtime input to price selection.
type PricingContext struct {
	CurrencyCode string `json:"currency_code,omitempty"`
	// Quantity defaults to 1 when nil.
	Quantity   *int64            `json:"quantity,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// EffectiveQuantity returns the quantity used for bound checks.
func (c PricingContext) EffectiveQuantity() int64 {
	if c.Quantity == nil {
		return 1
	}
	return *c.Quantity
}

// Validate rejects non-positive quantities.
func (c PricingContext) Validate() error {
	if c.Quantity != nil && *c.Quantity <= 0 {
		return ValidationFrom(ErrInvalidQuantity)
	}
	return nil
}

// Currency returns the normalized context currency, or "" when unset.
func (c PricingContext) Currency() string {
	return strings.ToLower(strings.TrimSpace(c.CurrencyCode))
}

// Lookup resolves a rule attribute against the context. The currency code is
// visible to rules as the currency_code attribute.
func (c PricingContext) Lookup(attr string) (string, bool) {
	if v, ok := c.Attributes[attr]; ok {
		return v, true
	}
	if attr == attrCurrencyCode && c.Currency() != "" {
		return c.Currency(), true
	}
	return "", false
}
