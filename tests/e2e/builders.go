package e2e

import (
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// PriceListBuilder helps create price lists for tests with a fluent interface
type PriceListBuilder struct {
	in domain.PriceListInput
}

// NewPriceListBuilder creates an active sale list with no window.
func NewPriceListBuilder() *PriceListBuilder {
	return &PriceListBuilder{in: domain.PriceListInput{
		Title:  "Test List",
		Type:   domain.PriceListTypeSale,
		Status: domain.PriceListStatusActive,
	}}
}

// WithTitle sets the list title
func (b *PriceListBuilder) WithTitle(title string) *PriceListBuilder {
	b.in.Title = title
	return b
}

// Override makes the list an override list
func (b *PriceListBuilder) Override() *PriceListBuilder {
	b.in.Type = domain.PriceListTypeOverride
	return b
}

// Draft leaves the list in draft status
func (b *PriceListBuilder) Draft() *PriceListBuilder {
	b.in.Status = domain.PriceListStatusDraft
	return b
}

// Window sets the activity window
func (b *PriceListBuilder) Window(startsAt, endsAt time.Time) *PriceListBuilder {
	b.in.StartsAt = &startsAt
	b.in.EndsAt = &endsAt
	return b
}

// WithRule adds a list rule
func (b *PriceListBuilder) WithRule(attribute, value string) *PriceListBuilder {
	if b.in.Rules == nil {
		b.in.Rules = map[string]*string{}
	}
	b.in.Rules[attribute] = &value
	return b
}

// WithPrice adds a usd price for priceSetID
func (b *PriceListBuilder) WithPrice(priceSetID string, amount int64) *PriceListBuilder {
	b.in.Prices = append(b.in.Prices, domain.PriceInput{
		PriceSetID:   priceSetID,
		CurrencyCode: "usd",
		Amount:       amount,
	})
	return b
}

// Build returns the list input
func (b *PriceListBuilder) Build() domain.PriceListInput {
	return b.in
}

func usd(amount int64) domain.PriceInput {
	return domain.PriceInput{CurrencyCode: "usd", Amount: amount}
}

func strPtr(s string) *string {
	return &s
}
