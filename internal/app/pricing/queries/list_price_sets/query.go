package list_price_sets

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/calculate_prices"
	"github.com/light-bringer/pricing-service/internal/pkg/validate"
)

// Request selects price sets by id. When Context is set every set carries its
// calculated price for that context.
type Request struct {
	IDs     []string               `json:"id" validate:"required,min=1,dive,required"`
	Context *domain.PricingContext `json:"context,omitempty"`
}

// PriceSetView is a price set with its optional calculated price.
type PriceSetView struct {
	*domain.PriceSet
	CalculatedPrice *domain.CalculatedPrice `json:"calculated_price,omitempty"`
}

// Calculator prices a batch of sets; satisfied by calculate_prices.Query and
// its cached wrapper.
type Calculator interface {
	Execute(ctx context.Context, req *calculate_prices.Request) ([]*domain.CalculatedPrice, error)
}

// Query handles the list price sets query use case.
type Query struct {
	reader     contracts.CandidateReader
	calculator Calculator
}

// NewQuery creates a new list price sets query.
func NewQuery(reader contracts.CandidateReader, calculator Calculator) *Query {
	return &Query{
		reader:     reader,
		calculator: calculator,
	}
}

// Execute loads the requested sets; unknown ids are omitted.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*PriceSetView, error) {
	if err := validate.Struct(req); err != nil {
		var fields validate.FieldErrors
		if errors.As(err, &fields) {
			return nil, domain.ValidationFrom(fields)
		}
		return nil, err
	}

	sets, err := q.reader.FindPriceSets(ctx, req.IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load price sets: %w", err)
	}

	views := make([]*PriceSetView, 0, len(sets))
	for _, ps := range sets {
		views = append(views, &PriceSetView{PriceSet: ps})
	}
	if req.Context == nil || len(views) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	calculated, err := q.calculator.Execute(ctx, &calculate_prices.Request{PriceSetIDs: ids, Context: *req.Context})
	if err != nil {
		return nil, err
	}
	for i, v := range views {
		v.CalculatedPrice = calculated[i]
	}
	return views, nil
}
