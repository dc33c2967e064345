package calculate_prices

import (
	"context"
	"errors"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/metrics"
	"github.com/light-bringer/pricing-service/internal/pkg/validate"
)

// Request contains the price sets to price and the context to price them in.
type Request struct {
	PriceSetIDs []string              `json:"id" validate:"required,min=1,dive,required"`
	Context     domain.PricingContext `json:"context"`
}

// Query handles the calculate prices query use case.
type Query struct {
	reader   contracts.CandidateReader
	selector *domain.PriceSelector
	clock    clock.Clock
	metrics  *metrics.PricingMetrics
}

// NewQuery creates a new calculate prices query. metrics may be nil.
func NewQuery(reader contracts.CandidateReader, clk clock.Clock, m *metrics.PricingMetrics) *Query {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Query{
		reader:   reader,
		selector: domain.NewPriceSelector(),
		clock:    clk,
		metrics:  m,
	}
}

// Execute returns one result per requested id, in request order. A set with
// no qualifying price yields a result with nil amounts, not an error.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*domain.CalculatedPrice, error) {
	if err := validate.Struct(req); err != nil {
		var fields validate.FieldErrors
		if errors.As(err, &fields) {
			return nil, domain.ValidationFrom(fields)
		}
		return nil, err
	}
	if err := req.Context.Validate(); err != nil {
		return nil, err
	}

	start := q.clock.Now()

	// One snapshot read for every set in the request
	candidates, err := q.reader.FindCandidates(ctx, unique(req.PriceSetIDs), req.Context.Currency())
	if err != nil {
		return nil, fmt.Errorf("failed to load price candidates: %w", err)
	}

	bySet := make(map[string][]domain.Candidate, len(req.PriceSetIDs))
	for _, c := range candidates {
		bySet[c.Price.PriceSetID] = append(bySet[c.Price.PriceSetID], c)
	}

	results := make([]*domain.CalculatedPrice, 0, len(req.PriceSetIDs))
	priced := 0
	for _, id := range req.PriceSetIDs {
		result := q.selector.Select(id, bySet[id], req.Context, start)
		if result.HasPrice() {
			priced++
		}
		results = append(results, result)
	}

	q.metrics.ObserveCalculation(q.clock.Now().Sub(start), priced, len(results)-priced)
	return results, nil
}

func unique(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
