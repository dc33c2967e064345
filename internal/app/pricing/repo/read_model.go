package repo

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// ReadModel serves price calculation from a read-only snapshot.
type ReadModel struct {
	client *spanner.Client
}

// NewReadModel creates a new ReadModel.
func NewReadModel(client *spanner.Client) *ReadModel {
	return &ReadModel{client: client}
}

// FindCandidates loads the prices of the given sets with the lists that hold
// them. Four queries run against one snapshot regardless of how many sets
// are requested.
func (m *ReadModel) FindCandidates(ctx context.Context, priceSetIDs []string, currency string) ([]domain.Candidate, error) {
	if len(priceSetIDs) == 0 {
		return nil, nil
	}
	txn := m.client.ReadOnlyTransaction()
	defer txn.Close()

	conds := []query.Condition{query.In(m_price.PriceSetID, priceSetIDs)}
	if currency != "" {
		conds = append(conds, query.Eq(m_price.CurrencyCode, currency))
	}
	prices, err := loadPrices(ctx, txn, conds...)
	if err != nil {
		return nil, err
	}

	var listIDs []string
	seen := make(map[string]struct{})
	for _, p := range prices {
		if p.PriceListID == nil {
			continue
		}
		if _, ok := seen[*p.PriceListID]; ok {
			continue
		}
		seen[*p.PriceListID] = struct{}{}
		listIDs = append(listIDs, *p.PriceListID)
	}

	lists := make(map[string]*domain.PriceList, len(listIDs))
	if len(listIDs) > 0 {
		loaded, err := loadPriceLists(ctx, txn, listIDs)
		if err != nil {
			return nil, err
		}
		for _, pl := range loaded {
			lists[pl.ID] = pl
		}
	}

	return assembleCandidates(prices, lists), nil
}

// FindPriceSets loads sets with their default prices.
func (m *ReadModel) FindPriceSets(ctx context.Context, ids []string) ([]*domain.PriceSet, error) {
	txn := m.client.ReadOnlyTransaction()
	defer txn.Close()
	return findPriceSets(ctx, txn, ids)
}

// assembleCandidates pairs prices with their list. Prices whose list no
// longer exists are dropped.
func assembleCandidates(prices []*domain.Price, lists map[string]*domain.PriceList) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(prices))
	for _, p := range prices {
		if p.PriceListID == nil {
			out = append(out, domain.Candidate{Price: p})
			continue
		}
		pl, ok := lists[*p.PriceListID]
		if !ok {
			continue
		}
		out = append(out, domain.Candidate{Price: p, PriceList: pl})
	}
	return out
}

var _ contracts.CandidateReader = (*ReadModel)(nil)
