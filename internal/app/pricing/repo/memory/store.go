// Package memory keeps pricing state in process. Each unit of work runs
// against a private copy that replaces the shared state only on success.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

type priceSetRow struct {
	ID        string
	CreatedAt time.Time
}

type state struct {
	sets   map[string]priceSetRow
	prices map[string]*domain.Price
	lists  map[string]*domain.PriceList
}

func newState() *state {
	return &state{
		sets:   make(map[string]priceSetRow),
		prices: make(map[string]*domain.Price),
		lists:  make(map[string]*domain.PriceList),
	}
}

// clone copies the maps. Stored values are never mutated in place, so they
// can be shared between copies.
func (s *state) clone() *state {
	c := &state{
		sets:   make(map[string]priceSetRow, len(s.sets)),
		prices: make(map[string]*domain.Price, len(s.prices)),
		lists:  make(map[string]*domain.PriceList, len(s.lists)),
	}
	for k, v := range s.sets {
		c.sets[k] = v
	}
	for k, v := range s.prices {
		c.prices[k] = v
	}
	for k, v := range s.lists {
		c.lists[k] = v
	}
	return c
}

// Store is a serializable in-memory pricing store.
type Store struct {
	mu    sync.RWMutex
	state *state
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// WithinTransaction runs fn against a copy of the state and publishes the
// copy only if fn succeeds. Writers are serialized.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo contracts.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, &txRepository{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// FindCandidates returns the default and list prices of the given sets.
func (s *Store) FindCandidates(_ context.Context, priceSetIDs []string, currency string) ([]domain.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(priceSetIDs))
	for _, id := range priceSetIDs {
		wanted[id] = struct{}{}
	}

	lists := make(map[string]*domain.PriceList)
	var out []domain.Candidate
	for _, p := range sortedPrices(s.state.prices) {
		if _, ok := wanted[p.PriceSetID]; !ok {
			continue
		}
		if currency != "" && p.CurrencyCode != currency {
			continue
		}
		if p.PriceListID == nil {
			out = append(out, domain.Candidate{Price: p.Clone()})
			continue
		}
		pl, ok := lists[*p.PriceListID]
		if !ok {
			stored, found := s.state.lists[*p.PriceListID]
			if !found {
				continue
			}
			pl = stored.Clone()
			lists[pl.ID] = pl
		}
		out = append(out, domain.Candidate{Price: p.Clone(), PriceList: pl})
	}
	return out, nil
}

// FindPriceSets loads sets with their default prices.
func (s *Store) FindPriceSets(_ context.Context, ids []string) ([]*domain.PriceSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findPriceSets(s.state, ids), nil
}

var (
	_ contracts.Transactor      = (*Store)(nil)
	_ contracts.CandidateReader = (*Store)(nil)
)

func findPriceSets(st *state, ids []string) []*domain.PriceSet {
	var found []priceSetRow
	for _, id := range dedupe(ids) {
		if row, ok := st.sets[id]; ok {
			found = append(found, row)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })

	sets := make([]*domain.PriceSet, 0, len(found))
	for _, row := range found {
		ps := &domain.PriceSet{ID: row.ID, Prices: []*domain.Price{}, CreatedAt: row.CreatedAt}
		sets = append(sets, ps)
	}
	bySet := make(map[string]*domain.PriceSet, len(sets))
	for _, ps := range sets {
		bySet[ps.ID] = ps
	}
	for _, p := range sortedPrices(st.prices) {
		if !p.IsDefault() {
			continue
		}
		if ps, ok := bySet[p.PriceSetID]; ok {
			ps.Prices = append(ps.Prices, p.Clone())
		}
	}
	return sets
}

func sortedPrices(prices map[string]*domain.Price) []*domain.Price {
	out := make([]*domain.Price, 0, len(prices))
	for _, p := range prices {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
