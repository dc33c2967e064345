package repo

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_set"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// txRepository reads through one transaction and appends mutations to its
// plan. Buffered writes are not visible to reads of the same attempt.
type txRepository struct {
	reader reader
	plan   *committer.CommitPlan
	clock  clock.Clock

	priceSets      *m_price_set.Model
	prices         *m_price.Model
	priceRules     *m_price_rule.Model
	priceLists     *m_price_list.Model
	priceListRules *m_price_list_rule.Model
}

func newTxRepository(r reader, plan *committer.CommitPlan, clk clock.Clock) *txRepository {
	return &txRepository{
		reader:         r,
		plan:           plan,
		clock:          clk,
		priceSets:      m_price_set.NewModel(),
		prices:         m_price.NewModel(),
		priceRules:     m_price_rule.NewModel(),
		priceLists:     m_price_list.NewModel(),
		priceListRules: m_price_list_rule.NewModel(),
	}
}

func (r *txRepository) FindPriceSets(ctx context.Context, ids []string) ([]*domain.PriceSet, error) {
	return findPriceSets(ctx, r.reader, ids)
}

func (r *txRepository) FindPriceLists(ctx context.Context, ids []string) ([]*domain.PriceList, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	lists, err := loadPriceLists(ctx, r.reader, ids)
	if err != nil || len(lists) == 0 {
		return lists, err
	}

	found := make([]string, 0, len(lists))
	for _, pl := range lists {
		found = append(found, pl.ID)
	}
	prices, err := loadPrices(ctx, r.reader, query.In(m_price.PriceListID, found))
	if err != nil {
		return nil, err
	}
	byList := make(map[string][]*domain.Price, len(found))
	for _, p := range prices {
		byList[*p.PriceListID] = append(byList[*p.PriceListID], p)
	}
	for _, pl := range lists {
		pl.Prices = byList[pl.ID]
		if pl.Prices == nil {
			pl.Prices = []*domain.Price{}
		}
	}
	return lists, nil
}

func (r *txRepository) FindPrices(ctx context.Context, ids []string) ([]*domain.Price, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return loadPrices(ctx, r.reader, query.In(m_price.PriceID, ids))
}

// UpsertPriceSets writes the sets and replaces their default prices. Stored
// default prices missing from set.Prices are deleted.
func (r *txRepository) UpsertPriceSets(ctx context.Context, sets []*domain.PriceSet) error {
	if len(sets) == 0 {
		return nil
	}
	ids := make([]string, 0, len(sets))
	for _, ps := range sets {
		ids = append(ids, ps.ID)
	}

	existing, err := loadPrices(ctx, r.reader, query.In(m_price.PriceSetID, ids), query.IsNull(m_price.PriceListID))
	if err != nil {
		return err
	}
	keep := make(map[string]struct{})
	for _, ps := range sets {
		for _, p := range ps.Prices {
			keep[p.ID] = struct{}{}
		}
	}
	for _, p := range existing {
		if _, ok := keep[p.ID]; !ok {
			r.plan.Add(r.prices.DeleteMut(p.ID))
		}
	}

	for _, ps := range sets {
		r.plan.Add(r.priceSets.UpsertMut(priceSetToData(ps)))
		r.writePrices(ps.Prices)
	}
	return nil
}

func (r *txRepository) UpsertPrices(_ context.Context, prices []*domain.Price) error {
	r.writePrices(prices)
	return nil
}

// writePrices upserts price rows and replaces each price's rules.
func (r *txRepository) writePrices(prices []*domain.Price) {
	for _, p := range prices {
		r.plan.Add(r.prices.UpsertMut(priceToData(p)))
		r.plan.Add(r.priceRules.DeleteAllMut(p.ID))
		for _, rule := range priceRulesToData(p) {
			r.plan.Add(r.priceRules.InsertMut(rule))
		}
	}
}

func (r *txRepository) InsertPriceLists(_ context.Context, lists []*domain.PriceList) error {
	for _, pl := range lists {
		r.plan.Add(r.priceLists.InsertMut(priceListToData(pl)))
		for _, rule := range priceListRulesToData(pl, pl.CreatedAt) {
			r.plan.Add(r.priceListRules.InsertMut(rule))
		}
		r.writePrices(pl.Prices)
	}
	return nil
}

// UpdatePriceLists writes only tracked columns. Lists without changes are
// skipped.
func (r *txRepository) UpdatePriceLists(_ context.Context, lists []*domain.PriceList) error {
	for _, pl := range lists {
		changes := pl.Changes()
		if !changes.HasChanges() {
			continue
		}
		if mut := r.priceLists.UpdateMut(pl.ID, priceListUpdates(pl)); mut != nil {
			r.plan.Add(mut)
		}
		if changes.Dirty(domain.FieldRules) {
			r.plan.Add(r.priceListRules.DeleteAllMut(pl.ID))
			for _, rule := range priceListRulesToData(pl, r.clock.Now()) {
				r.plan.Add(r.priceListRules.InsertMut(rule))
			}
		}
	}
	return nil
}

func (r *txRepository) DeletePrices(_ context.Context, ids []string) error {
	for _, id := range ids {
		r.plan.Add(r.prices.DeleteMut(id))
	}
	return nil
}

// DeletePriceLists removes the lists and the prices they hold. List rules go
// with the list through the interleave cascade.
func (r *txRepository) DeletePriceLists(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	stmt := query.From(m_price.TableName).
		Select(m_price.PriceID).
		Where(query.In(m_price.PriceListID, ids)).
		Build()
	iter := r.reader.Query(ctx, stmt)
	err := iter.Do(func(row *spanner.Row) error {
		var priceID string
		if err := row.Columns(&priceID); err != nil {
			return err
		}
		r.plan.Add(r.prices.DeleteMut(priceID))
		return nil
	})
	if err != nil {
		return err
	}

	for _, id := range ids {
		r.plan.Add(r.priceLists.DeleteMut(id))
	}
	return nil
}

var _ contracts.Repository = (*txRepository)(nil)
