package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_set"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// reader is satisfied by both read-write and read-only transactions.
type reader interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// queryRows runs stmt and decodes every row into a T.
func queryRows[T any](ctx context.Context, r reader, stmt spanner.Statement) ([]*T, error) {
	iter := r.Query(ctx, stmt)
	defer iter.Stop()

	var out []*T
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var data T
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		out = append(out, &data)
	}
	return out, nil
}

func loadPriceSetRows(ctx context.Context, r reader, ids []string) ([]*m_price_set.Data, error) {
	stmt := query.From(m_price_set.TableName).
		Select(m_price_set.Columns...).
		Where(query.In(m_price_set.PriceSetID, ids)).
		OrderBy(m_price_set.PriceSetID, query.Asc).
		Build()
	rows, err := queryRows[m_price_set.Data](ctx, r, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to load price sets: %w", err)
	}
	return rows, nil
}

// loadPrices reads prices matching conds together with their rules.
func loadPrices(ctx context.Context, r reader, conds ...query.Condition) ([]*domain.Price, error) {
	stmt := query.From(m_price.TableName).
		Select(m_price.Columns...).
		Where(conds...).
		OrderBy(m_price.PriceID, query.Asc).
		Build()
	rows, err := queryRows[m_price.Data](ctx, r, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PriceID)
	}
	rules, err := loadPriceRules(ctx, r, ids)
	if err != nil {
		return nil, err
	}

	prices := make([]*domain.Price, 0, len(rows))
	for _, row := range rows {
		prices = append(prices, priceFromData(row, rules[row.PriceID]))
	}
	return prices, nil
}

func loadPriceRules(ctx context.Context, r reader, priceIDs []string) (map[string]domain.RuleSet, error) {
	stmt := query.From(m_price_rule.TableName).
		Select(m_price_rule.Columns...).
		Where(query.In(m_price_rule.PriceID, priceIDs)).
		OrderBy(m_price_rule.PriceID, query.Asc).
		OrderBy(m_price_rule.Attribute, query.Asc).
		Build()
	rows, err := queryRows[m_price_rule.Data](ctx, r, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to load price rules: %w", err)
	}

	out := make(map[string]domain.RuleSet, len(priceIDs))
	for _, row := range rows {
		out[row.PriceID] = append(out[row.PriceID], domain.Rule{
			ID:        row.PriceRuleID,
			Attribute: row.Attribute,
			Value:     row.Value,
		})
	}
	return out, nil
}

// loadPriceLists reads lists with their rules. Prices are not attached.
func loadPriceLists(ctx context.Context, r reader, ids []string) ([]*domain.PriceList, error) {
	stmt := query.From(m_price_list.TableName).
		Select(m_price_list.Columns...).
		Where(query.In(m_price_list.PriceListID, ids)).
		OrderBy(m_price_list.PriceListID, query.Asc).
		Build()
	rows, err := queryRows[m_price_list.Data](ctx, r, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to load price lists: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	found := make([]string, 0, len(rows))
	for _, row := range rows {
		found = append(found, row.PriceListID)
	}
	rules, err := loadPriceListRules(ctx, r, found)
	if err != nil {
		return nil, err
	}

	lists := make([]*domain.PriceList, 0, len(rows))
	for _, row := range rows {
		lists = append(lists, priceListFromData(row, rules[row.PriceListID]))
	}
	return lists, nil
}

func loadPriceListRules(ctx context.Context, r reader, listIDs []string) (map[string]domain.RuleSet, error) {
	stmt := query.From(m_price_list_rule.TableName).
		Select(m_price_list_rule.Columns...).
		Where(query.In(m_price_list_rule.PriceListID, listIDs)).
		OrderBy(m_price_list_rule.PriceListID, query.Asc).
		OrderBy(m_price_list_rule.Attribute, query.Asc).
		Build()
	rows, err := queryRows[m_price_list_rule.Data](ctx, r, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to load price list rules: %w", err)
	}

	out := make(map[string]domain.RuleSet, len(listIDs))
	for _, row := range rows {
		out[row.PriceListID] = append(out[row.PriceListID], domain.Rule{
			ID:        row.PriceListRuleID,
			Attribute: row.Attribute,
			Value:     row.Value,
		})
	}
	return out, nil
}

// findPriceSets assembles sets with their default prices.
func findPriceSets(ctx context.Context, r reader, ids []string) ([]*domain.PriceSet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := loadPriceSetRows(ctx, r, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	found := make([]string, 0, len(rows))
	for _, row := range rows {
		found = append(found, row.PriceSetID)
	}
	prices, err := loadPrices(ctx, r, query.In(m_price.PriceSetID, found), query.IsNull(m_price.PriceListID))
	if err != nil {
		return nil, err
	}
	bySet := make(map[string][]*domain.Price, len(found))
	for _, p := range prices {
		bySet[p.PriceSetID] = append(bySet[p.PriceSetID], p)
	}

	sets := make([]*domain.PriceSet, 0, len(rows))
	for _, row := range rows {
		prices := bySet[row.PriceSetID]
		if prices == nil {
			prices = []*domain.Price{}
		}
		sets = append(sets, &domain.PriceSet{
			ID:        row.PriceSetID,
			Prices:    prices,
			CreatedAt: row.CreatedAt,
		})
	}
	return sets, nil
}
