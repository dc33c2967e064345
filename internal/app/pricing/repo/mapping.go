package repo

import (
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_price"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list"
	"github.com/light-bringer/pricing-service/internal/models/m_price_list_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_rule"
	"github.com/light-bringer/pricing-service/internal/models/m_price_set"
)

func priceToData(p *domain.Price) *m_price.Data {
	data := &m_price.Data{
		PriceID:      p.ID,
		PriceSetID:   p.PriceSetID,
		PriceListID:  nullString(p.PriceListID),
		Title:        nullString(p.Title),
		CurrencyCode: p.CurrencyCode,
		Amount:       p.Amount,
		MinQuantity:  nullInt64(p.MinQuantity),
		MaxQuantity:  nullInt64(p.MaxQuantity),
		RulesCount:   int64(p.Rules.Count()),
		CreatedAt:    p.CreatedAt,
	}
	return data
}

func priceFromData(data *m_price.Data, rules domain.RuleSet) *domain.Price {
	if rules == nil {
		rules = domain.RuleSet{}
	}
	return &domain.Price{
		ID:           data.PriceID,
		Title:        stringPtr(data.Title),
		PriceSetID:   data.PriceSetID,
		PriceListID:  stringPtr(data.PriceListID),
		CurrencyCode: data.CurrencyCode,
		Amount:       data.Amount,
		MinQuantity:  int64Ptr(data.MinQuantity),
		MaxQuantity:  int64Ptr(data.MaxQuantity),
		Rules:        rules,
		RulesCount:   rules.Count(),
		CreatedAt:    data.CreatedAt,
	}
}

func priceRulesToData(p *domain.Price) []*m_price_rule.Data {
	out := make([]*m_price_rule.Data, 0, len(p.Rules))
	for _, r := range p.Rules {
		out = append(out, &m_price_rule.Data{
			PriceID:     p.ID,
			Attribute:   r.Attribute,
			PriceRuleID: r.ID,
			Value:       r.Value,
			CreatedAt:   p.CreatedAt,
		})
	}
	return out
}

func priceSetToData(ps *domain.PriceSet) *m_price_set.Data {
	return &m_price_set.Data{
		PriceSetID: ps.ID,
		CreatedAt:  ps.CreatedAt,
	}
}

func priceListToData(pl *domain.PriceList) *m_price_list.Data {
	return &m_price_list.Data{
		PriceListID: pl.ID,
		Title:       pl.Title,
		Description: pl.Description,
		Type:        string(pl.Type),
		Status:      string(pl.Status),
		StartsAt:    nullTime(pl.StartsAt),
		EndsAt:      nullTime(pl.EndsAt),
		RulesCount:  int64(pl.Rules.Count()),
		CreatedAt:   pl.CreatedAt,
	}
}

func priceListFromData(data *m_price_list.Data, rules domain.RuleSet) *domain.PriceList {
	if rules == nil {
		rules = domain.RuleSet{}
	}
	return &domain.PriceList{
		ID:          data.PriceListID,
		Title:       data.Title,
		Description: data.Description,
		Type:        domain.PriceListType(data.Type),
		Status:      domain.PriceListStatus(data.Status),
		StartsAt:    timePtr(data.StartsAt),
		EndsAt:      timePtr(data.EndsAt),
		Rules:       rules,
		RulesCount:  rules.Count(),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func priceListRulesToData(pl *domain.PriceList, now time.Time) []*m_price_list_rule.Data {
	out := make([]*m_price_list_rule.Data, 0, len(pl.Rules))
	for _, r := range pl.Rules {
		out = append(out, &m_price_list_rule.Data{
			PriceListID:     pl.ID,
			Attribute:       r.Attribute,
			PriceListRuleID: r.ID,
			Value:           r.Value,
			CreatedAt:       now,
		})
	}
	return out
}

// priceListUpdates maps the dirty fields of pl to column values.
func priceListUpdates(pl *domain.PriceList) map[string]interface{} {
	changes := pl.Changes()
	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldTitle) {
		updates[m_price_list.Title] = pl.Title
	}
	if changes.Dirty(domain.FieldDescription) {
		updates[m_price_list.Description] = pl.Description
	}
	if changes.Dirty(domain.FieldType) {
		updates[m_price_list.Type] = string(pl.Type)
	}
	if changes.Dirty(domain.FieldStatus) {
		updates[m_price_list.Status] = string(pl.Status)
	}
	if changes.Dirty(domain.FieldStartsAt) {
		updates[m_price_list.StartsAt] = nullTime(pl.StartsAt)
	}
	if changes.Dirty(domain.FieldEndsAt) {
		updates[m_price_list.EndsAt] = nullTime(pl.EndsAt)
	}
	if changes.Dirty(domain.FieldRules) {
		updates[m_price_list.RulesCount] = int64(pl.Rules.Count())
	}
	return updates
}

func nullString(s *string) spanner.NullString {
	if s == nil {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}

func nullInt64(i *int64) spanner.NullInt64 {
	if i == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: *i, Valid: true}
}

func nullTime(t *time.Time) spanner.NullTime {
	if t == nil {
		return spanner.NullTime{}
	}
	return spanner.NullTime{Time: *t, Valid: true}
}

func stringPtr(s spanner.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.StringVal
	return &v
}

func int64Ptr(i spanner.NullInt64) *int64 {
	if !i.Valid {
		return nil
	}
	v := i.Int64
	return &v
}

func timePtr(t spanner.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
