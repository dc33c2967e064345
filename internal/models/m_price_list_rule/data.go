package m_price_list_rule

import "time"

// Data represents a row of the price_list_rules table.
type Data struct {
	PriceListID     string    `spanner:"price_list_id"`
	Attribute       string    `spanner:"attribute"`
	PriceListRuleID string    `spanner:"price_list_rule_id"`
	Value           string    `spanner:"value"`
	CreatedAt       time.Time `spanner:"created_at"`
}
