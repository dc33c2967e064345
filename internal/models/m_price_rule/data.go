package m_price_rule

import "time"

// Data represents a row of the price_rules table.
type Data struct {
	PriceID     string    `spanner:"price_id"`
	Attribute   string    `spanner:"attribute"`
	PriceRuleID string    `spanner:"price_rule_id"`
	Value       string    `spanner:"value"`
	CreatedAt   time.Time `spanner:"created_at"`
}
