package m_price_rule

// Field name constants for the price_rules table, interleaved in prices.
const (
	TableName = "price_rules"

	PriceID     = "price_id"
	Attribute   = "attribute"
	PriceRuleID = "price_rule_id"
	Value       = "value"
	CreatedAt   = "created_at"
)

// Columns lists every column in declaration order.
var Columns = []string{PriceID, Attribute, PriceRuleID, Value, CreatedAt}
