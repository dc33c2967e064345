package m_price_list_rule

// Field name constants for the price_list_rules table, interleaved in price_lists.
const (
	TableName = "price_list_rules"

	PriceListID     = "price_list_id"
	Attribute       = "attribute"
	PriceListRuleID = "price_list_rule_id"
	Value           = "value"
	CreatedAt       = "created_at"
)

// Columns lists every column in declaration order.
var Columns = []string{PriceListID, Attribute, PriceListRuleID, Value, CreatedAt}
