package m_price

// Field name constants for the prices table.
const (
	TableName = "prices"

	PriceID      = "price_id"
	PriceSetID   = "price_set_id"
	PriceListID  = "price_list_id"
	Title        = "title"
	CurrencyCode = "currency_code"
	Amount       = "amount"
	MinQuantity  = "min_quantity"
	MaxQuantity  = "max_quantity"
	RulesCount   = "rules_count"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)

// Columns lists every column in declaration order.
var Columns = []string{
	PriceID,
	PriceSetID,
	PriceListID,
	Title,
	CurrencyCode,
	Amount,
	MinQuantity,
	MaxQuantity,
	RulesCount,
	CreatedAt,
	UpdatedAt,
}
