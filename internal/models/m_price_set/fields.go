package m_price_set

// Field name constants for the price_sets table.
const (
	TableName = "price_sets"

	PriceSetID = "price_set_id"
	CreatedAt  = "created_at"
	UpdatedAt  = "updated_at"
)

// Columns lists every column in declaration order.
var Columns = []string{PriceSetID, CreatedAt, UpdatedAt}
