package m_price_list

// Field name constants for the price_lists table.
const (
	TableName = "price_lists"

	PriceListID = "price_list_id"
	Title       = "title"
	Description = "description"
	Type        = "type"
	Status      = "status"
	StartsAt    = "starts_at"
	EndsAt      = "ends_at"
	RulesCount  = "rules_count"
	CreatedAt   = "created_at"
	UpdatedAt   = "updated_at"
)

// Columns lists every column in declaration order.
var Columns = []string{
	PriceListID,
	Title,
	Description,
	Type,
	Status,
	StartsAt,
	EndsAt,
	RulesCount,
	CreatedAt,
	UpdatedAt,
}
