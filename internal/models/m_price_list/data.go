package m_price_list

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the price_lists table.
type Data struct {
	PriceListID string           `spanner:"price_list_id"`
	Title       string           `spanner:"title"`
	Description string           `spanner:"description"`
	Type        string           `spanner:"type"`
	Status      string           `spanner:"status"`
	StartsAt    spanner.NullTime `spanner:"starts_at"`
	EndsAt      spanner.NullTime `spanner:"ends_at"`
	RulesCount  int64            `spanner:"rules_count"`
	CreatedAt   time.Time        `spanner:"created_at"`
	UpdatedAt   time.Time        `spanner:"updated_at"`
}
