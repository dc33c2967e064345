package m_price

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the prices table. Amounts are minor units.
type Data struct {
	PriceID      string             `spanner:"price_id"`
	PriceSetID   string             `spanner:"price_set_id"`
	PriceListID  spanner.NullString `spanner:"price_list_id"`
	Title        spanner.NullString `spanner:"title"`
	CurrencyCode string             `spanner:"currency_code"`
	Amount       int64              `spanner:"amount"`
	MinQuantity  spanner.NullInt64  `spanner:"min_quantity"`
	MaxQuantity  spanner.NullInt64  `spanner:"max_quantity"`
	RulesCount   int64              `spanner:"rules_count"`
	CreatedAt    time.Time          `spanner:"created_at"`
	UpdatedAt    time.Time          `spanner:"updated_at"`
}
