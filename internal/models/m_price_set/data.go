package m_price_set

import "time"

// Data represents a row of the price_sets table.
type Data struct {
	PriceSetID string    `spanner:"price_set_id"`
	CreatedAt  time.Time `spanner:"created_at"`
	UpdatedAt  time.Time `spanner:"updated_at"`
}
