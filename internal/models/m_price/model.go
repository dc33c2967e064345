package m_price

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for the prices table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut writes every column of the price; updated_at is the commit time.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.PriceID,
			data.PriceSetID,
			data.PriceListID,
			data.Title,
			data.CurrencyCode,
			data.Amount,
			data.MinQuantity,
			data.MaxQuantity,
			data.RulesCount,
			data.CreatedAt,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut deletes a price; its interleaved rules cascade.
func (m *Model) DeleteMut(priceID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{priceID})
}
