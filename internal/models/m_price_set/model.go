package m_price_set

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for the price_sets table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut inserts the set or refreshes its updated_at.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{PriceSetID, CreatedAt, UpdatedAt},
		[]interface{}{data.PriceSetID, data.CreatedAt, spanner.CommitTimestamp},
	)
}

// DeleteMut deletes one price set row.
func (m *Model) DeleteMut(priceSetID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{priceSetID})
}
