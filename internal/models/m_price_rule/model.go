package m_price_rule

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for the price_rules table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut writes one rule row.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{data.PriceID, data.Attribute, data.PriceRuleID, data.Value, data.CreatedAt},
	)
}

// DeleteAllMut deletes every rule of a price.
func (m *Model) DeleteAllMut(priceID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{priceID}.AsPrefix())
}
