package m_price_list_rule

import (
	"cloud.google.com/go/spanner"
)

// Model builds mutations for the price_list_rules table.
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
		[]interface{}{data.PriceListID, data.Attribute, data.PriceListRuleID, data.Value, data.CreatedAt},
	)
}

// DeleteAllMut deletes every rule of a price list.
func (m *Model) DeleteAllMut(priceListID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{priceListID}.AsPrefix())
}
