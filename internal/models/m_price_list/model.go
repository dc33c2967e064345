package m_price_list

import (
	"sort"

	"cloud.google.com/go/spanner"
)

// Model builds mutations for the price_lists table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation inserting a new price list.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		Columns,
		[]interface{}{
			data.PriceListID,
			data.Title,
			data.Description,
			data.Type,
			data.Status,
			data.StartsAt,
			data.EndsAt,
			data.RulesCount,
			data.CreatedAt,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut writes only the given columns. updated_at is always refreshed.
// Returns nil when there is nothing to write.
func (m *Model) UpdateMut(priceListID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	cols := make([]string, 0, len(updates))
	for col := range updates {
		if col == PriceListID || col == UpdatedAt {
			continue
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)

	columns := make([]string, 0, len(cols)+2)
	values := make([]interface{}, 0, len(cols)+2)
	columns = append(columns, PriceListID)
	values = append(values, priceListID)
	for _, col := range cols {
		columns = append(columns, col)
		values = append(values, updates[col])
	}
	columns = append(columns, UpdatedAt)
	values = append(values, spanner.CommitTimestamp)

	return spanner.Update(TableName, columns, values)
}

// DeleteMut deletes a price list; its interleaved rules cascade.
func (m *Model) DeleteMut(priceListID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{priceListID})
}
