package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Select(t *testing.T) {
	t.Run("explicit columns", func(t *testing.T) {
		stmt := From("prices").Select("price_id", "amount").Build()
		assert.Equal(t, "SELECT price_id, amount FROM prices", stmt.SQL)
		assert.Empty(t, stmt.Params)
	})

	t.Run("all columns", func(t *testing.T) {
		stmt := From("price_sets").Build()
		assert.Equal(t, "SELECT * FROM price_sets", stmt.SQL)
	})

	t.Run("multiple select calls accumulate", func(t *testing.T) {
		stmt := From("prices").Select("price_id").Select("price_set_id").Build()
		assert.Equal(t, "SELECT price_id, price_set_id FROM prices", stmt.SQL)
	})
}

func TestBuilder_CandidatePricesQuery(t *testing.T) {
	stmt := From("prices").
		Select("price_id", "price_set_id", "price_list_id").
		Where(In("price_set_id", []string{"pset_1", "pset_2"})).
		Where(Eq("currency_code", "usd")).
		OrderBy("price_set_id", Asc).
		OrderBy("price_id", Asc).
		Build()

	assert.Equal(t,
		"SELECT price_id, price_set_id, price_list_id FROM prices WHERE price_set_id IN UNNEST(@p0) AND currency_code = @p1 ORDER BY price_set_id ASC, price_id ASC",
		stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": []string{"pset_1", "pset_2"},
		"p1": "usd",
	}, stmt.Params)
}

func TestBuilder_ParamIndexSkipsNullChecks(t *testing.T) {
	stmt := From("prices").
		Select("price_id").
		Where(Eq("price_set_id", "pset_1"), IsNull("price_list_id"), Eq("currency_code", "eur")).
		Build()

	assert.Equal(t, "SELECT price_id FROM prices WHERE price_set_id = @p0 AND price_list_id IS NULL AND currency_code = @p1", stmt.SQL)
	assert.Len(t, stmt.Params, 2)
}

func TestBuilder_WhereIgnoresNil(t *testing.T) {
	var cond Condition
	stmt := From("price_lists").Where(cond).Build()
	assert.Equal(t, "SELECT * FROM price_lists", stmt.SQL)
}

func TestBuilder_Pagination(t *testing.T) {
	stmt := From("outbox_events").
		Select("event_id").
		Where(Eq("status", "pending")).
		OrderBy("created_at", Desc).
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, "SELECT event_id FROM outbox_events WHERE status = @p0 ORDER BY created_at DESC LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0":     "pending",
		"limit":  int64(10),
		"offset": int64(20),
	}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	base := From("outbox_events").
		Select("event_id").
		Where(Eq("status", "completed")).
		OrderBy("created_at", Desc).
		Limit(5)

	stmt := base.Count().Build()
	assert.Equal(t, "SELECT COUNT(*) FROM outbox_events WHERE status = @p0", stmt.SQL)
	assert.Equal(t, map[string]interface{}{"p0": "completed"}, stmt.Params)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("prices").Select("price_id")
	withWhere := base.Where(Eq("price_id", "price_1"))
	withOrder := base.OrderBy("price_id", Asc)

	assert.Equal(t, "SELECT price_id FROM prices", base.Build().SQL)
	assert.Equal(t, "SELECT price_id FROM prices WHERE price_id = @p0", withWhere.Build().SQL)
	assert.Equal(t, "SELECT price_id FROM prices ORDER BY price_id ASC", withOrder.Build().SQL)
}

func TestConditions(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		cond       Condition
		index      int
		wantSQL    string
		wantParams map[string]interface{}
	}{
		{"eq", Eq("status", "active"), 0, "status = @p0", map[string]interface{}{"p0": "active"}},
		{"eq offset index", Eq("type", "sale"), 5, "type = @p5", map[string]interface{}{"p5": "sale"}},
		{"lt", Lt("created_at", cutoff), 1, "created_at < @p1", map[string]interface{}{"p1": cutoff}},
		{"gte", Gte("retry_count", int64(3)), 2, "retry_count >= @p2", map[string]interface{}{"p2": int64(3)}},
		{"in", In("price_list_id", []string{"plist_1"}), 0, "price_list_id IN UNNEST(@p0)", map[string]interface{}{"p0": []string{"plist_1"}}},
		{"in nil slice", In("price_id", nil), 0, "price_id IN UNNEST(@p0)", map[string]interface{}{"p0": []string{}}},
		{"is null", IsNull("price_list_id"), 3, "price_list_id IS NULL", map[string]interface{}{}},
		{"is not null", IsNotNull("ends_at"), 0, "ends_at IS NOT NULL", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params := tt.cond.SQL(tt.index)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestBuilder_String(t *testing.T) {
	s := From("prices").Where(Eq("price_id", "price_1")).String()
	assert.Contains(t, s, "SQL: SELECT * FROM prices WHERE price_id = @p0")
	assert.Contains(t, s, "price_1")
}
