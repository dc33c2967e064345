package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPriceList(t *testing.T) {
	t.Run("defaults type and status", func(t *testing.T) {
		pl, err := NewPriceList(PriceListInput{Title: "Spring"}, testNow, seqIDs())
		require.NoError(t, err)

		assert.Equal(t, "plist_1", pl.ID)
		assert.Equal(t, PriceListTypeSale, pl.Type)
		assert.Equal(t, PriceListStatusDraft, pl.Status)
		assert.Equal(t, testNow, pl.CreatedAt)
		assert.Empty(t, pl.Prices)
	})

	t.Run("builds rules and prices", func(t *testing.T) {
		pl, err := NewPriceList(PriceListInput{
			ID:     strPtr("plist_vip"),
			Title:  "VIP",
			Type:   PriceListTypeOverride,
			Status: PriceListStatusActive,
			Rules:  rawRules("customer_group_id", "vip"),
			Prices: []PriceInput{
				{PriceSetID: "pset_1", CurrencyCode: "usd", Amount: 800},
				{PriceSetID: "pset_2", CurrencyCode: "usd", Amount: 800},
			},
		}, testNow, seqIDs())
		require.NoError(t, err)

		assert.Equal(t, 1, pl.RulesCount)
		require.Len(t, pl.Prices, 2)
		for _, p := range pl.Prices {
			assert.True(t, p.InPriceList("plist_vip"))
			assert.False(t, p.IsDefault())
		}
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := NewPriceList(PriceListInput{
			Title:    "Broken",
			StartsAt: timePtr(testNow),
			EndsAt:   timePtr(testNow.Add(-time.Hour)),
		}, testNow, seqIDs())

		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrInvalidDateWindow)
	})

	t.Run("rejects duplicate prices", func(t *testing.T) {
		_, err := NewPriceList(PriceListInput{
			Title: "Dup",
			Prices: []PriceInput{
				{PriceSetID: "pset_1", CurrencyCode: "usd", Amount: 1},
				{PriceSetID: "pset_1", CurrencyCode: "USD", Amount: 2},
			},
		}, testNow, seqIDs())
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("rejects list price without price set", func(t *testing.T) {
		_, err := NewPriceList(PriceListInput{Title: "x", Prices: []PriceInput{{CurrencyCode: "usd"}}}, testNow, seqIDs())
		assert.ErrorIs(t, err, ErrEmptyPriceSetID)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewPriceList(PriceListInput{Title: "x", Type: "clearance"}, testNow, seqIDs())
		assert.True(t, errors.Is(err, ErrInvalidPriceListType))
	})
}

func TestPriceList_ApplyPatch(t *testing.T) {
	load := func() *PriceList {
		pl, err := NewPriceList(PriceListInput{
			ID:       strPtr("plist_1"),
			Title:    "Spring",
			StartsAt: timePtr(testNow),
			EndsAt:   timePtr(testNow.Add(48 * time.Hour)),
			Rules:    rawRules("region_id", "reg_1"),
		}, testNow, seqIDs())
		require.NoError(t, err)
		pl.Changes().Clear()
		return pl
	}

	t.Run("tracks only touched fields", func(t *testing.T) {
		pl := load()
		active := PriceListStatusActive
		err := pl.ApplyPatch(PriceListPatch{ID: pl.ID, Title: strPtr("Spring"), Status: &active}, testNow.Add(time.Minute), seqIDs())
		require.NoError(t, err)

		assert.Equal(t, []string{FieldStatus}, pl.Changes().DirtyFields())
		assert.Equal(t, testNow.Add(time.Minute), pl.UpdatedAt)
	})

	t.Run("explicit null clears a date", func(t *testing.T) {
		pl := load()
		err := pl.ApplyPatch(PriceListPatch{ID: pl.ID, EndsAt: SetTime(nil)}, testNow, seqIDs())
		require.NoError(t, err)

		assert.Nil(t, pl.EndsAt)
		assert.NotNil(t, pl.StartsAt)
		assert.True(t, pl.Changes().Dirty(FieldEndsAt))
		assert.False(t, pl.Changes().Dirty(FieldStartsAt))
	})

	t.Run("window checked against stored bound", func(t *testing.T) {
		pl := load()
		late := testNow.Add(72 * time.Hour)
		err := pl.ApplyPatch(PriceListPatch{ID: pl.ID, StartsAt: SetTime(&late)}, testNow, seqIDs())

		assert.ErrorIs(t, err, ErrInvalidDateWindow)
		assert.Equal(t, testNow, *pl.StartsAt, "failed patch leaves the list untouched")
		assert.False(t, pl.Changes().HasChanges())
	})

	t.Run("rules replace the whole set", func(t *testing.T) {
		pl := load()
		oldID := pl.Rules[0].ID
		err := pl.ApplyPatch(PriceListPatch{ID: pl.ID, Rules: rawRules("customer_group_id", "vip", "region_id", "reg_1")}, testNow, seqIDs())
		require.NoError(t, err)

		assert.Equal(t, 2, pl.RulesCount)
		v, _ := pl.Rules.Get("region_id")
		assert.Equal(t, "reg_1", v)
		assert.Equal(t, oldID, pl.Rules[1].ID)
		assert.NotEmpty(t, pl.Rules[0].ID)

		err = pl.ApplyPatch(PriceListPatch{ID: pl.ID, Rules: map[string]*string{}}, testNow, seqIDs())
		require.NoError(t, err)
		assert.Equal(t, 0, pl.RulesCount)
	})
}

func TestPriceListPatch_JSON(t *testing.T) {
	var absent PriceListPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"plist_1"}`), &absent))
	assert.False(t, absent.EndsAt.Present)
	assert.Nil(t, absent.Rules)

	var cleared PriceListPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"plist_1","ends_at":null,"rules":{}}`), &cleared))
	assert.True(t, cleared.EndsAt.Present)
	assert.Nil(t, cleared.EndsAt.Time)
	assert.NotNil(t, cleared.Rules)

	var set PriceListPatch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"plist_1","starts_at":"2026-03-01T12:00:00Z"}`), &set))
	require.NotNil(t, set.StartsAt.Time)
	assert.True(t, testNow.Equal(*set.StartsAt.Time))
}

func TestPriceList_IsActiveAt(t *testing.T) {
	pl := &PriceList{Status: PriceListStatusActive}
	assert.True(t, pl.IsActiveAt(testNow), "open window")

	pl.StartsAt = timePtr(testNow.Add(time.Second))
	assert.False(t, pl.IsActiveAt(testNow))

	pl.StartsAt = nil
	pl.EndsAt = timePtr(testNow.Add(-time.Second))
	assert.False(t, pl.IsActiveAt(testNow))

	pl.EndsAt = nil
	pl.Status = PriceListStatusDraft
	assert.False(t, pl.IsActiveAt(testNow))
}
