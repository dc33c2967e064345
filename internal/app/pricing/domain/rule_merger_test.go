package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRules(t *testing.T) {
	current := RuleSet{{ID: "plrule_1", Attribute: "region_id", Value: "reg_1"}}

	t.Run("adds and overwrites", func(t *testing.T) {
		merged := MergeRules(current, rawRules("customer_group_id", "cg_1", "region_id", "reg_2"))

		require.Len(t, merged, 2)
		assert.Equal(t, Rule{Attribute: "customer_group_id", Value: "cg_1"}, merged[0])
		assert.Equal(t, Rule{ID: "plrule_1", Attribute: "region_id", Value: "reg_2"}, merged[1])
		assert.Equal(t, "reg_1", current[0].Value, "input is not mutated")
	})

	t.Run("nil or empty value removes", func(t *testing.T) {
		updates := map[string]*string{"region_id": nil}
		assert.Empty(t, MergeRules(current, updates))

		updates = map[string]*string{"region_id": strPtr("")}
		assert.Empty(t, MergeRules(current, updates))
	})
}

func TestRemoveRules(t *testing.T) {
	current := RulesFromMap(map[string]string{"region_id": "reg_1", "customer_group_id": "cg_1"})

	remaining := RemoveRules(current, []string{"customer_group_id", "unknown"})

	assert.Equal(t, []string{"region_id"}, remaining.Attributes())
	assert.Equal(t, 2, current.Count())
}

func TestReplaceRules(t *testing.T) {
	current := RuleSet{
		{ID: "plrule_1", Attribute: "region_id", Value: "reg_1"},
		{ID: "plrule_2", Attribute: "channel", Value: "web"},
	}

	next := ReplaceRules(current, rawRules("region_id", "reg_9", "customer_group_id", "vip"))

	assert.Equal(t, RuleSet{
		{Attribute: "customer_group_id", Value: "vip"},
		{ID: "plrule_1", Attribute: "region_id", Value: "reg_9"},
	}, next)
}

func TestDiffRules(t *testing.T) {
	before := RulesFromMap(map[string]string{"a": "1", "b": "2", "c": "3"})
	after := RulesFromMap(map[string]string{"a": "1", "b": "20", "d": "4"})

	diff := DiffRules(before, after)

	assert.Equal(t, []string{"d"}, diff.Created.Attributes())
	assert.Equal(t, []string{"b"}, diff.Updated.Attributes())
	assert.Equal(t, []string{"c"}, diff.Removed.Attributes())
}

func TestPriceList_SetAndRemoveRules(t *testing.T) {
	newID := seqIDs()
	pl, err := NewPriceList(PriceListInput{Title: "VIP"}, testNow, newID)
	require.NoError(t, err)

	diff := pl.SetRules(rawRules("customer_group_id", "cg_1"), testNow, newID)
	assert.Len(t, diff.Created, 1)

	pl.SetRules(rawRules("region_id", "reg_1"), testNow, newID)
	assert.Equal(t, 2, pl.RulesCount)
	assert.Equal(t, []string{"customer_group_id", "region_id"}, pl.Rules.Attributes())
	for _, r := range pl.Rules {
		assert.NotEmpty(t, r.ID)
	}

	diff = pl.RemoveRules([]string{"customer_group_id"}, testNow.Add(1))
	assert.Equal(t, 1, pl.RulesCount)
	assert.Equal(t, []string{"region_id"}, pl.Rules.Attributes())
	assert.Equal(t, []string{"customer_group_id"}, diff.Removed.Attributes())
	assert.True(t, pl.Changes().Dirty(FieldRules))
	assert.Equal(t, testNow.Add(1), pl.UpdatedAt)

	pl.RemoveRules([]string{"not_there"}, testNow)
	assert.Equal(t, 1, pl.RulesCount)
}
