package domain

import (
	"sort"
	"strings"
)

// Rule is one attribute/value condition attached to a price or a price list.
// ID is the persisted row id and never takes part in matching or signatures.
type Rule struct {
	ID        string `json:"id,omitempty"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// RuleSet is an ordered, attribute-unique sequence of rules.
// Values built through NormalizeRules are sorted by attribute.
type RuleSet []Rule

// NormalizeRules drops nil and empty values and returns the remaining rules
// sorted by attribute.
func NormalizeRules(raw map[string]*string) RuleSet {
	if len(raw) == 0 {
		return RuleSet{}
	}
	rules := make(RuleSet, 0, len(raw))
	for attr, value := range raw {
		attr = strings.TrimSpace(attr)
		if attr == "" || value == nil || *value == "" {
			continue
		}
		rules = append(rules, Rule{Attribute: attr, Value: *value})
	}
	rules.sort()
	return rules
}

// RulesFromMap builds a RuleSet from plain attribute/value pairs.
func RulesFromMap(raw map[string]string) RuleSet {
	ptrs := make(map[string]*string, len(raw))
	for k, v := range raw {
		v := v
		ptrs[k] = &v
	}
	return NormalizeRules(ptrs)
}

func (rs RuleSet) sort() {
	sort.Slice(rs, func(i, j int) bool { return rs[i].Attribute < rs[j].Attribute })
}

// Count is the number of rules, used as the specificity of a price.
func (rs RuleSet) Count() int {
	return len(rs)
}

// Get returns the value for attr.
func (rs RuleSet) Get(attr string) (string, bool) {
	for _, r := range rs {
		if r.Attribute == attr {
			return r.Value, true
		}
	}
	return "", false
}

// Map returns the rules as attribute/value pairs.
func (rs RuleSet) Map() map[string]string {
	out := make(map[string]string, len(rs))
	for _, r := range rs {
		out[r.Attribute] = r.Value
	}
	return out
}

// Attributes returns the attribute names in order.
func (rs RuleSet) Attributes() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Attribute)
	}
	return out
}

// Clone returns a copy that shares no backing array with rs.
func (rs RuleSet) Clone() RuleSet {
	if rs == nil {
		return nil
	}
	out := make(RuleSet, len(rs))
	copy(out, rs)
	return out
}

// AssignIDs fills in missing rule ids.
func (rs RuleSet) AssignIDs(newID func() string) {
	for i := range rs {
		if rs[i].ID == "" {
			rs[i].ID = newID()
		}
	}
}

// IDs returns the ids of all rules.
func (rs RuleSet) IDs() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if r.ID != "" {
			out = append(out, r.ID)
		}
	}
	return out
}

// SatisfiedBy reports whether every rule is matched by lookup. An attribute
// that is missing from the context does not satisfy the rule.
func (rs RuleSet) SatisfiedBy(lookup func(attr string) (string, bool)) bool {
	for _, r := range rs {
		v, ok := lookup(r.Attribute)
		if !ok || v != r.Value {
			return false
		}
	}
	return true
}
