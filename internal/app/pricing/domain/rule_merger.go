package domain

// MergeRules applies updates on top of current. A non-empty value adds the
// attribute or overwrites its value; a nil or empty value removes it. Rules
// that keep their attribute keep their id. The result is sorted by attribute.
func MergeRules(current RuleSet, updates map[string]*string) RuleSet {
	byAttr := make(map[string]Rule, len(current)+len(updates))
	for _, r := range current {
		byAttr[r.Attribute] = r
	}
	for attr, value := range updates {
		if attr == "" {
			continue
		}
		if value == nil || *value == "" {
			delete(byAttr, attr)
			continue
		}
		r := byAttr[attr]
		r.Attribute = attr
		r.Value = *value
		byAttr[attr] = r
	}
	return collectRules(byAttr)
}

// RemoveRules drops the named attributes from current. Unknown attributes are
// ignored.
func RemoveRules(current RuleSet, attributes []string) RuleSet {
	byAttr := make(map[string]Rule, len(current))
	for _, r := range current {
		byAttr[r.Attribute] = r
	}
	for _, attr := range attributes {
		delete(byAttr, attr)
	}
	return collectRules(byAttr)
}

// ReplaceRules swaps current for the normalized raw rules, reusing the ids of
// attributes present in both.
func ReplaceRules(current RuleSet, raw map[string]*string) RuleSet {
	next := NormalizeRules(raw)
	for i := range next {
		if prev, ok := current.find(next[i].Attribute); ok {
			next[i].ID = prev.ID
		}
	}
	return next
}

// RuleDiff describes how a rule set changed.
type RuleDiff struct {
	Created RuleSet
	Updated RuleSet
	Removed RuleSet
}

// DiffRules compares two rule sets by attribute.
func DiffRules(before, after RuleSet) RuleDiff {
	var diff RuleDiff
	for _, r := range after {
		prev, ok := before.find(r.Attribute)
		switch {
		case !ok:
			diff.Created = append(diff.Created, r)
		case prev.Value != r.Value:
			diff.Updated = append(diff.Updated, r)
		}
	}
	for _, r := range before {
		if _, ok := after.find(r.Attribute); !ok {
			diff.Removed = append(diff.Removed, r)
		}
	}
	return diff
}

func (rs RuleSet) find(attr string) (Rule, bool) {
	for _, r := range rs {
		if r.Attribute == attr {
			return r, true
		}
	}
	return Rule{}, false
}

func collectRules(byAttr map[string]Rule) RuleSet {
	out := make(RuleSet, 0, len(byAttr))
	for _, r := range byAttr {
		out = append(out, r)
	}
	out.sort()
	return out
}
