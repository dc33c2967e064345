package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const ruleKeyPrefix = "rule:"

// CanonicalSignature hashes the identity of a price: currency, owning set and
// list, quantity bounds and rules. Amount, title and ids are not part of it.
// Equal inputs hash equally regardless of rule insertion order.
func CanonicalSignature(p *Price) string {
	entries := map[string]any{
		"currency_code": strings.ToLower(p.CurrencyCode),
		"price_set_id":  nullableString(p.PriceSetID),
		"price_list_id": nil,
		"min_quantity":  nil,
		"max_quantity":  nil,
	}
	if p.PriceListID != nil {
		entries["price_list_id"] = *p.PriceListID
	}
	if p.MinQuantity != nil {
		entries["min_quantity"] = *p.MinQuantity
	}
	if p.MaxQuantity != nil {
		entries["max_quantity"] = *p.MaxQuantity
	}
	for _, r := range p.Rules {
		entries[ruleKeyPrefix+r.Attribute] = r.Value
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([][2]any, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]any{k, entries[k]})
	}

	// Marshalling strings, int64 and nil cannot fail.
	raw, _ := json.Marshal(pairs)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// SignatureIndex detects prices that share a canonical signature.
type SignatureIndex struct {
	bySignature map[string]*Price
}

// NewSignatureIndex seeds the index with already persisted prices.
func NewSignatureIndex(existing ...*Price) *SignatureIndex {
	idx := &SignatureIndex{bySignature: make(map[string]*Price, len(existing))}
	for _, p := range existing {
		idx.bySignature[CanonicalSignature(p)] = p
	}
	return idx
}

// Add records p, or returns a conflict error when a price with the same
// signature is already indexed, even one carrying the same id.
func (idx *SignatureIndex) Add(p *Price) error {
	sig := CanonicalSignature(p)
	if prev, ok := idx.bySignature[sig]; ok {
		return NewConflictError(
			fmt.Sprintf("price with identical rules: '%s' and currency_code: '%s' already exists",
				formatRules(p.Rules), p.CurrencyCode),
			prev.ID, p.ID,
		)
	}
	idx.bySignature[sig] = p
	return nil
}

// Len returns the number of indexed prices.
func (idx *SignatureIndex) Len() int {
	return len(idx.bySignature)
}

func formatRules(rules RuleSet) string {
	parts := make([]string, 0, len(rules))
	for _, r := range rules {
		parts = append(parts, r.Attribute+"="+r.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
