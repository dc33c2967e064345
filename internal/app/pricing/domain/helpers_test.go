package domain

import (
	"fmt"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func timePtr(t time.Time) *time.Time { return &t }

// seqIDs returns a deterministic generator: price_1, price_2, prule_3, ...
func seqIDs() IDGenerator {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s_%d", prefix, n)
	}
}

func rawRules(kv ...string) map[string]*string {
	out := make(map[string]*string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = strPtr(kv[i+1])
	}
	return out
}

func mustPrice(in PriceInput, priceSetID string, priceListID *string) *Price {
	p, err := BuildPrice(in, priceSetID, priceListID, testNow, seqIDs())
	if err != nil {
		panic(err)
	}
	return p
}
