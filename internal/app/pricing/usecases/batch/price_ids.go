package batch

import (
	"context"
	"fmt"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// CallerPriceIDs returns the ids chosen by the caller for new prices. An id
// given twice is a conflict.
func CallerPriceIDs(inputs []domain.PriceInput) ([]string, error) {
	var ids []string
	seen := make(map[string]struct{})
	for _, in := range inputs {
		if in.ID == nil || *in.ID == "" {
			continue
		}
		if _, dup := seen[*in.ID]; dup {
			return nil, domain.NewConflictError(fmt.Sprintf("price %s appears more than once", *in.ID), *in.ID)
		}
		seen[*in.ID] = struct{}{}
		ids = append(ids, *in.ID)
	}
	return ids, nil
}

// EnsureNewPrices rejects inputs whose caller-chosen ids repeat within the
// batch or are already stored. Every taken id is reported.
func EnsureNewPrices(ctx context.Context, repo contracts.Repository, inputs []domain.PriceInput) error {
	ids, err := CallerPriceIDs(inputs)
	if err != nil || len(ids) == 0 {
		return err
	}
	existing, err := repo.FindPrices(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load prices: %w", err)
	}
	if len(existing) == 0 {
		return nil
	}
	taken := make([]string, 0, len(existing))
	for _, p := range existing {
		taken = append(taken, p.ID)
	}
	return domain.NewConflictError("price already exists", taken...)
}
