package batch

import (
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// ListPrices are prices addressed to one price list. Every price names the
// set it prices.
type ListPrices struct {
	PriceListID string              `json:"price_list_id" validate:"required"`
	Prices      []domain.PriceInput `json:"prices" validate:"required,min=1,dive"`
}

// ReferencedPriceSets returns the price set ids named by the items.
func ReferencedPriceSets(items []ListPrices) []string {
	var ids []string
	for _, item := range items {
		for _, in := range item.Prices {
			if in.PriceSetID != "" {
				ids = append(ids, in.PriceSetID)
			}
		}
	}
	return Unique(ids)
}

// ListIDs returns the price list ids named by the items.
func ListIDs(items []ListPrices) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.PriceListID)
	}
	return Unique(ids)
}
