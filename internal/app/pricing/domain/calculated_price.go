package domain

// PriceReference identifies the price a calculated amount came from.
type PriceReference struct {
	ID            string         `json:"id"`
	PriceListID   *string        `json:"price_list_id"`
	PriceListType *PriceListType `json:"price_list_type"`
	MinQuantity   *int64         `json:"min_quantity"`
	MaxQuantity   *int64         `json:"max_quantity"`
}

// CalculatedPrice is the selection result for one price set. A set with no
// qualifying price has nil amounts and references.
type CalculatedPrice struct {
	PriceSetID                 string          `json:"id"`
	IsCalculatedPricePriceList bool            `json:"is_calculated_price_price_list"`
	CalculatedAmount           *int64          `json:"calculated_amount"`
	IsOriginalPricePriceList   bool            `json:"is_original_price_price_list"`
	OriginalAmount             *int64          `json:"original_amount"`
	CurrencyCode               *string         `json:"currency_code"`
	CalculatedPrice            *PriceReference `json:"calculated_price"`
	OriginalPrice              *PriceReference `json:"original_price"`
}

// HasPrice reports whether a price was selected.
func (c *CalculatedPrice) HasPrice() bool {
	return c.CalculatedAmount != nil
}

// Candidate is a price eligible for selection together with the list that
// holds it, if any.
type Candidate struct {
	Price     *Price
	PriceList *PriceList
}

func referenceFor(c Candidate) *PriceReference {
	ref := &PriceReference{
		ID:          c.Price.ID,
		MinQuantity: cloneInt64(c.Price.MinQuantity),
		MaxQuantity: cloneInt64(c.Price.MaxQuantity),
	}
	if c.PriceList != nil {
		listID := c.PriceList.ID
		listType := c.PriceList.Type
		ref.PriceListID = &listID
		ref.PriceListType = &listType
	}
	return ref
}
