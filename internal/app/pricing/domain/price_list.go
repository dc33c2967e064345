package domain

import (
	"time"
)

// PriceListType decides how a list price relates to the default price.
type PriceListType string

const (
	// PriceListTypeSale prices are discounts; the default price stays the original.
	PriceListTypeSale PriceListType = "sale"
	// PriceListTypeOverride prices replace the default price entirely.
	PriceListTypeOverride PriceListType = "override"
)

func (t PriceListType) Valid() bool {
	return t == PriceListTypeSale || t == PriceListTypeOverride
}

type PriceListStatus string

const (
	PriceListStatusActive PriceListStatus = "active"
	PriceListStatusDraft  PriceListStatus = "draft"
)

func (s PriceListStatus) Valid() bool {
	return s == PriceListStatusActive || s == PriceListStatusDraft
}

// Tracked price list fields.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldStartsAt    = "starts_at"
	FieldEndsAt      = "ends_at"
	FieldRules       = "rules"
)

// PriceList is a named, optionally time-bounded layer of prices that competes
// with the default prices of the sets it covers.
type PriceList struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        PriceListType   `json:"type"`
	Status      PriceListStatus `json:"status"`
	StartsAt    *time.Time      `json:"starts_at"`
	EndsAt      *time.Time      `json:"ends_at"`
	Rules       RuleSet         `json:"price_list_rules"`
	RulesCount  int             `json:"rules_count"`
	Prices      []*Price        `json:"prices,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	changes *ChangeTracker
}

// PriceListInput describes a price list to create.
type PriceListInput struct {
	ID          *string            `json:"id,omitempty"`
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description"`
	Type        PriceListType      `json:"type,omitempty" validate:"omitempty,oneof=sale override"`
	Status      PriceListStatus    `json:"status,omitempty" validate:"omitempty,oneof=active draft"`
	StartsAt    *time.Time         `json:"starts_at,omitempty"`
	EndsAt      *time.Time         `json:"ends_at,omitempty"`
	Rules       map[string]*string `json:"rules,omitempty"`
	Prices      []PriceInput       `json:"prices,omitempty" validate:"dive"`
}

// PriceListPatch is a partial update. Nil pointers and absent OptionalTimes
// leave the field untouched; a non-nil Rules map replaces all list rules.
type PriceListPatch struct {
	ID          string             `json:"id" validate:"required"`
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Type        *PriceListType     `json:"type,omitempty" validate:"omitempty,oneof=sale override"`
	Status      *PriceListStatus   `json:"status,omitempty" validate:"omitempty,oneof=active draft"`
	StartsAt    OptionalTime       `json:"starts_at"`
	EndsAt      OptionalTime       `json:"ends_at"`
	Rules       map[string]*string `json:"rules,omitempty"`
}

// ValidateWindow rejects a window whose start is after its end.
func ValidateWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && startsAt.After(*endsAt) {
		return ValidationFrom(ErrInvalidDateWindow)
	}
	return nil
}

// NewPriceList builds a list with its rules and prices. Prices are checked
// against each other for identical signatures.
func NewPriceList(in PriceListInput, now time.Time, newID IDGenerator) (*PriceList, error) {
	if err := ValidateWindow(in.StartsAt, in.EndsAt); err != nil {
		return nil, err
	}

	listType := in.Type
	if listType == "" {
		listType = PriceListTypeSale
	}
	if !listType.Valid() {
		return nil, ValidationFrom(ErrInvalidPriceListType)
	}
	status := in.Status
	if status == "" {
		status = PriceListStatusDraft
	}
	if !status.Valid() {
		return nil, ValidationFrom(ErrInvalidPriceListStatus)
	}

	id := ""
	if in.ID != nil {
		id = *in.ID
	}
	if id == "" {
		id = newID(PrefixPriceList)
	}

	rules := NormalizeRules(in.Rules)
	rules.AssignIDs(func() string { return newID(PrefixPriceListRule) })

	pl := &PriceList{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Type:        listType,
		Status:      status,
		StartsAt:    cloneTime(in.StartsAt),
		EndsAt:      cloneTime(in.EndsAt),
		Rules:       rules,
		RulesCount:  rules.Count(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	prices, err := pl.BuildPrices(in.Prices, NewSignatureIndex(), now, newID)
	if err != nil {
		return nil, err
	}
	pl.Prices = prices
	return pl, nil
}

// BuildPrices normalizes inputs into prices held by this list, registering
// each in idx.
func (pl *PriceList) BuildPrices(inputs []PriceInput, idx *SignatureIndex, now time.Time, newID IDGenerator) ([]*Price, error) {
	prices := make([]*Price, 0, len(inputs))
	listID := pl.ID
	for _, in := range inputs {
		p, err := BuildPrice(in, in.PriceSetID, &listID, now, newID)
		if err != nil {
			return nil, err
		}
		if err := idx.Add(p); err != nil {
			return nil, err
		}
		prices = append(prices, p)
	}
	return prices, nil
}

// IsActiveAt reports whether the list contributes candidates at t: it must be
// active and t must fall inside the inclusive window.
func (pl *PriceList) IsActiveAt(t time.Time) bool {
	if pl.Status != PriceListStatusActive {
		return false
	}
	if pl.StartsAt != nil && t.Before(*pl.StartsAt) {
		return false
	}
	if pl.EndsAt != nil && t.After(*pl.EndsAt) {
		return false
	}
	return true
}

// Changes returns the tracker of fields modified since load.
func (pl *PriceList) Changes() *ChangeTracker {
	if pl.changes == nil {
		pl.changes = NewChangeTracker()
	}
	return pl.changes
}

// ApplyPatch updates the fields present in p and validates the resulting window.
func (pl *PriceList) ApplyPatch(p PriceListPatch, now time.Time, newID IDGenerator) error {
	if p.Type != nil && !p.Type.Valid() {
		return ValidationFrom(ErrInvalidPriceListType, pl.ID)
	}
	if p.Status != nil && !p.Status.Valid() {
		return ValidationFrom(ErrInvalidPriceListStatus, pl.ID)
	}

	startsAt, endsAt := pl.StartsAt, pl.EndsAt
	if p.StartsAt.Present {
		startsAt = p.StartsAt.Time
	}
	if p.EndsAt.Present {
		endsAt = p.EndsAt.Time
	}
	if err := ValidateWindow(startsAt, endsAt); err != nil {
		return ValidationFrom(ErrInvalidDateWindow, pl.ID)
	}

	changes := pl.Changes()
	if p.Title != nil && *p.Title != pl.Title {
		pl.Title = *p.Title
		changes.MarkDirty(FieldTitle)
	}
	if p.Description != nil && *p.Description != pl.Description {
		pl.Description = *p.Description
		changes.MarkDirty(FieldDescription)
	}
	if p.Type != nil && *p.Type != pl.Type {
		pl.Type = *p.Type
		changes.MarkDirty(FieldType)
	}
	if p.Status != nil && *p.Status != pl.Status {
		pl.Status = *p.Status
		changes.MarkDirty(FieldStatus)
	}
	if p.StartsAt.Present {
		pl.StartsAt = cloneTime(p.StartsAt.Time)
		changes.MarkDirty(FieldStartsAt)
	}
	if p.EndsAt.Present {
		pl.EndsAt = cloneTime(p.EndsAt.Time)
		changes.MarkDirty(FieldEndsAt)
	}
	if p.Rules != nil {
		pl.setRules(ReplaceRules(pl.Rules, p.Rules), newID)
	}
	if changes.HasChanges() {
		pl.UpdatedAt = now
	}
	return nil
}

// SetRules merges updates into the list rules.
func (pl *PriceList) SetRules(updates map[string]*string, now time.Time, newID IDGenerator) RuleDiff {
	before := pl.Rules
	pl.setRules(MergeRules(pl.Rules, updates), newID)
	pl.UpdatedAt = now
	return DiffRules(before, pl.Rules)
}

// RemoveRules drops the named attributes from the list rules.
func (pl *PriceList) RemoveRules(attributes []string, now time.Time) RuleDiff {
	before := pl.Rules
	pl.setRules(RemoveRules(pl.Rules, attributes), nil)
	pl.UpdatedAt = now
	return DiffRules(before, pl.Rules)
}

func (pl *PriceList) setRules(rules RuleSet, newID IDGenerator) {
	if newID != nil {
		rules.AssignIDs(func() string { return newID(PrefixPriceListRule) })
	}
	pl.Rules = rules
	pl.RulesCount = rules.Count()
	pl.Changes().MarkDirty(FieldRules)
}

// Clone returns a deep copy without tracked changes.
func (pl *PriceList) Clone() *PriceList {
	c := *pl
	c.StartsAt = cloneTime(pl.StartsAt)
	c.EndsAt = cloneTime(pl.EndsAt)
	c.Rules = pl.Rules.Clone()
	c.changes = nil
	if pl.Prices != nil {
		c.Prices = make([]*Price, len(pl.Prices))
		for i, p := range pl.Prices {
			c.Prices[i] = p.Clone()
		}
	}
	return &c
}
