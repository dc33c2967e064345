package domain

// Change event names, one per entity kind and change.
const (
	EventPriceSetCreated      = "pricing.price-set.created"
	EventPriceSetUpdated      = "pricing.price-set.updated"
	EventPriceCreated         = "pricing.price.created"
	EventPriceUpdated         = "pricing.price.updated"
	EventPriceDeleted         = "pricing.price.deleted"
	EventPriceRuleCreated     = "pricing.price-rule.created"
	EventPriceListCreated     = "pricing.price-list.created"
	EventPriceListUpdated     = "pricing.price-list.updated"
	EventPriceListDeleted     = "pricing.price-list.deleted"
	EventPriceListRuleCreated = "pricing.price-list-rule.created"
	EventPriceListRuleUpdated = "pricing.price-list-rule.updated"
)

// EventData is the payload item of a change event: ids only.
type EventData struct {
	ID string `json:"id"`
}

// DomainEvent is one batched change notification.
type DomainEvent struct {
	Name string      `json:"name"`
	Data []EventData `json:"data"`
}

func (e DomainEvent) EventType() string {
	return e.Name
}

// IDs returns the ids carried by the event.
func (e DomainEvent) IDs() []string {
	out := make([]string, 0, len(e.Data))
	for _, d := range e.Data {
		out = append(out, d.ID)
	}
	return out
}

// ChangeSet accumulates the ids touched by a batch, grouped by event name.
// Events come out in the order their name was first recorded; duplicate ids
// within a name are dropped.
type ChangeSet struct {
	order []string
	ids   map[string][]string
	seen  map[string]map[string]struct{}
}

func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		ids:  make(map[string][]string),
		seen: make(map[string]map[string]struct{}),
	}
}

// Record adds ids under the event name.
func (c *ChangeSet) Record(name string, ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		seen, ok := c.seen[name]
		if !ok {
			seen = make(map[string]struct{})
			c.seen[name] = seen
			c.order = append(c.order, name)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		c.ids[name] = append(c.ids[name], id)
	}
}

// RecordPricesCreated records new prices and their rules.
func (c *ChangeSet) RecordPricesCreated(prices ...*Price) {
	for _, p := range prices {
		c.Record(EventPriceCreated, p.ID)
	}
	for _, p := range prices {
		c.Record(EventPriceRuleCreated, p.Rules.IDs()...)
	}
}

// Events returns one event per recorded name. Names without ids are skipped.
func (c *ChangeSet) Events() []DomainEvent {
	events := make([]DomainEvent, 0, len(c.order))
	for _, name := range c.order {
		ids := c.ids[name]
		if len(ids) == 0 {
			continue
		}
		data := make([]EventData, 0, len(ids))
		for _, id := range ids {
			data = append(data, EventData{ID: id})
		}
		events = append(events, DomainEvent{Name: name, Data: data})
	}
	return events
}

// IsEmpty reports whether nothing was recorded.
func (c *ChangeSet) IsEmpty() bool {
	return len(c.order) == 0
}
