package domain

// ChangeTracker records which fields of a loaded aggregate were modified, in
// the order they were first touched, so updates write only those columns.
type ChangeTracker struct {
	dirty []string
}

// NewChangeTracker creates a new ChangeTracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{}
}

// MarkDirty marks a field as modified.
func (ct *ChangeTracker) MarkDirty(field string) {
	if ct.Dirty(field) {
		return
	}
	ct.dirty = append(ct.dirty, field)
}

// Dirty checks if a field has been modified.
func (ct *ChangeTracker) Dirty(field string) bool {
	for _, f := range ct.dirty {
		if f == field {
			return true
		}
	}
	return false
}

// HasChanges returns true if any field has been modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirty) > 0
}

// DirtyFields returns the modified fields in first-touched order.
func (ct *ChangeTracker) DirtyFields() []string {
	return append([]string(nil), ct.dirty...)
}

// Clear forgets all modifications.
func (ct *ChangeTracker) Clear() {
	ct.dirty = nil
}
