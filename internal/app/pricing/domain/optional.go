package domain

import (
	"encoding/json"
	"time"
)

// OptionalTime distinguishes an absent field from an explicit null in a
// partial update: Present is false when the key was omitted.
type OptionalTime struct {
	Present bool
	Time    *time.Time
}

// SetTime returns a present OptionalTime; t may be nil to clear the field.
func SetTime(t *time.Time) OptionalTime {
	return OptionalTime{Present: true, Time: cloneTime(t)}
}

func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(data) == "null" {
		o.Time = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Time = &t
	return nil
}

func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if o.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Time)
}
