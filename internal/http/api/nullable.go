package api

import (
	"encoding/json"
)

// Nullable tells a field missing from a request body apart from one sent as null.
type Nullable[T any] struct {
	Set   bool // The field was present
	Value *T   // Nil when the field was null
}

func (n *Nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true

	if string(b) == "null" {
		n.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	n.Value = &v

	return nil
}

// Null reports whether the field was sent as an explicit null.
func (n Nullable[T]) Null() bool {
	return n.Set && n.Value == nil
}
