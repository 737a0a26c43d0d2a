package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state field for partial updates: unset, null or a value.
// The zero value is unset. When decoded from JSON, a missing key stays unset,
// an explicit null becomes null and anything else becomes a value.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

func Value[T any](v T) Optional[T] {
	return Optional[T]{set: true, value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsSet reports whether the field was supplied at all (null included).
func (o Optional[T]) IsSet() bool { return o.set }

// IsNull reports whether the field was explicitly cleared.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and whether one is present.
func (o Optional[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Ptr returns a pointer to a copy of the value, or nil for unset and null.
func (o Optional[T]) Ptr() *T {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Value(v)
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}
