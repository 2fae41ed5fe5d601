// Package optional contains a small maybe-type.
//
// Payloads of ipinfo.io are plan-tiered: a business token gets company
// and privacy data, a free token does not. Value is used to tell "this
// key is absent" apart from "this key is present and holds a zero
// value", which plain Go types cannot do.
package optional

import (
	"encoding/json"
	"errors"
	"reflect"
)

// ErrIsNone is a panic value of Unwrap on an empty Value.
var ErrIsNone = errors.New("is none")

// Value is either empty or holds a value of type T. A zero Value is
// empty.
type Value[T any] struct {
	indirect *T
}

// None returns an empty Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// Some wraps a given value. Nil pointers, maps, slices and interfaces
// produce an empty Value.
func Some[T any](value T) Value[T] {
	rv := reflect.ValueOf(&value).Elem()

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return None[T]()
		}
	}

	return Value[T]{indirect: &value}
}

// IsNone checks if this Value is empty.
func (v Value[T]) IsNone() bool {
	return v.indirect == nil
}

// IsSome checks if this Value holds something.
func (v Value[T]) IsSome() bool {
	return v.indirect != nil
}

// Unwrap returns a wrapped value and panics with ErrIsNone if there is
// nothing to return.
func (v Value[T]) Unwrap() T {
	if v.indirect == nil {
		panic(ErrIsNone)
	}

	return *v.indirect
}

// UnwrapOr returns a wrapped value or a fallback.
func (v Value[T]) UnwrapOr(fallback T) T {
	if v.indirect == nil {
		return fallback
	}

	return *v.indirect
}

// Get is a comma-ok version of Unwrap.
func (v Value[T]) Get() (T, bool) {
	if v.indirect == nil {
		var zero T

		return zero, false
	}

	return *v.indirect, true
}

// MarshalJSON is to conform json.Marshaller interface. Empty values
// are marshalled as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.indirect == nil {
		return []byte("null"), nil
	}

	return json.Marshal(*v.indirect)
}

// UnmarshalJSON is to conform json.Unmarshaller interface. null makes
// an empty Value.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		v.indirect = nil

		return nil
	}

	var value T

	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*v = Some(value)

	return nil
}
