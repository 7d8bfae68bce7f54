package model

import (
	"maps"
	"slices"
)

// Attributes is the exchange format for attribute writes and change payloads.
type Attributes map[string]any

// Keys returns the attribute keys in sorted order.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// Clone returns a shallow copy. A nil mapping clones to nil.
func (a Attributes) Clone() Attributes {
	return maps.Clone(a)
}

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined has no JSON or YAML form; encoders that reach it nested inside a value emit null.
func (undefined) MarshalJSON() ([]byte, error) { return []byte("null"), nil }
func (undefined) MarshalYAML() (any, error)    { return nil, nil }

// Undefined marks an attribute that is set but carries no value. It differs from an absent
// key (Has reports true) and from nil, and ToJSON omits it.
var Undefined any = undefined{}

// IsUndefined reports whether v is Undefined.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}
