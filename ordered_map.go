package qs

import (
	"go.codecgarden.dev/qs/internal/merge"
)

// OrderedMap is a string-keyed Mapping that preserves the order its keys
// were first inserted in, the type Decode returns wherever spec.md's data
// model calls for a Mapping: plain Go maps have no defined iteration order,
// but mapping key order is observable and must be preserved from input.
//
// OrderedMap implements [encoding/json.Marshaler], rendering its entries in
// insertion order, so a result from [Decode] can be passed straight to
// [encoding/json.Marshal] or [encoding/json.MarshalIndent] without losing
// that order the way marshaling a plain map[string]any would.
type OrderedMap = merge.OrderedMap

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return merge.NewOrderedMap()
}
