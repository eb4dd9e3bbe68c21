package merge

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a string-keyed mapping that preserves the order in which
// keys were first inserted, the Go realization of spec.md's Mapping
// variant (§3: "insertion order is preserved and observable").
type OrderedMap struct {
	values map[string]any
	order  []string
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Get returns the value stored at key and whether it was present.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Set stores value at key, appending key to the order if it is new.
func (m *OrderedMap) Set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.order = append(m.order, key)
	}

	m.values[key] = value
}

// Delete removes key, preserving the relative order of remaining keys.
func (m *OrderedMap) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}

	delete(m.values, key)

	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by callers.
func (m *OrderedMap) Keys() []string {
	return m.order
}

// Len reports the number of entries.
func (m *OrderedMap) Len() int {
	return len(m.order)
}

// Clone returns a shallow copy: nested Mappings/Sequences are shared, not
// deep-copied.
func (m *OrderedMap) Clone() *OrderedMap {
	clone := &OrderedMap{
		values: make(map[string]any, len(m.values)),
		order:  append([]string(nil), m.order...),
	}

	for k, v := range m.values {
		clone.values[k] = v
	}

	return clone
}

// ToMap returns a plain map[string]any view, discarding order. Useful for
// interop with callers that accept an ordinary Go map.
func (m *OrderedMap) ToMap() map[string]any {
	out := make(map[string]any, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}

	return out
}

// MarshalJSON renders m as a JSON object in insertion-key order, rather
// than encoding/json's default alphabetical sort of map[string]any, so
// serialized output keeps faith with the order decode built it in. It
// recurses through nested *OrderedMap and []any values via marshalValue so
// the ordering guarantee holds at every depth.
func (m *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := marshalValue(m.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// marshalValue marshals a decoded value, recursing through *OrderedMap and
// []any so nested mapping order is preserved at every level.
func marshalValue(v any) ([]byte, error) {
	switch val := v.(type) {
	case *OrderedMap:
		return val.MarshalJSON()
	case []any:
		var buf bytes.Buffer

		buf.WriteByte('[')

		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}

			ib, err := marshalValue(item)
			if err != nil {
				return nil, err
			}

			buf.Write(ib)
		}

		buf.WriteByte(']')

		return buf.Bytes(), nil
	default:
		return json.Marshal(val)
	}
}
