package convert

import (
	"bytes"
	"encoding/json"
	"iter"
	"sort"

	"gopkg.in/yaml.v3"
)

// --------------------------------------------------------------------------
// Canonical values
// --------------------------------------------------------------------------

/*
	Every converter produces a canonical value, which is one of:

	- a scalar: string, int64, float64, bool or nil
	- a *FieldMap: an ordered mapping from field name to canonical value
	- a []any: a sequence of canonical values
*/

// FieldMap is an ordered string keyed map. Keys keep the order in which they
// were first set, which is also the order used when encoding to JSON or YAML.
// A FieldMap is built once by a converter and treated as read-only afterwards.
type FieldMap struct {
	keys   []string
	values map[string]any
}

// NewFieldMap creates an empty map with room for capacity fields.
func NewFieldMap(capacity int) *FieldMap {
	return &FieldMap{
		keys:   make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

// Set stores value under key and returns the map for chaining.
// Overwriting a key keeps its original position.
func (m *FieldMap) Set(key string, value any) *FieldMap {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

// Get returns the value stored under key.
func (m *FieldMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns a copy of the keys in order.
func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Len returns the number of fields.
func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All iterates over the fields in order.
func (m *FieldMap) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the map as a JSON object in key order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping in key order.
func (m *FieldMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var value yaml.Node
		if err := value.Encode(m.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&value,
		)
	}
	return node, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// stringSeq converts a string slice into a canonical sequence.
func stringSeq(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// stringMap converts an unordered string map into a FieldMap sorted by key.
// A nil map converts to nil.
func stringMap(values map[string]string) any {
	if values == nil {
		return nil
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := NewFieldMap(len(keys))
	for _, k := range keys {
		fields.Set(k, values[k])
	}
	return fields
}
