// Package ordered provides a string-keyed associative container that iterates
// in insertion order. Fields, fieldsets, choice options, HTML attributes and
// submitted form data all rely on it so rendering order is deterministic.
package ordered

import (
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Pair is a single key/value entry used to seed a Map.
type Pair[V any] struct {
	Key   string
	Value V
}

// P builds a Pair. It keeps literal maps short:
//
//	ordered.New(ordered.P("a", 1), ordered.P("b", 2))
func P[V any](key string, value V) Pair[V] {
	return Pair[V]{Key: key, Value: value}
}

// Map is an insertion-ordered map keyed by string. The zero value is ready to
// use and a nil *Map behaves as an empty, read-only map.
type Map[V any] struct {
	inner *orderedmap.OrderedMap[string, V]
}

// New returns a Map seeded with pairs in the given order. Repeated keys keep
// their first position and take the last value.
func New[V any](pairs ...Pair[V]) *Map[V] {
	m := &Map[V]{inner: orderedmap.New[string, V]()}
	for _, pair := range pairs {
		m.inner.Set(pair.Key, pair.Value)
	}
	return m
}

// FromMap copies a Go map into a Map. Go maps carry no order so keys are
// inserted sorted.
func FromMap[V any](src map[string]V) *Map[V] {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	m := New[V]()
	for _, key := range keys {
		m.inner.Set(key, src[key])
	}
	return m
}

func (m *Map[V]) init() {
	if m.inner == nil {
		m.inner = orderedmap.New[string, V]()
	}
}

// Set stores value under key. Overwriting an existing key keeps its position.
func (m *Map[V]) Set(key string, value V) {
	m.init()
	m.inner.Set(key, value)
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if m == nil || m.inner == nil {
		var zero V
		return zero, false
	}
	return m.inner.Get(key)
}

// Value returns the value stored under key or the zero value.
func (m *Map[V]) Value(key string) V {
	value, _ := m.Get(key)
	return value
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	if m == nil || m.inner == nil {
		return false
	}
	_, ok := m.inner.Delete(key)
	return ok
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m == nil || m.inner == nil {
		return 0
	}
	return m.inner.Len()
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	if m == nil || m.inner == nil {
		return
	}
	for pair := m.inner.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Range(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Pairs returns the entries in insertion order.
func (m *Map[V]) Pairs() []Pair[V] {
	pairs := make([]Pair[V], 0, m.Len())
	m.Range(func(key string, value V) bool {
		pairs = append(pairs, Pair[V]{Key: key, Value: value})
		return true
	})
	return pairs
}

// Clone returns a shallow copy. A nil receiver yields an empty Map.
func (m *Map[V]) Clone() *Map[V] {
	return New(m.Pairs()...)
}

// ToMap copies the entries into a plain Go map.
func (m *Map[V]) ToMap() map[string]V {
	out := make(map[string]V, m.Len())
	m.Range(func(key string, value V) bool {
		out[key] = value
		return true
	})
	return out
}

// MarshalJSON encodes the entries as a JSON object in insertion order.
func (m *Map[V]) MarshalJSON() ([]byte, error) {
	if m == nil || m.inner == nil {
		return []byte("{}"), nil
	}
	return m.inner.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object keeping the document's key order.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	m.init()
	return m.inner.UnmarshalJSON(data)
}

// UnmarshalYAML decodes a YAML mapping keeping the document's key order.
// Scalar keys are taken verbatim so `123: Cycling` yields the key "123".
func (m *Map[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	m.init()
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("ordered: line %d: expected a mapping", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("ordered: line %d: mapping keys must be scalars", keyNode.Line)
		}
		var value V
		if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("ordered: decode %q: %w", keyNode.Value, err)
		}
		m.inner.Set(keyNode.Value, value)
	}
	return nil
}

// MarshalYAML encodes the entries as a mapping in insertion order.
func (m *Map[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	m.Range(func(key string, value V) bool {
		valueNode := &yaml.Node{}
		if err = valueNode.Encode(value); err != nil {
			err = fmt.Errorf("ordered: encode %q: %w", key, err)
			return false
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			valueNode,
		)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}
