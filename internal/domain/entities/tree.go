package entities

import (
	"bytes"
	"sort"

	"langjs/internal/util/jsonutil"
)

// Tree is an insertion-ordered message mapping. Values are scalars
// (string, number, bool, nil), lists ([]any) or nested *Tree.
type Tree struct {
	keys   []string
	values map[string]any
}

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{values: make(map[string]any)}
}

// Set stores value under key. An existing key keeps its position and
// reports replaced = true.
func (t *Tree) Set(key string, value any) (replaced bool) {
	if _, ok := t.values[key]; ok {
		t.values[key] = value
		return true
	}
	t.keys = append(t.keys, key)
	t.values[key] = value
	return false
}

// Get returns the value stored under key.
func (t *Tree) Get(key string) (any, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the keys in their current order.
func (t *Tree) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

func (t *Tree) Len() int {
	return len(t.keys)
}

// Sort orders the keys of t and of every nested tree, including trees held
// in lists, in ascending byte order.
func (t *Tree) Sort() {
	sort.Strings(t.keys)
	for _, k := range t.keys {
		sortValue(t.values[k])
	}
}

func sortValue(v any) {
	switch x := v.(type) {
	case *Tree:
		x.Sort()
	case []any:
		for _, item := range x {
			sortValue(item)
		}
	}
}

// MarshalJSON encodes t as a compact JSON object in key order.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := jsonutil.MarshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := jsonutil.MarshalNoEscape(t.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Plain converts t into nested map[string]any values, dropping key order.
func (t *Tree) Plain() map[string]any {
	out := make(map[string]any, len(t.keys))
	for _, k := range t.keys {
		out[k] = plainValue(t.values[k])
	}
	return out
}

func plainValue(v any) any {
	switch x := v.(type) {
	case *Tree:
		return x.Plain()
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plainValue(item)
		}
		return out
	default:
		return v
	}
}
