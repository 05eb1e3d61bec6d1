package script

import (
	"reflect"
	"sort"

	"github.com/dshills/rewind"
)

// Doc is the document state Lua commands act on: a string-keyed tree of
// plain values. Values read back from Lua are canonical: bool, int64,
// float64, string, []any and map[string]any.
//
// A Doc is not safe for concurrent use.
type Doc struct {
	data map[string]any
}

// NewDoc creates an empty document.
func NewDoc() *Doc {
	return &Doc{data: make(map[string]any)}
}

// NewDocFrom creates a document seeded with a deep copy of m.
func NewDocFrom(m map[string]any) *Doc {
	return &Doc{data: deepCopyMap(m)}
}

// Execute applies cmd to the document.
func (d *Doc) Execute(cmd rewind.Command[*Doc]) {
	cmd.Apply(d)
}

// Get returns the value stored under key.
func (d *Doc) Get(key string) (any, bool) {
	v, ok := d.data[key]
	return v, ok
}

// Set stores value under key.
func (d *Doc) Set(key string, value any) {
	d.data[key] = value
}

// Delete removes key.
func (d *Doc) Delete(key string) {
	delete(d.data, key)
}

// Len returns the number of top-level keys.
func (d *Doc) Len() int {
	return len(d.data)
}

// Keys returns the top-level keys in sorted order.
func (d *Doc) Keys() []string {
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a deep copy of the document's contents.
func (d *Doc) Snapshot() map[string]any {
	return deepCopyMap(d.data)
}

// Equal reports whether both documents hold the same contents.
func (d *Doc) Equal(other *Doc) bool {
	if other == nil {
		return false
	}
	return reflect.DeepEqual(d.data, other.data)
}

// replace swaps the document's contents. The map is owned by the document
// afterwards.
func (d *Doc) replace(m map[string]any) {
	if m == nil {
		m = make(map[string]any)
	}
	d.data = m
}

// deepCopyMap copies a canonical value tree rooted at a map.
func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

// deepCopyValue copies a canonical value. Scalars are returned as-is.
func deepCopyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
