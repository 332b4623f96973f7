package schema

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
)

// Values is a read-only ordered mapping of field name to typed value.
// Iteration follows field declaration order.
type Values struct {
	keys []string
	m    map[string]any
}

func newValues(capacity int) *Values {
	return &Values{
		keys: make([]string, 0, capacity),
		m:    make(map[string]any, capacity),
	}
}

func (v *Values) set(name string, value any) {
	if _, exists := v.m[name]; !exists {
		v.keys = append(v.keys, name)
	}
	v.m[name] = value
}

func (v *Values) delete(name string) {
	if _, exists := v.m[name]; !exists {
		return
	}
	delete(v.m, name)
	v.keys = slices.DeleteFunc(v.keys, func(k string) bool { return k == name })
}

func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Keys returns the field names in order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	return slices.Clone(v.keys)
}

func (v *Values) Has(name string) bool {
	if v == nil {
		return false
	}
	_, ok := v.m[name]
	return ok
}

func (v *Values) Get(name string) (any, bool) {
	if v == nil {
		return nil, false
	}
	value, ok := v.m[name]
	return value, ok
}

// All iterates over (name, value) pairs in order.
func (v *Values) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if v == nil {
			return
		}
		for _, k := range v.keys {
			if !yield(k, v.m[k]) {
				return
			}
		}
	}
}

// Map returns a plain map copy. Nested *Values, including those inside
// slices, are converted recursively.
func (v *Values) Map() map[string]any {
	out := make(map[string]any, v.Len())
	for k, value := range v.All() {
		out[k] = plain(value)
	}
	return out
}

func plain(value any) any {
	switch x := value.(type) {
	case *Values:
		return x.Map()
	case []any:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = plain(item)
		}
		return items
	default:
		return value
	}
}

// MarshalJSON encodes the values as a JSON object keeping field order.
func (v *Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range v.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.m[k])
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
