package schema

import (
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// FieldError is the failure of one field. Scalar failures carry Messages.
// Nested schema failures carry Fields, keyed by inner field name. Sequence
// failures carry Items, one entry per failing index in ascending order.
type FieldError struct {
	Messages []string
	Fields   *Errors
	Items    []ItemError
}

// ItemError is the failure of one element of a sequence field.
type ItemError struct {
	Index int
	Err   *FieldError
}

// Strings renders the error as flat messages. Nested entries are prefixed
// with their relative path, e.g. "city: is required" or "1.name: is required".
func (fe *FieldError) Strings() []string {
	out := []string{}
	for path, messages := range fe.walk("") {
		for _, msg := range messages {
			if path == "" {
				out = append(out, msg)
			} else {
				out = append(out, path+": "+msg)
			}
		}
	}
	return out
}

func (fe *FieldError) Error() string {
	return strings.Join(fe.Strings(), "; ")
}

// walk yields (path, messages) pairs depth first in order.
func (fe *FieldError) walk(prefix string) iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		fe.visit(prefix, yield)
	}
}

func (fe *FieldError) visit(prefix string, yield func(string, []string) bool) bool {
	if fe == nil {
		return true
	}
	if len(fe.Messages) > 0 && !yield(prefix, fe.Messages) {
		return false
	}
	for name, inner := range fe.Fields.All() {
		if !inner.visit(join(prefix, name), yield) {
			return false
		}
	}
	for _, item := range fe.Items {
		if !item.Err.visit(join(prefix, strconv.Itoa(item.Index)), yield) {
			return false
		}
	}
	return true
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// MarshalJSON encodes scalar failures as a list of messages, nested schema
// failures as an object and sequence failures as an object keyed by index.
func (fe *FieldError) MarshalJSON() ([]byte, error) {
	switch {
	case fe.Fields.Len() > 0:
		return fe.Fields.MarshalJSON()
	case len(fe.Items) > 0:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, item := range fe.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			val, err := json.Marshal(item.Err)
			if err != nil {
				return nil, err
			}
			buf.WriteString(strconv.Quote(strconv.Itoa(item.Index)))
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		messages := fe.Messages
		if messages == nil {
			messages = []string{}
		}
		return json.Marshal(messages)
	}
}

// Errors is a read-only ordered mapping of field name to failure. Iteration
// follows field declaration order; the UnknownFieldsKey entry of strict
// schemas comes last. Errors implements error.
type Errors struct {
	keys []string
	m    map[string]*FieldError
}

func newErrors() *Errors {
	return &Errors{m: make(map[string]*FieldError)}
}

func (e *Errors) set(name string, fe *FieldError) {
	if _, exists := e.m[name]; !exists {
		e.keys = append(e.keys, name)
	}
	e.m[name] = fe
}

// sort reorders entries to follow order; names missing from order go last
// in their current relative order.
func (e *Errors) sort(order []string) {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	slices.SortStableFunc(e.keys, func(a, b string) int {
		ra, okA := rank[a]
		rb, okB := rank[b]
		switch {
		case okA && okB:
			return ra - rb
		case okA:
			return -1
		case okB:
			return 1
		default:
			return 0
		}
	})
}

func (e *Errors) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

func (e *Errors) Keys() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.keys)
}

func (e *Errors) Has(name string) bool {
	if e == nil {
		return false
	}
	_, ok := e.m[name]
	return ok
}

func (e *Errors) Get(name string) (*FieldError, bool) {
	if e == nil {
		return nil, false
	}
	fe, ok := e.m[name]
	return fe, ok
}

// All iterates over (name, failure) pairs in order.
func (e *Errors) All() iter.Seq2[string, *FieldError] {
	return func(yield func(string, *FieldError) bool) {
		if e == nil {
			return
		}
		for _, k := range e.keys {
			if !yield(k, e.m[k]) {
				return
			}
		}
	}
}

// Flatten returns every message keyed by its dotted path, e.g.
// "address.city" or "items.1.name".
func (e *Errors) Flatten() map[string][]string {
	out := make(map[string][]string)
	for name, fe := range e.All() {
		for path, messages := range fe.walk(name) {
			out[path] = append(out[path], messages...)
		}
	}
	return out
}

// Paths returns the dotted paths of Flatten in traversal order.
func (e *Errors) Paths() []string {
	var paths []string
	for name, fe := range e.All() {
		for path := range fe.walk(name) {
			paths = append(paths, path)
		}
	}
	return paths
}

func (e *Errors) Error() string {
	var parts []string
	for name, fe := range e.All() {
		for path, messages := range fe.walk(name) {
			parts = append(parts, path+": "+strings.Join(messages, ", "))
		}
	}
	if len(parts) == 0 {
		return "no errors"
	}
	return strings.Join(parts, "; ")
}

// MarshalJSON encodes the errors as a JSON object keeping field order.
func (e *Errors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for name, fe := range e.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(fe)
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
