package schema

import (
	"fmt"
	"iter"
	"maps"

	"github.com/mitchellh/mapstructure"
)

// State is the processing state of a Result.
type State uint8

const (
	Unprocessed State = iota
	Processing
	Processed
)

func (st State) String() string {
	switch st {
	case Unprocessed:
		return "unprocessed"
	case Processing:
		return "processing"
	case Processed:
		return "processed"
	default:
		return fmt.Sprintf("State(%d)", uint8(st))
	}
}

// Result holds one run of a schema against one input: the raw data, the
// typed values of fields that succeeded and the errors of fields that failed.
// A Result can be processed once; use a new one for every input.
type Result struct {
	schema *Schema
	state  State
	raw    Data
	value  *Values
	errors *Errors
}

// NewResult creates an unprocessed result bound to s.
func (s *Schema) NewResult() *Result {
	return &Result{
		schema: s,
		value:  newValues(0),
		errors: newErrors(),
	}
}

// Process creates a result and processes raw with it.
func (s *Schema) Process(raw Data) *Result {
	r := s.NewResult()
	_ = r.Process(raw) // a fresh result cannot be already processed
	return r
}

// Process runs every declared field against raw. Field failures are recorded
// in Errors and never returned; the only error is ErrAlreadyProcessed when
// the result was used before. raw is not modified.
func (r *Result) Process(raw Data) error {
	if r.state != Unprocessed {
		return fmt.Errorf("schema %q: %w", r.schema.name, ErrAlreadyProcessed)
	}
	r.state = Processing
	r.raw = maps.Clone(raw)
	if r.raw == nil {
		r.raw = Data{}
	}

	r.value, r.errors = r.schema.run(r.raw)
	r.state = Processed
	return nil
}

func (r *Result) Schema() *Schema { return r.schema }

func (r *Result) State() State { return r.state }

// Raw returns a copy of the input the result was processed with.
func (r *Result) Raw() Data { return maps.Clone(r.raw) }

// IsValid reports whether the result was processed without errors.
func (r *Result) IsValid() bool {
	return r.state == Processed && r.errors.Len() == 0
}

// Value returns the typed values of fields that succeeded, in declaration order.
func (r *Result) Value() *Values { return r.value }

// Errors returns the failures of fields that failed, in declaration order.
func (r *Result) Errors() *Errors { return r.errors }

// Has reports whether the named field produced a typed value.
func (r *Result) Has(name string) bool { return r.value.Has(name) }

// Get returns the typed value of the named field.
func (r *Result) Get(name string) (any, bool) { return r.value.Get(name) }

// All iterates over the typed values in declaration order.
func (r *Result) All() iter.Seq2[string, any] { return r.value.All() }

// ErrorsFor returns the messages recorded for the named field. Nested
// messages are prefixed with their relative path. The slice is empty, not
// nil, when the field succeeded.
func (r *Result) ErrorsFor(name string) []string {
	fe, ok := r.errors.Get(name)
	if !ok {
		return []string{}
	}
	return fe.Strings()
}

// Err returns nil for a valid result, ErrNotProcessed before processing, and
// an error wrapping ErrInvalidInput and the *Errors otherwise.
func (r *Result) Err() error {
	switch {
	case r.state != Processed:
		return ErrNotProcessed
	case r.errors.Len() == 0:
		return nil
	default:
		return fmt.Errorf("%w: %w", ErrInvalidInput, r.errors)
	}
}

// Decode copies the typed values into dst, a pointer to a struct or map.
// Struct fields are matched by their `form` tag or, failing that, by name
// case-insensitively. Decode fails with Err when the result is not valid.
func (r *Result) Decode(dst any) error {
	if err := r.Err(); err != nil {
		return err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "form",
		Result:  dst,
	})
	if err != nil {
		return fmt.Errorf("schema %q: decode: %w", r.schema.name, err)
	}
	if err := dec.Decode(r.value.Map()); err != nil {
		return fmt.Errorf("schema %q: decode: %w", r.schema.name, err)
	}
	return nil
}
