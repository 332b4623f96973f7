package schema

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// UnknownFieldsKey is the error key under which strict schemas report input
// keys that match no declared field.
const UnknownFieldsKey = "_unknown"

// Data is a raw input mapping from field name to raw value.
type Data map[string]any

// Schema is an immutable ordered set of fields.
type Schema struct {
	name       string
	fields     []Field
	index      map[string]int
	strict     bool
	collectAll bool
	logger     *slog.Logger
	observer   Observer
}

// Option configures a Schema under construction.
type Option func(*Schema) error

// New builds a schema from options applied in order.
func New(name string, opts ...Option) (*Schema, error) {
	if name == "" {
		return nil, ErrEmptySchemaName
	}
	s := &Schema{
		name:     name,
		index:    make(map[string]int),
		logger:   logger.Discard(),
		observer: nopObserver{},
	}
	return s.apply(opts)
}

// MustNew is like New but panics on error. It is intended for package-level
// schema declarations.
func MustNew(name string, opts ...Option) *Schema {
	s, err := New(name, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend derives a new schema from s. The derived schema starts with a copy
// of s's fields and settings; opts then override, append or omit fields.
// Inherited fields keep their original positions and s is left unchanged.
// An empty name keeps the parent's name.
func (s *Schema) Extend(name string, opts ...Option) (*Schema, error) {
	if name == "" {
		name = s.name
	}
	derived := &Schema{
		name:       name,
		fields:     slices.Clone(s.fields),
		index:      maps.Clone(s.index),
		strict:     s.strict,
		collectAll: s.collectAll,
		logger:     s.logger,
		observer:   s.observer,
	}
	return derived.apply(opts)
}

// MustExtend is like Extend but panics on error.
func (s *Schema) MustExtend(name string, opts ...Option) *Schema {
	derived, err := s.Extend(name, opts...)
	if err != nil {
		panic(err)
	}
	return derived
}

func (s *Schema) apply(opts []Option) (*Schema, error) {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("schema %q: %w", s.name, err)
		}
	}
	for _, f := range s.fields {
		if f.equalTo == "" {
			continue
		}
		if _, ok := s.index[f.equalTo]; !ok {
			return nil, fmt.Errorf("schema %q: field %q must equal %q: %w", s.name, f.name, f.equalTo, ErrUnknownField)
		}
	}
	return s, nil
}

func checkField(f Field) error {
	switch {
	case f.name == "":
		return ErrEmptyFieldName
	case f.name == UnknownFieldsKey:
		return fmt.Errorf("%w: %q", ErrReservedName, f.name)
	case (f.kind == KindObject || f.kind == KindObjects) && f.nested == nil:
		return fmt.Errorf("field %q: %w", f.name, ErrNilSchema)
	case f.converter == nil:
		return fmt.Errorf("field %q: %w", f.name, ErrNilConverter)
	}
	return nil
}

// Fields appends fields after the existing ones.
func Fields(fields ...Field) Option {
	return func(s *Schema) error {
		for _, f := range fields {
			if err := checkField(f); err != nil {
				return err
			}
			if _, exists := s.index[f.name]; exists {
				return fmt.Errorf("%w: %q", ErrDuplicateField, f.name)
			}
			s.index[f.name] = len(s.fields)
			s.fields = append(s.fields, f)
		}
		return nil
	}
}

// Override replaces existing fields in place, keeping their positions.
func Override(fields ...Field) Option {
	return func(s *Schema) error {
		for _, f := range fields {
			if err := checkField(f); err != nil {
				return err
			}
			i, exists := s.index[f.name]
			if !exists {
				return fmt.Errorf("cannot override %q: %w", f.name, ErrUnknownField)
			}
			s.fields[i] = f
		}
		return nil
	}
}

// Omit removes fields by name. The remaining fields keep their relative order.
func Omit(names ...string) Option {
	return func(s *Schema) error {
		for _, name := range names {
			if _, exists := s.index[name]; !exists {
				return fmt.Errorf("cannot omit %q: %w", name, ErrUnknownField)
			}
			s.fields = slices.DeleteFunc(s.fields, func(f Field) bool { return f.name == name })
			s.reindex()
		}
		return nil
	}
}

func (s *Schema) reindex() {
	s.index = make(map[string]int, len(s.fields))
	for i, f := range s.fields {
		s.index[f.name] = i
	}
}

// Strict makes processing report input keys that match no declared field
// under UnknownFieldsKey.
func Strict() Option {
	return func(s *Schema) error {
		s.strict = true
		return nil
	}
}

// CollectAllErrors makes every field that does not choose its own policy
// report all validator violations instead of the first one.
func CollectAllErrors() Option {
	return func(s *Schema) error {
		s.collectAll = true
		return nil
	}
}

// Lenient turns off Strict, e.g. on a schema extending a strict one.
func Lenient() Option {
	return func(s *Schema) error {
		s.strict = false
		return nil
	}
}

// FirstErrorOnly turns off CollectAllErrors: fields without their own policy
// stop at the first validator violation.
func FirstErrorOnly() Option {
	return func(s *Schema) error {
		s.collectAll = false
		return nil
	}
}

// WithLogger sets the logger used for per-field debug records and run
// summaries. A nil logger discards records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Schema) error {
		if l == nil {
			l = logger.Discard()
		}
		s.logger = l
		return nil
	}
}

// WithObserver registers an observer notified of every field outcome and run.
// A nil observer disables notifications.
func WithObserver(o Observer) Option {
	return func(s *Schema) error {
		if o == nil {
			o = nopObserver{}
		}
		s.observer = o
		return nil
	}
}

// WithConfig applies the processing settings of cfg.
func WithConfig(cfg Config) Option {
	return func(s *Schema) error {
		s.strict = cfg.Strict
		s.collectAll = cfg.CollectAllErrors
		return nil
	}
}

func (s *Schema) Name() string { return s.name }

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns a copy of the declared fields in order.
func (s *Schema) Fields() []Field { return slices.Clone(s.fields) }

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns the declared field names in order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

func (s *Schema) IsStrict() bool { return s.strict }
