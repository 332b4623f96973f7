package openapi

import (
	"context"
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/dmitrymomot/formkit/pkg/converter"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

type options struct {
	schemaOpts []schema.Option
	validate   bool
}

type Option func(*options)

// WithSchemaOptions adds options applied to every schema built from the
// document, nested schemas included.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(o *options) { o.schemaOpts = append(o.schemaOpts, opts...) }
}

// WithoutValidation skips OpenAPI document validation in Load and LoadFile.
func WithoutValidation() Option {
	return func(o *options) { o.validate = false }
}

func newOptions(opts []Option) options {
	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Document builds schemas from the component schemas of an OpenAPI document.
// Built schemas are cached; Document is safe for concurrent use.
type Document struct {
	doc *openapi3.T

	mu      sync.Mutex
	builder *builder
}

// Load parses and validates an OpenAPI 3 document in JSON or YAML.
func Load(ctx context.Context, data []byte, opts ...Option) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDocument, err)
	}
	return newDocument(ctx, doc, newOptions(opts))
}

// LoadFile is like Load but reads the document from path. Relative
// references are resolved against the file location.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadDocument, err)
	}
	return newDocument(ctx, doc, newOptions(opts))
}

// NewDocument wraps an already loaded document without validating it.
func NewDocument(doc *openapi3.T, opts ...Option) *Document {
	return &Document{doc: doc, builder: newBuilder(newOptions(opts))}
}

func newDocument(ctx context.Context, doc *openapi3.T, o options) (*Document, error) {
	if o.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadDocument, err)
		}
	}
	return &Document{doc: doc, builder: newBuilder(o)}, nil
}

// Names returns the component schema names in alphabetical order.
func (d *Document) Names() []string {
	if d.doc.Components == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(d.doc.Components.Schemas))
}

// Schema builds the component schema with the given name.
func (d *Document) Schema(name string) (*schema.Schema, error) {
	if d.doc.Components == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	ref, ok := d.doc.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.builder.object(name, ref.Value)
}

// FromSchema builds a schema named name from a single OpenAPI object schema.
func FromSchema(name string, s *openapi3.Schema, opts ...Option) (*schema.Schema, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	return newBuilder(newOptions(opts)).object(name, s)
}

type builder struct {
	opts  options
	built map[*openapi3.Schema]*schema.Schema
	stack []*openapi3.Schema
}

func newBuilder(o options) *builder {
	return &builder{opts: o, built: make(map[*openapi3.Schema]*schema.Schema)}
}

func (b *builder) object(name string, s *openapi3.Schema) (*schema.Schema, error) {
	if built, ok := b.built[s]; ok {
		return built, nil
	}
	if slices.Contains(b.stack, s) {
		return nil, fmt.Errorf("%w: %s", ErrCycle, name)
	}
	if typ := typeOf(s); typ != openapi3.TypeObject {
		return nil, fmt.Errorf("%w: %s: expected an object, got %q", ErrUnsupported, name, typ)
	}

	b.stack = append(b.stack, s)
	defer func() { b.stack = b.stack[:len(b.stack)-1] }()

	props, required, strict := flatten(s)
	fields := make([]schema.Field, 0, len(props))
	for _, prop := range slices.Sorted(maps.Keys(props)) {
		ref := props[prop]
		if ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("%w: %s.%s: unresolved reference", ErrInvalidSchema, name, prop)
		}
		if ref.Value.ReadOnly {
			continue
		}
		f, err := b.field(name, prop, ref, required[prop])
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, prop, err)
		}
		fields = append(fields, f)
	}

	opts := slices.Clone(b.opts.schemaOpts)
	if strict {
		opts = append(opts, schema.Strict())
	}
	opts = append(opts, schema.Fields(fields...))

	built, err := schema.New(name, opts...)
	if err != nil {
		return nil, err
	}
	b.built[s] = built
	return built, nil
}

// flatten merges the properties and required lists of allOf members into
// the schema's own. Own properties win.
func flatten(s *openapi3.Schema) (openapi3.Schemas, map[string]bool, bool) {
	props := openapi3.Schemas{}
	required := map[string]bool{}
	strict := s.AdditionalProperties.Has != nil && !*s.AdditionalProperties.Has

	for _, member := range s.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		mp, mr, _ := flatten(member.Value)
		maps.Copy(props, mp)
		maps.Copy(required, mr)
	}
	maps.Copy(props, s.Properties)
	for _, name := range s.Required {
		required[name] = true
	}
	return props, required, strict
}

func (b *builder) field(parent, name string, ref *openapi3.SchemaRef, required bool) (schema.Field, error) {
	ps := ref.Value
	opts := fieldOptions(ps, required)

	var (
		f   schema.Field
		err error
	)
	switch typ := typeOf(ps); {
	case len(ps.AnyOf) > 0 || len(ps.OneOf) > 0:
		f, err = alternatives(name, ps, opts)
	case typ == openapi3.TypeObject:
		var inner *schema.Schema
		inner, err = b.object(nestedName(parent, name, ref), ps)
		f = schema.Object(name, inner, opts...)
	case typ == openapi3.TypeArray:
		f, err = b.array(parent, name, ps, opts)
	default:
		f, err = scalarField(name, ps, opts)
	}
	if err != nil {
		return schema.Field{}, err
	}

	if ps.Format != "" && f.Kind() != schema.KindTime {
		f = f.With(schema.Format(ps.Format))
	}
	if ps.Default != nil {
		def, err := f.Converter().Convert(ps.Default)
		if err != nil {
			return schema.Field{}, fmt.Errorf("%w: default: %w", ErrInvalidSchema, err)
		}
		f = f.With(schema.Default(def))
	}
	return f, nil
}

func fieldOptions(ps *openapi3.Schema, required bool) []schema.FieldOption {
	var opts []schema.FieldOption
	if !required || ps.Nullable {
		opts = append(opts, schema.Optional())
	}
	if ps.Title != "" {
		opts = append(opts, schema.Label(ps.Title))
	}
	if ps.Description != "" {
		opts = append(opts, schema.Description(ps.Description))
	}
	return opts
}

func (b *builder) array(parent, name string, ps *openapi3.Schema, opts []schema.FieldOption) (schema.Field, error) {
	if ps.Items == nil || ps.Items.Value == nil {
		return schema.Field{}, fmt.Errorf("%w: array without items", ErrInvalidSchema)
	}
	items := ps.Items.Value
	opts = append(opts, schema.Validate(arrayValidators(ps)...))

	if typeOf(items) == openapi3.TypeObject {
		inner, err := b.object(nestedName(parent, name+"Item", ps.Items), items)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.Objects(name, inner, opts...), nil
	}

	elem, err := scalarConverter(items)
	if err != nil {
		return schema.Field{}, err
	}
	itemRules, err := scalarValidators(items)
	if err != nil {
		return schema.Field{}, err
	}
	if len(itemRules) > 0 {
		opts = append(opts, schema.Validate(validator.Each(validator.Chain(itemRules...))))
	}
	return schema.List(name, elem, opts...), nil
}

func arrayValidators(ps *openapi3.Schema) []validator.Validator {
	var vs []validator.Validator
	switch {
	case ps.MinItems > 0 && ps.MaxItems != nil:
		vs = append(vs, validator.Length(int(ps.MinItems), int(*ps.MaxItems)))
	case ps.MinItems > 0:
		vs = append(vs, validator.MinLength(int(ps.MinItems)))
	case ps.MaxItems != nil:
		vs = append(vs, validator.MaxLength(int(*ps.MaxItems)))
	}
	if ps.UniqueItems {
		vs = append(vs, validator.Unique())
	}
	return vs
}

// alternatives maps anyOf and oneOf of scalar members to a converter that
// tries each member type in order.
func alternatives(name string, ps *openapi3.Schema, opts []schema.FieldOption) (schema.Field, error) {
	members := ps.AnyOf
	if len(members) == 0 {
		members = ps.OneOf
	}
	convs := make([]converter.Converter, 0, len(members))
	for _, m := range members {
		if m == nil || m.Value == nil {
			return schema.Field{}, fmt.Errorf("%w: unresolved alternative", ErrInvalidSchema)
		}
		conv, err := scalarConverter(m.Value)
		if err != nil {
			return schema.Field{}, err
		}
		convs = append(convs, conv)
	}
	return schema.NewField(name, converter.AnyOf(convs...), opts...), nil
}

func scalarField(name string, ps *openapi3.Schema, opts []schema.FieldOption) (schema.Field, error) {
	rules, err := scalarValidators(ps)
	if err != nil {
		return schema.Field{}, err
	}
	opts = append(opts, schema.Validate(rules...))

	switch typeOf(ps) {
	case openapi3.TypeString, "":
		switch ps.Format {
		case "date":
			return schema.Time(name, schema.DefaultTimeLayout, opts...), nil
		case "date-time":
			return schema.Time(name, time.RFC3339, opts...), nil
		case "uuid":
			return schema.UUID(name, opts...), nil
		default:
			return schema.String(name, opts...), nil
		}
	case openapi3.TypeInteger:
		return schema.Int(name, opts...), nil
	case openapi3.TypeNumber:
		return schema.Float(name, opts...), nil
	case openapi3.TypeBoolean:
		return schema.Bool(name, opts...), nil
	default:
		return schema.Field{}, fmt.Errorf("%w: type %q", ErrUnsupported, typeOf(ps))
	}
}

func scalarConverter(ps *openapi3.Schema) (converter.Converter, error) {
	switch typeOf(ps) {
	case openapi3.TypeString, "":
		switch ps.Format {
		case "date":
			return converter.Time(schema.DefaultTimeLayout), nil
		case "date-time":
			return converter.Time(time.RFC3339), nil
		case "uuid":
			return converter.UUID(), nil
		default:
			return converter.String(), nil
		}
	case openapi3.TypeInteger:
		return converter.Int(), nil
	case openapi3.TypeNumber:
		return converter.Float(), nil
	case openapi3.TypeBoolean:
		return converter.Bool(), nil
	default:
		return nil, fmt.Errorf("%w: type %q", ErrUnsupported, typeOf(ps))
	}
}

func scalarValidators(ps *openapi3.Schema) ([]validator.Validator, error) {
	switch typeOf(ps) {
	case openapi3.TypeString, "":
		if ps.Format == "date" || ps.Format == "date-time" || ps.Format == "uuid" {
			return nil, nil
		}
		return stringValidators(ps)
	case openapi3.TypeInteger:
		return intValidators(ps)
	case openapi3.TypeNumber:
		return floatValidators(ps)
	default:
		return nil, nil
	}
}

func stringValidators(ps *openapi3.Schema) ([]validator.Validator, error) {
	var vs []validator.Validator
	switch ps.Format {
	case "email":
		vs = append(vs, validator.Email())
	case "uri", "url":
		vs = append(vs, validator.URL())
	}

	switch {
	case ps.MinLength > 0 && ps.MaxLength != nil:
		vs = append(vs, validator.Length(int(ps.MinLength), int(*ps.MaxLength)))
	case ps.MinLength > 0:
		vs = append(vs, validator.MinLength(int(ps.MinLength)))
	case ps.MaxLength != nil:
		vs = append(vs, validator.MaxLength(int(*ps.MaxLength)))
	}

	if ps.Pattern != "" {
		if _, err := regexp.Compile(ps.Pattern); err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %v", ErrUnsupported, ps.Pattern, err)
		}
		vs = append(vs, validator.Pattern(ps.Pattern))
	}

	if len(ps.Enum) > 0 {
		values := make([]string, 0, len(ps.Enum))
		for _, e := range ps.Enum {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: enum value %v is not a string", ErrInvalidSchema, e)
			}
			values = append(values, s)
		}
		vs = append(vs, validator.OneOf(values...))
	}
	return vs, nil
}

func intValidators(ps *openapi3.Schema) ([]validator.Validator, error) {
	var vs []validator.Validator
	if ps.Min != nil {
		lo := int(math.Ceil(*ps.Min))
		if ps.ExclusiveMin && float64(lo) == *ps.Min {
			lo++
		}
		vs = append(vs, validator.Min(lo))
	}
	if ps.Max != nil {
		hi := int(math.Floor(*ps.Max))
		if ps.ExclusiveMax && float64(hi) == *ps.Max {
			hi--
		}
		vs = append(vs, validator.Max(hi))
	}
	if ps.MultipleOf != nil {
		vs = append(vs, multipleOf(*ps.MultipleOf))
	}

	if len(ps.Enum) > 0 {
		values := make([]int, 0, len(ps.Enum))
		for _, e := range ps.Enum {
			f, ok := number(e)
			if !ok || f != math.Trunc(f) {
				return nil, fmt.Errorf("%w: enum value %v is not an integer", ErrInvalidSchema, e)
			}
			values = append(values, int(f))
		}
		vs = append(vs, validator.OneOf(values...))
	}
	return vs, nil
}

func floatValidators(ps *openapi3.Schema) ([]validator.Validator, error) {
	var vs []validator.Validator
	if ps.Min != nil {
		if ps.ExclusiveMin {
			vs = append(vs, exclusive(*ps.Min, true))
		} else {
			vs = append(vs, validator.Min(*ps.Min))
		}
	}
	if ps.Max != nil {
		if ps.ExclusiveMax {
			vs = append(vs, exclusive(*ps.Max, false))
		} else {
			vs = append(vs, validator.Max(*ps.Max))
		}
	}
	if ps.MultipleOf != nil {
		vs = append(vs, multipleOf(*ps.MultipleOf))
	}

	if len(ps.Enum) > 0 {
		values := make([]float64, 0, len(ps.Enum))
		for _, e := range ps.Enum {
			f, ok := number(e)
			if !ok {
				return nil, fmt.Errorf("%w: enum value %v is not a number", ErrInvalidSchema, e)
			}
			values = append(values, f)
		}
		vs = append(vs, validator.OneOf(values...))
	}
	return vs, nil
}

func exclusive(bound float64, lower bool) validator.Validator {
	if lower {
		return validator.Check(func(v any) bool {
			f, ok := v.(float64)
			return ok && f > bound
		}, &validator.ValidationError{
			Message:           fmt.Sprintf("must be > %v", bound),
			TranslationKey:    "validation.exclusive_min",
			TranslationValues: map[string]any{"min": bound},
		})
	}
	return validator.Check(func(v any) bool {
		f, ok := v.(float64)
		return ok && f < bound
	}, &validator.ValidationError{
		Message:           fmt.Sprintf("must be < %v", bound),
		TranslationKey:    "validation.exclusive_max",
		TranslationValues: map[string]any{"max": bound},
	})
}

func multipleOf(m float64) validator.Validator {
	return validator.Check(func(v any) bool {
		f, ok := number(v)
		if !ok {
			return false
		}
		q := f / m
		return math.Abs(q-math.Round(q)) < 1e-9
	}, &validator.ValidationError{
		Message:           fmt.Sprintf("must be a multiple of %v", m),
		TranslationKey:    "validation.multiple_of",
		TranslationValues: map[string]any{"multiple_of": m},
	})
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// typeOf returns the first non-null type of s. Schemas without a type but
// with properties or allOf members are objects.
func typeOf(s *openapi3.Schema) string {
	for _, t := range s.Type.Slice() {
		if t != openapi3.TypeNull {
			return t
		}
	}
	if len(s.Properties) > 0 || len(s.AllOf) > 0 {
		return openapi3.TypeObject
	}
	return ""
}

func nestedName(parent, name string, ref *openapi3.SchemaRef) string {
	if ref != nil && ref.Ref != "" {
		return ref.Ref[strings.LastIndex(ref.Ref, "/")+1:]
	}
	return parent + "." + name
}
