package schema

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/formkit/pkg/converter"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Kind describes the typed value a field produces. It is informational:
// processing only ever relies on the field's converter.
type Kind string

const (
	KindCustom  Kind = "custom"
	KindString  Kind = "string"
	KindInt     Kind = "int"
	KindFloat   Kind = "float"
	KindBool    Kind = "bool"
	KindTime    Kind = "time"
	KindUUID    Kind = "uuid"
	KindObject  Kind = "object"
	KindList    Kind = "list"
	KindObjects Kind = "objects"
)

// DefaultTimeLayout is used by Time fields declared without a layout.
const DefaultTimeLayout = "2006-01-02"

// MessageRequired is the translation key of the error recorded for missing
// required fields. Use it with Message to replace the default text.
const MessageRequired = "validation.required"

type errorPolicy uint8

const (
	policyInherit errorPolicy = iota
	policyShortCircuit
	policyCollectAll
)

// Field is an immutable declaration of one named input: its converter, its
// ordered validators and its metadata. Fields are plain values; every
// With call and every schema operation works on a copy.
type Field struct {
	name        string
	kind        Kind
	converter   converter.Converter
	validators  []validator.Validator
	required    bool
	hasDefault  bool
	def         any
	label       string
	description string
	format      string
	messages    map[string]string
	policy      errorPolicy
	equalTo     string
	nested      *Schema
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// NewField declares a required field converted by conv.
func NewField(name string, conv converter.Converter, opts ...FieldOption) Field {
	return newField(name, KindCustom, conv, opts)
}

func newField(name string, kind Kind, conv converter.Converter, opts []FieldOption) Field {
	f := Field{
		name:      name,
		kind:      kind,
		converter: conv,
		required:  true,
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// String declares a string field. Use StringWith to pass converter options.
func String(name string, opts ...FieldOption) Field {
	return newField(name, KindString, converter.String(), opts)
}

// StringWith declares a string field with converter options such as
// converter.Trim().
func StringWith(name string, convOpts []converter.StringOption, opts ...FieldOption) Field {
	return newField(name, KindString, converter.String(convOpts...), opts)
}

func Int(name string, opts ...FieldOption) Field {
	return newField(name, KindInt, converter.Int(), opts)
}

func Float(name string, opts ...FieldOption) Field {
	return newField(name, KindFloat, converter.Float(), opts)
}

func Bool(name string, opts ...FieldOption) Field {
	return newField(name, KindBool, converter.Bool(), opts)
}

// Time declares a time field parsed with layout. An empty layout means
// DefaultTimeLayout.
func Time(name, layout string, opts ...FieldOption) Field {
	if layout == "" {
		layout = DefaultTimeLayout
	}
	f := newField(name, KindTime, converter.Time(layout), opts)
	f.format = layout
	return f
}

func UUID(name string, opts ...FieldOption) Field {
	return newField(name, KindUUID, converter.UUID(), opts)
}

// Object declares a field whose value is processed by the nested schema s.
// On success the typed value is the inner *Values; on failure the field's
// error holds the inner errors keyed by inner field name.
func Object(name string, s *Schema, opts ...FieldOption) Field {
	f := newField(name, KindObject, nil, opts)
	f.nested = s
	if s != nil {
		f.converter = Nested(s)
	}
	return f
}

// List declares a field holding a sequence whose items are converted by elem.
// The typed value is []any.
func List(name string, elem converter.Converter, opts ...FieldOption) Field {
	return newField(name, KindList, converter.Slice(elem), opts)
}

// Objects declares a field holding a sequence of mappings, each processed by s.
func Objects(name string, s *Schema, opts ...FieldOption) Field {
	f := newField(name, KindObjects, nil, opts)
	f.nested = s
	if s != nil {
		f.converter = ListOf(s)
	}
	return f
}

// Optional marks the field as not required. A missing optional field without
// a default gets a nil value.
func Optional() FieldOption {
	return func(f *Field) { f.required = false }
}

// Required marks the field as required. Fields are required unless declared
// otherwise.
func Required() FieldOption {
	return func(f *Field) {
		f.required = true
		f.hasDefault = false
		f.def = nil
	}
}

// Default sets the typed value used when the field is missing and makes the
// field optional. The value is stored as is: it never passes through the
// converter or the validators.
func Default(v any) FieldOption {
	return func(f *Field) {
		f.required = false
		f.hasDefault = true
		f.def = v
	}
}

// Label sets the display name used in the "is required" message.
func Label(label string) FieldOption {
	return func(f *Field) { f.label = label }
}

func Description(text string) FieldOption {
	return func(f *Field) { f.description = text }
}

// Format records a free-form format hint such as "email" or a time layout.
// It does not change processing.
func Format(format string) FieldOption {
	return func(f *Field) { f.format = format }
}

// Validate appends validators to the field's chain.
func Validate(validators ...validator.Validator) FieldOption {
	return func(f *Field) {
		f.validators = append(slices.Clone(f.validators), validators...)
	}
}

// Message replaces the text of any error with the given translation key,
// for example "conversion.integer" or MessageRequired.
func Message(key, text string) FieldOption {
	return func(f *Field) {
		m := maps.Clone(f.messages)
		if m == nil {
			m = make(map[string]string, 1)
		}
		m[key] = text
		f.messages = m
	}
}

// CollectAll makes the field run every validator and report every violation.
// Output of passing validators is still fed forward.
func CollectAll() FieldOption {
	return func(f *Field) { f.policy = policyCollectAll }
}

// ShortCircuit makes the field stop at the first failing validator even when
// the schema collects all errors.
func ShortCircuit() FieldOption {
	return func(f *Field) { f.policy = policyShortCircuit }
}

// EqualTo requires the field's typed value to equal the typed value of the
// other field. The comparison runs after all fields are processed and only
// when both fields succeeded.
func EqualTo(other string) FieldOption {
	return func(f *Field) { f.equalTo = other }
}

// With returns a copy of f with opts applied.
func (f Field) With(opts ...FieldOption) Field {
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

func (f Field) Name() string { return f.name }

func (f Field) Kind() Kind { return f.kind }

func (f Field) Converter() converter.Converter { return f.converter }

// Validators returns a copy of the field's validator chain.
func (f Field) Validators() []validator.Validator { return slices.Clone(f.validators) }

func (f Field) IsRequired() bool { return f.required }

// Default returns the default value and whether one was declared.
func (f Field) Default() (any, bool) { return f.def, f.hasDefault }

// Label returns the display label, falling back to the field name.
func (f Field) Label() string {
	if f.label != "" {
		return f.label
	}
	return f.name
}

func (f Field) Description() string { return f.description }

func (f Field) Format() string { return f.format }

// EqualTo returns the name of the field this one must equal, if any.
func (f Field) EqualTo() string { return f.equalTo }

// Schema returns the nested schema of Object and Objects fields.
func (f Field) Schema() *Schema { return f.nested }

// message returns the override for key, or fallback.
func (f Field) message(key, fallback string) string {
	if text, ok := f.messages[key]; ok {
		return text
	}
	return fallback
}

func (f Field) requiredMessage() string {
	if f.label != "" {
		return f.message(MessageRequired, f.label+" is required")
	}
	return f.message(MessageRequired, "is required")
}

func (f Field) collectAll(schemaDefault bool) bool {
	switch f.policy {
	case policyCollectAll:
		return true
	case policyShortCircuit:
		return false
	default:
		return schemaDefault
	}
}
