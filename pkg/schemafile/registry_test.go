package schemafile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/schemafile"
)

func loadTestdata(t *testing.T, opts ...schemafile.Option) *schemafile.Registry {
	t.Helper()
	reg := schemafile.NewRegistry(opts...)
	require.NoError(t, reg.LoadFS(os.DirFS("testdata")))
	return reg
}

func TestRegistry_LoadFS(t *testing.T) {
	t.Parallel()

	reg := loadTestdata(t)
	assert.Equal(t, []string{"address", "person", "employee"}, reg.Names())

	person, err := reg.Schema("person")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "age", "email", "address", "tags"}, person.Names())
	assert.True(t, person.IsStrict())

	again, err := reg.Schema("person")
	require.NoError(t, err)
	assert.Same(t, person, again, "built schemas are cached")

	name, ok := person.Field("name")
	require.True(t, ok)
	assert.Equal(t, "Name", name.Label())
	assert.Equal(t, schema.KindString, name.Kind())

	email, _ := person.Field("email")
	assert.False(t, email.IsRequired())
	assert.Equal(t, "email", email.Format())

	address, _ := person.Field("address")
	assert.Equal(t, schema.KindObject, address.Kind())
	assert.Equal(t, "address", address.Schema().Name())
}

func TestRegistry_ProcessDeclaredSchema(t *testing.T) {
	t.Parallel()

	person := loadTestdata(t).MustSchema("person")

	t.Run("valid input", func(t *testing.T) {
		res := person.Process(schema.Data{
			"name":    "  Ann ",
			"age":     "30",
			"address": map[string]any{"city": "Oslo"},
			"tags":    []any{"Go", "YAML"},
		})
		require.True(t, res.IsValid(), res.Errors().Error())

		assert.Equal(t, map[string]any{
			"name":    "Ann",
			"age":     30,
			"email":   nil,
			"address": map[string]any{"city": "Oslo", "zip": nil},
			"tags":    []any{"go", "yaml"},
		}, res.Value().Map())
	})

	t.Run("declared default", func(t *testing.T) {
		res := person.Process(schema.Data{
			"name":    "Ann",
			"age":     1,
			"address": map[string]any{"city": "Oslo"},
		})
		require.True(t, res.IsValid(), res.Errors().Error())
		tags, ok := res.Get("tags")
		require.True(t, ok)
		assert.Empty(t, tags)
	})

	t.Run("errors", func(t *testing.T) {
		res := person.Process(schema.Data{
			"name":    " ",
			"age":     "200",
			"email":   "nope",
			"address": map[string]any{"city": "Oslo", "zip": "1"},
			"nick":    "a",
		})
		assert.Equal(t, map[string][]string{
			"name":        {"must not be empty"},
			"age":         {"must be <= 150"},
			"email":       {"must be a valid email address"},
			"address.zip": {`must match pattern ^\d{5}$`},
			"_unknown":    {`unknown field "nick"`},
		}, res.Errors().Flatten())
		assert.Equal(t, []string{"Name is required"}, person.Process(schema.Data{}).ErrorsFor("name"))
	})
}

func TestRegistry_Extends(t *testing.T) {
	t.Parallel()

	employee := loadTestdata(t).MustSchema("employee")
	assert.Equal(t, []string{"name", "age", "email", "address", "team"}, employee.Names())
	assert.True(t, employee.IsStrict(), "settings are inherited")

	res := employee.Process(schema.Data{
		"name":    "Bob",
		"age":     "17",
		"address": map[string]any{"city": "Rome"},
	})
	assert.Equal(t, []string{"too young"}, res.ErrorsFor("age"))

	res = employee.Process(schema.Data{
		"name":    "Bob",
		"age":     "40",
		"address": map[string]any{"city": "Rome"},
	})
	require.True(t, res.IsValid(), res.Errors().Error())
	team, _ := res.Get("team")
	assert.Equal(t, "platform", team)
}

func TestRegistry_LoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "event.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "schemas": [{
    "name": "event",
    "collect_all_errors": true,
    "fields": [
      {"name": "title", "type": "string", "validators": [{"min_length": 3}, {"one_of": ["launch", "party"]}]},
      {"name": "day", "type": "date"},
      {"name": "seats", "type": "integer", "default": 10},
      {"name": "price", "type": "number", "validators": [{"range": {"min": 0.5, "max": 99.5}}]},
      {"name": "public", "type": "boolean", "default": true}
    ]
  }]
}`), 0o600))

	reg := schemafile.NewRegistry(schemafile.WithTimeLayout("02.01.2006"))
	require.NoError(t, reg.LoadFile(path))

	event := reg.MustSchema("event")
	res := event.Process(schema.Data{"title": "x", "day": "24.12.2024", "price": "100"})
	assert.Equal(t, []string{
		"must be at least 3 characters long",
		"must be one of: launch, party",
	}, res.ErrorsFor("title"))
	assert.Equal(t, []string{"must be <= 99.5"}, res.ErrorsFor("price"))

	day, ok := res.Get("day")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), day)
	seats, _ := res.Get("seats")
	assert.Equal(t, 10, seats)
	public, _ := res.Get("public")
	assert.Equal(t, true, public)

	err := reg.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistry_OneSidedRange(t *testing.T) {
	t.Parallel()

	reg := schemafile.NewRegistry(schemafile.WithSchemaOptions(schema.CollectAllErrors()))
	require.NoError(t, reg.Parse([]byte(`
schemas:
  - name: reading
    fields:
      - {name: age, type: int, validators: [{range: {min: 0}}]}
      - {name: limit, type: int, validators: [{range: {max: 10}}]}
      - {name: temp, type: float, validators: [{range: {max: -5}}]}
      - {name: depth, type: float, validators: [{range: {min: 1.5}}]}
      - {name: code, validators: [{length: {max: 3}}]}
`), "inline"))

	reading := reg.MustSchema("reading")

	res := reading.Process(schema.Data{"age": "30", "limit": "-100", "temp": "-40", "depth": "1000", "code": "ab"})
	require.True(t, res.IsValid(), res.Errors().Error())

	res = reading.Process(schema.Data{"age": "-1", "limit": "11", "temp": "0", "depth": "1", "code": "abcd"})
	assert.Equal(t, map[string][]string{
		"age":   {"must be >= 0"},
		"limit": {"must be <= 10"},
		"temp":  {"must be <= -5"},
		"depth": {"must be >= 1.5"},
		"code":  {"must be at most 3 characters long"},
	}, res.Errors().Flatten())
}

func TestRegistry_ScalarDefaults(t *testing.T) {
	t.Parallel()

	reg := schemafile.NewRegistry()
	require.NoError(t, reg.Parse([]byte(`
schemas:
  - name: page
    fields:
      - {name: size, type: int, default: 3}
      - {name: ratio, type: float, default: 0.5}
      - {name: sort, default: name}
      - {name: desc, type: bool, default: false}
`), "inline"))

	res := reg.MustSchema("page").Process(schema.Data{})
	require.True(t, res.IsValid(), res.Errors().Error())
	assert.Equal(t, map[string]any{"size": 3, "ratio": 0.5, "sort": "name", "desc": false}, res.Value().Map())
}

func TestRegistry_ExtendsTurnsSettingsOff(t *testing.T) {
	t.Parallel()

	reg := schemafile.NewRegistry()
	require.NoError(t, reg.Parse([]byte(`
schemas:
  - name: base
    strict: true
    collect_all_errors: true
    fields:
      - {name: code, validators: [{min_length: 5}, {pattern: '^\d+$'}]}
  - name: relaxed
    extends: base
    strict: false
    collect_all_errors: false
`), "inline"))

	base := reg.MustSchema("base")
	relaxed := reg.MustSchema("relaxed")
	assert.True(t, base.IsStrict())
	assert.False(t, relaxed.IsStrict())

	in := schema.Data{"code": "ab", "extra": "x"}
	assert.Len(t, base.Process(in).ErrorsFor("code"), 2)
	assert.True(t, base.Process(in).Errors().Has(schema.UnknownFieldsKey))

	res := relaxed.Process(in)
	assert.Len(t, res.ErrorsFor("code"), 1)
	assert.False(t, res.Errors().Has(schema.UnknownFieldsKey))
}

func TestRegistry_CleanupRules(t *testing.T) {
	t.Parallel()

	reg := schemafile.NewRegistry()
	require.NoError(t, reg.Parse([]byte(`
schemas:
  - name: note
    fields:
      - {name: title, validators: [remove_control_chars, {truncate: 5}]}
`), "inline"))

	res := reg.MustSchema("note").Process(schema.Data{"title": "he\x00llo\tworld"})
	require.True(t, res.IsValid(), res.Errors().Error())
	title, _ := res.Get("title")
	assert.Equal(t, "hello", title)
}

func TestRegistry_WithSchemaOptions(t *testing.T) {
	t.Parallel()

	reg := schemafile.NewRegistry(schemafile.WithSchemaOptions(schema.CollectAllErrors()))
	require.NoError(t, reg.Parse([]byte(`
schemas:
  - name: code
    fields:
      - name: code
        validators: [{min_length: 5}, {pattern: '^\d+$'}]
`), "inline"))

	res := reg.MustSchema("code").Process(schema.Data{"code": "ab"})
	assert.Len(t, res.ErrorsFor("code"), 2)
}

func TestRegistry_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		doc    string
		schema string
		want   error
	}{
		{
			name: "empty document",
			doc:  "  \n",
			want: schemafile.ErrInvalidDocument,
		},
		{
			name: "unknown key",
			doc:  "schemas:\n  - name: a\n    colour: red\n",
			want: schemafile.ErrInvalidDocument,
		},
		{
			name: "missing schema name",
			doc:  "schemas:\n  - fields: []\n",
			want: schemafile.ErrInvalidDocument,
		},
		{
			name:   "unknown schema",
			doc:    "schemas:\n  - name: a\n",
			schema: "b",
			want:   schemafile.ErrUnknownSchema,
		},
		{
			name:   "unknown reference",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, type: object, schema: nope}]\n",
			schema: "a",
			want:   schemafile.ErrUnknownSchema,
		},
		{
			name: "reference cycle",
			doc: `schemas:
  - name: a
    fields: [{name: b, type: object, schema: b}]
  - name: b
    fields: [{name: a, type: list, items: {schema: a}}]
`,
			schema: "a",
			want:   schemafile.ErrCycle,
		},
		{
			name:   "extends cycle",
			doc:    "schemas:\n  - {name: a, extends: b}\n  - {name: b, extends: a}\n",
			schema: "a",
			want:   schemafile.ErrCycle,
		},
		{
			name:   "unknown type",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, type: money}]\n",
			schema: "a",
			want:   schemafile.ErrUnknownType,
		},
		{
			name:   "list without items",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, type: list}]\n",
			schema: "a",
			want:   schemafile.ErrUnknownType,
		},
		{
			name:   "unknown rule",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, validators: [shiny]}]\n",
			schema: "a",
			want:   schemafile.ErrUnknownRule,
		},
		{
			name:   "invalid pattern",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, validators: [{pattern: '('}]}]\n",
			schema: "a",
			want:   schemafile.ErrInvalidRule,
		},
		{
			name:   "numeric rule on string",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, validators: [{min: 1}]}]\n",
			schema: "a",
			want:   schemafile.ErrInvalidRule,
		},
		{
			name:   "missing argument",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, validators: [min_length]}]\n",
			schema: "a",
			want:   schemafile.ErrInvalidRule,
		},
		{
			name:   "range without bounds",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, type: int, validators: [{range: {}}]}]\n",
			schema: "a",
			want:   schemafile.ErrInvalidRule,
		},
		{
			name:   "negative truncate",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, validators: [{truncate: -1}]}]\n",
			schema: "a",
			want:   schemafile.ErrInvalidRule,
		},
		{
			name:   "invalid default",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x, type: int, default: many}]\n",
			schema: "a",
			want:   schemafile.ErrInvalidDefault,
		},
		{
			name:   "duplicate field",
			doc:    "schemas:\n  - name: a\n    fields: [{name: x}, {name: x}]\n",
			schema: "a",
			want:   schema.ErrDuplicateField,
		},
		{
			name:   "omit unknown field",
			doc:    "schemas:\n  - {name: a}\n  - {name: b, extends: a, omit: [x]}\n",
			schema: "b",
			want:   schema.ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reg := schemafile.NewRegistry()
			err := reg.Parse([]byte(tt.doc), "test.yaml")
			if tt.schema == "" {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)

			_, err = reg.Schema(tt.schema)
			assert.ErrorIs(t, err, tt.want)
			assert.Panics(t, func() { reg.MustSchema(tt.schema) })
		})
	}
}

func TestRegistry_DuplicateSchema(t *testing.T) {
	t.Parallel()

	reg := schemafile.NewRegistry()
	require.NoError(t, reg.Parse([]byte("schemas:\n  - name: a\n"), "one.yaml"))

	err := reg.Parse([]byte("schemas:\n  - name: b\n  - name: a\n"), "two.yaml")
	require.ErrorIs(t, err, schemafile.ErrDuplicateSchema)
	assert.Contains(t, err.Error(), "one.yaml")
	assert.Equal(t, []string{"a"}, reg.Names(), "a rejected document adds nothing")
}
