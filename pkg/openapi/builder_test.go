package openapi_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/openapi"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

func loadPetstore(t *testing.T, opts ...openapi.Option) *openapi.Document {
	t.Helper()
	doc, err := openapi.LoadFile(context.Background(), "testdata/petstore.yaml", opts...)
	require.NoError(t, err)
	return doc
}

func TestDocument_Names(t *testing.T) {
	t.Parallel()

	doc := loadPetstore(t)
	assert.Equal(t, []string{"NewPet", "Node", "Owner", "Pet"}, doc.Names())
}

func TestDocument_Pet(t *testing.T) {
	t.Parallel()

	pet, err := loadPetstore(t).Schema("Pet")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"age", "born", "chip", "name", "owner", "species", "tags", "vaccinated", "visits", "weight",
	}, pet.Names(), "properties in alphabetical order, readOnly skipped")
	assert.True(t, pet.IsStrict())

	name, _ := pet.Field("name")
	assert.True(t, name.IsRequired())
	assert.Equal(t, "Pet name", name.Label())

	age, _ := pet.Field("age")
	assert.False(t, age.IsRequired())
	assert.Equal(t, schema.KindInt, age.Kind())

	born, _ := pet.Field("born")
	assert.Equal(t, schema.KindTime, born.Kind())

	owner, _ := pet.Field("owner")
	assert.Equal(t, schema.KindObject, owner.Kind())
	assert.Equal(t, "Owner", owner.Schema().Name())

	visits, _ := pet.Field("visits")
	assert.Equal(t, schema.KindObjects, visits.Kind())

	vaccinated, _ := pet.Field("vaccinated")
	def, ok := vaccinated.Default()
	assert.True(t, ok)
	assert.Equal(t, false, def)

	t.Run("valid input", func(t *testing.T) {
		chip := uuid.New()
		res := pet.Process(schema.Data{
			"name":    "Rex",
			"species": "dog",
			"age":     "3",
			"weight":  "12.5",
			"born":    "2021-06-01",
			"tags":    []any{"good", "boy"},
			"owner":   map[string]any{"email": "ann@example.com"},
			"visits":  []any{map[string]any{"at": "2024-05-01T10:00:00Z"}},
			"chip":    chip.String(),
		})
		require.True(t, res.IsValid(), res.Errors().Error())

		born, _ := res.Get("born")
		assert.Equal(t, time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), born)
		got, _ := res.Get("chip")
		assert.Equal(t, chip, got)
		vaccinated, _ := res.Get("vaccinated")
		assert.Equal(t, false, vaccinated)
	})

	t.Run("numeric chip matches the first alternative", func(t *testing.T) {
		res := pet.Process(schema.Data{"name": "Rex", "species": "cat", "chip": "42"})
		require.True(t, res.IsValid(), res.Errors().Error())
		chip, _ := res.Get("chip")
		assert.Equal(t, 42, chip)
	})

	t.Run("errors", func(t *testing.T) {
		res := pet.Process(schema.Data{
			"id":      "0d6c6a37-1d55-4f53-9a2e-3f7c5b1e3a11",
			"name":    "R",
			"species": "cow",
			"age":     "40",
			"weight":  "0",
			"tags":    []any{"a", "a"},
			"owner":   map[string]any{"email": "nope", "phone": "12"},
			"visits":  []any{map[string]any{"note": "checkup"}},
			"chip":    "abc",
		})
		assert.Equal(t, map[string][]string{
			"age":         {"must be <= 39"},
			"chip":        {"does not match any accepted type"},
			"name":        {"must be at least 2 characters long"},
			"owner.email": {"must be a valid email address"},
			"owner.phone": {`must match pattern ^\+?[0-9 ]{6,}$`},
			"species":     {"must be one of: cat, dog"},
			"tags":        {"must not contain duplicates"},
			"visits.0.at": {"is required"},
			"weight":      {"must be > 0"},
			"_unknown":    {`unknown field "id"`},
		}, res.Errors().Flatten())
	})

	t.Run("array bounds", func(t *testing.T) {
		res := pet.Process(schema.Data{
			"name":    "Rex",
			"species": "cat",
			"tags":    []any{"a", "b", "c", "d"},
		})
		assert.Equal(t, []string{"must have at most 3 items"}, res.ErrorsFor("tags"))

		res = pet.Process(schema.Data{"name": "Rex", "species": "cat", "tags": []any{""}})
		assert.Equal(t, []string{"item 0: must be at least 1 characters long"}, res.ErrorsFor("tags"))
	})
}

func TestDocument_AllOf(t *testing.T) {
	t.Parallel()

	doc := loadPetstore(t)
	newPet, err := doc.Schema("NewPet")
	require.NoError(t, err)

	assert.Contains(t, newPet.Names(), "priority")
	assert.NotContains(t, newPet.Names(), "id")
	assert.False(t, newPet.IsStrict())

	owner, _ := newPet.Field("owner")
	assert.True(t, owner.IsRequired(), "required lists are merged")

	res := newPet.Process(schema.Data{
		"name":    "Rex",
		"species": "dog",
		"owner":   map[string]any{"email": "ann@example.com"},
	})
	require.True(t, res.IsValid(), res.Errors().Error())
	priority, _ := res.Get("priority")
	assert.Equal(t, 2, priority)

	res = newPet.Process(schema.Data{
		"name":     "Rex",
		"species":  "dog",
		"owner":    map[string]any{"email": "ann@example.com"},
		"priority": "5",
	})
	assert.Equal(t, []string{"must be one of: 1, 2, 3"}, res.ErrorsFor("priority"))

	pet, err := doc.Schema("Pet")
	require.NoError(t, err)
	again, err := doc.Schema("Pet")
	require.NoError(t, err)
	assert.Same(t, pet, again)
}

func TestDocument_Errors(t *testing.T) {
	t.Parallel()

	doc := loadPetstore(t)

	_, err := doc.Schema("Node")
	assert.ErrorIs(t, err, openapi.ErrCycle)

	_, err = doc.Schema("Missing")
	assert.ErrorIs(t, err, openapi.ErrUnknownSchema)

	_, err = openapi.Load(context.Background(), []byte("openapi: [broken"))
	assert.ErrorIs(t, err, openapi.ErrLoadDocument)

	_, err = openapi.LoadFile(context.Background(), "testdata/missing.yaml")
	assert.ErrorIs(t, err, openapi.ErrLoadDocument)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/petstore.yaml")
	require.NoError(t, err)

	doc, err := openapi.Load(context.Background(), data, openapi.WithSchemaOptions(schema.CollectAllErrors()))
	require.NoError(t, err)

	owner, err := doc.Schema("Owner")
	require.NoError(t, err)
	res := owner.Process(schema.Data{"email": "ann@example.com", "phone": "+47 123 456"})
	assert.True(t, res.IsValid(), res.Errors().Error())
}

func objectSchema(props openapi3.Schemas, required ...string) *openapi3.Schema {
	return &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: props,
		Required:   required,
	}
}

func ref(s *openapi3.Schema) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: s}
}

func TestFromSchema(t *testing.T) {
	t.Parallel()

	t.Run("inline object", func(t *testing.T) {
		minimum, maximum := 0.5, 1.5
		s, err := openapi.FromSchema("search", objectSchema(openapi3.Schemas{
			"q":     ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString, openapi3.TypeNull}}),
			"ratio": ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}, Min: &minimum, Max: &maximum}),
			"step":  ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeInteger}, MultipleOf: ptr(5.0)}),
			"where": ref(objectSchema(openapi3.Schemas{
				"city": ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}),
			}, "city")),
		}, "q"))
		require.NoError(t, err)

		where, _ := s.Field("where")
		assert.Equal(t, "search.where", where.Schema().Name())

		res := s.Process(schema.Data{"q": "go", "ratio": "2", "step": "7", "where": map[string]any{}})
		assert.Equal(t, map[string][]string{
			"ratio":      {"must be <= 1.5"},
			"step":       {"must be a multiple of 5"},
			"where.city": {"is required"},
		}, res.Errors().Flatten())
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := openapi.FromSchema("s", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}})
		assert.ErrorIs(t, err, openapi.ErrUnsupported)
	})

	t.Run("nil schema", func(t *testing.T) {
		_, err := openapi.FromSchema("s", nil)
		assert.ErrorIs(t, err, openapi.ErrInvalidSchema)
	})

	t.Run("unsupported pattern", func(t *testing.T) {
		_, err := openapi.FromSchema("s", objectSchema(openapi3.Schemas{
			"code": ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, Pattern: `^(?=a)`}),
		}))
		assert.ErrorIs(t, err, openapi.ErrUnsupported)
	})

	t.Run("array without items", func(t *testing.T) {
		_, err := openapi.FromSchema("s", objectSchema(openapi3.Schemas{
			"list": ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeArray}}),
		}))
		assert.ErrorIs(t, err, openapi.ErrInvalidSchema)
	})

	t.Run("invalid default", func(t *testing.T) {
		_, err := openapi.FromSchema("s", objectSchema(openapi3.Schemas{
			"n": ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeInteger}, Default: "many"}),
		}))
		assert.ErrorIs(t, err, openapi.ErrInvalidSchema)
	})

	t.Run("document without validation", func(t *testing.T) {
		doc := openapi.NewDocument(&openapi3.T{
			Components: &openapi3.Components{Schemas: openapi3.Schemas{
				"Ping": ref(objectSchema(openapi3.Schemas{
					"msg":  ref(&openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}),
				})),
			}},
		})
		ping, err := doc.Schema("Ping")
		require.NoError(t, err)
		assert.Equal(t, []string{"msg"}, ping.Names())
	})
}

func ptr[T any](v T) *T { return &v }
