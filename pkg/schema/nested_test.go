package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/converter"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

func orderSchemas(t *testing.T) (*schema.Schema, *schema.Schema) {
	t.Helper()

	address := schema.MustNew("address", schema.Fields(
		schema.String("city", schema.Validate(validator.NotEmpty())),
		schema.String("zip", schema.Validate(validator.Pattern(`^\d{5}$`))),
	))

	item := schema.MustNew("item", schema.Fields(
		schema.String("name"),
		schema.Int("qty", schema.Validate(validator.Min(1))),
	))

	order := schema.MustNew("order", schema.Fields(
		schema.String("customer"),
		schema.Object("address", address),
		schema.Objects("items", item),
		schema.List("tags", converter.String(), schema.Optional()),
	))
	return order, address
}

func TestNested_Success(t *testing.T) {
	t.Parallel()

	order, _ := orderSchemas(t)
	res := order.Process(schema.Data{
		"customer": "Ann",
		"address":  map[string]any{"zip": "12345", "city": "Berlin"},
		"items": []any{
			map[string]any{"name": "pen", "qty": "2"},
			map[string]string{"name": "ink", "qty": "1"},
		},
		"tags": []string{"gift"},
	})
	require.True(t, res.IsValid(), res.Errors().Error())

	addr, ok := res.Get("address")
	require.True(t, ok)
	values, ok := addr.(*schema.Values)
	require.True(t, ok)
	assert.Equal(t, []string{"city", "zip"}, values.Keys())

	want := map[string]any{
		"customer": "Ann",
		"address":  map[string]any{"city": "Berlin", "zip": "12345"},
		"items": []any{
			map[string]any{"name": "pen", "qty": 2},
			map[string]any{"name": "ink", "qty": 1},
		},
		"tags": []any{"gift"},
	}
	if diff := cmp.Diff(want, res.Value().Map()); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(res.Value())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"customer": "Ann",
		"address": {"city": "Berlin", "zip": "12345"},
		"items": [{"name": "pen", "qty": 2}, {"name": "ink", "qty": 1}],
		"tags": ["gift"]
	}`, string(raw))
	assert.Contains(t, string(raw), `"address":{"city":"Berlin","zip":"12345"}`)
}

func TestNested_ErrorPropagation(t *testing.T) {
	t.Parallel()

	order, _ := orderSchemas(t)
	res := order.Process(schema.Data{
		"customer": "Ann",
		"address":  map[string]any{"city": "", "zip": "abc"},
		"items": []any{
			map[string]any{"name": "pen", "qty": "2"},
			map[string]any{"qty": "0"},
			"not an object",
		},
		"tags": []any{"ok", nil},
	})
	require.False(t, res.IsValid())
	assert.Equal(t, []string{"address", "items", "tags"}, res.Errors().Keys())

	t.Run("nested schema errors are addressable by inner name", func(t *testing.T) {
		fe, ok := res.Errors().Get("address")
		require.True(t, ok)
		require.NotNil(t, fe.Fields)
		assert.Empty(t, fe.Messages)

		city, ok := fe.Fields.Get("city")
		require.True(t, ok)
		assert.Equal(t, []string{"must not be empty"}, city.Messages)
		assert.True(t, fe.Fields.Has("zip"))
	})

	t.Run("list errors are keyed by index", func(t *testing.T) {
		fe, _ := res.Errors().Get("items")
		require.Len(t, fe.Items, 2)
		assert.Equal(t, 1, fe.Items[0].Index)
		assert.Equal(t, []string{"name", "qty"}, fe.Items[0].Err.Fields.Keys())
		assert.Equal(t, 2, fe.Items[1].Index)
		assert.Equal(t, []string{"not a valid object"}, fe.Items[1].Err.Messages)
	})

	t.Run("scalar list items", func(t *testing.T) {
		fe, _ := res.Errors().Get("tags")
		require.Len(t, fe.Items, 1)
		assert.Equal(t, 1, fe.Items[0].Index)
		assert.Equal(t, []string{"no value provided"}, fe.Items[0].Err.Messages)
	})

	t.Run("flattened messages", func(t *testing.T) {
		assert.Equal(t, []string{"city: must not be empty", `zip: must match pattern ^\d{5}$`}, res.ErrorsFor("address"))

		want := map[string][]string{
			"address.city": {"must not be empty"},
			"address.zip":  {`must match pattern ^\d{5}$`},
			"items.1.name": {"is required"},
			"items.1.qty":  {"must be >= 1"},
			"items.2":      {"not a valid object"},
			"tags.1":       {"no value provided"},
		}
		if diff := cmp.Diff(want, res.Errors().Flatten()); diff != "" {
			t.Errorf("flatten mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []string{
			"address.city", "address.zip", "items.1.name", "items.1.qty", "items.2", "tags.1",
		}, res.Errors().Paths())
	})

	t.Run("json keeps the tree", func(t *testing.T) {
		raw, err := json.Marshal(res.Errors())
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"address": {"city": ["must not be empty"], "zip": ["must match pattern ^\\d{5}$"]},
			"items": {"1": {"name": ["is required"], "qty": ["must be >= 1"]}, "2": ["not a valid object"]},
			"tags": {"1": ["no value provided"]}
		}`, string(raw))
	})
}

func TestNested_InvalidShapes(t *testing.T) {
	t.Parallel()

	order, _ := orderSchemas(t)
	res := order.Process(schema.Data{
		"customer": "Ann",
		"address":  "Main street",
		"items":    map[string]any{"name": "pen"},
	})

	assert.Equal(t, []string{"not a valid object"}, res.ErrorsFor("address"))
	assert.Equal(t, []string{"not a valid list"}, res.ErrorsFor("items"))
}

func TestNested_StandaloneConverter(t *testing.T) {
	t.Parallel()

	_, address := orderSchemas(t)
	conv := schema.Nested(address)

	v, err := conv.Convert(map[string]any{"city": "Oslo", "zip": "01234"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"city": "Oslo", "zip": "01234"}, v.(*schema.Values).Map())

	_, err = conv.Convert(map[string]any{"zip": "1"})
	require.Error(t, err)
	assert.True(t, converter.IsConversionError(err))
	assert.EqualError(t, err, "contains invalid fields")

	var inner *schema.Errors
	require.ErrorAs(t, err, &inner)
	assert.Equal(t, []string{"city", "zip"}, inner.Keys())

	_, err = conv.Convert(nil)
	assert.ErrorIs(t, err, converter.ErrNilValue)

	assert.Panics(t, func() { schema.Nested(nil) })

	list := schema.ListOf(address)
	items, err := list.Convert([]any{map[string]any{"city": "A", "zip": "11111"}})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestNested_DeepTree(t *testing.T) {
	t.Parallel()

	leaf := schema.MustNew("leaf", schema.Fields(schema.Int("n")))
	mid := schema.MustNew("mid", schema.Fields(schema.Objects("leaves", leaf)))
	root := schema.MustNew("root", schema.Fields(schema.Object("mid", mid)))

	res := root.Process(schema.Data{
		"mid": map[string]any{"leaves": []any{map[string]any{"n": "1"}, map[string]any{"n": "x"}}},
	})
	assert.Equal(t, map[string][]string{"mid.leaves.1.n": {"not a valid integer"}}, res.Errors().Flatten())
	assert.Equal(t, []string{"leaves.1.n: not a valid integer"}, res.ErrorsFor("mid"))
	assert.Equal(t, "mid.leaves.1.n: not a valid integer", res.Errors().Error())
}
