package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/converter"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

const personYAML = `
schemas:
  - name: person
    fields:
      - name: name
        validators: [not_empty]
      - name: age
        type: int
        validators: [{min: 0}]
      - name: address
        type: object
        schema: address
  - name: address
    fields:
      - name: city
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCmd(t *testing.T) {
	t.Parallel()

	schemas := writeFile(t, "person.yaml", personYAML)

	t.Run("valid json file", func(t *testing.T) {
		data := writeFile(t, "ann.json", `{"name":"Ann","age":3,"address":{"city":"Oslo"}}`)
		out, err := execute(t, "", "validate", "-s", schemas, "--name", "person", "--data", data)
		require.NoError(t, err)

		header, body, ok := strings.Cut(out, "\n")
		require.True(t, ok)
		assert.Equal(t, "✓ person is valid", header)

		var value map[string]any
		require.NoError(t, json.Unmarshal([]byte(body), &value))
		assert.Equal(t, map[string]any{
			"name":    "Ann",
			"age":     float64(3),
			"address": map[string]any{"city": "Oslo"},
		}, value)
	})

	t.Run("invalid yaml from stdin", func(t *testing.T) {
		out, err := execute(t, "name: ''\nage: -1\naddress: {}\n", "validate", "-s", schemas, "-n", "person")
		require.ErrorIs(t, err, errInvalidInput)
		assert.Equal(t, strings.Join([]string{
			"✗ person is invalid",
			"  name: must not be empty",
			"  age: must be >= 0",
			"  address:",
			"    city: is required",
			"",
		}, "\n"), out)
	})

	t.Run("json output", func(t *testing.T) {
		out, err := execute(t, `{"name":"Ann","age":"x","address":{"city":"Oslo"}}`,
			"validate", "-s", schemas, "-n", "person", "-o", "json")
		require.ErrorIs(t, err, errInvalidInput)

		var body map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &body))
		assert.Equal(t, false, body["valid"])
		assert.Contains(t, body["errors"], "age")
	})

	t.Run("quiet", func(t *testing.T) {
		out, err := execute(t, "name: Ann\nage: 1\naddress: {city: Rome}\n", "validate", "-s", schemas, "-n", "person", "-q")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("name is required with several schemas", func(t *testing.T) {
		_, err := execute(t, "{}", "validate", "-s", schemas)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--name is required")
	})

	t.Run("no source", func(t *testing.T) {
		_, err := execute(t, "{}", "validate")
		assert.ErrorIs(t, err, errNoSource)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := execute(t, "{}", "--log-level", "loud", "validate", "-s", schemas)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--log-level")
	})
}

func TestValidateCmd_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ping.yml"), []byte("schemas:\n  - name: ping\n    fields: [{name: msg}]\n"), 0o600))

	out, err := execute(t, "msg: hi\n", "validate", "-s", dir, "-q")
	require.NoError(t, err, out)
}

func TestSchemasCmd(t *testing.T) {
	t.Parallel()

	schemas := writeFile(t, "person.yaml", personYAML)

	out, err := execute(t, "", "schemas", "-s", schemas)
	require.NoError(t, err)
	assert.Equal(t, "person\naddress\n", out)

	out, err = execute(t, "", "schemas", "-s", schemas, "address")
	require.NoError(t, err)
	var desc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &desc))
	assert.Equal(t, "address", desc["name"])
	assert.Len(t, desc["fields"], 1)
}

func TestReadInput(t *testing.T) {
	t.Parallel()

	data, err := readInput("-", strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = readInput("-", strings.NewReader("- a\n- b\n"))
	assert.Error(t, err, "a sequence is not an object")

	_, err = readInput(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type scriptedDriver struct {
	inputs   []string
	confirms []bool
	asked    []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg inputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	answer := d.inputs[0]
	d.inputs = d.inputs[1:]
	return answer, nil
}

func (d *scriptedDriver) Password(ctx context.Context, cfg inputConfig) (string, error) {
	return d.Input(ctx, cfg)
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg confirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	answer := d.confirms[0]
	d.confirms = d.confirms[1:]
	return answer, nil
}

func signupSchema(t *testing.T) *schema.Schema {
	t.Helper()
	address := schema.MustNew("address", schema.Fields(schema.String("city")))
	return schema.MustNew("signup", schema.Fields(
		schema.String("email", schema.Label("Email"), schema.Validate(validator.Email())),
		schema.Int("age"),
		schema.Bool("newsletter", schema.Default(false)),
		schema.String("password", schema.Format("password"), schema.Optional()),
		schema.List("tags", converter.String(), schema.Optional()),
		schema.Object("address", address, schema.Optional()),
	))
}

func TestRunPrompt(t *testing.T) {
	t.Parallel()

	d := &scriptedDriver{
		inputs:   []string{"nope", "30", "", "go, cli", "Oslo", "ann@example.com"},
		confirms: []bool{true, true},
	}
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runPrompt(cmd, d, signupSchema(t), 3))
	assert.Equal(t, []string{
		"Email *", "age *", "newsletter", "password", "tags (comma separated)", "Fill address?", "city *",
		"Email *",
	}, d.asked, "failed fields are asked again")

	lines := strings.SplitN(out.String(), "\n", 4)
	assert.Equal(t, "✗ signup is invalid", lines[0])
	assert.Equal(t, "  email: must be a valid email address", lines[1])
	assert.Equal(t, "✓ signup is valid", lines[2])

	var value map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &value))
	assert.Equal(t, "ann@example.com", value["email"])
	assert.Equal(t, float64(30), value["age"])
	assert.Equal(t, true, value["newsletter"])
	assert.Nil(t, value["password"])
	assert.Equal(t, []any{"go", "cli"}, value["tags"])
	assert.Equal(t, map[string]any{"city": "Oslo"}, value["address"])
}

func TestRunPrompt_GivesUp(t *testing.T) {
	t.Parallel()

	s := schema.MustNew("code", schema.Fields(schema.Int("code")))
	d := &scriptedDriver{inputs: []string{"x", "y"}}
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	err := runPrompt(cmd, d, s, 1)
	assert.ErrorIs(t, err, errInvalidInput)
	assert.Len(t, d.asked, 2)
}
