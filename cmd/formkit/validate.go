package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		src    sources
		name   string
		data   string
		quiet  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Process an input document with a schema",
		Long: `Reads a JSON or YAML object from --data (or stdin) and processes it with
the selected schema. The typed value is printed as JSON when the input is
valid; otherwise the error tree is printed and the exit code is 1.`,
		Example: `  formkit validate -s schemas/ --name person --data person.json
  cat order.yaml | formkit validate --openapi api.yaml --name NewOrder`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := src.load(cmd.Context(), a)
			if err != nil {
				return err
			}
			s, err := pick(catalog, name)
			if err != nil {
				return err
			}
			raw, err := readInput(data, cmd.InOrStdin())
			if err != nil {
				return err
			}

			res := s.Process(raw)
			out := cmd.OutOrStdout()
			if !res.IsValid() {
				if format == "json" {
					_ = writeJSON(out, map[string]any{"valid": false, "errors": res.Errors()})
				} else {
					newPrinter(out).errors(s.Name(), res.Errors())
				}
				return errInvalidInput
			}
			if quiet {
				return nil
			}
			if format == "json" {
				return writeJSON(out, map[string]any{"valid": true, "value": res.Value()})
			}
			newPrinter(out).success(s.Name())
			return writeJSON(out, res.Value())
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&name, "name", "n", "", "schema to use (optional when only one is loaded)")
	cmd.Flags().StringVarP(&data, "data", "d", "-", `input file (.json, .yaml, .yml) or "-" for stdin`)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing for valid input")
	cmd.Flags().StringVarP(&format, "output", "o", "text", "output format: text or json")
	return cmd
}

// readInput decodes a JSON or YAML object. JSON files keep numbers as
// json.Number; everything else is decoded as YAML, which accepts JSON too.
func readInput(path string, stdin io.Reader) (schema.Data, error) {
	var (
		body []byte
		err  error
	)
	if path == "-" {
		body, err = io.ReadAll(stdin)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return binder.DecodeJSON(body)
	}

	var data map[string]any
	if err := yaml.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if data == nil {
		return schema.Data{}, nil
	}
	return schema.Data(data), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
