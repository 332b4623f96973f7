package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/openapi"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/schemafile"
)

var errNoSource = errors.New("no schema source: use --schema or --openapi")

var (
	_ httpserver.Catalog = (*schemafile.Registry)(nil)
	_ httpserver.Catalog = (*openapi.Document)(nil)
)

// sources are the flags naming where schemas come from.
type sources struct {
	files   []string
	openapi string
}

func (s *sources) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&s.files, "schema", "s", nil, "schema declaration file or directory (repeatable)")
	cmd.Flags().StringVar(&s.openapi, "openapi", "", "OpenAPI document whose component schemas are served")
	cmd.MarkFlagsMutuallyExclusive("schema", "openapi")
}

func (s *sources) load(ctx context.Context, a *app, opts ...schema.Option) (httpserver.Catalog, error) {
	schemaOpts := a.schemaOptions(opts...)

	if s.openapi != "" {
		doc, err := openapi.LoadFile(ctx, s.openapi, openapi.WithSchemaOptions(schemaOpts...))
		if err != nil {
			return nil, err
		}
		return doc, nil
	}
	if len(s.files) == 0 {
		return nil, errNoSource
	}

	reg := schemafile.NewRegistry(
		schemafile.WithSchemaOptions(schemaOpts...),
		schemafile.WithTimeLayout(a.cfg.TimeLayout),
	)
	for _, path := range s.files {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = reg.LoadFS(os.DirFS(path))
		} else {
			err = reg.LoadFile(path)
		}
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// pick returns the named schema, or the only one when name is empty.
func pick(catalog httpserver.Catalog, name string) (*schema.Schema, error) {
	if name == "" {
		names := catalog.Names()
		if len(names) != 1 {
			return nil, fmt.Errorf("--name is required, available schemas: %v", names)
		}
		name = names[0]
	}
	return catalog.Schema(name)
}
