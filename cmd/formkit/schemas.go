package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/httpserver"
)

func newSchemasCmd(a *app) *cobra.Command {
	var src sources

	cmd := &cobra.Command{
		Use:   "schemas [name]",
		Short: "List the loaded schemas or describe one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := src.load(cmd.Context(), a)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, name := range catalog.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			s, err := catalog.Schema(args[0])
			if err != nil {
				return err
			}
			return writeJSON(out, httpserver.Describe(s))
		},
	}
	src.register(cmd)
	return cmd
}
