package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

// errInvalidInput is returned after the errors of an invalid input were
// printed, so main only sets the exit code.
var errInvalidInput = errors.New("input is invalid")

type app struct {
	envFile   string
	logLevel  string
	logFormat string

	cfg schema.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: schema.DefaultConfig()}

	cmd := &cobra.Command{
		Use:           "formkit",
		Short:         "Convert and validate input against declared schemas",
		Long:          `formkit loads schemas from YAML/JSON declarations or OpenAPI components and processes input with them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", "", "read settings from this .env file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (default from FORMKIT_LOG_LEVEL)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json (default from FORMKIT_LOG_FORMAT)")

	cmd.AddCommand(
		newValidateCmd(a),
		newPromptCmd(a),
		newServeCmd(a),
		newSchemasCmd(a),
	)
	return cmd
}

func (a *app) setup(stderr io.Writer) error {
	var err error
	if a.envFile != "" {
		err = config.LoadFrom(&a.cfg, a.envFile)
	} else {
		err = config.Load(&a.cfg)
	}
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		a.cfg.LogFormat = a.logFormat
	}

	level, err := logger.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	format, err := logger.ParseFormat(a.cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("--log-format: %w", err)
	}
	a.log = logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(stderr),
		logger.WithAttr(logger.Component("formkit")),
	)
	return nil
}

// schemaOptions are applied to every schema the commands build.
func (a *app) schemaOptions(extra ...schema.Option) []schema.Option {
	return append([]schema.Option{
		schema.WithConfig(a.cfg),
		schema.WithLogger(a.log),
	}, extra...)
}
