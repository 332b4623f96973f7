// Package logger builds *slog.Logger instances for formkit binaries and
// libraries from a small set of functional options, and provides attribute
// helpers that keep key names consistent across packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithDevelopment("formkit"),
//	    logger.WithOutput(os.Stderr),
//	)
//
//	s := schema.MustNew("signup", schema.WithLogger(log), ...)
//
// Attribute helpers such as Schema, Field and Outcome are what the schema
// package uses for its per-field debug records:
//
//	log.Debug("field processed", logger.Schema("signup"), logger.Field("age"), logger.Outcome("valid"))
//
// Error and Errors return an empty slog.Attr for nil errors, so callers can
// pass them unconditionally.
//
// Levels and formats can be parsed from configuration strings with
// ParseLevel and ParseFormat.
package logger
