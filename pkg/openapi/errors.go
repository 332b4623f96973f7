package openapi

import "errors"

var (
	ErrLoadDocument  = errors.New("openapi: failed to load document")
	ErrUnknownSchema = errors.New("openapi: unknown component schema")
	ErrUnsupported   = errors.New("openapi: unsupported schema")
	ErrCycle         = errors.New("openapi: recursive schema")
	ErrInvalidSchema = errors.New("openapi: invalid schema")
)
