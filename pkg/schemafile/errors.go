package schemafile

import "errors"

var (
	ErrInvalidDocument = errors.New("schemafile: invalid document")
	ErrDuplicateSchema = errors.New("schemafile: duplicate schema")
	ErrUnknownSchema   = errors.New("schemafile: unknown schema")
	ErrCycle           = errors.New("schemafile: schema reference cycle")
	ErrUnknownType     = errors.New("schemafile: unknown field type")
	ErrUnknownRule     = errors.New("schemafile: unknown validator rule")
	ErrInvalidRule     = errors.New("schemafile: invalid validator arguments")
	ErrInvalidDefault  = errors.New("schemafile: invalid default value")
)
