package schema

import "errors"

var (
	ErrEmptySchemaName = errors.New("schema name must not be empty")
	ErrEmptyFieldName  = errors.New("field name must not be empty")
	ErrNilConverter    = errors.New("field has no converter")
	ErrNilSchema       = errors.New("composite field has no schema")
	ErrDuplicateField  = errors.New("duplicate field")
	ErrUnknownField    = errors.New("unknown field")
	ErrReservedName    = errors.New("field name is reserved")

	ErrAlreadyProcessed = errors.New("result already processed")
	ErrNotProcessed     = errors.New("result not processed")
	ErrInvalidInput     = errors.New("input is invalid")
)
