// Package openapi builds schemas from OpenAPI 3 schema objects, so request
// bodies described in an API document can be processed without declaring
// them twice.
//
// Properties become fields in alphabetical order. Types and formats map to
// converters:
//
//	string                    schema.String
//	string, format date       schema.Time with schema.DefaultTimeLayout
//	string, format date-time  schema.Time with time.RFC3339
//	string, format uuid       schema.UUID
//	integer                   schema.Int
//	number                    schema.Float
//	boolean                   schema.Bool
//	object                    schema.Object with a nested schema
//	array                     schema.List, or schema.Objects for object items
//
// Keywords become validators: minLength, maxLength, pattern, minimum,
// maximum (exclusive forms too), enum, minItems, maxItems, uniqueItems and
// the email and uri formats. Properties not listed in required are optional,
// readOnly properties are skipped, title sets the label and default sets the
// typed default. additionalProperties: false makes the schema strict. allOf
// members are merged into one object; anyOf and oneOf of scalar types try
// each type in order.
package openapi
