package schema

import (
	"fmt"
	"reflect"

	"github.com/dmitrymomot/formkit/pkg/converter"
)

// Nested returns a converter that processes a mapping with s. On success it
// returns the inner *Values; on failure the ConversionError's Cause is the
// inner *Errors, which Object fields keep as a structured error.
func Nested(s *Schema) converter.Converter {
	if s == nil {
		panic(ErrNilSchema)
	}
	return nestedConverter{schema: s}
}

// ListOf returns a converter that processes every item of a sequence with s.
// The typed value is []any of *Values.
func ListOf(s *Schema) converter.Converter {
	return converter.Slice(Nested(s))
}

type nestedConverter struct {
	schema *Schema
}

func (c nestedConverter) Convert(raw any) (any, error) {
	if raw == nil {
		return nil, &converter.ConversionError{
			Message:           "no value provided",
			TranslationKey:    "conversion.nil",
			TranslationValues: map[string]any{"type": "object"},
			Cause:             converter.ErrNilValue,
		}
	}

	data, ok := toData(raw)
	if !ok {
		return nil, &converter.ConversionError{
			Message:           "not a valid object",
			TranslationKey:    "conversion.object",
			TranslationValues: map[string]any{"got": fmt.Sprintf("%T", raw)},
			Cause:             converter.ErrUnsupportedType,
		}
	}

	res := c.schema.Process(data)
	if !res.IsValid() {
		return nil, &converter.ConversionError{
			Message:           "contains invalid fields",
			TranslationKey:    "conversion.object_fields",
			TranslationValues: map[string]any{"schema": c.schema.name, "count": res.Errors().Len()},
			Cause:             res.Errors(),
		}
	}
	return res.Value(), nil
}

// toData accepts any mapping keyed by strings, including typed values
// produced by an earlier run.
func toData(raw any) (Data, bool) {
	switch v := raw.(type) {
	case Data:
		return v, true
	case map[string]any:
		return Data(v), true
	case *Values:
		return Data(v.Map()), true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	data := make(Data, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		data[iter.Key().String()] = iter.Value().Interface()
	}
	return data, true
}
