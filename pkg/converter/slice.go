package converter

import (
	"fmt"
	"reflect"
)

// Slice returns a converter that applies elem to every item of an ordered
// sequence and produces a []any. A scalar raw value is treated as a
// one-element sequence, which is how single-valued form fields arrive.
//
// Every item is attempted; failures are collected into ItemErrors and
// attached as the Cause of the returned ConversionError.
func Slice(elem Converter) Converter {
	return sliceConverter{elem: elem}
}

type sliceConverter struct {
	elem Converter
}

func (c sliceConverter) Convert(raw any) (any, error) {
	items, err := toItems(raw)
	if err != nil {
		return nil, err
	}

	out := make([]any, len(items))
	var failures ItemErrors
	for i, item := range items {
		v, err := c.elem.Convert(item)
		if err != nil {
			failures = append(failures, ItemError{Index: i, Err: err})
			continue
		}
		out[i] = v
	}

	if len(failures) > 0 {
		return nil, newError(
			"conversion.items",
			"contains invalid items",
			map[string]any{"count": len(failures)},
			failures,
		)
	}
	return out, nil
}

func toItems(raw any) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nilError("list")
	case []any:
		items := make([]any, len(v))
		copy(items, v)
		return items, nil
	case string, []byte:
		return []any{v}, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range rv.Len() {
			items[i] = rv.Index(i).Interface()
		}
		return items, nil
	case reflect.Map, reflect.Struct:
		return nil, newError(
			"conversion.list",
			"not a valid list",
			map[string]any{"got": fmt.Sprintf("%T", raw)},
			ErrUnsupportedType,
		)
	default:
		return []any{raw}, nil
	}
}
