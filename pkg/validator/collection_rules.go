package validator

import (
	"fmt"
	"reflect"
)

// Each applies v to every element of a slice value. The result is a new
// slice of the same type holding the normalised elements; the first failing
// element fails the whole value.
func Each(v Validator) Validator {
	return Func(func(value any) (any, error) {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, typeError("slice", value)
		}

		out := reflect.MakeSlice(reflect.SliceOf(rv.Type().Elem()), rv.Len(), rv.Len())
		for i := range rv.Len() {
			normalized, err := v.Validate(rv.Index(i).Interface())
			if err != nil {
				return nil, newError(
					"validation.item",
					fmt.Sprintf("item %d: %s", i, err.Error()),
					map[string]any{"index": i, "error": err.Error()},
				)
			}
			nv := reflect.ValueOf(normalized)
			if !nv.IsValid() {
				nv = reflect.Zero(out.Type().Elem())
			}
			if !nv.Type().AssignableTo(out.Type().Elem()) {
				return nil, typeError(out.Type().Elem().String(), normalized)
			}
			out.Index(i).Set(nv)
		}
		return out.Interface(), nil
	})
}

// Unique requires all elements of a slice value to be distinct.
func Unique() Validator {
	return Func(func(value any) (any, error) {
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, typeError("slice", value)
		}
		for i := range rv.Len() {
			for j := range i {
				if reflect.DeepEqual(rv.Index(i).Interface(), rv.Index(j).Interface()) {
					return nil, newError(
						"validation.unique",
						"must not contain duplicates",
						map[string]any{"index": i},
					)
				}
			}
		}
		return value, nil
	})
}
