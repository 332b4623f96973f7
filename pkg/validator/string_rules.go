package validator

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

// sized is implemented by ordered containers such as schema values.
type sized interface {
	Len() int
}

// sizeOf returns the length of a sized value: runes for strings, elements
// for slices, arrays and maps.
func sizeOf(value any) (n int, isString bool, ok bool) {
	switch v := value.(type) {
	case string:
		return utf8.RuneCountInString(v), true, true
	case sized:
		return v.Len(), false, true
	case nil:
		return 0, false, false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), false, true
	default:
		return 0, false, false
	}
}

// MinLength requires at least min characters (strings) or items (slices,
// arrays, maps).
func MinLength(min int) Validator {
	return Length(min, -1)
}

// MaxLength requires at most max characters or items.
func MaxLength(max int) Validator {
	return Length(-1, max)
}

// Length requires a size within [min, max], both inclusive. A negative bound
// is not checked.
func Length(min, max int) Validator {
	return Func(func(value any) (any, error) {
		n, isString, ok := sizeOf(value)
		if !ok {
			return nil, typeError("string, slice or map", value)
		}
		if min >= 0 && n < min {
			return nil, minLengthError(min, isString)
		}
		if max >= 0 && n > max {
			return nil, maxLengthError(max, isString)
		}
		return value, nil
	})
}

func minLengthError(min int, isString bool) *ValidationError {
	if isString {
		return newError("validation.min_length", fmt.Sprintf("must be at least %d characters long", min), map[string]any{"min": min})
	}
	return newError("validation.min_items", fmt.Sprintf("must have at least %d items", min), map[string]any{"min": min})
}

func maxLengthError(max int, isString bool) *ValidationError {
	if isString {
		return newError("validation.max_length", fmt.Sprintf("must be at most %d characters long", max), map[string]any{"max": max})
	}
	return newError("validation.max_items", fmt.Sprintf("must have at most %d items", max), map[string]any{"max": max})
}

// NotEmpty rejects the empty representation of the value's type: blank
// strings (after trimming), empty containers, nil and zero scalars.
func NotEmpty() Validator {
	return Check(func(value any) bool {
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s) != ""
		}
		if n, _, ok := sizeOf(value); ok {
			return n > 0
		}
		if value == nil {
			return false
		}
		return !reflect.ValueOf(value).IsZero()
	}, newError("validation.not_empty", "must not be empty", nil))
}
