package validator

import (
	"fmt"
	"strings"
)

// OneOf requires the value to equal one of allowed.
func OneOf[T comparable](allowed ...T) Validator {
	set := make(map[T]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	list := joinValues(allowed)

	return Func(func(value any) (any, error) {
		v, ok := value.(T)
		if !ok {
			return nil, typeError(fmt.Sprintf("%T", *new(T)), value)
		}
		if _, found := set[v]; !found {
			return nil, newError(
				"validation.one_of",
				"must be one of: "+list,
				map[string]any{"allowed_values": allowed},
			)
		}
		return value, nil
	})
}

// NotOneOf rejects values equal to any of forbidden.
func NotOneOf[T comparable](forbidden ...T) Validator {
	set := make(map[T]struct{}, len(forbidden))
	for _, f := range forbidden {
		set[f] = struct{}{}
	}
	list := joinValues(forbidden)

	return Func(func(value any) (any, error) {
		v, ok := value.(T)
		if !ok {
			return nil, typeError(fmt.Sprintf("%T", *new(T)), value)
		}
		if _, found := set[v]; found {
			return nil, newError(
				"validation.not_one_of",
				"must not be one of: "+list,
				map[string]any{"forbidden_values": forbidden},
			)
		}
		return value, nil
	})
}

func joinValues[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
