package validator

import (
	"fmt"
	"time"
)

// NotBefore requires a time.Time value equal to or later than min.
func NotBefore(min time.Time) Validator {
	return Func(func(value any) (any, error) {
		t, ok := value.(time.Time)
		if !ok {
			return nil, typeError("time.Time", value)
		}
		if t.Before(min) {
			return nil, newError(
				"validation.date_min",
				fmt.Sprintf("must not be before %s", min.Format(time.RFC3339)),
				map[string]any{"min": min},
			)
		}
		return value, nil
	})
}

// NotAfter requires a time.Time value equal to or earlier than max.
func NotAfter(max time.Time) Validator {
	return Func(func(value any) (any, error) {
		t, ok := value.(time.Time)
		if !ok {
			return nil, typeError("time.Time", value)
		}
		if t.After(max) {
			return nil, newError(
				"validation.date_max",
				fmt.Sprintf("must not be after %s", max.Format(time.RFC3339)),
				map[string]any{"max": max},
			)
		}
		return value, nil
	})
}
