package validator

import "fmt"

// Min requires value >= min. The value must have exactly type T.
func Min[T Numeric](min T) Validator {
	return Func(func(value any) (any, error) {
		n, ok := value.(T)
		if !ok {
			return nil, typeError(fmt.Sprintf("%T", min), value)
		}
		if n < min {
			return nil, minError(min)
		}
		return value, nil
	})
}

// Max requires value <= max. The value must have exactly type T.
func Max[T Numeric](max T) Validator {
	return Func(func(value any) (any, error) {
		n, ok := value.(T)
		if !ok {
			return nil, typeError(fmt.Sprintf("%T", max), value)
		}
		if n > max {
			return nil, maxError(max)
		}
		return value, nil
	})
}

// Range requires min <= value <= max.
func Range[T Numeric](min, max T) Validator {
	return Func(func(value any) (any, error) {
		n, ok := value.(T)
		if !ok {
			return nil, typeError(fmt.Sprintf("%T", min), value)
		}
		if n < min {
			return nil, minError(min)
		}
		if n > max {
			return nil, maxError(max)
		}
		return value, nil
	})
}

func minError(min any) *ValidationError {
	return newError("validation.min", fmt.Sprintf("must be >= %v", min), map[string]any{"min": min})
}

func maxError(max any) *ValidationError {
	return newError("validation.max", fmt.Sprintf("must be <= %v", max), map[string]any{"max": max})
}
