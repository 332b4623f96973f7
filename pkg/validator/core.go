package validator

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Validator checks a typed value and returns it, possibly normalised.
type Validator interface {
	Validate(value any) (any, error)
}

// Func adapts an ordinary function to the Validator interface.
type Func func(value any) (any, error)

// Validate calls f(value).
func (f Func) Validate(value any) (any, error) {
	return f(value)
}

// Check builds a non-normalising validator from a predicate. When ok
// returns false the validator fails with err.
func Check(ok func(value any) bool, err *ValidationError) Validator {
	return Func(func(value any) (any, error) {
		if !ok(value) {
			return nil, err
		}
		return value, nil
	})
}

// Chain runs validators in order, feeding each one's output into the next.
// It stops at the first failure and returns only that error; normalisations
// made by earlier validators are discarded.
func Chain(validators ...Validator) Validator {
	return Func(func(value any) (any, error) {
		current := value
		for _, v := range validators {
			next, err := v.Validate(current)
			if err != nil {
				return nil, err
			}
			current = next
		}
		return current, nil
	})
}

// All runs every validator and reports every violation. Output of passing
// validators is fed forward; a failing validator leaves the value as it was.
// When at least one validator fails the result is ValidationErrors.
func All(validators ...Validator) Validator {
	return Func(func(value any) (any, error) {
		current := value
		var errs ValidationErrors
		for _, v := range validators {
			next, err := v.Validate(current)
			if err != nil {
				errs = append(errs, asViolations(err)...)
				continue
			}
			current = next
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return current, nil
	})
}

func asViolations(err error) ValidationErrors {
	if violations := ExtractValidationErrors(err); violations != nil {
		return violations
	}
	return ValidationErrors{newError("validation.failed", err.Error(), nil)}
}
