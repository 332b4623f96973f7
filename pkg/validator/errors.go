package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTypeMismatch is wrapped by validation errors caused by a value of an
// unexpected Go type, which means the field's converter and validators were
// declared inconsistently.
var ErrTypeMismatch = errors.New("unexpected value type")

// ValidationError represents a single rule violation with translation support.
type ValidationError struct {
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
	cause             error
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return "validation failed"
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// ValidationErrors represents several rule violations of one value.
type ValidationErrors []*ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return strings.Join(ve.Messages(), "; ")
}

// Messages returns the messages of all violations in order.
func (ve ValidationErrors) Messages() []string {
	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return messages
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

func newError(key, message string, values map[string]any) *ValidationError {
	return &ValidationError{
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
	}
}

func typeError(expected string, value any) *ValidationError {
	return &ValidationError{
		Message:        fmt.Sprintf("expected %s, got %T", expected, value),
		TranslationKey: "validation.type",
		TranslationValues: map[string]any{
			"expected": expected,
			"got":      fmt.Sprintf("%T", value),
		},
		cause: ErrTypeMismatch,
	}
}

// ExtractValidationErrors flattens err into a list of violations. It returns
// nil when err is nil or not a validation error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var many ValidationErrors
	if errors.As(err, &many) {
		return many
	}

	var single *ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{single}
	}

	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
