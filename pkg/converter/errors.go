package converter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNilValue is wrapped by conversion errors caused by a nil raw value.
	ErrNilValue = errors.New("nil value")

	// ErrUnsupportedType is wrapped when the raw value's Go type cannot be
	// handled by the converter at all.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ConversionError is returned when a raw value cannot be coerced into the
// converter's target type.
type ConversionError struct {
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
	// Cause holds the underlying error or, for composite converters, the
	// structured detail (ItemErrors, nested schema errors).
	Cause error
}

func (e *ConversionError) Error() string {
	if e.Message == "" {
		return "conversion failed"
	}
	return e.Message
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

func newError(key, message string, values map[string]any, cause error) *ConversionError {
	return &ConversionError{
		Message:           message,
		TranslationKey:    key,
		TranslationValues: values,
		Cause:             cause,
	}
}

func nilError(target string) *ConversionError {
	return newError("conversion.nil", "no value provided", map[string]any{"type": target}, ErrNilValue)
}

func unsupportedError(target string, raw any) *ConversionError {
	return newError(
		"conversion.unsupported",
		fmt.Sprintf("cannot convert %T to %s", raw, target),
		map[string]any{"type": target, "got": fmt.Sprintf("%T", raw)},
		ErrUnsupportedType,
	)
}

// ItemError is the failure of a single element of a sequence.
type ItemError struct {
	Index int
	Err   error
}

// ItemErrors collects per-index failures in ascending index order.
type ItemErrors []ItemError

func (ie ItemErrors) Error() string {
	if len(ie) == 0 {
		return "invalid items"
	}
	parts := make([]string, 0, len(ie))
	for _, item := range ie {
		parts = append(parts, fmt.Sprintf("[%d]: %v", item.Index, item.Err))
	}
	return "invalid items: " + strings.Join(parts, "; ")
}

// IsConversionError reports whether err is or wraps a *ConversionError.
func IsConversionError(err error) bool {
	var ce *ConversionError
	return errors.As(err, &ce)
}
