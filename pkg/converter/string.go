package converter

import (
	"fmt"
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

// StringOption configures the String converter.
type StringOption func(*stringConverter)

// Trim strips leading and trailing whitespace from converted strings.
func Trim() StringOption {
	return Sanitize(sanitizer.Trim)
}

// NormalizeUnicode converts strings to Unicode normalisation form C.
func NormalizeUnicode() StringOption {
	return Sanitize(sanitizer.NormalizeUnicode)
}

// RemoveControlChars drops control characters other than newline, carriage
// return and tab.
func RemoveControlChars() StringOption {
	return Sanitize(sanitizer.RemoveControlChars)
}

// Truncate cuts converted strings to at most n runes.
func Truncate(n int) StringOption {
	return Sanitize(func(s string) string { return sanitizer.MaxLength(s, n) })
}

// Sanitize appends arbitrary string transforms, applied in order after
// conversion.
func Sanitize(transforms ...func(string) string) StringOption {
	return func(c *stringConverter) {
		c.transforms = append(c.transforms, transforms...)
	}
}

type stringConverter struct {
	transforms []func(string) string
	clean      func(string) string
}

// String returns a passthrough string converter. Scalars (numbers, booleans,
// byte slices, fmt.Stringer values) are rendered to their string form; maps,
// slices and other composite values are rejected.
func String(opts ...StringOption) Converter {
	c := &stringConverter{}
	for _, opt := range opts {
		opt(c)
	}
	c.clean = sanitizer.Compose(c.transforms...)
	return c
}

func (c *stringConverter) Convert(raw any) (any, error) {
	s, err := toString(raw)
	if err != nil {
		return nil, err
	}
	return c.clean(s), nil
}

func toString(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nilError("string")
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", newError(
			"conversion.string",
			"not a valid string",
			map[string]any{"got": fmt.Sprintf("%T", raw)},
			ErrUnsupportedType,
		)
	}
}
