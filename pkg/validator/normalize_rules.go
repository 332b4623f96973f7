package validator

import "github.com/dmitrymomot/formkit/pkg/sanitizer"

// Normalize builds a normalising validator over string values. It never
// fails for strings.
func Normalize(transforms ...func(string) string) Validator {
	clean := sanitizer.Compose(transforms...)
	return Func(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, typeError("string", value)
		}
		return clean(s), nil
	})
}

func Trim() Validator {
	return Normalize(sanitizer.Trim)
}

func Lower() Validator {
	return Normalize(sanitizer.ToLower)
}

func Upper() Validator {
	return Normalize(sanitizer.ToUpper)
}

func Title() Validator {
	return Normalize(sanitizer.ToTitle)
}

// CollapseWhitespace replaces whitespace runs with single spaces and trims.
func CollapseWhitespace() Validator {
	return Normalize(sanitizer.RemoveExtraWhitespace)
}

// StripHTML removes HTML markup, keeping the text content.
func StripHTML() Validator {
	return Normalize(sanitizer.StripHTML)
}

// RemoveControlChars drops control characters other than newline, carriage
// return and tab.
func RemoveControlChars() Validator {
	return Normalize(sanitizer.RemoveControlChars)
}

// Truncate cuts strings to at most n runes.
func Truncate(n int) Validator {
	return Normalize(func(s string) string { return sanitizer.MaxLength(s, n) })
}
