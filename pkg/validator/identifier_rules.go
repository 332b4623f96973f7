package validator

import (
	"regexp"
	"strconv"
	"strings"
)

var isbnRegex = regexp.MustCompile(`^[0-9]+X?$`)

// ISBN requires a valid ISBN-10 or ISBN-13 number. Hyphens and spaces are
// removed and the compact form is returned.
func ISBN() Validator {
	return Func(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, typeError("string", value)
		}

		compact := strings.NewReplacer("-", "", " ", "").Replace(s)
		if !isbnRegex.MatchString(compact) {
			return nil, newError("validation.isbn_format", "must contain only digits and an optional trailing X", nil)
		}

		var expected string
		switch len(compact) {
		case 10:
			expected = isbn10Checksum(compact)
		case 13:
			expected = isbn13Checksum(compact)
		default:
			return nil, newError("validation.isbn_length", "must have either 10 or 13 digits", nil)
		}

		if compact[len(compact)-1:] != expected {
			return nil, newError("validation.isbn_checksum", "has an invalid checksum", nil)
		}
		return compact, nil
	})
}

func isbn10Checksum(value string) string {
	sum := 0
	for i := range 9 {
		sum += (i + 1) * int(value[i]-'0')
	}
	sum %= 11
	if sum == 10 {
		return "X"
	}
	return strconv.Itoa(sum)
}

func isbn13Checksum(value string) string {
	sum := 0
	for i := range 12 {
		d := int(value[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	sum %= 10
	if sum == 0 {
		return "0"
	}
	return strconv.Itoa(10 - sum)
}
