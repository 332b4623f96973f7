package validator

import (
	"net/mail"
	"net/url"
	"slices"
	"strings"
)

// Email requires a bare RFC 5322 address with a dotted domain. Display
// names ("Ann <ann@example.com>") are rejected.
func Email() Validator {
	return stringCheck(isEmail, newError("validation.email", "must be a valid email address", nil))
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}

	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// URL requires an absolute URL with a scheme and host. When schemes are
// given, the URL's scheme must be one of them.
func URL(schemes ...string) Validator {
	return stringCheck(func(value string) bool {
		if strings.TrimSpace(value) == "" {
			return false
		}
		u, err := url.ParseRequestURI(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return false
		}
		return len(schemes) == 0 || slices.Contains(schemes, u.Scheme)
	}, newError("validation.url", "must be a valid URL", map[string]any{"schemes": schemes}))
}

// stringCheck builds a non-normalising validator over string values.
func stringCheck(ok func(string) bool, err *ValidationError) Validator {
	return Func(func(value any) (any, error) {
		s, isString := value.(string)
		if !isString {
			return nil, typeError("string", value)
		}
		if !ok(s) {
			return nil, err
		}
		return value, nil
	})
}
