package validator

import (
	"fmt"
	"regexp"
)

// Pattern requires a string value matched by the regular expression expr.
// The expression is compiled once; an invalid expression panics.
func Pattern(expr string) Validator {
	return PatternWithDescription(expr, expr)
}

// PatternWithDescription is like Pattern but names the pattern with a
// human-readable description in the error message.
func PatternWithDescription(expr, description string) Validator {
	re := regexp.MustCompile(expr)
	return Func(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, typeError("string", value)
		}
		if !re.MatchString(s) {
			return nil, newError(
				"validation.pattern",
				fmt.Sprintf("must match pattern %s", description),
				map[string]any{"pattern": expr, "description": description},
			)
		}
		return value, nil
	})
}

// NotPattern rejects strings matched by expr.
func NotPattern(expr string) Validator {
	re := regexp.MustCompile(expr)
	return Func(func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, typeError("string", value)
		}
		if re.MatchString(s) {
			return nil, newError(
				"validation.not_pattern",
				fmt.Sprintf("must not match pattern %s", expr),
				map[string]any{"pattern": expr},
			)
		}
		return value, nil
	})
}
