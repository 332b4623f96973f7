package schemafile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// buildRules turns validator entries into validators for values of the given
// field type. Numeric bounds are typed after the field: int fields compare
// ints, float fields compare float64s.
func buildRules(rules []ruleFile, fieldType string) ([]validator.Validator, error) {
	out := make([]validator.Validator, 0, len(rules))
	for _, rule := range rules {
		v, err := buildRule(rule, fieldType)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func buildRule(rule ruleFile, fieldType string) (validator.Validator, error) {
	switch rule.Name {
	case "not_empty":
		return validator.NotEmpty(), nil
	case "email":
		return validator.Email(), nil
	case "trim":
		return validator.Trim(), nil
	case "lower":
		return validator.Lower(), nil
	case "upper":
		return validator.Upper(), nil
	case "title":
		return validator.Title(), nil
	case "strip_html":
		return validator.StripHTML(), nil
	case "collapse_whitespace":
		return validator.CollapseWhitespace(), nil
	case "unique":
		return validator.Unique(), nil
	case "isbn":
		return validator.ISBN(), nil
	case "url":
		var schemes []string
		if rule.Args != nil {
			if err := decodeArgs(rule, &schemes); err != nil {
				return nil, err
			}
		}
		return validator.URL(schemes...), nil
	case "min_length":
		var n int
		if err := decodeArgs(rule, &n); err != nil {
			return nil, err
		}
		return validator.MinLength(n), nil
	case "max_length":
		var n int
		if err := decodeArgs(rule, &n); err != nil {
			return nil, err
		}
		return validator.MaxLength(n), nil
	case "length":
		lo, hi, err := bounds[int](rule)
		if err != nil {
			return nil, err
		}
		return validator.Length(orUnset(lo), orUnset(hi)), nil
	case "remove_control_chars":
		return validator.RemoveControlChars(), nil
	case "truncate":
		var n int
		if err := decodeArgs(rule, &n); err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: truncate needs a non-negative length", ErrInvalidRule)
		}
		return validator.Truncate(n), nil
	case "pattern":
		var expr string
		if err := decodeArgs(rule, &expr); err != nil {
			return nil, err
		}
		return compilePattern(rule, expr)
	case "min", "max", "range":
		return numericRule(rule, fieldType)
	case "one_of", "not_one_of":
		return choiceRule(rule, fieldType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rule.Name)
	}
}

func decodeArgs(rule ruleFile, dst any) error {
	if rule.Args == nil {
		return fmt.Errorf("%w: %s needs an argument", ErrInvalidRule, rule.Name)
	}
	if err := rule.Args.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidRule, rule.Name, err)
	}
	return nil
}

func compilePattern(rule ruleFile, expr string) (v validator.Validator, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", ErrInvalidRule, rule.Name, r)
		}
	}()
	return validator.Pattern(expr), nil
}

// bounds decodes [min, max] or {min: .., max: ..}. In the map form either
// bound may be left out; at least one is required.
func bounds[T int | float64](rule ruleFile) (*T, *T, error) {
	if rule.Args != nil && rule.Args.Kind == yaml.SequenceNode {
		var pair []T
		if err := decodeArgs(rule, &pair); err != nil {
			return nil, nil, err
		}
		if len(pair) != 2 {
			return nil, nil, fmt.Errorf("%w: %s needs [min, max]", ErrInvalidRule, rule.Name)
		}
		return &pair[0], &pair[1], nil
	}

	var m struct {
		Min *T `yaml:"min"`
		Max *T `yaml:"max"`
	}
	if err := decodeArgs(rule, &m); err != nil {
		return nil, nil, err
	}
	if m.Min == nil && m.Max == nil {
		return nil, nil, fmt.Errorf("%w: %s needs min or max", ErrInvalidRule, rule.Name)
	}
	return m.Min, m.Max, nil
}

// orUnset maps a missing length bound to -1, which Length leaves unchecked.
func orUnset(n *int) int {
	if n == nil {
		return -1
	}
	return *n
}

func numericRule(rule ruleFile, fieldType string) (validator.Validator, error) {
	switch fieldType {
	case "int":
		return numeric[int](rule)
	case "float":
		return numeric[float64](rule)
	default:
		return nil, fmt.Errorf("%w: %s applies to int or float fields, not %q", ErrInvalidRule, rule.Name, fieldType)
	}
}

func numeric[T int | float64](rule ruleFile) (validator.Validator, error) {
	if rule.Name == "range" {
		lo, hi, err := bounds[T](rule)
		if err != nil {
			return nil, err
		}
		switch {
		case lo != nil && hi != nil:
			return validator.Range(*lo, *hi), nil
		case lo != nil:
			return validator.Min(*lo), nil
		default:
			return validator.Max(*hi), nil
		}
	}

	var n T
	if err := decodeArgs(rule, &n); err != nil {
		return nil, err
	}
	if rule.Name == "min" {
		return validator.Min(n), nil
	}
	return validator.Max(n), nil
}

func choiceRule(rule ruleFile, fieldType string) (validator.Validator, error) {
	switch fieldType {
	case "int":
		return choice[int](rule)
	case "float":
		return choice[float64](rule)
	case "string", "":
		return choice[string](rule)
	default:
		return nil, fmt.Errorf("%w: %s does not apply to %q fields", ErrInvalidRule, rule.Name, fieldType)
	}
}

func choice[T int | float64 | string](rule ruleFile) (validator.Validator, error) {
	var values []T
	if err := decodeArgs(rule, &values); err != nil {
		return nil, err
	}
	if rule.Name == "one_of" {
		return validator.OneOf(values...), nil
	}
	return validator.NotOneOf(values...), nil
}
