package converter

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrymomot/formkit/pkg/sanitizer"
)

var (
	defaultTrues  = []string{"1", "y", "yes", "on", "true"}
	defaultFalses = []string{"0", "n", "no", "off", "false"}
)

// BoolOption configures the Bool converter.
type BoolOption func(*boolConverter)

// BoolTokens replaces the accepted truthy and falsy tokens. Matching is
// case-insensitive. A nil slice keeps the corresponding default set.
func BoolTokens(trues, falses []string) BoolOption {
	return func(c *boolConverter) {
		if trues != nil {
			c.trues = tokenSet(trues)
		}
		if falses != nil {
			c.falses = tokenSet(falses)
		}
	}
}

type boolConverter struct {
	trues  map[string]struct{}
	falses map[string]struct{}
}

// Bool returns a boolean converter. Strings must be one of the truthy tokens
// (1, y, yes, on, true) or falsy tokens (0, n, no, off, false); numbers of
// any Go integer or float type and json.Number must be 0 or 1.
func Bool(opts ...BoolOption) Converter {
	c := &boolConverter{
		trues:  tokenSet(defaultTrues),
		falses: tokenSet(defaultFalses),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *boolConverter) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nilError("boolean")
	case bool:
		return v, nil
	case string:
		token := sanitizer.TrimToLower(v)
		if _, ok := c.trues[token]; ok {
			return true, nil
		}
		if _, ok := c.falses[token]; ok {
			return false, nil
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		n, err := intConverter{}.Convert(v)
		if err != nil {
			break
		}
		switch n {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}

	return nil, newError(
		"conversion.boolean",
		"not a valid boolean",
		map[string]any{"value": fmt.Sprint(raw)},
		nil,
	)
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[sanitizer.TrimToLower(t)] = struct{}{}
	}
	return set
}
