package converter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int returns a converter producing int values. Decimal strings (surrounding
// whitespace ignored), every Go integer type and whole floats are accepted.
func Int() Converter {
	return intConverter{}
}

type intConverter struct{}

func (intConverter) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nilError("integer")
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return nil, invalidInteger(raw, strconv.ErrRange)
		}
		return int(v), nil
	case uint:
		if uint64(v) > math.MaxInt {
			return nil, invalidInteger(raw, strconv.ErrRange)
		}
		return int(v), nil
	case uint8:
		return int(v), nil
	case uint16:
		return int(v), nil
	case uint32:
		return int(v), nil
	case uint64:
		if v > math.MaxInt {
			return nil, invalidInteger(raw, strconv.ErrRange)
		}
		return int(v), nil
	case float32:
		return floatToInt(float64(v), raw)
	case float64:
		return floatToInt(v, raw)
	case json.Number:
		n, err := strconv.Atoi(string(v))
		if err != nil {
			return nil, invalidInteger(raw, err)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, invalidInteger(raw, err)
		}
		return n, nil
	default:
		return nil, invalidInteger(raw, ErrUnsupportedType)
	}
}

func floatToInt(f float64, raw any) (any, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return nil, invalidInteger(raw, nil)
	}
	return int(f), nil
}

func invalidInteger(raw any, cause error) *ConversionError {
	return newError(
		"conversion.integer",
		"not a valid integer",
		map[string]any{"value": fmt.Sprint(raw)},
		cause,
	)
}

// Float returns a converter producing float64 values. Non-finite results
// (NaN, ±Inf) are rejected.
func Float() Converter {
	return floatConverter{}
}

type floatConverter struct{}

func (floatConverter) Convert(raw any) (any, error) {
	var f float64
	switch v := raw.(type) {
	case nil:
		return nil, nilError("number")
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, invalidNumber(raw, err)
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, invalidNumber(raw, err)
		}
		f = parsed
	default:
		return nil, invalidNumber(raw, ErrUnsupportedType)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalidNumber(raw, nil)
	}
	return f, nil
}

func invalidNumber(raw any, cause error) *ConversionError {
	return newError(
		"conversion.number",
		"not a valid number",
		map[string]any{"value": fmt.Sprint(raw)},
		cause,
	)
}
