package converter

import "errors"

// AnyOf returns a converter that tries each converter in order and returns
// the result of the first one that succeeds.
func AnyOf(converters ...Converter) Converter {
	return anyOfConverter{converters: converters}
}

type anyOfConverter struct {
	converters []Converter
}

func (c anyOfConverter) Convert(raw any) (any, error) {
	if raw == nil {
		return nil, nilError("value")
	}

	errs := make([]error, 0, len(c.converters))
	for _, conv := range c.converters {
		v, err := conv.Convert(raw)
		if err == nil {
			return v, nil
		}
		errs = append(errs, err)
	}

	return nil, newError(
		"conversion.any_of",
		"does not match any accepted type",
		nil,
		errors.Join(errs...),
	)
}
