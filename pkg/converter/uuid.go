package converter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UUID returns a converter producing uuid.UUID values from their textual
// form (any format accepted by uuid.Parse) or from 16-byte arrays.
func UUID() Converter {
	return uuidConverter{}
}

type uuidConverter struct{}

func (uuidConverter) Convert(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nilError("uuid")
	case uuid.UUID:
		return v, nil
	case [16]byte:
		return uuid.UUID(v), nil
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		if err != nil {
			return nil, invalidUUID(raw, err)
		}
		return id, nil
	default:
		return nil, invalidUUID(raw, ErrUnsupportedType)
	}
}

func invalidUUID(raw any, cause error) *ConversionError {
	return newError(
		"conversion.uuid",
		"not a valid UUID",
		map[string]any{"value": fmt.Sprint(raw)},
		cause,
	)
}
