package binder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

// DefaultMaxJSONSize is the maximum accepted JSON body size.
const DefaultMaxJSONSize = 1 << 20 // 1 MB

// JSON reads a JSON object body. Numbers are decoded as json.Number; nested
// objects and arrays become map[string]any and []any.
func JSON() Func {
	return func(r *http.Request) (schema.Data, error) {
		if err := r.Context().Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		mt, _, ok := mediaType(r)
		if !ok {
			return nil, fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}
		if mt != "application/json" {
			return nil, fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mt)
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxJSONSize+1))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read request body: %v", ErrInvalidJSON, err)
		}
		if len(body) > DefaultMaxJSONSize {
			return nil, fmt.Errorf("%w: request body too large (max %d bytes)", ErrInvalidJSON, DefaultMaxJSONSize)
		}

		return DecodeJSON(body)
	}
}

// DecodeJSON decodes a JSON object into raw input.
func DecodeJSON(body []byte) (schema.Data, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty body", ErrInvalidJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidJSON)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}
	return schema.Data(data), nil
}
