package binder

import (
	"fmt"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

// Func extracts raw input from one part of a request.
type Func func(r *http.Request) (schema.Data, error)

// Bind runs binders in order and merges their output. The first error stops
// binding.
func Bind(r *http.Request, binders ...Func) (schema.Data, error) {
	data := schema.Data{}
	for _, b := range binders {
		part, err := b(r)
		if err != nil {
			return nil, err
		}
		maps.Copy(data, part)
	}
	return data, nil
}

// Body reads the request body with JSON or Form, chosen by the media type.
func Body() Func {
	return func(r *http.Request) (schema.Data, error) {
		mt, _, ok := mediaType(r)
		if !ok {
			return nil, fmt.Errorf("%w: expected a JSON or form body", ErrMissingContentType)
		}
		switch mt {
		case "application/json":
			return JSON()(r)
		case "application/x-www-form-urlencoded", "multipart/form-data":
			return Form()(r)
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
		}
	}
}

// Merge combines mappings into a new one; later keys win.
func Merge(parts ...schema.Data) schema.Data {
	data := schema.Data{}
	for _, part := range parts {
		maps.Copy(data, part)
	}
	return data
}

// fromValues turns multi-valued url.Values into raw input: one value stays a
// string, several become []any.
func fromValues(values url.Values) schema.Data {
	data := make(schema.Data, len(values))
	for key, vs := range values {
		switch len(vs) {
		case 0:
			continue
		case 1:
			data[key] = vs[0]
		default:
			items := make([]any, len(vs))
			for i, v := range vs {
				items[i] = v
			}
			data[key] = items
		}
	}
	return data
}

// mediaType returns the lower-cased media type without parameters.
func mediaType(r *http.Request) (string, map[string]string, bool) {
	header := r.Header.Get("Content-Type")
	if header == "" {
		return "", nil, false
	}
	mt, params, err := mime.ParseMediaType(header)
	if err != nil {
		mt, _, _ = strings.Cut(header, ";")
		return strings.ToLower(strings.TrimSpace(mt)), nil, true
	}
	return mt, params, true
}
