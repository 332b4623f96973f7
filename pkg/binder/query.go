package binder

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

// Query reads the URL query string.
func Query() Func {
	return func(r *http.Request) (schema.Data, error) {
		if r.URL == nil {
			return schema.Data{}, nil
		}
		values, err := url.ParseQuery(r.URL.RawQuery)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		return fromValues(values), nil
	}
}
