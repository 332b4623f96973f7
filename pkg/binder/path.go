package binder

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

// Extractor returns the value of a named path parameter, e.g. chi.URLParam.
type Extractor func(r *http.Request, name string) string

// Path reads the named path parameters with extractor. Empty values are
// treated as absent.
//
//	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
//	    data, err := binder.Bind(r, binder.Path(chi.URLParam, "id"), binder.Query())
//	    ...
//	})
func Path(extractor Extractor, names ...string) Func {
	return func(r *http.Request) (schema.Data, error) {
		if extractor == nil {
			return nil, fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		data := make(schema.Data, len(names))
		for _, name := range names {
			if v := extractor(r, name); v != "" {
				data[name] = v
			}
		}
		return data, nil
	}
}

// PathValue is an Extractor for patterns registered on http.ServeMux.
func PathValue(r *http.Request, name string) string {
	return r.PathValue(name)
}
