package binder

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms.
const DefaultMaxMemory = 10 << 20 // 10 MB

// Form reads application/x-www-form-urlencoded and multipart/form-data
// bodies. Query parameters are not included; combine with Query for that.
// Uploaded files are added under their field names with sanitised file names.
func Form() Func {
	return func(r *http.Request) (schema.Data, error) {
		mt, params, ok := mediaType(r)
		if !ok {
			return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
		}

		switch mt {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return fromValues(r.PostForm), nil

		case "multipart/form-data":
			if !validBoundary(params["boundary"]) {
				return nil, fmt.Errorf("%w: missing or invalid boundary", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			if r.MultipartForm == nil {
				return schema.Data{}, nil
			}
			data := fromValues(r.MultipartForm.Value)
			for key, headers := range r.MultipartForm.File {
				switch len(headers) {
				case 0:
				case 1:
					headers[0].Filename = sanitizeFilename(headers[0].Filename)
					data[key] = headers[0]
				default:
					items := make([]any, len(headers))
					for i, fh := range headers {
						fh.Filename = sanitizeFilename(fh.Filename)
						items[i] = fh
					}
					data[key] = items
				}
			}
			return data, nil

		default:
			return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mt)
		}
	}
}

// validBoundary applies the RFC 2046 limits: 1 to 70 characters from a
// restricted set, not ending with a space.
func validBoundary(boundary string) bool {
	if boundary == "" || len(boundary) > 70 || strings.HasSuffix(boundary, " ") {
		return false
	}
	for _, c := range boundary {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.ContainsRune("'()+_,-./:=? ", c):
		default:
			return false
		}
	}
	return true
}

// sanitizeFilename strips directory components and NUL bytes.
func sanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")
	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		return "unnamed"
	}
	return filename
}
