package httpserver

import "github.com/dmitrymomot/formkit/pkg/schema"

// Description is the JSON form of a schema declaration.
type Description struct {
	Name   string             `json:"name"`
	Strict bool               `json:"strict"`
	Fields []FieldDescription `json:"fields"`
}

type FieldDescription struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Required    bool   `json:"required"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`
	Default     any    `json:"default,omitempty"`
	Schema      string `json:"schema,omitempty"`
}

// Describe lists the fields of s in declaration order.
func Describe(s *schema.Schema) Description {
	fields := s.Fields()
	d := Description{
		Name:   s.Name(),
		Strict: s.IsStrict(),
		Fields: make([]FieldDescription, 0, len(fields)),
	}
	for _, f := range fields {
		fd := FieldDescription{
			Name:        f.Name(),
			Kind:        string(f.Kind()),
			Required:    f.IsRequired(),
			Label:       f.Label(),
			Description: f.Description(),
			Format:      f.Format(),
		}
		if def, ok := f.Default(); ok {
			fd.Default = def
		}
		if nested := f.Schema(); nested != nil {
			fd.Schema = nested.Name()
		}
		d.Fields = append(d.Fields, fd)
	}
	return d
}
