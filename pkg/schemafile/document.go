package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Schemas []schemaFile `yaml:"schemas"`
}

type schemaFile struct {
	Name             string      `yaml:"name"`
	Extends          string      `yaml:"extends"`
	Strict           *bool       `yaml:"strict"`
	CollectAllErrors *bool       `yaml:"collect_all_errors"`
	Omit             []string    `yaml:"omit"`
	Fields           []fieldFile `yaml:"fields"`

	source string
}

type fieldFile struct {
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Required    *bool             `yaml:"required"`
	Default     yaml.Node         `yaml:"default"`
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Format      string            `yaml:"format"`
	Schema      string            `yaml:"schema"`
	Items       *itemsFile        `yaml:"items"`
	Validators  []ruleFile        `yaml:"validators"`
	Messages    map[string]string `yaml:"messages"`
	CollectAll  bool              `yaml:"collect_all"`
	EqualTo     string            `yaml:"equal_to"`
}

type itemsFile struct {
	Type       string     `yaml:"type"`
	Format     string     `yaml:"format"`
	Schema     string     `yaml:"schema"`
	Validators []ruleFile `yaml:"validators"`
}

// ruleFile is a validator entry: a bare rule name or a single-key mapping
// from rule name to its arguments.
type ruleFile struct {
	Name string
	Args *yaml.Node
}

func (r *ruleFile) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Name = strings.TrimSpace(node.Value)
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: validator must have exactly one rule, got %d", node.Line, len(node.Content)/2)
		}
		r.Name = strings.TrimSpace(node.Content[0].Value)
		r.Args = node.Content[1]
		return nil
	default:
		return fmt.Errorf("line %d: validator must be a name or a mapping", node.Line)
	}
}

func parseDocument(data []byte, source string) (documentFile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return documentFile{}, fmt.Errorf("%w: %s is empty", ErrInvalidDocument, source)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc documentFile
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return documentFile{}, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, source, err)
	}
	for i := range doc.Schemas {
		doc.Schemas[i].source = source
		if strings.TrimSpace(doc.Schemas[i].Name) == "" {
			return documentFile{}, fmt.Errorf("%w: %s: schema #%d has no name", ErrInvalidDocument, source, i+1)
		}
	}
	return doc, nil
}
