package schemafile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/converter"
	"github.com/dmitrymomot/formkit/pkg/schema"
	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Registry collects schema declarations and builds them on demand.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.Mutex
	decls      map[string]schemaFile
	order      []string
	built      map[string]*schema.Schema
	schemaOpts []schema.Option
	timeLayout string
}

// Option configures a Registry.
type Option func(*Registry)

// WithSchemaOptions adds options applied to every schema the registry
// builds, e.g. schema.WithLogger or schema.WithConfig.
func WithSchemaOptions(opts ...schema.Option) Option {
	return func(r *Registry) {
		r.schemaOpts = append(r.schemaOpts, opts...)
	}
}

// WithTimeLayout sets the layout of time fields declared without a format.
func WithTimeLayout(layout string) Option {
	return func(r *Registry) {
		if layout != "" {
			r.timeLayout = layout
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		decls:      make(map[string]schemaFile),
		built:      make(map[string]*schema.Schema),
		timeLayout: schema.DefaultTimeLayout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parse adds the schemas declared in a YAML or JSON document. source names
// the document in error messages.
func (r *Registry) Parse(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, decl := range doc.Schemas {
		if prev, exists := r.decls[decl.Name]; exists {
			return fmt.Errorf("%w: %q declared in %s and %s", ErrDuplicateSchema, decl.Name, prev.source, source)
		}
	}
	for _, decl := range doc.Schemas {
		r.decls[decl.Name] = decl
		r.order = append(r.order, decl.Name)
	}
	return nil
}

// LoadFile parses one document from disk.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("schemafile: read %s: %w", path, err)
	}
	return r.Parse(data, path)
}

// LoadFS parses every .yaml, .yml and .json file in fsys.
func (r *Registry) LoadFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schemafile: read %s: %w", path, err)
		}
		return r.Parse(data, path)
	})
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// Names returns the declared schema names in declaration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.order)
}

// Schema builds (or returns the already built) schema with the given name.
func (r *Registry) Schema(name string) (*schema.Schema, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(name, nil)
}

// MustSchema is like Schema but panics on error.
func (r *Registry) MustSchema(name string) *schema.Schema {
	s, err := r.Schema(name)
	if err != nil {
		panic(err)
	}
	return s
}

func (r *Registry) resolve(name string, path []string) (*schema.Schema, error) {
	if s, ok := r.built[name]; ok {
		return s, nil
	}
	if slices.Contains(path, name) {
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(path, name), " -> "))
	}
	decl, ok := r.decls[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}
	path = append(path, name)

	fields := make([]schema.Field, 0, len(decl.Fields))
	for _, fd := range decl.Fields {
		f, err := r.buildField(fd, path)
		if err != nil {
			return nil, fmt.Errorf("schema %q (%s): field %q: %w", name, decl.source, fd.Name, err)
		}
		fields = append(fields, f)
	}

	var settings []schema.Option
	if decl.Strict != nil {
		if *decl.Strict {
			settings = append(settings, schema.Strict())
		} else {
			settings = append(settings, schema.Lenient())
		}
	}
	if decl.CollectAllErrors != nil {
		if *decl.CollectAllErrors {
			settings = append(settings, schema.CollectAllErrors())
		} else {
			settings = append(settings, schema.FirstErrorOnly())
		}
	}

	var (
		s   *schema.Schema
		err error
	)
	if decl.Extends == "" {
		opts := slices.Concat(r.schemaOpts, settings, []schema.Option{schema.Fields(fields...)})
		s, err = schema.New(name, opts...)
	} else {
		parent, perr := r.resolve(decl.Extends, path)
		if perr != nil {
			return nil, perr
		}
		opts := slices.Concat(settings, []schema.Option{
			schema.Omit(decl.Omit...),
			overrideOrAppend(fields),
		})
		s, err = parent.Extend(name, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("schemafile: %s: %w", decl.source, err)
	}

	r.built[name] = s
	return s, nil
}

// overrideOrAppend replaces fields the schema already has and appends the
// rest, in declaration order.
func overrideOrAppend(fields []schema.Field) schema.Option {
	return func(s *schema.Schema) error {
		for _, f := range fields {
			opt := schema.Fields(f)
			if _, exists := s.Field(f.Name()); exists {
				opt = schema.Override(f)
			}
			if err := opt(s); err != nil {
				return err
			}
		}
		return nil
	}
}

func (r *Registry) buildField(fd fieldFile, path []string) (schema.Field, error) {
	fd.Type = canonicalType(fd.Type)
	opts := []schema.FieldOption{}
	if fd.Label != "" {
		opts = append(opts, schema.Label(fd.Label))
	}
	if fd.Description != "" {
		opts = append(opts, schema.Description(fd.Description))
	}
	if fd.Required != nil && !*fd.Required {
		opts = append(opts, schema.Optional())
	}
	for key, text := range fd.Messages {
		opts = append(opts, schema.Message(key, text))
	}
	if fd.CollectAll {
		opts = append(opts, schema.CollectAll())
	}
	if fd.EqualTo != "" {
		opts = append(opts, schema.EqualTo(fd.EqualTo))
	}

	validators, err := buildRules(fd.Validators, fd.Type)
	if err != nil {
		return schema.Field{}, err
	}
	if len(validators) > 0 {
		opts = append(opts, schema.Validate(validators...))
	}

	var f schema.Field
	switch fd.Type {
	case "string":
		f = schema.String(fd.Name, opts...)
	case "int":
		f = schema.Int(fd.Name, opts...)
	case "float":
		f = schema.Float(fd.Name, opts...)
	case "bool":
		f = schema.Bool(fd.Name, opts...)
	case "uuid":
		f = schema.UUID(fd.Name, opts...)
	case "time":
		f = schema.Time(fd.Name, r.layout(fd.Format), opts...)
	case "object":
		inner, err := r.resolve(fd.Schema, path)
		if err != nil {
			return schema.Field{}, err
		}
		f = schema.Object(fd.Name, inner, opts...)
	case "list":
		f, err = r.buildList(fd, path, opts)
		if err != nil {
			return schema.Field{}, err
		}
	default:
		return schema.Field{}, fmt.Errorf("%w: %q", ErrUnknownType, fd.Type)
	}

	if fd.Format != "" && fd.Type != "time" {
		f = f.With(schema.Format(fd.Format))
	}

	if fd.Default.Kind != 0 {
		def, err := typedDefault(f, &fd.Default)
		if err != nil {
			return schema.Field{}, err
		}
		f = f.With(schema.Default(def))
	}
	return f, nil
}

func (r *Registry) buildList(fd fieldFile, path []string, opts []schema.FieldOption) (schema.Field, error) {
	if fd.Items == nil {
		return schema.Field{}, fmt.Errorf("%w: list needs items", ErrUnknownType)
	}
	if fd.Items.Schema != "" {
		inner, err := r.resolve(fd.Items.Schema, path)
		if err != nil {
			return schema.Field{}, err
		}
		return schema.Objects(fd.Name, inner, opts...), nil
	}

	itemType := canonicalType(fd.Items.Type)
	elem, err := r.scalarConverter(itemType, fd.Items.Format)
	if err != nil {
		return schema.Field{}, err
	}
	itemRules, err := buildRules(fd.Items.Validators, itemType)
	if err != nil {
		return schema.Field{}, err
	}
	f := schema.List(fd.Name, elem, opts...)
	if len(itemRules) > 0 {
		f = f.With(schema.Validate(validator.Each(validator.Chain(itemRules...))))
	}
	return f, nil
}

func (r *Registry) scalarConverter(typ, format string) (converter.Converter, error) {
	switch typ {
	case "string":
		return converter.String(), nil
	case "int":
		return converter.Int(), nil
	case "float":
		return converter.Float(), nil
	case "bool":
		return converter.Bool(), nil
	case "uuid":
		return converter.UUID(), nil
	case "time":
		return converter.Time(r.layout(format)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typ)
	}
}

func (r *Registry) layout(format string) string {
	if format != "" {
		return format
	}
	return r.timeLayout
}

// canonicalType folds type aliases: integer, number, boolean and date are
// accepted next to int, float, bool and time. An empty type means string.
func canonicalType(typ string) string {
	switch strings.ToLower(strings.TrimSpace(typ)) {
	case "", "string":
		return "string"
	case "int", "integer":
		return "int"
	case "float", "number":
		return "float"
	case "bool", "boolean":
		return "bool"
	case "time", "date":
		return "time"
	default:
		return strings.ToLower(strings.TrimSpace(typ))
	}
}

// typedDefault decodes a declared default and runs it through the field
// converter once, so defaults have the same type as processed values.
func typedDefault(f schema.Field, node *yaml.Node) (any, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefault, err)
	}
	if raw == nil {
		return nil, nil
	}
	v, err := f.Converter().Convert(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefault, err)
	}
	return v, nil
}
