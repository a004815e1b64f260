// FILE: lixenwraith/cliconfig/builder.go
package cliconfig

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// SchemaBuilder provides a fluent interface for declaring a schema
type SchemaBuilder struct {
	name   string
	doc    string
	fields []*FieldDescriptor
	attrs  map[string]any
	logger zerolog.Logger
	errs   []error
}

// NewSchema starts a schema declaration
func NewSchema(name string) *SchemaBuilder {
	return &SchemaBuilder{
		name:   name,
		attrs:  make(map[string]any),
		logger: zerolog.Nop(),
	}
}

// WithDoc sets the schema documentation. Parameter descriptions in it become
// help text for fields that have none.
func (b *SchemaBuilder) WithDoc(doc string) *SchemaBuilder {
	b.doc = doc
	return b
}

// WithLogger sets the logger used by the schema's load and save operations
func (b *SchemaBuilder) WithLogger(logger zerolog.Logger) *SchemaBuilder {
	b.logger = logger
	return b
}

// Field declares a typed field. Fields keep declaration order.
// A nil type is a descriptor without annotation and fails the build.
func (b *SchemaBuilder) Field(name string, typ *Type, opts ...FieldOption) *SchemaBuilder {
	if typ == nil {
		b.errs = append(b.errs, &SchemaDefinitionError{
			Schema: b.name,
			Field:  name,
			Reason: "field descriptor used on an attribute without type annotation",
		})
		return b
	}

	fd := &FieldDescriptor{Name: name, Type: typ}
	for _, opt := range opts {
		if opt != nil {
			opt(fd)
		}
	}
	b.fields = append(b.fields, fd)
	return b
}

// Attr declares a plain attribute. It is not a field and has no CLI option.
func (b *SchemaBuilder) Attr(name string, value any) *SchemaBuilder {
	switch value.(type) {
	case FieldOption, []FieldOption:
		b.errs = append(b.errs, &SchemaDefinitionError{
			Schema: b.name,
			Field:  name,
			Reason: "field descriptor used on an attribute without type annotation",
		})
		return b
	}
	b.attrs[name] = value
	return b
}

// Build validates the declaration and returns the finalized schema
func (b *SchemaBuilder) Build() (*Schema, error) {
	errs := append([]error(nil), b.errs...)

	seen := make(map[string]bool, len(b.fields))
	for _, fd := range b.fields {
		if err := b.checkField(fd, seen); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	// Documentation only fills help that was not given explicitly
	if b.doc != "" {
		params := make(map[string]string)
		for _, p := range ParseDoc(b.doc) {
			params[p.Name] = p.Description
		}
		for _, fd := range b.fields {
			if desc, ok := params[fd.Name]; ok && !fd.helpSet {
				fd.Help = desc
				fd.helpSet = true
			}
		}
	}

	s := &Schema{
		name:   b.name,
		doc:    b.doc,
		fields: b.fields,
		index:  make(map[string]int, len(b.fields)),
		attrs:  b.attrs,
		logger: b.logger,
	}
	for i, fd := range b.fields {
		s.index[fd.Name] = i
	}

	b.logger.Debug().
		Str("schema", s.name).
		Int("fields", len(s.fields)).
		Msg("schema finalized")

	return s, nil
}

// MustBuild is like Build but panics on error
func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("schema build failed: %v", err))
	}
	return s
}

func (b *SchemaBuilder) checkField(fd *FieldDescriptor, seen map[string]bool) error {
	fail := func(format string, args ...any) error {
		return &SchemaDefinitionError{Schema: b.name, Field: fd.Name, Reason: fmt.Sprintf(format, args...)}
	}

	if !isValidKeySegment(fd.Name) {
		return fail("invalid field name")
	}
	if fd.Name == SeriesKey {
		return fail("%s is reserved", SeriesKey)
	}
	if seen[fd.Name] {
		return fail("duplicate field name")
	}
	seen[fd.Name] = true

	if _, _, err := fd.splitFlags(); err != nil {
		return fail("%v", err)
	}

	shape, err := resolveShape(b.name, fd)
	if err != nil {
		return err
	}
	fd.shape = shape

	// Static defaults must fit the declared type; factories run per instance
	if fd.HasDefault && fd.DefaultFunc == nil && fd.Default != nil {
		if _, err := coerce(fd.Type, fd.Default); err != nil {
			return fail("default %v does not match %s: %v", fd.Default, fd.Type, err)
		}
	}

	return nil
}
