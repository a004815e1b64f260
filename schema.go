// FILE: lixenwraith/cliconfig/schema.go
package cliconfig

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Source represents a configuration source, used to define merge precedence
type Source string

const (
	// SourceDefault represents use of the field's default value
	SourceDefault Source = "default"
	// SourceFile represents values loaded from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values given as command-line options
	SourceCLI Source = "cli"
	// SourceValue represents values passed in code to New or With
	SourceValue Source = "value"
)

// Schema is a finalized, immutable list of fields.
type Schema struct {
	name   string
	doc    string
	fields []*FieldDescriptor
	index  map[string]int
	attrs  map[string]any
	logger zerolog.Logger
}

// layer is one source of values, ordered from highest to lowest precedence in resolve.
type layer struct {
	source Source
	values map[string]any
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Doc returns the schema documentation.
func (s *Schema) Doc() string { return s.doc }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []*FieldDescriptor {
	return append([]*FieldDescriptor(nil), s.fields...)
}

// Field looks up a field by name.
func (s *Schema) Field(name string) (*FieldDescriptor, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

// Attr returns a plain (non-field) attribute.
func (s *Schema) Attr(name string) (any, bool) {
	v, ok := s.attrs[name]
	return v, ok
}

// FieldNames returns field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.fields))
	for i, fd := range s.fields {
		names[i] = fd.Name
	}
	return names
}

// New builds an instance from values, filling defaults for missing fields.
// It returns a *RequiredFieldMissing when a field without default is absent.
func (s *Schema) New(values map[string]any) (*Instance, error) {
	return s.resolve(layer{source: SourceValue, values: values})
}

// Merge reconciles command-line values with an optional file mapping. A nil
// file mapping yields exactly one instance; otherwise the file's series is
// expanded and every combination is overwritten by cli. A series built in
// code has no key order, so it nests in field declaration order.
func (s *Schema) Merge(cli map[string]any, file map[string]any) ([]*Instance, error) {
	return s.merge(cli, nil, file, nil)
}

// merge is Merge with environment values and the series key order of a file.
func (s *Schema) merge(cli, env, file map[string]any, seriesOrder []string) ([]*Instance, error) {
	cliLayer := layer{source: SourceCLI, values: cli}
	envLayer := layer{source: SourceEnv, values: env}

	if file == nil {
		inst, err := s.resolve(cliLayer, envLayer)
		if err != nil {
			return nil, err
		}
		return []*Instance{inst}, nil
	}

	mappings, err := s.expand(file, seriesOrder)
	if err != nil {
		return nil, err
	}

	instances := make([]*Instance, 0, len(mappings))
	for _, m := range mappings {
		inst, err := s.resolve(cliLayer, envLayer, layer{source: SourceFile, values: m})
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}

// expand validates series keys against the fields and expands the mapping.
// Keys missing from seriesOrder follow in field order.
func (s *Schema) expand(raw map[string]any, seriesOrder []string) ([]map[string]any, error) {
	if series, ok := raw[SeriesKey].(map[string]any); ok {
		for key := range series {
			if _, known := s.index[key]; !known {
				return nil, &UnknownFieldError{Schema: s.name, Key: key, Origin: "series"}
			}
		}
	}

	order := append(append([]string(nil), seriesOrder...), s.FieldNames()...)
	mappings, err := ExpandSeries(raw, order)
	if err != nil {
		return nil, err
	}
	if len(mappings) > 1 {
		s.logger.Debug().
			Str("schema", s.name).
			Int("combinations", len(mappings)).
			Msg("series expanded")
	}
	return mappings, nil
}

// resolve picks, for every field, the value from the first layer that has it,
// falling back to the default. Keys that are not fields are rejected.
func (s *Schema) resolve(layers ...layer) (*Instance, error) {
	for _, l := range layers {
		for key := range l.values {
			if _, ok := s.index[key]; !ok {
				return nil, &UnknownFieldError{Schema: s.name, Key: key}
			}
		}
	}

	inst := &Instance{
		schema:  s,
		values:  make(map[string]any, len(s.fields)),
		sources: make(map[string]Source, len(s.fields)),
	}

	for _, fd := range s.fields {
		raw, source, found := lookup(fd.Name, layers)
		if !found {
			if fd.Required() {
				return nil, &RequiredFieldMissing{Field: fd.Name}
			}
			raw, source = fd.defaultValue(), SourceDefault
		}

		var value any
		if raw != nil || source != SourceDefault {
			v, err := coerce(fd.Type, raw)
			if err != nil {
				return nil, fmt.Errorf("field %q (%s): %w", fd.Name, source, err)
			}
			value = v
		}
		inst.values[fd.Name] = value
		inst.sources[fd.Name] = source
	}

	return inst, nil
}

func lookup(name string, layers []layer) (any, Source, bool) {
	for _, l := range layers {
		if v, ok := l.values[name]; ok {
			return v, l.source, true
		}
	}
	return nil, "", false
}

// Serialize returns the instance as a flat mapping.
func (s *Schema) Serialize(inst *Instance) map[string]any {
	return inst.Map()
}
