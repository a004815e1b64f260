// FILE: lixenwraith/cliconfig/loader.go
package cliconfig

import (
	"fmt"
	"os"
	"strings"
)

// EnvTransformFunc converts a field name to an environment variable name
type EnvTransformFunc func(name string) string

// Load reads a config file, applies overwrite to every mapping and builds
// one instance per series combination (a single one without a series).
func (s *Schema) Load(path string, overwrite map[string]any) ([]*Instance, error) {
	data, seriesOrder, err := ReadConfigFileOrdered(path)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("schema", s.name).
		Str("path", path).
		Int("keys", len(data)).
		Msg("config file loaded")

	return s.merge(overwrite, nil, data, seriesOrder)
}

// LoadOne is Load for files without a series.
func (s *Schema) LoadOne(path string, overwrite map[string]any) (*Instance, error) {
	instances, err := s.Load(path, overwrite)
	if err != nil {
		return nil, err
	}
	if len(instances) != 1 {
		return nil, fmt.Errorf("config file '%s' declares a series of %d combinations", path, len(instances))
	}
	return instances[0], nil
}

// Save serializes inst and writes it to path.
func (s *Schema) Save(inst *Instance, path string) error {
	if inst.schema != s {
		return fmt.Errorf("instance of schema %q cannot be saved by schema %q", inst.schema.name, s.name)
	}
	if format, err := detectFileFormat(path); err == nil && format == FormatTOML {
		if err := s.checkTOMLNulls(inst); err != nil {
			return fmt.Errorf("failed to save config file '%s': %w", path, err)
		}
	}
	if err := WriteConfigFile(path, s.Serialize(inst)); err != nil {
		return fmt.Errorf("failed to save config file '%s': %w", path, err)
	}

	s.logger.Debug().
		Str("schema", s.name).
		Str("path", path).
		Msg("config file saved")
	return nil
}

// checkTOMLNulls rejects null values that TOML would omit and a later load
// would not read back as null.
func (s *Schema) checkTOMLNulls(inst *Instance) error {
	for _, fd := range s.fields {
		if inst.values[fd.Name] != nil {
			continue
		}
		if fd.Required() || fd.defaultValue() != nil {
			return fmt.Errorf("%w: field %q is null and TOML has no null", ErrNullNotStorable, fd.Name)
		}
	}
	return nil
}

// loadEnv collects values of environment variables that map to fields.
// Multi-valued fields read a comma separated list.
func (s *Schema) loadEnv(transform EnvTransformFunc) map[string]any {
	found := make(map[string]any)
	for _, fd := range s.fields {
		envVar := fd.Attrs.EnvVar
		if envVar == "" {
			envVar = transform(fd.Name)
		}
		if value, exists := os.LookupEnv(envVar); exists {
			found[fd.Name] = value
		}
	}
	return found
}

// defaultEnvTransform creates the default environment variable transformer
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(name string) string {
		env := strings.ReplaceAll(name, "-", "_")
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}
