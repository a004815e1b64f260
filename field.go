// FILE: lixenwraith/cliconfig/field.go
package cliconfig

import (
	"fmt"
	"strings"
)

// OptionAttrs holds extra attributes passed through to the command-line option.
type OptionAttrs struct {
	Type     *Type // explicit option type, never overridden by inference
	Multiple *bool
	Metavar  string
	Hidden   bool
	EnvVar   string
}

// FieldDescriptor describes one schema field. It is read-only once the schema is built.
type FieldDescriptor struct {
	Name        string
	Type        *Type
	HasDefault  bool
	Default     any
	DefaultFunc func() any
	Flags       []string
	Help        string
	Attrs       OptionAttrs

	helpSet bool
	shape   Shape
}

// FieldOption configures a FieldDescriptor.
type FieldOption func(*FieldDescriptor)

// Flags sets the option declarations, e.g. Flags("-o", "--outdir").
func Flags(decls ...string) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.Flags = append(fd.Flags, decls...)
	}
}

// Help sets the help text. It takes precedence over documentation.
func Help(text string) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.Help = text
		fd.helpSet = true
	}
}

// Default sets a static default value.
func Default(v any) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.HasDefault = true
		fd.Default = v
		fd.DefaultFunc = nil
	}
}

// DefaultFunc sets a factory called once per instance, for mutable defaults like slices.
func DefaultFunc(fn func() any) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.HasDefault = true
		fd.Default = nil
		fd.DefaultFunc = fn
	}
}

// WithType forces the option type.
func WithType(t *Type) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.Attrs.Type = t
	}
}

// Multiple forces the option to be repeatable, or forbids it.
func Multiple(m bool) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.Attrs.Multiple = &m
	}
}

// Metavar overrides the value label shown in help.
func Metavar(name string) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.Attrs.Metavar = name
	}
}

// Hidden hides the option from help output.
func Hidden() FieldOption {
	return func(fd *FieldDescriptor) {
		fd.Attrs.Hidden = true
	}
}

// EnvVar overrides the environment variable name read when an env prefix is configured.
func EnvVar(name string) FieldOption {
	return func(fd *FieldDescriptor) {
		fd.Attrs.EnvVar = name
	}
}

// Required reports whether the field has no default.
func (fd *FieldDescriptor) Required() bool {
	return !fd.HasDefault
}

// Shape returns the resolved option shape.
func (fd *FieldDescriptor) Shape() Shape {
	return fd.shape
}

// OptionFlags returns the declared flags, or "--<name>" when none were given.
func (fd *FieldDescriptor) OptionFlags() []string {
	if len(fd.Flags) == 0 {
		return []string{"--" + fd.Name}
	}
	return append([]string(nil), fd.Flags...)
}

// defaultValue returns a fresh default value.
func (fd *FieldDescriptor) defaultValue() any {
	if fd.DefaultFunc != nil {
		return fd.DefaultFunc()
	}
	return fd.Default
}

// splitFlags separates long and short declarations and validates their form.
func (fd *FieldDescriptor) splitFlags() (longs []string, short string, err error) {
	for _, decl := range fd.OptionFlags() {
		switch {
		case strings.HasPrefix(decl, "--") && len(decl) > 2:
			name := decl[2:]
			if !isValidFlagName(name) {
				return nil, "", fmt.Errorf("invalid option declaration %q", decl)
			}
			longs = append(longs, name)
		case strings.HasPrefix(decl, "-") && len(decl) == 2 && decl[1] != '-':
			if short != "" {
				return nil, "", fmt.Errorf("more than one short option (%q, %q)", "-"+short, decl)
			}
			short = decl[1:]
		default:
			return nil, "", fmt.Errorf("invalid option declaration %q", decl)
		}
	}
	return longs, short, nil
}
