// FILE: lixenwraith/cliconfig/errors.go
package cliconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaDefinition marks errors raised while a schema is being built.
	ErrSchemaDefinition = errors.New("schema definition error")
	// ErrRequiredField is matched by every RequiredFieldMissing.
	ErrRequiredField = errors.New("required field missing")
	// ErrUnknownField is returned when input names a key that is not a schema field.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidChoice is returned when a value is not one of a literal field's choices.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrInvalidSeries is returned when the __series__ key is malformed.
	ErrInvalidSeries = errors.New("invalid series")
	// ErrUnsupportedFormat is returned for config files with an unrecognized extension.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	// ErrNullNotStorable is returned when saving a null that the file format would drop
	// and loading would replace with a default.
	ErrNullNotStorable = errors.New("null value cannot be stored")
	// ErrConfigNotFound is returned when a config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
	// ErrCLIParse wraps argument parsing failures.
	ErrCLIParse = errors.New("failed to parse command-line arguments")
)

// SchemaDefinitionError reports a contradiction or authoring mistake found at schema build time.
type SchemaDefinitionError struct {
	Schema string
	Field  string
	Reason string
}

func (e *SchemaDefinitionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema %q: %s", e.Schema, e.Reason)
	}
	return fmt.Sprintf("schema %q, field %q: %s", e.Schema, e.Field, e.Reason)
}

// Is allows errors.Is(err, ErrSchemaDefinition).
func (e *SchemaDefinitionError) Is(target error) bool {
	return target == ErrSchemaDefinition
}

// RequiredFieldMissing is returned when a field without a default has no value from any source.
type RequiredFieldMissing struct {
	Field string
}

func (e *RequiredFieldMissing) Error() string {
	return fmt.Sprintf("Required field '%s' was not set.", e.Field)
}

// Is allows errors.Is(err, ErrRequiredField).
func (e *RequiredFieldMissing) Is(target error) bool {
	return target == ErrRequiredField
}

// UnknownFieldError names a key that does not belong to the schema.
type UnknownFieldError struct {
	Schema string
	Key    string
	Origin string // "series" or empty
}

func (e *UnknownFieldError) Error() string {
	if e.Origin != "" {
		return fmt.Sprintf("%s key %q is not a field of schema %q", e.Origin, e.Key, e.Schema)
	}
	return fmt.Sprintf("key %q is not a field of schema %q", e.Key, e.Schema)
}

// Is allows errors.Is(err, ErrUnknownField).
func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// UsageError is a user-facing command-line error. Run exits with Code.
type UsageError struct {
	Err  error
	Code int
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func newUsageError(err error) *UsageError {
	return &UsageError{Err: err, Code: 2}
}
