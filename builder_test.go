// FILE: lixenwraith/cliconfig/builder_test.go
package cliconfig

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchemaBuilder tests the fluent schema declaration
func TestSchemaBuilder(t *testing.T) {
	t.Run("DeclarationOrder", func(t *testing.T) {
		s, err := NewSchema("Order").
			Field("zeta", Int, Default(1)).
			Field("alpha", String, Default("a")).
			Field("mid", Bool, Default(false)).
			Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, s.FieldNames())
		assert.Equal(t, "Order", s.Name())
	})

	t.Run("PlainAttributesAreNotFields", func(t *testing.T) {
		s, err := NewSchema("Attrs").
			Field("lr", Float, Default(0.1)).
			Attr("registry", map[string]int{"x": 1}).
			Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"lr"}, s.FieldNames())

		_, isField := s.Field("registry")
		assert.False(t, isField)
		v, ok := s.Attr("registry")
		require.True(t, ok)
		assert.Equal(t, map[string]int{"x": 1}, v)
	})

	t.Run("DescriptorWithoutAnnotation", func(t *testing.T) {
		_, err := NewSchema("Bad").Field("x", nil, Default(1)).Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSchemaDefinition)

		var defErr *SchemaDefinitionError
		require.True(t, errors.As(err, &defErr))
		assert.Equal(t, "x", defErr.Field)
	})

	t.Run("DescriptorAsPlainAttribute", func(t *testing.T) {
		_, err := NewSchema("Bad").Attr("x", Help("oops")).Build()
		assert.ErrorIs(t, err, ErrSchemaDefinition)

		_, err = NewSchema("Bad").Attr("y", []FieldOption{Default(1)}).Build()
		assert.ErrorIs(t, err, ErrSchemaDefinition)
	})

	t.Run("InvalidDeclarations", func(t *testing.T) {
		tests := []struct {
			name    string
			builder *SchemaBuilder
		}{
			{"Duplicate", NewSchema("S").Field("a", Int).Field("a", String)},
			{"ReservedName", NewSchema("S").Field(SeriesKey, Int)},
			{"InvalidName", NewSchema("S").Field("a.b", Int)},
			{"EmptyName", NewSchema("S").Field("", Int)},
			{"FlagWithoutDash", NewSchema("S").Field("a", Int, Flags("a"))},
			{"TwoShortFlags", NewSchema("S").Field("a", Int, Flags("-a", "-b"))},
			{"BadLongFlag", NewSchema("S").Field("a", Int, Flags("--a b"))},
			{"DefaultOfWrongType", NewSchema("S").Field("a", Int, Default("many"))},
			{"DefaultNotAChoice", NewSchema("S").Field("a", Literal("x", "y"), Default("z"))},
			{"MultipleConflict", NewSchema("S").Field("a", List(Int), Multiple(false))},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := tt.builder.Build()
				assert.ErrorIs(t, err, ErrSchemaDefinition)
			})
		}
	})

	t.Run("ErrorsAccumulate", func(t *testing.T) {
		_, err := NewSchema("S").
			Field("a", nil).
			Field("b", Int, Default("x")).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `field "a"`)
		assert.Contains(t, err.Error(), `field "b"`)
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSchema("S").Field("a", nil).MustBuild()
		})
	})

	t.Run("NilDefaultForOptional", func(t *testing.T) {
		s, err := NewSchema("S").Field("seed", Optional(Int), Default(nil)).Build()
		require.NoError(t, err)
		fd, _ := s.Field("seed")
		assert.False(t, fd.Required())
		assert.True(t, fd.Shape().Nullable)
	})

	t.Run("LogsFinalization", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
		NewSchema("Logged").WithLogger(logger).Field("a", Int).MustBuild()
		assert.Contains(t, buf.String(), `"schema":"Logged"`)
		assert.Contains(t, buf.String(), "schema finalized")
	})
}

// TestHelpResolution tests explicit help, documentation help and no help
func TestHelpResolution(t *testing.T) {
	s, err := NewSchema("Doc").
		WithDoc(`Training run.

:param epochs: number of epochs
:param lr: learning rate from doc
`).
		Field("epochs", Int).
		Field("lr", Float, Help("explicit lr help"), Default(0.1)).
		Field("seed", Int, Default(0)).
		Build()
	require.NoError(t, err)

	epochs, _ := s.Field("epochs")
	assert.Equal(t, "number of epochs", epochs.Help)

	lr, _ := s.Field("lr")
	assert.Equal(t, "explicit lr help", lr.Help)

	seed, _ := s.Field("seed")
	assert.Equal(t, "", seed.Help)

	t.Run("EmptyExplicitHelpWins", func(t *testing.T) {
		s, err := NewSchema("Doc").
			WithDoc(":param a: from doc").
			Field("a", Int, Help("")).
			Build()
		require.NoError(t, err)
		a, _ := s.Field("a")
		assert.Equal(t, "", a.Help)
	})
}

func TestFieldDescriptor(t *testing.T) {
	s := NewSchema("S").
		Field("tags", List(String), DefaultFunc(func() any { return []string{"a"} })).
		Field("name", String, Flags("-n", "--name")).
		MustBuild()

	tags, _ := s.Field("tags")
	assert.False(t, tags.Required())
	assert.Equal(t, []string{"--tags"}, tags.OptionFlags())

	// Factories produce a fresh value per call
	first := tags.defaultValue().([]string)
	first[0] = "changed"
	assert.Equal(t, []string{"a"}, tags.defaultValue())

	name, _ := s.Field("name")
	assert.True(t, name.Required())
	assert.Equal(t, []string{"-n", "--name"}, name.OptionFlags())

	fields := s.Fields()
	fields[0] = nil
	assert.NotNil(t, s.Fields()[0], "Fields returns a copy")
}
