// FILE: lixenwraith/cliconfig/option_test.go
package cliconfig

import (
	"net"
	"net/url"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		spec OptionSpec
		want string
	}{
		{OptionSpec{Type: reflect.TypeOf(0)}, "INTEGER"},
		{OptionSpec{Type: reflect.TypeOf(uint8(0))}, "INTEGER"},
		{OptionSpec{Type: reflect.TypeOf(0.0)}, "FLOAT"},
		{OptionSpec{Type: reflect.TypeOf("")}, "TEXT"},
		{OptionSpec{Type: reflect.TypeOf(false)}, "BOOLEAN"},
		{OptionSpec{Type: reflect.TypeOf(time.Second)}, "DURATION"},
		{OptionSpec{Type: reflect.TypeOf(FilePath(""))}, "PATH"},
		{OptionSpec{Type: reflect.TypeOf(url.URL{})}, "URL"},
		{OptionSpec{Type: reflect.TypeOf(net.IP{})}, "IP"},
		{OptionSpec{}, "TEXT"},
		{OptionSpec{Choices: []any{"sgd", "adam"}}, "[sgd|adam]"},
		{OptionSpec{Type: reflect.TypeOf(0), Metavar: "N"}, "N"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Label())
		})
	}
}

func TestOptionValue(t *testing.T) {
	t.Run("SingleUnsetUntilSet", func(t *testing.T) {
		v := &optionValue{spec: OptionSpec{Type: reflect.TypeOf(0)}}
		assert.True(t, IsUnset(v.value()))
		assert.Equal(t, "", v.String())

		require.NoError(t, v.Set("3"))
		require.NoError(t, v.Set("4"))
		assert.Equal(t, 4, v.value(), "last occurrence wins")
		assert.Equal(t, "4", v.String())
	})

	t.Run("MultipleAppends", func(t *testing.T) {
		v := &optionValue{spec: OptionSpec{Type: reflect.TypeOf(""), Multiple: true}}
		assert.Equal(t, []any{}, v.value())

		require.NoError(t, v.Set("x"))
		require.NoError(t, v.Set("y"))
		assert.Equal(t, []any{"x", "y"}, v.value())
		assert.Equal(t, "x,y", v.String())
	})

	t.Run("ChoiceRejectsOthers", func(t *testing.T) {
		v := &optionValue{spec: OptionSpec{Choices: []any{"a", "b"}}}
		assert.ErrorIs(t, v.Set("c"), ErrInvalidChoice)
		assert.NoError(t, v.Set("a"))
		assert.Equal(t, "[a|b]", v.Type())
	})

	t.Run("TypeErrors", func(t *testing.T) {
		v := &optionValue{spec: OptionSpec{Type: reflect.TypeOf(0.0)}}
		assert.Error(t, v.Set("fast"))
		assert.True(t, IsUnset(v.value()))
	})
}

func TestPathValue(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "c.toml", "a = 1")

	var p pathValue
	assert.NoError(t, p.Set(file))
	assert.Equal(t, file, p.String())
	assert.Equal(t, "FILE", p.Type())

	assert.ErrorContains(t, p.Set(filepath.Join(dir, "none.toml")), "does not exist")
	assert.ErrorContains(t, p.Set(dir), "is a directory")
}

func TestUnset(t *testing.T) {
	assert.True(t, IsUnset(Unset))
	assert.False(t, IsUnset(nil))
	assert.False(t, IsUnset(""))
	assert.Equal(t, "<unset>", Unset.(interface{ String() string }).String())
}
