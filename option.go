// FILE: lixenwraith/cliconfig/option.go
package cliconfig

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"
)

type unsetValue struct{}

func (unsetValue) String() string { return "<unset>" }

// Unset is the presented default of every field option. It marks an option
// that did not appear on the command line.
var Unset any = unsetValue{}

// IsUnset reports whether v is the Unset sentinel.
func IsUnset(v any) bool {
	_, ok := v.(unsetValue)
	return ok
}

// OptionSpec describes one command-line option synthesized from a field.
type OptionSpec struct {
	Flags    []string
	Target   string
	Type     reflect.Type // nil parses text
	Choices  []any
	Multiple bool
	Default  any
	Help     string
	Metavar  string
	Hidden   bool
}

// Label is the value placeholder shown in help output.
func (o OptionSpec) Label() string {
	if o.Metavar != "" {
		return o.Metavar
	}
	if o.Choices != nil {
		return "[" + formatChoices(o.Choices, "|") + "]"
	}
	return typeLabel(o.Type)
}

// parse converts one command-line argument.
func (o OptionSpec) parse(s string) (any, error) {
	if o.Choices != nil {
		return matchChoice(o.Choices, s)
	}
	if o.Type == nil {
		return s, nil
	}
	return decodeScalar(s, o.Type)
}

func typeLabel(t reflect.Type) string {
	if t == nil {
		return "TEXT"
	}
	switch t {
	case reflect.TypeOf(time.Duration(0)):
		return "DURATION"
	case reflect.TypeOf(FilePath("")):
		return "PATH"
	case reflect.TypeOf(url.URL{}), reflect.TypeOf(&url.URL{}):
		return "URL"
	case reflect.TypeOf(net.IP{}):
		return "IP"
	}
	switch t.Kind() {
	case reflect.String:
		return "TEXT"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "INTEGER"
	case reflect.Float32, reflect.Float64:
		return "FLOAT"
	case reflect.Bool:
		return "BOOLEAN"
	}
	return strings.ToUpper(t.Name())
}

// optionValue is the pflag.Value bound to one field option.
type optionValue struct {
	spec   OptionSpec
	values []any
	set    bool
}

func (v *optionValue) Set(s string) error {
	parsed, err := v.spec.parse(s)
	if err != nil {
		return err
	}
	if v.spec.Multiple {
		v.values = append(v.values, parsed)
	} else {
		v.values = []any{parsed}
	}
	v.set = true
	return nil
}

func (v *optionValue) String() string {
	if !v.set {
		return ""
	}
	if v.spec.Multiple {
		return formatChoices(v.values, ",")
	}
	return fmt.Sprint(v.values[0])
}

func (v *optionValue) Type() string {
	return v.spec.Label()
}

// value returns the parsed value, Unset, or the collected list for repeatable options.
func (v *optionValue) value() any {
	if v.spec.Multiple {
		return append([]any{}, v.values...)
	}
	if !v.set {
		return Unset
	}
	return v.values[0]
}

// pathValue is the config file option; it accepts existing readable files only.
type pathValue struct {
	path string
}

func (p *pathValue) Set(s string) error {
	info, err := os.Stat(s)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file '%s' does not exist", s)
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("file '%s' is a directory", s)
	}
	f, err := os.Open(s)
	if err != nil {
		return fmt.Errorf("file '%s' is not readable", s)
	}
	f.Close()

	p.path = s
	return nil
}

func (p *pathValue) String() string { return p.path }

func (p *pathValue) Type() string { return "FILE" }
