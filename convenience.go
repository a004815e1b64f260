// File: lixenwraith/cliconfig/convenience.go
package cliconfig

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Main builds a CLI for schema, runs it with os.Args and exits with its status.
// Schema definition errors panic, as they are programming errors.
func Main(schema *Schema, handler Handler, opts ...CLIOption) {
	cli := MustBuildCLI(schema, handler, opts...)
	os.Exit(cli.Run(os.Args[1:]))
}

// MustBuildCLI is like BuildCLI but panics on error
func MustBuildCLI(schema *Schema, handler Handler, opts ...CLIOption) *CLI {
	cli, err := BuildCLI(schema, handler, opts...)
	if err != nil {
		panic(fmt.Sprintf("cli build failed: %v", err))
	}
	return cli
}

// Debug returns a formatted string showing all field values and their sources
func (i *Instance) Debug() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Configuration %s:\n", i.schema.name)

	for _, fd := range i.schema.fields {
		fmt.Fprintf(&b, "  %s:\n", fd.Name)
		fmt.Fprintf(&b, "    Value:  %v\n", i.values[fd.Name])
		fmt.Fprintf(&b, "    Source: %s\n", i.sources[fd.Name])
		if fd.HasDefault {
			fmt.Fprintf(&b, "    Default: %v\n", fd.defaultValue())
		} else {
			b.WriteString("    Required\n")
		}
	}

	return b.String()
}

// Dump writes the instance to w in TOML format
func (i *Instance) Dump(w io.Writer) error {
	data := make(map[string]any, len(i.values))
	for k, v := range i.values {
		if nv := normalizeForFile(v); nv != nil {
			data[k] = nv
		}
	}
	return toml.NewEncoder(w).Encode(data)
}

// Clone creates a copy of the instance. Slice values are copied one level deep.
func (i *Instance) Clone() *Instance {
	clone := &Instance{
		schema:  i.schema,
		values:  make(map[string]any, len(i.values)),
		sources: make(map[string]Source, len(i.sources)),
	}
	for k, v := range i.values {
		clone.values[k] = copyValue(v)
	}
	for k, s := range i.sources {
		clone.sources[k] = s
	}
	return clone
}
