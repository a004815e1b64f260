// FILE: lixenwraith/cliconfig/instance.go
package cliconfig

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Instance holds one value for every field of a schema.
type Instance struct {
	schema  *Schema
	values  map[string]any
	sources map[string]Source
}

// Schema returns the schema the instance belongs to.
func (i *Instance) Schema() *Schema { return i.schema }

// Get returns the value of a field. The second result is false for unknown names.
func (i *Instance) Get(name string) (any, bool) {
	v, ok := i.values[name]
	return v, ok
}

// Source reports where the value of a field came from.
func (i *Instance) Source(name string) Source {
	return i.sources[name]
}

// Map returns the fields and values as a flat mapping.
func (i *Instance) Map() map[string]any {
	out := make(map[string]any, len(i.values))
	for k, v := range i.values {
		out[k] = v
	}
	return out
}

// Decode fills target, a pointer to a struct or map, using "toml" tags.
func (i *Instance) Decode(target any) error {
	return decodeStruct(i.Map(), target)
}

// Save writes the instance to path; the format follows the file extension.
func (i *Instance) Save(path string) error {
	return i.schema.Save(i, path)
}

// With returns a copy with the given fields replaced, validated against the schema.
func (i *Instance) With(overwrite map[string]any) (*Instance, error) {
	values := i.Map()
	for k, v := range overwrite {
		values[k] = v
	}
	inst, err := i.schema.New(values)
	if err != nil {
		return nil, err
	}
	for k, src := range i.sources {
		if _, replaced := overwrite[k]; !replaced {
			inst.sources[k] = src
		}
	}
	return inst, nil
}

// Equal compares schema identity and field values.
func (i *Instance) Equal(other *Instance) bool {
	if other == nil || i.schema != other.schema {
		return false
	}
	return reflect.DeepEqual(i.values, other.values)
}

// MarshalJSON encodes the flat mapping.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Map())
}

// Repr renders the instance as Name(field=value, ...) in field order.
func (i *Instance) Repr() string {
	var b strings.Builder
	b.WriteString(i.schema.name)
	b.WriteByte('(')
	for n, fd := range i.schema.fields {
		if n > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%#v", fd.Name, i.values[fd.Name])
	}
	b.WriteByte(')')
	return b.String()
}
