// FILE: lixenwraith/cliconfig/register.go
package cliconfig

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// SchemaFromStruct declares one field per exported struct field, in order.
// The struct's values become defaults. Supported tags:
//
//	toml:"name"        field name ("-" skips the field)
//	flag:"-o,--outdir" option declarations
//	help:"text"        help text
//	choices:"a,b"      restrict values to a literal set
//	required:"true"    no default, the value must be supplied
//	env:"NAME"         environment variable name
//
// Decoding an Instance back into the struct uses the same toml names.
func SchemaFromStruct(name string, structWithDefaults any) *SchemaBuilder {
	b := NewSchema(name)

	v := reflect.ValueOf(structWithDefaults)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			b.errs = append(b.errs, &SchemaDefinitionError{Schema: name, Reason: "SchemaFromStruct requires a non-nil struct pointer or value"})
			return b
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		b.errs = append(b.errs, &SchemaDefinitionError{Schema: name, Reason: fmt.Sprintf("SchemaFromStruct requires a struct or struct pointer, got %T", structWithDefaults)})
		return b
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("toml")
		if tag == "-" {
			continue
		}
		key := field.Name
		if tag != "" {
			if parts := strings.Split(tag, ","); parts[0] != "" {
				key = parts[0]
			}
		}

		typ, err := fieldType(field)
		if err != nil {
			b.errs = append(b.errs, &SchemaDefinitionError{Schema: name, Field: key, Reason: err.Error()})
			continue
		}

		var opts []FieldOption
		if decls := field.Tag.Get("flag"); decls != "" {
			opts = append(opts, Flags(splitTagList(decls)...))
		}
		if help, ok := field.Tag.Lookup("help"); ok {
			opts = append(opts, Help(help))
		}
		if env := field.Tag.Get("env"); env != "" {
			opts = append(opts, EnvVar(env))
		}
		if field.Tag.Get("required") != "true" {
			opts = append(opts, structDefault(v.Field(i)))
		}

		b.Field(key, typ, opts...)
	}

	return b
}

// fieldType derives the declared type of a struct field, honoring the choices tag.
func fieldType(field reflect.StructField) (*Type, error) {
	ft := field.Type
	if ft.Kind() == reflect.Struct && ft != reflect.TypeOf(url.URL{}) && ft != reflect.TypeOf(time.Time{}) {
		return nil, fmt.Errorf("nested struct %s is not supported", ft)
	}

	choices := field.Tag.Get("choices")
	if choices == "" {
		return typeOf(ft), nil
	}

	elemType := ft
	isList := ft.Kind() == reflect.Slice
	if isList {
		elemType = ft.Elem()
	}

	var values []any
	for _, raw := range splitTagList(choices) {
		val, err := decodeScalar(raw, elemType)
		if err != nil {
			return nil, fmt.Errorf("choice %q: %w", raw, err)
		}
		values = append(values, val)
	}

	if isList {
		return List(Literal(values...)), nil
	}
	return Literal(values...), nil
}

// structDefault turns a struct field value into a default; slices get a copying factory.
func structDefault(fv reflect.Value) FieldOption {
	switch fv.Kind() {
	case reflect.Ptr:
		if fv.IsNil() {
			return Default(nil)
		}
		return Default(fv.Elem().Interface())
	case reflect.Slice:
		if fv.IsNil() {
			return Default(nil)
		}
		src := reflect.MakeSlice(fv.Type(), fv.Len(), fv.Len())
		reflect.Copy(src, fv)
		return DefaultFunc(func() any {
			dst := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
			reflect.Copy(dst, src)
			return dst.Interface()
		})
	}
	return Default(fv.Interface())
}

func splitTagList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
