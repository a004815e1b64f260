// FILE: lixenwraith/cliconfig/decode.go
package cliconfig

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// coerce converts a raw value from a file, the environment or the command line
// into the Go representation of the declared type.
func coerce(t *Type, v any) (any, error) {
	switch t.kind {
	case KindNull:
		if v == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("expected null, got %T", v)

	case KindScalar:
		if v == nil {
			return nil, fmt.Errorf("null value is not a %s", t)
		}
		return decodeScalar(v, t.rtype)

	case KindLiteral:
		return matchChoice(t.literals, v)

	case KindList:
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		elem := t.args[0]
		elemType := goType(elem)
		out := reflect.MakeSlice(reflect.SliceOf(elemType), 0, len(items))
		for i, item := range items {
			c, err := coerce(elem, item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if c == nil {
				out = reflect.Append(out, reflect.Zero(elemType))
			} else {
				out = reflect.Append(out, reflect.ValueOf(c))
			}
		}
		return out.Interface(), nil

	case KindPlainList:
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		for i, item := range items {
			items[i] = plainValue(item)
		}
		return items, nil

	case KindUnion:
		arms, nullable := t.nonNullArms()
		if v == nil {
			if nullable {
				return nil, nil
			}
			return nil, fmt.Errorf("null value is not a %s", t)
		}
		var firstErr error
		for _, arm := range arms {
			c, err := coerce(arm, v)
			if err == nil {
				return c, nil
			}
			if firstErr == nil {
				firstErr = err
			}
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("value %v does not match %s", v, t)
		}
		return nil, firstErr
	}

	return nil, fmt.Errorf("unsupported type expression %s", t)
}

// plainValue maps the number types of the file decoders onto int and float64
// so untyped list elements compare equal whichever format they came from.
func plainValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return plainValue(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := rv.Int(); n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n := rv.Uint(); n <= math.MaxInt {
			return int(n)
		}
	case reflect.Float32:
		return rv.Float()
	}
	return v
}

// goType returns the Go type used to store values of t.
func goType(t *Type) reflect.Type {
	switch t.kind {
	case KindScalar:
		return t.rtype
	case KindList:
		return reflect.SliceOf(goType(t.args[0]))
	case KindPlainList:
		return reflect.TypeOf([]any(nil))
	case KindLiteral:
		var common reflect.Type
		for _, v := range t.literals {
			if v == nil {
				return anyType
			}
			vt := reflect.TypeOf(v)
			if common != nil && common != vt {
				return anyType
			}
			common = vt
		}
		if common == nil {
			return anyType
		}
		return common
	}
	return anyType
}

// decodeScalar converts v into a value of type rt
func decodeScalar(v any, rt reflect.Type) (any, error) {
	if reflect.TypeOf(v) == rt {
		return v, nil
	}

	target := reflect.New(rt)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target.Interface(),
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(v); err != nil {
		return nil, fmt.Errorf("cannot convert %v (%T) to %s: %w", v, v, rt, err)
	}
	return target.Elem().Interface(), nil
}

// toSlice accepts any slice or array; a string is split on commas.
func toSlice(v any) ([]any, error) {
	if s, ok := v.(string); ok {
		if s == "" {
			return []any{}, nil
		}
		parts := strings.Split(s, ",")
		out := make([]any, len(parts))
		for i, p := range parts {
			out[i] = p
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// matchChoice returns the declared choice equal to v. Values read from files
// or the command line are compared by their printed form.
func matchChoice(choices []any, v any) (any, error) {
	for _, c := range choices {
		if reflect.DeepEqual(c, v) {
			return c, nil
		}
	}
	printed := fmt.Sprint(v)
	for _, c := range choices {
		if fmt.Sprint(c) == printed {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not one of %s", ErrInvalidChoice, printed, formatChoices(choices, ", "))
}

func formatChoices(choices []any, sep string) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		parts[i] = fmt.Sprint(c)
	}
	return strings.Join(parts, sep)
}

// decodeStruct decodes a flat mapping into target using the "toml" tag
func decodeStruct(values map[string]any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("decode into %T failed: %w", target, err)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}
		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToNetIPNetHookFunc handles net.IPNet conversion
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 49 { // Max IPv6 CIDR length
			return nil, fmt.Errorf("invalid CIDR length: %d", len(str))
		}
		_, ipnet, err := net.ParseCIDR(str)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR: %w", err)
		}
		if isPtr {
			return ipnet, nil
		}
		return *ipnet, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := data.(string)
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
