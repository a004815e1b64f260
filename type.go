// File: lixenwraith/cliconfig/type.go
package cliconfig

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// String retrieves a field value as a string.
// Attempts conversion from common types if the stored value isn't already a string.
func (i *Instance) String(name string) (string, error) {
	val, found := i.Get(name)
	if !found {
		return "", fmt.Errorf("field not declared: %s", name)
	}
	if val == nil {
		return "", nil // Treat nil as empty string for convenience
	}

	if strVal, ok := val.(string); ok {
		return strVal, nil
	}

	switch v := val.(type) {
	case fmt.Stringer:
		return v.String(), nil
	case FilePath:
		return string(v), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("cannot convert type %T to string for field %s", val, name)
	}
}

// Int64 retrieves a field value as an int64.
// Attempts conversion from numeric types and parsable strings.
func (i *Instance) Int64(name string) (int64, error) {
	val, found := i.Get(name)
	if !found {
		return 0, fmt.Errorf("field not declared: %s", name)
	}
	if val == nil {
		return 0, fmt.Errorf("value for field %s is nil, cannot convert to int64", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		maxInt64 := int64(^uint64(0) >> 1)
		if u > uint64(maxInt64) {
			return 0, fmt.Errorf("cannot convert unsigned integer %d to int64 for field %s: overflow", u, name)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil
	case reflect.String:
		s := v.String()
		n, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert string %q to int64 for field %s: %w", s, name, err)
		}
		return n, nil
	}

	return 0, fmt.Errorf("cannot convert type %T to int64 for field %s", val, name)
}

// Int is Int64 narrowed to int.
func (i *Instance) Int(name string) (int, error) {
	n, err := i.Int64(name)
	return int(n), err
}

// Bool retrieves a field value as a bool.
func (i *Instance) Bool(name string) (bool, error) {
	val, found := i.Get(name)
	if !found {
		return false, fmt.Errorf("field not declared: %s", name)
	}
	if val == nil {
		return false, fmt.Errorf("value for field %s is nil, cannot convert to bool", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		s := v.String()
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("cannot convert string %q to bool for field %s: %w", s, name, err)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	}

	return false, fmt.Errorf("cannot convert type %T to bool for field %s", val, name)
}

// Float64 retrieves a field value as a float64.
func (i *Instance) Float64(name string) (float64, error) {
	val, found := i.Get(name)
	if !found {
		return 0.0, fmt.Errorf("field not declared: %s", name)
	}
	if val == nil {
		return 0.0, fmt.Errorf("value for field %s is nil, cannot convert to float64", name)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := v.String()
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0.0, fmt.Errorf("cannot convert string %q to float64 for field %s: %w", s, name, err)
		}
		return f, nil
	}

	return 0.0, fmt.Errorf("cannot convert type %T to float64 for field %s", val, name)
}

// Duration retrieves a field value as a time.Duration.
func (i *Instance) Duration(name string) (time.Duration, error) {
	val, found := i.Get(name)
	if !found {
		return 0, fmt.Errorf("field not declared: %s", name)
	}
	d, err := decodeScalar(val, reflect.TypeOf(time.Duration(0)))
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return d.(time.Duration), nil
}

// Strings retrieves a multi-valued field as a []string.
func (i *Instance) Strings(name string) ([]string, error) {
	val, found := i.Get(name)
	if !found {
		return nil, fmt.Errorf("field not declared: %s", name)
	}
	if val == nil {
		return nil, nil
	}
	if s, ok := val.([]string); ok {
		return append([]string(nil), s...), nil
	}

	items, err := toSlice(val)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", name, err)
	}
	out := make([]string, len(items))
	for n, item := range items {
		out[n] = fmt.Sprint(item)
	}
	return out, nil
}
