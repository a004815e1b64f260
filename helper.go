// File: lixenwraith/cliconfig/helper.go
package cliconfig

import (
	"reflect"
	"strings"
)

// isValidKeySegment checks if a field name is a valid TOML bare key.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	// TOML bare keys are sequences of ASCII letters, ASCII digits, underscores, and dashes (A-Za-z0-9_-).
	if strings.ContainsRune(s, '.') {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isUnderscore := r == '_'
		isDash := r == '-'

		if !(isLetter || isDigit || isUnderscore || isDash) {
			return false
		}
	}
	return true
}

// isValidFlagName checks the part of a long option after "--".
func isValidFlagName(s string) bool {
	return isValidKeySegment(s) && !strings.HasPrefix(s, "-")
}

// copyValue copies slices so a clone does not share backing arrays.
func copyValue(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice || rv.IsNil() {
		return v
	}
	dst := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	reflect.Copy(dst, rv)
	return dst.Interface()
}
