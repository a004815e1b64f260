// FILE: lixenwraith/cliconfig/types.go
package cliconfig

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// Kind classifies a type expression.
type Kind int

const (
	KindScalar Kind = iota
	KindLiteral
	KindList
	KindPlainList
	KindUnion
	KindNull
)

// Type is the declared type of a field: a scalar Go type, a literal set,
// a list (with or without element type), a union, or null.
type Type struct {
	kind     Kind
	rtype    reflect.Type
	args     []*Type
	literals []any
}

// FilePath is a string scalar rendered as PATH in help output.
type FilePath string

// Predefined scalar types.
var (
	String   = Scalar(reflect.TypeOf(""))
	Int      = Scalar(reflect.TypeOf(0))
	Int64    = Scalar(reflect.TypeOf(int64(0)))
	Float    = Scalar(reflect.TypeOf(float64(0)))
	Bool     = Scalar(reflect.TypeOf(false))
	Duration = Scalar(reflect.TypeOf(time.Duration(0)))
	Path     = Scalar(reflect.TypeOf(FilePath("")))
	URL      = Scalar(reflect.TypeOf(url.URL{}))
	IP       = Scalar(reflect.TypeOf(net.IP{}))
	Null     = &Type{kind: KindNull}
)

// Scalar wraps a concrete Go type.
func Scalar(t reflect.Type) *Type {
	return &Type{kind: KindScalar, rtype: t}
}

// Literal describes a fixed set of allowed values.
func Literal(values ...any) *Type {
	vals := make([]any, len(values))
	copy(vals, values)
	return &Type{kind: KindLiteral, literals: vals}
}

// List describes a sequence whose elements have type elem.
func List(elem *Type) *Type {
	return &Type{kind: KindList, args: []*Type{elem}}
}

// PlainList describes a sequence without element type information.
func PlainList() *Type {
	return &Type{kind: KindPlainList}
}

// Union describes a value that may have any of the given types.
func Union(arms ...*Type) *Type {
	args := make([]*Type, len(arms))
	copy(args, arms)
	return &Type{kind: KindUnion, args: args}
}

// Optional is Union(t, Null).
func Optional(t *Type) *Type {
	return Union(t, Null)
}

// TypeFor derives a type expression from the Go type T.
func TypeFor[T any]() *Type {
	return typeOf(reflect.TypeOf((*T)(nil)).Elem())
}

// typeOf maps slices to List, pointers to Optional and everything else to Scalar.
// []byte and net.IP stay scalar.
func typeOf(t reflect.Type) *Type {
	switch {
	case t == reflect.TypeOf(net.IP{}):
		return Scalar(t)
	case t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return Scalar(t)
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		if t.Elem().Kind() == reflect.Interface {
			return PlainList()
		}
		return List(typeOf(t.Elem()))
	case t.Kind() == reflect.Ptr:
		return Optional(typeOf(t.Elem()))
	default:
		return Scalar(t)
	}
}

// Kind returns the expression's kind.
func (t *Type) Kind() Kind { return t.kind }

// Elem returns the element type of a List, or nil.
func (t *Type) Elem() *Type {
	if t.kind == KindList && len(t.args) == 1 {
		return t.args[0]
	}
	return nil
}

// Arms returns the members of a union.
func (t *Type) Arms() []*Type {
	if t.kind != KindUnion {
		return nil
	}
	return append([]*Type(nil), t.args...)
}

// Values returns the allowed values of a Literal.
func (t *Type) Values() []any {
	return append([]any(nil), t.literals...)
}

// GoType returns the reflect.Type of a scalar.
func (t *Type) GoType() reflect.Type { return t.rtype }

func (t *Type) String() string {
	switch t.kind {
	case KindScalar:
		return t.rtype.String()
	case KindLiteral:
		parts := make([]string, len(t.literals))
		for i, v := range t.literals {
			parts[i] = fmt.Sprintf("%#v", v)
		}
		return "Literal[" + strings.Join(parts, ", ") + "]"
	case KindList:
		return "List[" + t.args[0].String() + "]"
	case KindPlainList:
		return "list"
	case KindUnion:
		if len(t.args) == 2 && t.args[1].kind == KindNull {
			return "Optional[" + t.args[0].String() + "]"
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return "Union[" + strings.Join(parts, ", ") + "]"
	case KindNull:
		return "None"
	}
	return "unknown"
}

// nonNullArms returns union members other than Null, and whether a Null arm exists.
func (t *Type) nonNullArms() ([]*Type, bool) {
	var arms []*Type
	nullable := false
	for _, a := range t.args {
		if a.kind == KindNull {
			nullable = true
			continue
		}
		arms = append(arms, a)
	}
	return arms, nullable
}
