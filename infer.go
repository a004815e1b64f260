// FILE: lixenwraith/cliconfig/infer.go
package cliconfig

import "reflect"

// Shape is the command-line form of a field derived from its declared type.
type Shape struct {
	// Base is the scalar type each option value is parsed into; nil means unset.
	Base reflect.Type
	// Multiple marks repeatable options collecting a list.
	Multiple bool
	// Choice marks a single-select set over Choices.
	Choice  bool
	Choices []any
	// Nullable is set for unions containing Null.
	Nullable bool
}

// Infer maps a declared type to its option shape. It is a pure function of t.
func Infer(t *Type) Shape {
	if t == nil {
		return Shape{}
	}

	switch t.kind {
	case KindLiteral:
		return Shape{Choice: true, Choices: t.Values()}

	case KindList:
		elem := Infer(t.args[0])
		s := Shape{Multiple: true}
		switch t.args[0].kind {
		case KindScalar:
			s.Base = elem.Base
		case KindLiteral:
			s.Choice = true
			s.Choices = elem.Choices
		}
		return s

	case KindPlainList:
		return Shape{Multiple: true}

	case KindUnion:
		arms, nullable := t.nonNullArms()
		if len(arms) == 1 {
			s := Infer(arms[0])
			s.Nullable = s.Nullable || nullable
			return s
		}
		// Ambiguous unions leave Base unset; an explicit type attr decides.
		return Shape{Nullable: nullable}

	case KindNull:
		return Shape{Nullable: true}

	default:
		return Shape{Base: t.rtype}
	}
}

// resolveShape combines inference with explicit attributes. The explicit type
// replaces the inferred base or choice set; multiplicity comes from the annotation.
func resolveShape(schema string, fd *FieldDescriptor) (Shape, error) {
	s := Infer(fd.Type)

	if fd.Attrs.Multiple != nil {
		if s.Multiple && !*fd.Attrs.Multiple {
			return Shape{}, &SchemaDefinitionError{
				Schema: schema,
				Field:  fd.Name,
				Reason: "annotation " + fd.Type.String() + " is not compatible with multiple set to false",
			}
		}
		s.Multiple = s.Multiple || *fd.Attrs.Multiple
	}

	if fd.Attrs.Type != nil {
		explicit := Infer(fd.Attrs.Type)
		s.Base = explicit.Base
		s.Choice = explicit.Choice
		s.Choices = explicit.Choices
	}

	return s, nil
}
