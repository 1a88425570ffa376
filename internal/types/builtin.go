package types

import "slices"

var VALID_FIELD_KINDS = []FieldKind{
	FieldKindString, FieldKindInteger, FieldKindFloat, FieldKindEnum,
}

// FieldKind is the declared value kind of a collision field.
type FieldKind string

const (
	FieldKindString  FieldKind = "STRING"
	FieldKindInteger FieldKind = "INTEGER"
	FieldKindFloat   FieldKind = "FLOAT"
	FieldKindEnum    FieldKind = "ENUM"
)

func (k FieldKind) IsValid() bool {
	return slices.Contains(VALID_FIELD_KINDS, k)
}

// IsTextual reports whether values of the kind are carried in the string slot.
func (k FieldKind) IsTextual() bool {
	return k == FieldKindString || k == FieldKindEnum
}

func (k FieldKind) IsNumeric() bool {
	return k == FieldKindInteger || k == FieldKindFloat
}

// Noun is the kind in prose with its article, e.g. "an integer".
func (k FieldKind) Noun() string {
	switch k {
	case FieldKindString:
		return "a string"
	case FieldKindInteger:
		return "an integer"
	case FieldKindFloat:
		return "a float"
	case FieldKindEnum:
		return "an enum"
	}
	return "an unknown"
}
