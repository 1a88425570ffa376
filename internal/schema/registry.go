package schema

import (
	"slices"
	"strings"

	"github.com/collisiondb/collisiondb/internal/types"
)

// Operators allowed per field kind. Ordering on String fields is byte-wise
// lexicographic; CRASH_DATE and CRASH_TIME are stored in a zero-padded form
// so that this ordering is also chronological.
var allowed_operators = map[types.FieldKind][]types.Operator{
	types.FieldKindString: {
		types.OperatorEquals, types.OperatorNotEquals, types.OperatorContains,
		types.OperatorHasValue, types.OperatorGreaterThan, types.OperatorLessThan,
	},
	types.FieldKindEnum: {
		types.OperatorEquals, types.OperatorNotEquals, types.OperatorContains,
		types.OperatorHasValue,
	},
	types.FieldKindInteger: {
		types.OperatorEquals, types.OperatorNotEquals, types.OperatorGreaterThan,
		types.OperatorLessThan, types.OperatorHasValue,
	},
	types.FieldKindFloat: {
		types.OperatorEquals, types.OperatorNotEquals, types.OperatorGreaterThan,
		types.OperatorLessThan, types.OperatorHasValue,
	},
}

// Allowed reports whether op is defined for values of kind.
func Allowed(kind types.FieldKind, op types.Operator) bool {
	return slices.Contains(allowed_operators[kind], op)
}

// AllowsCaseInsensitive reports whether the case-insensitive qualifier
// means anything for the kind.
func AllowsCaseInsensitive(kind types.FieldKind) bool {
	return kind.IsTextual()
}

var enum_members = map[Field][]string{
	Borough: {"BRONX", "BROOKLYN", "MANHATTAN", "QUEENS", "STATEN ISLAND"},
}

// EnumMembers returns the closed value set of an Enum field.
func (f Field) EnumMembers() []string {
	return enum_members[f]
}

// CanonicalEnumMember returns the member that value names, ignoring case.
func (f Field) CanonicalEnumMember(value string) (string, bool) {
	for _, m := range enum_members[f] {
		if strings.EqualFold(m, value) {
			return m, true
		}
	}
	return "", false
}

// IsEnumMember checks value against the field's members.
func (f Field) IsEnumMember(value string, case_insensitive bool) bool {
	for _, m := range enum_members[f] {
		if m == value || (case_insensitive && strings.EqualFold(m, value)) {
			return true
		}
	}
	return false
}
