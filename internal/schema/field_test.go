package schema_test

import (
	"testing"

	. "github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/types"
	"gotest.tools/assert"
)

func TestLookup(t *testing.T) {
	t.Run("known fields", func(t *testing.T) {
		f, ok := Lookup("BOROUGH")
		assert.Assert(t, ok)
		assert.Equal(t, f, Borough)
		assert.Equal(t, f.Kind(), types.FieldKindEnum)

		f, ok = Lookup("ZIP_CODE")
		assert.Assert(t, ok)
		assert.Equal(t, f.Kind(), types.FieldKindInteger)
		assert.Equal(t, f.JSONName(), "zip_code")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, ok := Lookup("zip_code")
		assert.Assert(t, !ok)
		_, ok = Lookup("UNDEFINED")
		assert.Assert(t, !ok)
	})

	t.Run("every field resolves to itself", func(t *testing.T) {
		assert.Equal(t, len(All()), 29)
		for _, f := range All() {
			got, ok := Lookup(f.String())
			assert.Assert(t, ok, f.String())
			assert.Equal(t, got, f)
			assert.Assert(t, f.Kind().IsValid(), f.String())
		}
	})

	t.Run("invalid field", func(t *testing.T) {
		assert.Equal(t, Field(-1).String(), "UNDEFINED")
		assert.Equal(t, Field(FieldCount).Kind(), types.FieldKind(""))
	})
}

func TestAllowed(t *testing.T) {
	assert.Assert(t, Allowed(types.FieldKindInteger, types.OperatorEquals))
	assert.Assert(t, Allowed(types.FieldKindFloat, types.OperatorLessThan))
	assert.Assert(t, !Allowed(types.FieldKindInteger, types.OperatorContains))
	assert.Assert(t, !Allowed(types.FieldKindFloat, types.OperatorContains))
	assert.Assert(t, Allowed(types.FieldKindString, types.OperatorGreaterThan))
	assert.Assert(t, !Allowed(types.FieldKindEnum, types.OperatorGreaterThan))
	assert.Assert(t, Allowed(types.FieldKindEnum, types.OperatorContains))
	assert.Assert(t, !Allowed(types.FieldKind("DATE"), types.OperatorEquals))
}

func TestEnumMembers(t *testing.T) {
	assert.Assert(t, Borough.IsEnumMember("BROOKLYN", false))
	assert.Assert(t, !Borough.IsEnumMember("brooklyn", false))
	assert.Assert(t, Borough.IsEnumMember("brooklyn", true))
	assert.Assert(t, Borough.IsEnumMember("STATEN ISLAND", false))
	assert.Assert(t, !Borough.IsEnumMember("NEWARK", true))
	assert.Equal(t, len(ZipCode.EnumMembers()), 0)

	m, ok := Borough.CanonicalEnumMember("Staten Island")
	assert.Assert(t, ok)
	assert.Equal(t, m, "STATEN ISLAND")
	_, ok = Borough.CanonicalEnumMember("NEWARK")
	assert.Assert(t, !ok)
	_, ok = ZipCode.CanonicalEnumMember("11208")
	assert.Assert(t, !ok)
}
