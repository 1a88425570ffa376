package query_test

import (
	"errors"
	"testing"

	. "github.com/collisiondb/collisiondb/internal/query"
	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/types"
	"gotest.tools/assert"
)

func TestEvaluate(t *testing.T) {
	rec := record.NewBuilder().
		MustSet(schema.Borough, record.EnumValue("BROOKLYN")).
		MustSet(schema.ZipCode, record.IntValue(11208)).
		MustSet(schema.Latitude, record.FloatValue(40.667202)).
		MustSet(schema.OnStreetName, record.StringValue("Linden Boulevard")).
		MustSet(schema.CrashDate, record.StringValue("2021-09-11")).
		Build()

	cases := []struct {
		cond     Condition
		expected bool
	}{
		{Where(schema.Borough, types.OperatorEquals, StringLiteral("BROOKLYN")), true},
		{Where(schema.Borough, types.OperatorEquals, StringLiteral("QUEENS")), false},
		{Where(schema.Borough, types.OperatorEquals, StringLiteral("brooklyn")).IgnoreCase(), true},
		{Where(schema.Borough, types.OperatorNotEquals, StringLiteral("QUEENS")), true},
		{Where(schema.Borough, types.OperatorContains, StringLiteral("")), true},
		{Where(schema.Borough, types.OperatorContains, StringLiteral("OOK")), true},
		{Where(schema.OnStreetName, types.OperatorEquals, StringLiteral("linden boulevard")), false},
		{Where(schema.OnStreetName, types.OperatorContains, StringLiteral("BOULEVARD")).IgnoreCase(), true},
		{Where(schema.OnStreetName, types.OperatorContains, StringLiteral("BOULEVARD")), false},
		{Where(schema.OnStreetName, types.OperatorGreaterThan, StringLiteral("A")), true},
		{Where(schema.CrashDate, types.OperatorLessThan, StringLiteral("2022-01-01")), true},
		{Where(schema.CrashDate, types.OperatorGreaterThan, StringLiteral("2021-09-11")), false},
		{Where(schema.ZipCode, types.OperatorEquals, IntLiteral(11208)), true},
		{Where(schema.ZipCode, types.OperatorEquals, IntLiteral(11208)).Negate(), false},
		{Where(schema.ZipCode, types.OperatorGreaterThan, IntLiteral(11207)), true},
		{Where(schema.ZipCode, types.OperatorGreaterThan, IntLiteral(11208)), false},
		{Where(schema.ZipCode, types.OperatorLessThan, IntLiteral(11209)), true},
		{Where(schema.ZipCode, types.OperatorNotEquals, IntLiteral(11208)), false},
		{Where(schema.Latitude, types.OperatorGreaterThan, FloatLiteral(40.5)), true},
		{Where(schema.Latitude, types.OperatorLessThan, FloatLiteral(40.5)), false},
		{Where(schema.ZipCode, types.OperatorHasValue, Literal{}), true},

		// absent values fail every operator; NOT inverts that
		{Where(schema.CrossStreetName, types.OperatorHasValue, Literal{}), false},
		{Where(schema.CrossStreetName, types.OperatorHasValue, Literal{}).Negate(), true},
		{Where(schema.CrossStreetName, types.OperatorNotEquals, StringLiteral("X")), false},
		{Where(schema.CrossStreetName, types.OperatorContains, StringLiteral("")), false},
		{Where(schema.NumberOfPersonsKilled, types.OperatorLessThan, IntLiteral(1)), false},
		{Where(schema.NumberOfPersonsKilled, types.OperatorLessThan, IntLiteral(1)).Negate(), true},
	}

	for _, tc := range cases {
		t.Run(tc.cond.String(), func(t *testing.T) {
			ok, err := Evaluate(tc.cond, rec)
			assert.NilError(t, err)
			assert.Equal(t, ok, tc.expected)
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	rec := newRecord(row{"QUEENS", 11101})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := Evaluate(Where(schema.ZipCode, types.OperatorEquals, StringLiteral("11101")), rec)
		assert.Assert(t, errors.Is(err, ErrTypeMismatch))
		assert.Equal(t, AsQueryError(err).Status(), 500)
	})

	t.Run("unsupported operator", func(t *testing.T) {
		_, err := Evaluate(Where(schema.ZipCode, types.OperatorContains, IntLiteral(1)), rec)
		assert.Assert(t, errors.Is(err, ErrUnsupportedOperator))
	})
}
