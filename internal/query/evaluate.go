package query

import (
	"fmt"
	"strings"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/types"
)

// predicate is a condition prepared for repeated evaluation.
type predicate struct {
	cond Condition
	kind types.FieldKind
	// literal text, lower-cased when the condition is case insensitive
	text string
}

func compile(c Condition) (predicate, error) {
	if !c.Field.IsValid() {
		return predicate{}, invalidQuery("Unknown field %q", c.fieldName())
	}
	kind := c.Field.Kind()
	if !schema.Allowed(kind, c.Operator) {
		return predicate{}, fmt.Errorf("%w: %s on %s field %s", ErrUnsupportedOperator, c.Operator, kind, c.Field)
	}
	if c.Operator.TakesLiteral() && !c.Literal.Fits(kind) {
		return predicate{}, fmt.Errorf("%w: %s value for %s field %s", ErrTypeMismatch, c.Literal.Kind(), kind, c.Field)
	}

	p := predicate{cond: c, kind: kind, text: c.Literal.Str()}
	if c.CaseInsensitive && kind.IsTextual() {
		p.text = strings.ToLower(p.text)
	}
	return p, nil
}

func (p predicate) match(rec *record.Record) (bool, error) {
	v := rec.Get(p.cond.Field)
	if v.Present() && v.Kind() != p.kind {
		return false, fmt.Errorf("%w: record %d holds a %s value in %s field %s",
			ErrTypeMismatch, rec.ID(), v.Kind(), p.kind, p.cond.Field)
	}

	matched := v.Present() && p.test(v)
	if p.cond.Not {
		matched = !matched
	}
	return matched, nil
}

// test applies the operator to a present value.
func (p predicate) test(v record.Value) bool {
	op := p.cond.Operator
	if op == types.OperatorHasValue {
		return true
	}

	switch p.kind {
	case types.FieldKindInteger:
		return compareOrdered(op, v.Int(), p.cond.Literal.Int())
	case types.FieldKindFloat:
		return compareOrdered(op, v.Float(), p.cond.Literal.Float())
	default:
		s := v.Str()
		if p.cond.CaseInsensitive {
			s = strings.ToLower(s)
		}
		if op == types.OperatorContains {
			return strings.Contains(s, p.text)
		}
		return compareOrdered(op, s, p.text)
	}
}

func compareOrdered[T int64 | float64 | string](op types.Operator, value, literal T) bool {
	switch op {
	case types.OperatorEquals:
		return value == literal
	case types.OperatorNotEquals:
		return value != literal
	case types.OperatorGreaterThan:
		return value > literal
	case types.OperatorLessThan:
		return value < literal
	}
	return false
}

// Evaluate tests a single condition against a record. The condition is
// expected to have passed Validate; otherwise a TypeMismatch or
// UnsupportedOperator error is returned.
func Evaluate(c Condition, rec *record.Record) (bool, error) {
	p, err := compile(c)
	if err != nil {
		return false, err
	}
	return p.match(rec)
}
