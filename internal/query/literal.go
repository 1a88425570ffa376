package query

import (
	"fmt"
	"strconv"

	"github.com/collisiondb/collisiondb/internal/types"
)

type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralString
	LiteralInteger
	LiteralFloat
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralString:
		return "string"
	case LiteralInteger:
		return "integer"
	case LiteralFloat:
		return "float"
	default:
		return "none"
	}
}

// Literal is the comparison value of a condition. Exactly one slot is
// populated, or none for operators that take no value.
type Literal struct {
	kind LiteralKind
	s    string
	i    int64
	f    float64
}

func StringLiteral(s string) Literal { return Literal{kind: LiteralString, s: s} }
func IntLiteral(i int64) Literal     { return Literal{kind: LiteralInteger, i: i} }
func FloatLiteral(f float64) Literal { return Literal{kind: LiteralFloat, f: f} }

func (l Literal) Kind() LiteralKind { return l.kind }
func (l Literal) Str() string       { return l.s }
func (l Literal) Int() int64        { return l.i }
func (l Literal) Float() float64    { return l.f }

// Fits reports whether the literal can be compared with values of kind.
// There are no implicit conversions between numeric kinds.
func (l Literal) Fits(kind types.FieldKind) bool {
	switch kind {
	case types.FieldKindString, types.FieldKindEnum:
		return l.kind == LiteralString
	case types.FieldKindInteger:
		return l.kind == LiteralInteger
	case types.FieldKindFloat:
		return l.kind == LiteralFloat
	}
	return false
}

func (l Literal) String() string {
	switch l.kind {
	case LiteralString:
		return strconv.Quote(l.s)
	case LiteralInteger:
		return strconv.FormatInt(l.i, 10)
	case LiteralFloat:
		return strconv.FormatFloat(l.f, 'g', -1, 64)
	default:
		return "none"
	}
}

func (l Literal) key() string {
	return fmt.Sprintf("%d:%s", l.kind, l.String())
}
