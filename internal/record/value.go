package record

import (
	"fmt"
	"strconv"

	"github.com/collisiondb/collisiondb/internal/types"
)

// Value is one optional, typed cell of a collision row. The zero Value is
// absent.
type Value struct {
	kind    types.FieldKind
	s       string
	i       int64
	f       float64
	present bool
}

func StringValue(s string) Value { return Value{kind: types.FieldKindString, s: s, present: true} }
func EnumValue(s string) Value   { return Value{kind: types.FieldKindEnum, s: s, present: true} }
func IntValue(i int64) Value     { return Value{kind: types.FieldKindInteger, i: i, present: true} }
func FloatValue(f float64) Value { return Value{kind: types.FieldKindFloat, f: f, present: true} }

func (v Value) Present() bool         { return v.present }
func (v Value) Kind() types.FieldKind { return v.kind }
func (v Value) Str() string           { return v.s }
func (v Value) Int() int64            { return v.i }
func (v Value) Float() float64        { return v.f }

// Any returns the payload as a plain Go value, or nil when absent.
func (v Value) Any() any {
	if !v.present {
		return nil
	}
	switch v.kind {
	case types.FieldKindInteger:
		return v.i
	case types.FieldKindFloat:
		return v.f
	default:
		return v.s
	}
}

func (v Value) String() string {
	if !v.present {
		return "<absent>"
	}
	switch v.kind {
	case types.FieldKindInteger:
		return strconv.FormatInt(v.i, 10)
	case types.FieldKindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return fmt.Sprintf("%q", v.s)
	}
}
