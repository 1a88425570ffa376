package query

import (
	"encoding/json"
	"strings"

	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/types"
)

// Condition is one predicate over a single field. Not inverts the outcome;
// CaseInsensitive only applies to textual fields.
type Condition struct {
	Field           schema.Field
	Operator        types.Operator
	Literal         Literal
	Not             bool
	CaseInsensitive bool

	// name as received, for error messages about unknown fields
	field_name string
}

func Where(field schema.Field, op types.Operator, literal Literal) Condition {
	return Condition{Field: field, Operator: op, Literal: literal}
}

func (c Condition) Negate() Condition {
	c.Not = !c.Not
	return c
}

func (c Condition) IgnoreCase() Condition {
	c.CaseInsensitive = true
	return c
}

func (c Condition) fieldName() string {
	if c.Field.IsValid() || c.field_name == "" {
		return c.Field.String()
	}
	return c.field_name
}

func (c Condition) String() string {
	var sb strings.Builder
	sb.WriteString(c.fieldName())
	if c.Not {
		sb.WriteString(" NOT")
	}
	sb.WriteString(" ")
	sb.WriteString(string(c.Operator))
	if c.Literal.Kind() != LiteralNone {
		sb.WriteString(" ")
		sb.WriteString(c.Literal.String())
	}
	if c.CaseInsensitive {
		sb.WriteString(" (case insensitive)")
	}
	return sb.String()
}

type wireCondition struct {
	Field           string   `json:"field"`
	Operator        string   `json:"operator"`
	StrData         *string  `json:"str_data,omitempty"`
	IntData         *int64   `json:"int_data,omitempty"`
	FloatData       *float64 `json:"float_data,omitempty"`
	Not             bool     `json:"not,omitempty"`
	CaseInsensitive bool     `json:"case_insensitive,omitempty"`
}

// UnmarshalJSON decodes the wire form. Unknown field and operator names are
// kept so that Validate can reject them.
func (c *Condition) UnmarshalJSON(buf []byte) error {
	var w wireCondition
	if err := json.Unmarshal(buf, &w); err != nil {
		return invalidQuery("Invalid condition: %s", err.Error())
	}

	set := 0
	var literal Literal
	if w.StrData != nil {
		set++
		literal = StringLiteral(*w.StrData)
	}
	if w.IntData != nil {
		set++
		literal = IntLiteral(*w.IntData)
	}
	if w.FloatData != nil {
		set++
		literal = FloatLiteral(*w.FloatData)
	}
	if set > 1 {
		return invalidQuery("Condition on %s sets more than one value", w.Field)
	}

	field, ok := schema.Lookup(w.Field)
	if !ok {
		field = schema.Field(-1)
	}

	*c = Condition{
		Field:           field,
		Operator:        types.Operator(w.Operator),
		Literal:         literal,
		Not:             w.Not,
		CaseInsensitive: w.CaseInsensitive,
		field_name:      w.Field,
	}
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	w := wireCondition{
		Field:           c.fieldName(),
		Operator:        string(c.Operator),
		Not:             c.Not,
		CaseInsensitive: c.CaseInsensitive,
	}
	switch c.Literal.Kind() {
	case LiteralString:
		s := c.Literal.Str()
		w.StrData = &s
	case LiteralInteger:
		i := c.Literal.Int()
		w.IntData = &i
	case LiteralFloat:
		f := c.Literal.Float()
		w.FloatData = &f
	}
	return json.Marshal(w)
}

// Validate checks a condition against the field registry. It never looks
// at records.
func Validate(c Condition) error {
	if !c.Field.IsValid() {
		return invalidQuery("Unknown field %q", c.fieldName())
	}
	if !c.Operator.IsValid() {
		return invalidQuery("Unknown operator %q", c.Operator)
	}

	kind := c.Field.Kind()
	if !schema.Allowed(kind, c.Operator) {
		return invalidQuery("Operator %s is not supported for %s field %s", c.Operator, kind, c.Field)
	}

	if c.Operator.TakesLiteral() {
		if c.Literal.Kind() == LiteralNone {
			return invalidQuery("Operator %s on %s requires a value", c.Operator, c.Field)
		}
		if !c.Literal.Fits(kind) {
			return invalidQuery("Field %s expects %s value, got %s", c.Field, kind.Noun(), c.Literal.Kind())
		}
	} else if c.Literal.Kind() != LiteralNone {
		return invalidQuery("Operator %s takes no value", c.Operator)
	}

	if c.CaseInsensitive && !schema.AllowsCaseInsensitive(kind) {
		return invalidQuery("Case insensitive comparison is not supported for %s field %s", kind, c.Field)
	}

	if kind == types.FieldKindEnum &&
		(c.Operator == types.OperatorEquals || c.Operator == types.OperatorNotEquals) &&
		!c.Field.IsEnumMember(c.Literal.Str(), c.CaseInsensitive) {
		return invalidQuery("%s is not a valid %s value, expected one of %s",
			c.Literal, c.Field, strings.Join(c.Field.EnumMembers(), ", "))
	}

	return nil
}

// Request is an ordered conjunction of conditions. An empty request
// matches every record.
type Request struct {
	Conditions []Condition `json:"conditions"`
}

func NewRequest(conditions ...Condition) Request {
	return Request{Conditions: conditions}
}

// Validate checks every condition and reports the first failure.
func (r Request) Validate() error {
	for i, c := range r.Conditions {
		if err := Validate(c); err != nil {
			return invalidQuery("condition %d: %s", i, err.Error())
		}
	}
	return nil
}
