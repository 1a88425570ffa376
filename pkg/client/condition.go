package client

import (
	"encoding/json"
	"fmt"
)

// Condition is one term of a query. Build it with Where.
type Condition struct {
	Field      Field    `json:"field"`
	Operator   Operator `json:"operator"`
	StrData    *string  `json:"str_data,omitempty"`
	IntData    *int64   `json:"int_data,omitempty"`
	FloatData  *float64 `json:"float_data,omitempty"`
	Negated    bool     `json:"not,omitempty"`
	IgnoreCase bool     `json:"case_insensitive,omitempty"`
}

// Where builds a condition. value must be a string, an integer, a float or
// nil (for HasValue).
func Where(field Field, op Operator, value any) Condition {
	c := Condition{Field: field, Operator: op}
	switch v := value.(type) {
	case nil:
	case string:
		c.StrData = &v
	case int:
		i := int64(v)
		c.IntData = &i
	case int64:
		c.IntData = &v
	case float64:
		c.FloatData = &v
	case float32:
		f := float64(v)
		c.FloatData = &f
	default:
		panic(fmt.Sprintf("unsupported condition value %T", value))
	}
	return c
}

func (c Condition) Not() Condition {
	c.Negated = !c.Negated
	return c
}

func (c Condition) CaseInsensitive() Condition {
	c.IgnoreCase = true
	return c
}

func (c Condition) String() string {
	buf, _ := json.Marshal(c)
	return string(buf)
}
