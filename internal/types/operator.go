package types

import "slices"

var VALID_OPERATORS = []Operator{
	OperatorEquals, OperatorNotEquals, OperatorGreaterThan,
	OperatorLessThan, OperatorContains, OperatorHasValue,
}

type Operator string

const (
	OperatorEquals      Operator = "EQUALS"
	OperatorNotEquals   Operator = "NOT_EQUALS"
	OperatorGreaterThan Operator = "GREATER_THAN"
	OperatorLessThan    Operator = "LESS_THAN"
	OperatorContains    Operator = "CONTAINS"
	// HAS_VALUE matches records where the field is present. It takes no literal.
	OperatorHasValue Operator = "HAS_VALUE"
)

func (op Operator) IsValid() bool {
	return slices.Contains(VALID_OPERATORS, op)
}

func (op Operator) TakesLiteral() bool {
	return op != OperatorHasValue
}
