package filter

import (
	"fmt"
	"strings"
)

// Operator is a predicate operator as written in a WHERE clause
type Operator int

const (
	Eq Operator = iota
	Neq
	Gt
	Gte
	Lt
	Lte
)

// Kind is the predicate family an operator belongs to
type Kind int

const (
	Equality Kind = iota
	Comparison
)

func (k Kind) String() string {
	if k == Equality {
		return "equality"
	}

	return "comparison"
}

// InvalidOperatorError is returned when an operator does not fit the predicate family
type InvalidOperatorError struct {
	Operator string
	Kind     Kind
}

func (e *InvalidOperatorError) Error() string {
	return fmt.Sprintf("invalid %s operator %q", e.Kind, e.Operator)
}

// ParseOperator accepts grammar symbols (= != > >= < <=) and their word forms
func ParseOperator(token string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "=", "==", "eq":
		return Eq, nil
	case "!=", "<>", "neq":
		return Neq, nil
	case ">", "gt":
		return Gt, nil
	case ">=", "gte":
		return Gte, nil
	case "<", "lt":
		return Lt, nil
	case "<=", "lte":
		return Lte, nil
	}

	return Eq, &InvalidOperatorError{Operator: token, Kind: Comparison}
}

func (o Operator) Kind() Kind {
	if o == Eq || o == Neq {
		return Equality
	}

	return Comparison
}

func (o Operator) String() string {
	switch o {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Gt:
		return ">"
	case Gte:
		return ">="
	case Lt:
		return "<"
	case Lte:
		return "<="
	}

	return fmt.Sprintf("Operator(%d)", int(o))
}
