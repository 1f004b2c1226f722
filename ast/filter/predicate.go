package filter

import (
	"cmp"
	"fmt"

	"github.com/holiman/uint256"
)

// Predicate is a closed equality or comparison test against a fixed value
type Predicate[T any] struct {
	op      Operator
	value   T
	compare func(a, b T) int
}

// NewEquality builds an Eq or Neq predicate
func NewEquality[T comparable](op Operator, value T) (Predicate[T], error) {
	if op.Kind() != Equality {
		return Predicate[T]{}, &InvalidOperatorError{Operator: op.String(), Kind: Equality}
	}

	return Predicate[T]{op: op, value: value, compare: equal[T]}, nil
}

// NewComparison builds a Gt, Gte, Lt or Lte predicate
func NewComparison[T cmp.Ordered](op Operator, value T) (Predicate[T], error) {
	if op.Kind() != Comparison {
		return Predicate[T]{}, &InvalidOperatorError{Operator: op.String(), Kind: Comparison}
	}

	return Predicate[T]{op: op, value: value, compare: cmp.Compare[T]}, nil
}

// NewNumeric accepts any operator, choosing the family from op
func NewNumeric[T cmp.Ordered](op Operator, value T) (Predicate[T], error) {
	if op.Kind() == Equality {
		return NewEquality(op, value)
	}

	return NewComparison(op, value)
}

// NewBigEquality builds an Eq or Neq predicate over 256 bit integers
func NewBigEquality(op Operator, value *uint256.Int) (Predicate[*uint256.Int], error) {
	if op.Kind() != Equality {
		return Predicate[*uint256.Int]{}, &InvalidOperatorError{Operator: op.String(), Kind: Equality}
	}

	return newBig(op, value)
}

// NewBigComparison builds a Gt, Gte, Lt or Lte predicate over 256 bit integers
func NewBigComparison(op Operator, value *uint256.Int) (Predicate[*uint256.Int], error) {
	if op.Kind() != Comparison {
		return Predicate[*uint256.Int]{}, &InvalidOperatorError{Operator: op.String(), Kind: Comparison}
	}

	return newBig(op, value)
}

// NewBigNumeric accepts any operator over 256 bit integers
func NewBigNumeric(op Operator, value *uint256.Int) (Predicate[*uint256.Int], error) {
	return newBig(op, value)
}

func newBig(op Operator, value *uint256.Int) (Predicate[*uint256.Int], error) {
	if value == nil {
		return Predicate[*uint256.Int]{}, fmt.Errorf("nil value for %s predicate", op)
	}

	return Predicate[*uint256.Int]{op: op, value: new(uint256.Int).Set(value), compare: compareBig}, nil
}

func equal[T comparable](a, b T) int {
	if a == b {
		return 0
	}

	return 1
}

func compareBig(a, b *uint256.Int) int {
	return a.Cmp(b)
}

func (p Predicate[T]) Operator() Operator {
	return p.op
}

func (p Predicate[T]) Kind() Kind {
	return p.op.Kind()
}

func (p Predicate[T]) Value() T {
	return p.value
}

// Compare evaluates the predicate against candidate. The zero Predicate matches nothing.
func (p Predicate[T]) Compare(candidate T) bool {
	if p.compare == nil {
		return false
	}

	c := p.compare(candidate, p.value)

	switch p.op {
	case Eq:
		return c == 0
	case Neq:
		return c != 0
	case Gt:
		return c > 0
	case Gte:
		return c >= 0
	case Lt:
		return c < 0
	case Lte:
		return c <= 0
	}

	return false
}

func (p Predicate[T]) String() string {
	return fmt.Sprintf("%s %v", p.op, p.value)
}

// All folds results with AND. Every result is computed by the caller before the fold.
func All(results ...bool) bool {
	ok := true

	for _, r := range results {
		ok = ok && r
	}

	return ok
}
