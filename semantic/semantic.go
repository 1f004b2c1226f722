package semantic

import (
	"fmt"

	"github.com/iankressin/eql-sub000/ast"
)

// InvalidFieldError reports a requested field that belongs to another entity
type InvalidFieldError struct {
	Field  ast.Field
	Entity ast.EntityKind
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s for entity %s: %s is a %s field",
		e.Field, e.Entity, e.Field, e.Field.Kind())
}

// Analyze checks that every requested field belongs to the queried entity
func Analyze(exprs []ast.Expression) error {
	for _, expr := range exprs {
		get, ok := expr.(*ast.Get)
		if !ok {
			continue
		}

		if err := analyzeGet(get); err != nil {
			return err
		}
	}

	return nil
}

func analyzeGet(get *ast.Get) error {
	if get.Entity == nil {
		return nil
	}

	kind := get.Entity.Kind()

	for _, f := range get.Fields {
		if f.Kind() != kind {
			return &InvalidFieldError{Field: f, Entity: kind}
		}
	}

	return nil
}
