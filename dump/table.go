package dump

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/iankressin/eql-sub000/engine"
)

// Table flattens a result into string cells. Columns follow the row field
// declaration order and only appear when at least one row populates them.
func Table(result engine.ExpressionResult) ([]string, [][]string, error) {
	if result == nil {
		return nil, nil, fmt.Errorf("%w: nil result", ErrSerialization)
	}

	rows := reflect.ValueOf(result)
	if rows.Kind() != reflect.Slice {
		return nil, nil, fmt.Errorf("%w: unexpected result %T", ErrSerialization, result)
	}

	rowType := rows.Type().Elem()
	if rowType.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("%w: unexpected row %s", ErrSerialization, rowType)
	}

	var (
		header  []string
		indexes []int
	)

	for i := 0; i < rowType.NumField(); i++ {
		name := columnName(rowType.Field(i))
		if name == "" {
			continue
		}

		for r := 0; r < rows.Len(); r++ {
			if !rows.Index(r).Field(i).IsNil() {
				header = append(header, name)
				indexes = append(indexes, i)

				break
			}
		}
	}

	cells := make([][]string, rows.Len())

	for r := range cells {
		row := rows.Index(r)
		cells[r] = make([]string, len(indexes))

		for c, i := range indexes {
			cell, err := formatCell(row.Field(i))
			if err != nil {
				return nil, nil, fmt.Errorf("%w: column %s: %w", ErrSerialization, header[c], err)
			}

			cells[r][c] = cell
		}
	}

	return header, cells, nil
}

func columnName(field reflect.StructField) string {
	tag, ok := field.Tag.Lookup("json")
	if !ok || tag == "-" || field.Type.Kind() != reflect.Ptr {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")

	return name
}

// formatCell renders one optional value, a nil pointer is an empty cell
func formatCell(v reflect.Value) (string, error) {
	if v.IsNil() {
		return "", nil
	}

	if m, ok := v.Interface().(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return "", err
		}

		return string(text), nil
	}

	return fmt.Sprint(v.Elem().Interface()), nil
}
