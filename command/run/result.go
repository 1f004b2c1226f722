package run

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iankressin/eql-sub000/command/helper"
	"github.com/iankressin/eql-sub000/dump"
	"github.com/iankressin/eql-sub000/engine"
)

// QueryResult renders engine results as one table per query
type QueryResult struct {
	Results []engine.QueryResult
}

func NewQueryResult(results []engine.QueryResult) *QueryResult {
	return &QueryResult{Results: results}
}

func (r *QueryResult) MarshalJSON() ([]byte, error) {
	if r.Results == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(r.Results)
}

func (r *QueryResult) GetOutput() string {
	var buffer strings.Builder

	for i, result := range r.Results {
		if i > 0 {
			buffer.WriteString("\n\n")
		}

		buffer.WriteString(fmt.Sprintf("> %s\n", result.Query))

		header, rows, err := dump.Table(result.Result)
		if err != nil {
			buffer.WriteString(err.Error())

			continue
		}

		if len(rows) == 0 {
			buffer.WriteString(fmt.Sprintf("no %s found", result.Result.Kind()))

			continue
		}

		buffer.WriteString(helper.FormatTable(header, rows))
		buffer.WriteString(fmt.Sprintf("\n(%d rows)", len(rows)))
	}

	return buffer.String()
}
