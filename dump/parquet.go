package dump

import (
	"encoding/json"
	"fmt"

	"github.com/iankressin/eql-sub000/engine"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

const parquetWriters = 4

type parquetSchema struct {
	Tag    string          `json:"Tag"`
	Fields []parquetSchema `json:"Fields,omitempty"`
}

// parquetSchemaFor declares every column as an optional UTF8 string
func parquetSchemaFor(header []string) (string, error) {
	schema := parquetSchema{Tag: "name=eql_result, repetitiontype=REQUIRED"}

	for _, column := range header {
		schema.Fields = append(schema.Fields, parquetSchema{
			Tag: fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", column),
		})
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}

func writeParquet(path string, result engine.ExpressionResult) (err error) {
	header, rows, err := Table(result)
	if err != nil {
		return err
	}

	if len(header) == 0 {
		return fmt.Errorf("%w: no populated columns to write", ErrSerialization)
	}

	schema, err := parquetSchemaFor(header)
	if err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := fw.Close(); err == nil {
			err = cerr
		}
	}()

	pw, err := writer.NewJSONWriter(schema, fw, parquetWriters)
	if err != nil {
		return err
	}

	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		record := make(map[string]string, len(header))

		for i, column := range header {
			if row[i] != "" {
				record[column] = row[i]
			}
		}

		raw, err := json.Marshal(record)
		if err != nil {
			return err
		}

		if err := pw.Write(string(raw)); err != nil {
			return err
		}
	}

	return pw.WriteStop()
}
