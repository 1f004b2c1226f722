package dump

import (
	"encoding/csv"
	"os"

	"github.com/iankressin/eql-sub000/engine"
)

func writeCSV(path string, result engine.ExpressionResult) (err error) {
	header, rows, err := Table(result)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)

	if err := w.Write(header); err != nil {
		return err
	}

	if err := w.WriteAll(rows); err != nil {
		return err
	}

	return w.Error()
}
