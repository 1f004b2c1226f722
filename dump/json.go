package dump

import (
	"encoding/json"
	"os"

	"github.com/iankressin/eql-sub000/engine"
)

func writeJSON(path string, result engine.ExpressionResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o600)
}
