package command

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type jsonOutput struct {
	commonOutputFormatter

	out io.Writer
	err io.Writer
}

func newJSONOutput(cmd *cobra.Command) *jsonOutput {
	return &jsonOutput{
		out: cmd.OutOrStdout(),
		err: cmd.ErrOrStderr(),
	}
}

func (jo *jsonOutput) WriteOutput() {
	if jo.errorOutput != nil {
		_, _ = fmt.Fprintln(jo.err, jo.getErrorOutput())

		os.Exit(1)
	}

	if jo.commandOutput != nil {
		_, _ = fmt.Fprintln(jo.out, jo.getCommandOutput())
	}
}

func (jo *jsonOutput) getErrorOutput() string {
	return marshalJSONToString(
		struct {
			Err string `json:"error"`
		}{
			Err: jo.errorOutput.Error(),
		},
	)
}

func (jo *jsonOutput) getCommandOutput() string {
	return marshalJSONToString(jo.commandOutput)
}

func marshalJSONToString(input interface{}) string {
	bytes, err := json.Marshal(input)
	if err != nil {
		return err.Error()
	}

	return string(bytes)
}
