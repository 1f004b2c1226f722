package command

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type cliOutput struct {
	commonOutputFormatter

	out io.Writer
	err io.Writer
}

func newCLIOutput(cmd *cobra.Command) *cliOutput {
	return &cliOutput{
		out: cmd.OutOrStdout(),
		err: cmd.ErrOrStderr(),
	}
}

func (cli *cliOutput) WriteOutput() {
	if cli.errorOutput != nil {
		_, _ = fmt.Fprintln(cli.err, cli.errorOutput.Error())

		os.Exit(1)
	}

	if cli.commandOutput != nil {
		_, _ = fmt.Fprintln(cli.out, cli.commandOutput.GetOutput())
	}
}
