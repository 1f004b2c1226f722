package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iankressin/eql-sub000/command"
	"github.com/iankressin/eql-sub000/command/helper"
	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run [query]",
		Short: "Runs one or more queries and prints the results",
		Example: `  eql run "GET timestamp FROM block 1 ON eth"
  eql run --file queries.eql`,
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	setFlags(runCmd)

	return runCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.file,
		fileFlag,
		"",
		"read the queries from this file instead of the arguments",
	)
}

func runPreRun(_ *cobra.Command, args []string) error {
	return params.initQuery(args)
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	session, err := helper.NewSession(cmd)
	if err != nil {
		outputter.SetError(err)

		return
	}

	defer func() {
		if err := session.Close(); err != nil {
			session.Logger.Error("failed to close session", "err", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := session.Interpreter.Eval(ctx, params.query)
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(NewQueryResult(results))
}
