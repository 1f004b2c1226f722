package root

import (
	"fmt"
	"os"

	"github.com/iankressin/eql-sub000/command/chains"
	"github.com/iankressin/eql-sub000/command/helper"
	"github.com/iankressin/eql-sub000/command/repl"
	"github.com/iankressin/eql-sub000/command/run"
	"github.com/iankressin/eql-sub000/command/version"
	"github.com/spf13/cobra"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:           "eql",
			Short:         "EQL queries accounts, blocks, transactions and logs of EVM chains over JSON-RPC",
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}

	helper.RegisterJSONOutputFlag(rootCommand.baseCmd)
	helper.RegisterLogLevelFlag(rootCommand.baseCmd)
	helper.RegisterQueryFlags(rootCommand.baseCmd)

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		chains.GetCommand(),
		run.GetCommand(),
		repl.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
