package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/iankressin/eql-sub000/command"
	"github.com/iankressin/eql-sub000/command/helper"
	"github.com/iankressin/eql-sub000/command/run"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	replCmd := &cobra.Command{
		Use:     "repl",
		Short:   "Starts an interactive query prompt",
		PreRunE: runPreRun,
		RunE:    runCommand,
	}

	helper.RegisterPprofFlag(replCmd)

	setFlags(replCmd)

	return replCmd
}

func setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&params.historyPath,
		historyFlag,
		"",
		fmt.Sprintf("the history file (default ~/%s)", command.DefaultHistoryFile),
	)
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return params.initHistoryPath()
}

func runCommand(cmd *cobra.Command, _ []string) error {
	session, err := helper.NewSession(cmd)
	if err != nil {
		return err
	}

	defer func() {
		if err := session.Close(); err != nil {
			session.Logger.Error("failed to close session", "err", err)
		}
	}()

	command.InitializePprofServer(cmd, session.Logger)

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)

	loadHistory(line, session)
	defer saveHistory(line, session)

	for {
		text, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		text = strings.TrimSpace(text)

		switch strings.ToLower(text) {
		case "":
			continue
		case "exit", "quit", `\q`:
			return nil
		}

		line.AppendHistory(text)

		eval(cmd, session, text)
	}
}

// eval runs one prompt line. Failures are printed and the prompt continues.
func eval(cmd *cobra.Command, session *helper.Session, text string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := session.Interpreter.Eval(ctx, text)
	if err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)

		return
	}

	output := run.NewQueryResult(results)

	if flag := cmd.Flag(command.JSONOutputFlag); flag != nil && flag.Changed {
		raw, err := output.MarshalJSON()
		if err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), err)

			return
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(raw))

		return
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), output.GetOutput())
}

func loadHistory(line *liner.State, session *helper.Session) {
	f, err := os.Open(params.historyPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			session.Logger.Warn("failed to open history", "path", params.historyPath, "err", err)
		}

		return
	}

	defer f.Close()

	if _, err := line.ReadHistory(f); err != nil {
		session.Logger.Warn("failed to read history", "path", params.historyPath, "err", err)
	}
}

func saveHistory(line *liner.State, session *helper.Session) {
	f, err := os.OpenFile(params.historyPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		session.Logger.Warn("failed to save history", "path", params.historyPath, "err", err)

		return
	}

	defer f.Close()

	if _, err := line.WriteHistory(f); err != nil {
		session.Logger.Warn("failed to write history", "path", params.historyPath, "err", err)
	}
}
