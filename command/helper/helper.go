package helper

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/iankressin/eql-sub000/command"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

// FormatList formats a list into a string
func FormatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"

	return columnize.Format(in, columnConf)
}

// FormatKV formats key value pairs:
//
// Key = Value
//
// Key = <none>
func FormatKV(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	columnConf.Glue = " = "

	return columnize.Format(in, columnConf)
}

// FormatTable aligns a header and its rows into columns, empty cells print as "-"
func FormatTable(header []string, rows [][]string) string {
	if len(header) == 0 {
		return "<no columns>"
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.ToUpper(strings.Join(header, "|")))

	for _, row := range rows {
		lines = append(lines, strings.Join(row, "|"))
	}

	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "-"
	columnConf.Glue = "  "

	return columnize.Format(lines, columnConf)
}

// RegisterJSONOutputFlag registers the --json output setting for all child commands
func RegisterJSONOutputFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().Bool(
		command.JSONOutputFlag,
		false,
		"get all outputs in json format (default false)",
	)
}

// RegisterLogLevelFlag registers the --log-level setting for all child commands
func RegisterLogLevelFlag(cmd *cobra.Command) {
	cmd.PersistentFlags().String(
		command.LogLevelFlag,
		command.DefaultLogLevel,
		"the log level for console output",
	)
}

// RegisterPprofFlag registers the pprof flags on cmd
func RegisterPprofFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(
		command.PprofFlag,
		false,
		"enable the pprof server",
	)

	cmd.Flags().String(
		command.PprofAddressFlag,
		command.DefaultPprofAddress,
		"the address the pprof server listens on",
	)
}

// NewLogger builds the console logger at the level given by --log-level
func NewLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Info

	if flag := cmd.Flag(command.LogLevelFlag); flag != nil {
		if parsed := hclog.LevelFromString(flag.Value.String()); parsed != hclog.NoLevel {
			level = parsed
		}
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   command.DefaultServiceName,
		Level:  level,
		Output: cmd.ErrOrStderr(),
	})
}
