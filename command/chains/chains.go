package chains

import (
	"github.com/iankressin/eql-sub000/chain"
	"github.com/iankressin/eql-sub000/command"
	"github.com/iankressin/eql-sub000/command/helper"
	"github.com/iankressin/eql-sub000/config"
	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "Lists the supported chains and the rpc endpoint each one resolves to",
		Run:   runCommand,
	}

	return chainsCmd
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := command.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	logger := helper.NewLogger(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		outputter.SetError(err)

		return
	}

	logger.Debug("config loaded", "path", cfg.Path)

	outputter.SetCommandResult(newChainsResult(cfg))
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString(command.ConfigFlag); path != "" {
		return config.ReadFile(path)
	}

	return config.Load(helper.NewLogger(cmd))
}

func newChainsResult(cfg *config.Config) *ChainsResult {
	result := &ChainsResult{
		ConfigPath: cfg.Path,
		Chains:     make([]ChainInfo, 0, len(chain.All())),
	}

	for _, c := range chain.All() {
		result.Chains = append(result.Chains, ChainInfo{
			Name:    c.String(),
			ChainID: c.ChainID(),
			RPC:     cfg.RPC(c),
		})
	}

	return result
}
