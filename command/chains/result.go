package chains

import (
	"fmt"
	"strings"

	"github.com/iankressin/eql-sub000/command/helper"
)

type ChainInfo struct {
	Name    string `json:"name"`
	ChainID uint64 `json:"chain_id"`
	RPC     string `json:"rpc"`
}

type ChainsResult struct {
	ConfigPath string      `json:"config_path,omitempty"`
	Chains     []ChainInfo `json:"chains"`
}

func (r *ChainsResult) GetOutput() string {
	var buffer strings.Builder

	buffer.WriteString("\n[CHAINS]\n")

	if r.ConfigPath != "" {
		buffer.WriteString(fmt.Sprintf("Config: %s\n", r.ConfigPath))
	}

	rows := make([]string, len(r.Chains)+1)
	rows[0] = "Name|Chain ID|RPC"

	for i, c := range r.Chains {
		rows[i+1] = fmt.Sprintf("%s|%d|%s", c.Name, c.ChainID, c.RPC)
	}

	buffer.WriteString(helper.FormatList(rows))
	buffer.WriteString("\n")

	return buffer.String()
}
