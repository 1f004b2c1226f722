package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/chain"
	"github.com/iankressin/eql-sub000/command/helper"
	"github.com/iankressin/eql-sub000/versioning"
)

type VersionResult struct {
	Version     string   `json:"version"`
	Commit      string   `json:"commit,omitempty"`
	BuildTime   string   `json:"buildTime,omitempty"`
	GoVersion   string   `json:"goVersion"`
	Chains      []string `json:"chains"`
	DumpFormats []string `json:"dumpFormats"`
}

func newVersionResult() *VersionResult {
	chains := chain.All()
	names := make([]string, 0, len(chains))

	for _, c := range chains {
		names = append(names, c.String())
	}

	return &VersionResult{
		Version:   versioning.Version,
		Commit:    versioning.ShortCommit(),
		BuildTime: versioning.BuildTime,
		GoVersion: runtime.Version(),
		Chains:    names,
		DumpFormats: []string{
			ast.DumpJSON.String(),
			ast.DumpCSV.String(),
			ast.DumpParquet.String(),
		},
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}

func (r *VersionResult) GetOutput() string {
	var s strings.Builder

	s.WriteString("\n[EQL]\n")
	s.WriteString(helper.FormatKV([]string{
		fmt.Sprintf("Version|%s", r.Version),
		fmt.Sprintf("Commit|%s", orUnknown(r.Commit)),
		fmt.Sprintf("Build Time|%s", orUnknown(r.BuildTime)),
		fmt.Sprintf("Go|%s", r.GoVersion),
		fmt.Sprintf("Chains|%d (%s)", len(r.Chains), strings.Join(r.Chains, ", ")),
		fmt.Sprintf("Dump Formats|%s", strings.Join(r.DumpFormats, ", ")),
	}))
	s.WriteString("\n")

	return s.String()
}
