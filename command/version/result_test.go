package version

import (
	"encoding/json"
	"testing"

	"github.com/iankressin/eql-sub000/chain"
	"github.com/iankressin/eql-sub000/versioning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionResult(t *testing.T) {
	t.Parallel()

	result := newVersionResult()

	assert.Equal(t, versioning.Version, result.Version)
	assert.Len(t, result.Chains, len(chain.All()))
	assert.Equal(t, []string{"json", "csv", "parquet"}, result.DumpFormats)

	out := result.GetOutput()
	assert.Contains(t, out, versioning.Version)
	assert.Contains(t, out, "Dump Formats")
	assert.Contains(t, out, "json, csv, parquet")
}

func TestVersionResultUnknownBuild(t *testing.T) {
	t.Parallel()

	result := &VersionResult{Version: "v1.0.0", GoVersion: "go1.21.0", Chains: []string{"eth"}}

	assert.Contains(t, result.GetOutput(), "unknown")

	buf, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NotContains(t, string(buf), "commit")
	assert.Contains(t, string(buf), `"chains":["eth"]`)
}
