package interpreter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/iankressin/eql-sub000/config"
	"github.com/iankressin/eql-sub000/engine"
	"github.com/iankressin/eql-sub000/parser"
	"github.com/iankressin/eql-sub000/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blockOne = `{
	"number": "0x1",
	"hash": "0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6",
	"parentHash": "0xd4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3",
	"timestamp": "0x55ba4224",
	"size": "0x219",
	"gasLimit": "0x1388",
	"gasUsed": "0x0",
	"miner": "0x05a56e2d52c817161883f50c441c3228cfe54d9f",
	"transactions": []
}`

// newNode serves block 1 of mainnet and nothing else
func newNode(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)

			return
		}

		result := "null"
		if req.Method == "eth_getBlockByNumber" && len(req.Params) > 0 && string(req.Params[0]) == `"0x1"` {
			result = blockOne
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + result + `}`))
	}))

	t.Cleanup(srv.Close)

	return srv.URL
}

func TestEvalBlockTimestamp(t *testing.T) {
	t.Parallel()

	url := newNode(t)
	dir := t.TempDir()

	i := New(hclog.NewNullLogger(), config.DefaultConfig(), WithDumpDir(dir))
	defer i.Close()

	results, err := i.Eval(context.Background(), "GET number, timestamp FROM block 1 ON "+url+" >> block.json\n")
	require.NoError(t, err)
	require.Len(t, results, 1)

	rows, ok := results[0].Result.(engine.BlockResult)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(1438269988), *rows[0].Timestamp)
	assert.Equal(t, uint64(1), i.Requests())

	raw, err := os.ReadFile(filepath.Join(dir, "block.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"number":1,"timestamp":1438269988}]`, string(raw))
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()

	url := newNode(t)

	i := New(hclog.NewNullLogger(), config.DefaultConfig())
	defer i.Close()

	_, err := i.Eval(context.Background(), "GET number FROM blok 1 ON "+url)

	var unexpected *parser.UnexpectedTokenError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, "blok", unexpected.Token)

	_, err = i.Eval(context.Background(), "GET nonce FROM block 1 ON "+url)

	var invalid *semantic.InvalidFieldError
	assert.ErrorAs(t, err, &invalid)

	_, err = i.Eval(context.Background(), "GET number FROM block 2 ON "+url)
	assert.ErrorIs(t, err, engine.ErrBlockNotFound)
}
