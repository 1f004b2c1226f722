package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// rpcServer answers every method from a fixed table of raw results
type rpcServer struct {
	lock     sync.Mutex
	results  map[string]string
	received []rpcRequest
	delay    time.Duration
}

func (s *rpcServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	s.lock.Lock()
	s.received = append(s.received, req)
	result, ok := s.results[req.Method]
	s.lock.Unlock()

	time.Sleep(s.delay)

	w.Header().Set("Content-Type", "application/json")

	if !ok {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) +
			`,"error":{"code":-32601,"message":"method not found"}}`))

		return
	}

	_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":` + string(req.ID) + `,"result":` + result + `}`))
}

func (s *rpcServer) params(method string) []json.RawMessage {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, req := range s.received {
		if req.Method == method {
			return req.Params
		}
	}

	return nil
}

func newTestRPC(t *testing.T, srv *rpcServer) *RPC {
	t.Helper()

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	r, err := NewRPC(hclog.NewNullLogger(), ts.URL, nil)
	require.NoError(t, err)

	t.Cleanup(func() { _ = r.Close() })

	return r
}

func TestRPCCalls(t *testing.T) {
	t.Parallel()

	addr := types.MustParseAddress(testMiner)
	srv := &rpcServer{results: map[string]string{
		"eth_blockNumber":           `"0x10d4f"`,
		"eth_getBalance":            `"0x0de0b6b3a7640000"`,
		"eth_getTransactionCount":   `"0x7"`,
		"eth_getCode":               `"0x6001"`,
		"eth_getBlockByNumber":      fmt.Sprintf(testBlockRaw, `[]`),
		"eth_getTransactionByHash":  `null`,
		"eth_getTransactionReceipt": `{"transactionHash":"` + testTxHash + `","status":"0x1","gasUsed":"0x5208"}`,
		"eth_getLogs":               `[{"address":"` + testMiner + `","topics":[],"data":"0x","removed":false}]`,
	}}

	r := newTestRPC(t, srv)
	ctx := context.Background()

	num, err := r.BlockNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x10d4f), num)

	balance, err := r.Balance(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", balance.Dec())

	nonce, err := r.Nonce(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), nonce)

	code, err := r.Code(ctx, addr)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x01}, code)

	block, err := r.BlockByNumber(ctx, ast.Number(1), false)
	require.NoError(t, err)
	assert.Equal(t, types.Uint64(1438269988), block.Timestamp)
	assert.JSONEq(t, `"0x1"`, string(srv.params("eth_getBlockByNumber")[0]))
	assert.JSONEq(t, `false`, string(srv.params("eth_getBlockByNumber")[1]))

	_, err = r.TransactionByHash(ctx, types.MustParseHash(testTxHash))
	assert.ErrorIs(t, err, ErrNotFound)

	receipt, err := r.TransactionReceipt(ctx, types.MustParseHash(testTxHash))
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())

	logs, err := r.Logs(ctx, &LogQuery{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, addr, logs[0].Address)

	assert.Equal(t, uint64(8), r.Requests())
}

func TestRPCError(t *testing.T) {
	t.Parallel()

	r := newTestRPC(t, &rpcServer{results: map[string]string{}})

	_, err := r.BlockNumber(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "eth_blockNumber")
}

func TestRPCContextCancelled(t *testing.T) {
	t.Parallel()

	r := newTestRPC(t, &rpcServer{
		results: map[string]string{"eth_blockNumber": `"0x1"`},
		delay:   500 * time.Millisecond,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.BlockNumber(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRPCMetrics(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	m, err := GetPrometheusMetrics("eql", registry, "chain", "eth")
	require.NoError(t, err)

	ts := httptest.NewServer(&rpcServer{results: map[string]string{"eth_blockNumber": `"0x1"`}})
	defer ts.Close()

	r, err := NewRPC(hclog.NewNullLogger(), ts.URL, m)
	require.NoError(t, err)

	defer r.Close()

	_, err = r.BlockNumber(context.Background())
	require.NoError(t, err)

	families, err := registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}

	assert.True(t, names["eql_rpc_requests"])
	assert.True(t, names["eql_rpc_eth_api_requests"])

	// registering twice on the same registry collides
	_, err = GetPrometheusMetrics("eql", registry, "chain", "eth")
	assert.Error(t, err)

	_, err = GetPrometheusMetrics("eql", prometheus.NewRegistry(), "odd")
	assert.Error(t, err)
}

func TestNilMetrics(t *testing.T) {
	t.Parallel()

	var m *Metrics

	assert.NotPanics(t, func() {
		m.RequestsCounterInc()
		m.ErrorsCounterInc()
		m.ResponseTimeObserve(1)
		m.EthAPICounterInc(EthCallLabel)
		NilMetrics().EthAPICounterInc(EthCallLabel)
	})
}
