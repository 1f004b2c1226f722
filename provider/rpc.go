package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/types"
	web3 "github.com/umbracle/go-web3"
	"github.com/umbracle/go-web3/jsonrpc"
	"go.uber.org/atomic"
)

var nullResult = []byte("null")

// RPC is a Provider backed by an EVM JSON-RPC endpoint
type RPC struct {
	logger  hclog.Logger
	url     string
	client  *jsonrpc.Client
	metrics *Metrics

	requests atomic.Uint64
}

// NewRPC dials the endpoint at url
func NewRPC(logger hclog.Logger, url string, metrics *Metrics) (*RPC, error) {
	client, err := jsonrpc.NewClient(url)
	if err != nil {
		return nil, fmt.Errorf("could not create rpc client for %s: %w", url, err)
	}

	if metrics == nil {
		metrics = NilMetrics()
	}

	return &RPC{
		logger:  logger.Named("rpc").With("url", url),
		url:     url,
		client:  client,
		metrics: metrics,
	}, nil
}

// URL returns the endpoint address
func (r *RPC) URL() string {
	return r.url
}

// Requests returns how many calls were sent so far
func (r *RPC) Requests() uint64 {
	return r.requests.Load()
}

func (r *RPC) Close() error {
	return r.client.Close()
}

// track counts a request against label and returns the callback that
// records its latency and outcome
func (r *RPC) track(label EthAPILabels) func(failed bool) {
	r.requests.Inc()
	r.metrics.RequestsCounterInc()
	r.metrics.EthAPICounterInc(label)

	begin := time.Now()

	return func(failed bool) {
		r.metrics.ResponseTimeObserve(time.Since(begin).Seconds())

		if failed {
			r.metrics.ErrorsCounterInc()
		}
	}
}

// await runs fn on its own goroutine. The client has no context support, so
// a cancelled call is abandoned.
func await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type response struct {
		value T
		err   error
	}

	done := make(chan response, 1)

	go func() {
		value, err := fn()
		done <- response{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	case resp := <-done:
		return resp.value, resp.err
	}
}

// do runs one JSON-RPC call and decodes the result into out. A null result
// yields ErrNotFound and leaves out untouched.
func (r *RPC) do(
	ctx context.Context,
	label EthAPILabels,
	out interface{},
	params ...interface{},
) error {
	method := label["method"]
	finish := r.track(label)

	raw, err := await(ctx, func() (json.RawMessage, error) {
		var raw json.RawMessage

		err := r.client.Call(method, &raw, params...)

		return raw, err
	})
	if err != nil {
		finish(true)
		r.logger.Debug("call failed", "method", method, "err", err)

		return fmt.Errorf("%s: %w", method, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, nullResult) {
		finish(false)

		return ErrNotFound
	}

	if out == nil {
		finish(false)

		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		finish(true)

		return fmt.Errorf("%s: decode result: %w", method, err)
	}

	finish(false)

	return nil
}

// contractCall runs a read through a generated contract binding as one eth_call
func (r *RPC) contractCall(ctx context.Context, fn func() (web3.Address, error)) (types.Address, error) {
	finish := r.track(EthCallLabel)

	addr, err := await(ctx, fn)
	if err != nil {
		finish(true)
		r.logger.Debug("contract call failed", "err", err)

		return types.ZeroAddress, fmt.Errorf("%s: %w", EthCallLabel["method"], err)
	}

	finish(false)

	return types.Address(addr), nil
}

func (r *RPC) BlockNumber(ctx context.Context) (uint64, error) {
	var num types.Uint64
	if err := r.do(ctx, EthBlockNumberLabel, &num); err != nil {
		return 0, err
	}

	return uint64(num), nil
}

func (r *RPC) BlockByNumber(ctx context.Context, block ast.BlockNumberOrTag, full bool) (*Block, error) {
	b := new(Block)
	if err := r.do(ctx, EthGetBlockByNumberLabel, b, block.RPCArg(), full); err != nil {
		return nil, err
	}

	return b, nil
}

func (r *RPC) Balance(ctx context.Context, addr types.Address) (*uint256.Int, error) {
	var balance types.Big
	if err := r.do(ctx, EthGetBalanceLabel, &balance, addr, ast.TagLatest.String()); err != nil {
		return nil, err
	}

	return balance.Int(), nil
}

func (r *RPC) Nonce(ctx context.Context, addr types.Address) (uint64, error) {
	var nonce types.Uint64
	if err := r.do(ctx, EthGetTransactionCountLabel, &nonce, addr, ast.TagLatest.String()); err != nil {
		return 0, err
	}

	return uint64(nonce), nil
}

func (r *RPC) Code(ctx context.Context, addr types.Address) ([]byte, error) {
	var code types.Bytes
	if err := r.do(ctx, EthGetCodeLabel, &code, addr, ast.TagLatest.String()); err != nil {
		return nil, err
	}

	return code, nil
}

func (r *RPC) TransactionByHash(ctx context.Context, hash types.Hash) (*Transaction, error) {
	tx := new(Transaction)
	if err := r.do(ctx, EthGetTransactionByHashLabel, tx, hash); err != nil {
		return nil, err
	}

	return tx, nil
}

func (r *RPC) TransactionReceipt(ctx context.Context, hash types.Hash) (*Receipt, error) {
	receipt := new(Receipt)
	if err := r.do(ctx, EthGetTransactionReceiptLabel, receipt, hash); err != nil {
		return nil, err
	}

	return receipt, nil
}

func (r *RPC) Logs(ctx context.Context, query *LogQuery) ([]*Log, error) {
	arg, err := query.toArg()
	if err != nil {
		return nil, err
	}

	var logs []*Log
	if err := r.do(ctx, EthGetLogsLabel, &logs, arg); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	return logs, nil
}

func (r *RPC) ResolveName(ctx context.Context, name string) (types.Address, error) {
	return resolveName(ctx, r, name)
}
