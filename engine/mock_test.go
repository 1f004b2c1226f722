package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/provider"
	"github.com/iankressin/eql-sub000/types"
)

var errMockTransport = errors.New("connection refused")

type mockProvider struct {
	lock  sync.Mutex
	calls map[string]int

	latest   uint64
	tags     map[ast.BlockTag]uint64
	blocks   map[uint64]*provider.Block
	balances map[types.Address]*uint256.Int
	nonces   map[types.Address]uint64
	codes    map[types.Address][]byte
	txs      map[types.Hash]*provider.Transaction
	receipts map[types.Hash]*provider.Receipt
	logs     []*provider.Log
	names    map[string]types.Address

	// failing makes every call of the named method fail
	failing map[string]error
	// delay stalls block fetches, keyed by height
	delay func(n uint64) time.Duration

	lastLogQuery *provider.LogQuery
	fetched      []uint64
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		calls:    map[string]int{},
		tags:     map[ast.BlockTag]uint64{},
		blocks:   map[uint64]*provider.Block{},
		balances: map[types.Address]*uint256.Int{},
		nonces:   map[types.Address]uint64{},
		codes:    map[types.Address][]byte{},
		txs:      map[types.Hash]*provider.Transaction{},
		receipts: map[types.Hash]*provider.Receipt{},
		names:    map[string]types.Address{},
		failing:  map[string]error{},
	}
}

func (m *mockProvider) enter(method string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.calls[method]++

	return m.failing[method]
}

func (m *mockProvider) count(method string) int {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.calls[method]
}

func (m *mockProvider) total() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	total := 0
	for _, n := range m.calls {
		total += n
	}

	return total
}

func (m *mockProvider) addBlock(n uint64, txs ...*provider.Transaction) *provider.Block {
	block := &provider.Block{
		Number:    types.Uint64(n),
		Hash:      types.BytesToHash([]byte{byte(n >> 8), byte(n), 0xbb}),
		Timestamp: types.Uint64(1438269988 + 12*(n-1)),
		GasLimit:  5000,
		Miner:     types.MustParseAddress("0x05a56e2d52c817161883f50c441c3228cfe54d9f"),
	}

	for _, tx := range txs {
		tx.BlockNumber = &block.Number
		block.Transactions = append(block.Transactions, tx)
		block.TransactionHashes = append(block.TransactionHashes, tx.Hash)
		m.txs[tx.Hash] = tx
	}

	m.blocks[n] = block

	return block
}

func (m *mockProvider) BlockNumber(ctx context.Context) (uint64, error) {
	if err := m.enter("BlockNumber"); err != nil {
		return 0, err
	}

	return m.latest, nil
}

func (m *mockProvider) BlockByNumber(ctx context.Context, id ast.BlockNumberOrTag, full bool) (*provider.Block, error) {
	if err := m.enter("BlockByNumber"); err != nil {
		return nil, err
	}

	n := id.Number
	if !id.IsNumber() {
		tagged, ok := m.tags[id.Tag]
		if !ok {
			return nil, provider.ErrNotFound
		}

		n = tagged
	}

	if m.delay != nil {
		select {
		case <-time.After(m.delay(n)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	block, ok := m.blocks[n]
	if !ok {
		return nil, provider.ErrNotFound
	}

	m.fetched = append(m.fetched, n)

	cp := *block
	if !full {
		cp.Transactions = nil
	}

	return &cp, nil
}

func (m *mockProvider) Balance(ctx context.Context, addr types.Address) (*uint256.Int, error) {
	if err := m.enter("Balance"); err != nil {
		return nil, err
	}

	if b, ok := m.balances[addr]; ok {
		return new(uint256.Int).Set(b), nil
	}

	return uint256.NewInt(0), nil
}

func (m *mockProvider) Nonce(ctx context.Context, addr types.Address) (uint64, error) {
	if err := m.enter("Nonce"); err != nil {
		return 0, err
	}

	return m.nonces[addr], nil
}

func (m *mockProvider) Code(ctx context.Context, addr types.Address) ([]byte, error) {
	if err := m.enter("Code"); err != nil {
		return nil, err
	}

	return m.codes[addr], nil
}

func (m *mockProvider) TransactionByHash(ctx context.Context, hash types.Hash) (*provider.Transaction, error) {
	if err := m.enter("TransactionByHash"); err != nil {
		return nil, err
	}

	tx, ok := m.txs[hash]
	if !ok {
		return nil, provider.ErrNotFound
	}

	return tx, nil
}

func (m *mockProvider) TransactionReceipt(ctx context.Context, hash types.Hash) (*provider.Receipt, error) {
	if err := m.enter("TransactionReceipt"); err != nil {
		return nil, err
	}

	receipt, ok := m.receipts[hash]
	if !ok {
		return nil, provider.ErrNotFound
	}

	return receipt, nil
}

func (m *mockProvider) Logs(ctx context.Context, query *provider.LogQuery) ([]*provider.Log, error) {
	if err := m.enter("Logs"); err != nil {
		return nil, err
	}

	m.lock.Lock()
	m.lastLogQuery = query
	m.lock.Unlock()

	return m.logs, nil
}

func (m *mockProvider) ResolveName(ctx context.Context, name string) (types.Address, error) {
	if err := m.enter("ResolveName"); err != nil {
		return types.ZeroAddress, err
	}

	addr, ok := m.names[name]
	if !ok {
		return types.ZeroAddress, provider.ErrNameNotFound
	}

	return addr, nil
}

type mockFactory struct {
	provider provider.Provider
	err      error
	targets  []ast.ChainTarget
}

func (f *mockFactory) Provider(target ast.ChainTarget) (provider.Provider, error) {
	f.targets = append(f.targets, target)

	if f.err != nil {
		return nil, f.err
	}

	return f.provider, nil
}

type mockSerializer struct {
	dumps []*ast.Dump
	err   error
}

func (s *mockSerializer) Serialize(result ExpressionResult, dump *ast.Dump) error {
	s.dumps = append(s.dumps, dump)

	return s.err
}

func mockTx(hash string, nonce uint64, value uint64) *provider.Transaction {
	to := types.MustParseAddress("0xdac17f958d2ee523a2206206994597c13d831ec7")

	return &provider.Transaction{
		Type:  2,
		Hash:  types.MustParseHash(hash),
		From:  types.MustParseAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045"),
		To:    &to,
		Input: types.Bytes{0xa9, 0x05, 0x9c, 0xbb},
		Value: types.BigFromUint64(value),
		Gas:   21000,
		Nonce: types.Uint64(nonce),
	}
}
