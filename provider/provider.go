package provider

import (
	"context"
	"errors"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/types"
)

var (
	// ErrNotFound is returned when the node answers a lookup with null
	ErrNotFound = errors.New("not found")
	// ErrNameNotFound is returned when an ENS name has no resolver or no address
	ErrNameNotFound = errors.New("ens name not found")
)

// Provider is the remote chain state the engine resolves queries against
type Provider interface {
	// BlockNumber returns the height of the latest block
	BlockNumber(ctx context.Context) (uint64, error)

	// BlockByNumber fetches a block by height or tag, with full transaction
	// bodies when full is set. A missing block is ErrNotFound.
	BlockByNumber(ctx context.Context, block ast.BlockNumberOrTag, full bool) (*Block, error)

	Balance(ctx context.Context, addr types.Address) (*uint256.Int, error)
	Nonce(ctx context.Context, addr types.Address) (uint64, error)
	Code(ctx context.Context, addr types.Address) ([]byte, error)

	// TransactionByHash returns ErrNotFound for unknown hashes
	TransactionByHash(ctx context.Context, hash types.Hash) (*Transaction, error)

	// TransactionReceipt returns ErrNotFound for unknown or pending transactions
	TransactionReceipt(ctx context.Context, hash types.Hash) (*Receipt, error)

	Logs(ctx context.Context, query *LogQuery) ([]*Log, error)

	// ResolveName resolves an ENS name to the address it points at
	ResolveName(ctx context.Context, name string) (types.Address, error)
}
