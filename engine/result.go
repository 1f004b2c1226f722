package engine

import (
	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/types"
)

// QueryResult is the outcome of one expression
type QueryResult struct {
	Query  string           `json:"query"`
	Result ExpressionResult `json:"result"`
}

// ExpressionResult is the closed set of per entity row lists.
// Row fields are nil unless requested and are left out when serialized.
type ExpressionResult interface {
	isExpressionResult()
	Kind() ast.EntityKind
	Len() int
}

type AccountRow struct {
	Address *types.Address `json:"address,omitempty"`
	Nonce   *uint64        `json:"nonce,omitempty"`
	Balance *uint256.Int   `json:"balance,omitempty"`
	Code    *types.Bytes   `json:"code,omitempty"`
	Chain   *string        `json:"chain,omitempty"`
}

type AccountResult []AccountRow

func (AccountResult) isExpressionResult() {}

func (AccountResult) Kind() ast.EntityKind { return ast.AccountKind }

func (r AccountResult) Len() int { return len(r) }

type BlockRow struct {
	Number                *uint64        `json:"number,omitempty"`
	Hash                  *types.Hash    `json:"hash,omitempty"`
	ParentHash            *types.Hash    `json:"parent_hash,omitempty"`
	Timestamp             *uint64        `json:"timestamp,omitempty"`
	StateRoot             *types.Hash    `json:"state_root,omitempty"`
	TransactionsRoot      *types.Hash    `json:"transactions_root,omitempty"`
	ReceiptsRoot          *types.Hash    `json:"receipts_root,omitempty"`
	LogsBloom             *types.Bytes   `json:"logs_bloom,omitempty"`
	ExtraData             *types.Bytes   `json:"extra_data,omitempty"`
	MixHash               *types.Hash    `json:"mix_hash,omitempty"`
	TotalDifficulty       *uint256.Int   `json:"total_difficulty,omitempty"`
	BaseFeePerGas         *uint256.Int   `json:"base_fee_per_gas,omitempty"`
	WithdrawalsRoot       *types.Hash    `json:"withdrawals_root,omitempty"`
	BlobGasUsed           *uint64        `json:"blob_gas_used,omitempty"`
	ExcessBlobGas         *uint64        `json:"excess_blob_gas,omitempty"`
	ParentBeaconBlockRoot *types.Hash    `json:"parent_beacon_block_root,omitempty"`
	Size                  *uint64        `json:"size,omitempty"`
	GasLimit              *uint64        `json:"gas_limit,omitempty"`
	GasUsed               *uint64        `json:"gas_used,omitempty"`
	Miner                 *types.Address `json:"miner,omitempty"`
	Chain                 *string        `json:"chain,omitempty"`
}

type BlockResult []BlockRow

func (BlockResult) isExpressionResult() {}

func (BlockResult) Kind() ast.EntityKind { return ast.BlockKind }

func (r BlockResult) Len() int { return len(r) }

type TransactionRow struct {
	TransactionType      *uint64        `json:"transaction_type,omitempty"`
	Hash                 *types.Hash    `json:"hash,omitempty"`
	From                 *types.Address `json:"from,omitempty"`
	To                   *types.Address `json:"to,omitempty"`
	Data                 *types.Bytes   `json:"data,omitempty"`
	Value                *uint256.Int   `json:"value,omitempty"`
	GasPrice             *uint256.Int   `json:"gas_price,omitempty"`
	Gas                  *uint64        `json:"gas,omitempty"`
	Status               *bool          `json:"status,omitempty"`
	ChainID              *uint64        `json:"chain_id,omitempty"`
	V                    *uint256.Int   `json:"v,omitempty"`
	R                    *uint256.Int   `json:"r,omitempty"`
	S                    *uint256.Int   `json:"s,omitempty"`
	MaxFeePerBlobGas     *uint256.Int   `json:"max_fee_per_blob_gas,omitempty"`
	MaxFeePerGas         *uint256.Int   `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFeePerGas *uint256.Int   `json:"max_priority_fee_per_gas,omitempty"`
	YParity              *uint64        `json:"y_parity,omitempty"`
	Nonce                *uint64        `json:"nonce,omitempty"`
	BlockNumber          *uint64        `json:"block_number,omitempty"`
	BlockHash            *types.Hash    `json:"block_hash,omitempty"`
	TransactionIndex     *uint64        `json:"transaction_index,omitempty"`
	Chain                *string        `json:"chain,omitempty"`
}

type TransactionResult []TransactionRow

func (TransactionResult) isExpressionResult() {}

func (TransactionResult) Kind() ast.EntityKind { return ast.TransactionKind }

func (r TransactionResult) Len() int { return len(r) }

type LogRow struct {
	Address          *types.Address `json:"address,omitempty"`
	Topic0           *types.Hash    `json:"topic0,omitempty"`
	Topic1           *types.Hash    `json:"topic1,omitempty"`
	Topic2           *types.Hash    `json:"topic2,omitempty"`
	Topic3           *types.Hash    `json:"topic3,omitempty"`
	Data             *types.Bytes   `json:"data,omitempty"`
	BlockHash        *types.Hash    `json:"block_hash,omitempty"`
	BlockNumber      *uint64        `json:"block_number,omitempty"`
	TransactionHash  *types.Hash    `json:"transaction_hash,omitempty"`
	TransactionIndex *uint64        `json:"transaction_index,omitempty"`
	LogIndex         *uint64        `json:"log_index,omitempty"`
	Removed          *bool          `json:"removed,omitempty"`
	Chain            *string        `json:"chain,omitempty"`
}

type LogResult []LogRow

func (LogResult) isExpressionResult() {}

func (LogResult) Kind() ast.EntityKind { return ast.LogKind }

func (r LogResult) Len() int { return len(r) }

func ptr[T any](v T) *T {
	return &v
}
