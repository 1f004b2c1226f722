package ast

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast/filter"
	"github.com/iankressin/eql-sub000/helper/keccak"
	"github.com/iankressin/eql-sub000/types"
)

// AccountFilter is a client side predicate over one account field
type AccountFilter interface {
	Field() AccountField
	String() string
}

type AccountBalanceFilter struct {
	filter.Predicate[*uint256.Int]
}

func (AccountBalanceFilter) Field() AccountField { return AccountBalance }

func (f AccountBalanceFilter) String() string { return describe(AccountBalance, f.Predicate) }

type AccountNonceFilter struct {
	filter.Predicate[uint64]
}

func (AccountNonceFilter) Field() AccountField { return AccountNonce }

func (f AccountNonceFilter) String() string { return describe(AccountNonce, f.Predicate) }

// BlockFilter is a client side predicate over one block field
type BlockFilter interface {
	Field() BlockField
	String() string
}

// BlockUintFilter tests one of the uint64 block fields (timestamp, size, gas_used, gas_limit)
type BlockUintFilter struct {
	Target BlockField
	filter.Predicate[uint64]
}

func (f BlockUintFilter) Field() BlockField { return f.Target }

func (f BlockUintFilter) String() string { return describe(f.Target, f.Predicate) }

type BlockBaseFeeFilter struct {
	filter.Predicate[*uint256.Int]
}

func (BlockBaseFeeFilter) Field() BlockField { return BlockBaseFeePerGas }

func (f BlockBaseFeeFilter) String() string { return describe(BlockBaseFeePerGas, f.Predicate) }

type BlockMinerFilter struct {
	filter.Predicate[types.Address]
}

func (BlockMinerFilter) Field() BlockField { return BlockMiner }

func (f BlockMinerFilter) String() string { return describe(BlockMiner, f.Predicate) }

// TransactionFilter narrows a transaction query. TxBlockFilter selects the candidate
// set, every other filter is a client side predicate over one field.
type TransactionFilter interface {
	Field() TransactionField
	String() string
}

// TxBlockFilter sources candidate transactions from the bodies of the given blocks
type TxBlockFilter struct {
	ID BlockID
}

func (TxBlockFilter) Field() TransactionField { return TxBlockNumber }

func (f TxBlockFilter) String() string { return "block = " + f.ID.String() }

// TxUintFilter tests one of the uint64 transaction fields (transaction_type, gas, nonce, chain_id)
type TxUintFilter struct {
	Target TransactionField
	filter.Predicate[uint64]
}

func (f TxUintFilter) Field() TransactionField { return f.Target }

func (f TxUintFilter) String() string { return describe(f.Target, f.Predicate) }

// TxAmountFilter tests one of the 256 bit transaction fields (value and the gas price family)
type TxAmountFilter struct {
	Target TransactionField
	filter.Predicate[*uint256.Int]
}

func (f TxAmountFilter) Field() TransactionField { return f.Target }

func (f TxAmountFilter) String() string { return describe(f.Target, f.Predicate) }

// TxAddressFilter tests from or to. A contract creation never matches to.
type TxAddressFilter struct {
	Target TransactionField
	filter.Predicate[types.Address]
}

func (f TxAddressFilter) Field() TransactionField { return f.Target }

func (f TxAddressFilter) String() string { return describe(f.Target, f.Predicate) }

// TxDataFilter compares calldata as lower case hex
type TxDataFilter struct {
	filter.Predicate[string]
}

func (TxDataFilter) Field() TransactionField { return TxData }

func (f TxDataFilter) String() string { return describe(TxData, f.Predicate) }

type TxStatusFilter struct {
	filter.Predicate[bool]
}

func (TxStatusFilter) Field() TransactionField { return TxStatus }

func (f TxStatusFilter) String() string { return describe(TxStatus, f.Predicate) }

// LogFilter is folded into the provider side log query
type LogFilter interface {
	isLogFilter()
	String() string
}

type LogBlockFilter struct {
	ID BlockID
}

func (LogBlockFilter) isLogFilter() {}

func (f LogBlockFilter) String() string { return "block = " + f.ID.String() }

type LogBlockHashFilter struct {
	Hash types.Hash
}

func (LogBlockHashFilter) isLogFilter() {}

func (f LogBlockHashFilter) String() string { return "blockhash = " + f.Hash.String() }

type LogAddressFilter struct {
	Address types.Address
}

func (LogAddressFilter) isLogFilter() {}

func (f LogAddressFilter) String() string { return "address = " + f.Address.String() }

// LogEventSignatureFilter matches topic0 against the keccak hash of Signature
type LogEventSignatureFilter struct {
	Signature string
}

func (LogEventSignatureFilter) isLogFilter() {}

func (f LogEventSignatureFilter) String() string { return "event_signature = " + f.Signature }

// Topic returns the topic0 value of the event, whitespace in the signature is ignored
func (f LogEventSignatureFilter) Topic() types.Hash {
	canonical := strings.Join(strings.Fields(f.Signature), "")

	return types.BytesToHash(keccak.Keccak256([]byte(canonical)))
}

type LogTopicFilter struct {
	Index int
	Topic types.Hash
}

func (LogTopicFilter) isLogFilter() {}

func (f LogTopicFilter) String() string { return fmt.Sprintf("topic%d = %s", f.Index, f.Topic) }

func describe[T any](field Field, p filter.Predicate[T]) string {
	return field.String() + " " + p.String()
}
