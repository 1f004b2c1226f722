package ast

import (
	"fmt"
	"strings"
)

// EntityKind tags the schema a query targets
type EntityKind int

const (
	AccountKind EntityKind = iota
	BlockKind
	TransactionKind
	LogKind
)

func (k EntityKind) String() string {
	switch k {
	case AccountKind:
		return "account"
	case BlockKind:
		return "block"
	case TransactionKind:
		return "transaction"
	case LogKind:
		return "log"
	}

	return fmt.Sprintf("EntityKind(%d)", int(k))
}

// Field is a named attribute of one entity kind
type Field interface {
	Kind() EntityKind
	String() string
}

// UnknownFieldError is returned when a name maps to no field of any entity
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Name)
}

type AccountField int

const (
	AccountAddress AccountField = iota
	AccountNonce
	AccountBalance
	AccountCode
	AccountChain
)

// AllAccountFields is the wildcard expansion for account queries
func AllAccountFields() []AccountField {
	return []AccountField{AccountAddress, AccountNonce, AccountBalance, AccountCode, AccountChain}
}

func (f AccountField) Kind() EntityKind { return AccountKind }

func (f AccountField) String() string {
	switch f {
	case AccountAddress:
		return "address"
	case AccountNonce:
		return "nonce"
	case AccountBalance:
		return "balance"
	case AccountCode:
		return "code"
	case AccountChain:
		return "chain"
	}

	return fmt.Sprintf("AccountField(%d)", int(f))
}

func ParseAccountField(name string) (AccountField, error) {
	return parseField(name, AllAccountFields())
}

type BlockField int

const (
	BlockNumber BlockField = iota
	BlockHash
	BlockParentHash
	BlockTimestamp
	BlockStateRoot
	BlockTransactionsRoot
	BlockReceiptsRoot
	BlockLogsBloom
	BlockExtraData
	BlockMixHash
	BlockTotalDifficulty
	BlockBaseFeePerGas
	BlockWithdrawalsRoot
	BlockBlobGasUsed
	BlockExcessBlobGas
	BlockParentBeaconBlockRoot
	BlockSize
	BlockGasLimit
	BlockGasUsed
	BlockMiner
	BlockChain
)

// AllBlockFields is the wildcard expansion for block queries
func AllBlockFields() []BlockField {
	fields := make([]BlockField, 0, int(BlockChain)+1)
	for f := BlockNumber; f <= BlockChain; f++ {
		fields = append(fields, f)
	}

	return fields
}

func (f BlockField) Kind() EntityKind { return BlockKind }

func (f BlockField) String() string {
	switch f {
	case BlockNumber:
		return "number"
	case BlockHash:
		return "hash"
	case BlockParentHash:
		return "parent_hash"
	case BlockTimestamp:
		return "timestamp"
	case BlockStateRoot:
		return "state_root"
	case BlockTransactionsRoot:
		return "transactions_root"
	case BlockReceiptsRoot:
		return "receipts_root"
	case BlockLogsBloom:
		return "logs_bloom"
	case BlockExtraData:
		return "extra_data"
	case BlockMixHash:
		return "mix_hash"
	case BlockTotalDifficulty:
		return "total_difficulty"
	case BlockBaseFeePerGas:
		return "base_fee_per_gas"
	case BlockWithdrawalsRoot:
		return "withdrawals_root"
	case BlockBlobGasUsed:
		return "blob_gas_used"
	case BlockExcessBlobGas:
		return "excess_blob_gas"
	case BlockParentBeaconBlockRoot:
		return "parent_beacon_block_root"
	case BlockSize:
		return "size"
	case BlockGasLimit:
		return "gas_limit"
	case BlockGasUsed:
		return "gas_used"
	case BlockMiner:
		return "miner"
	case BlockChain:
		return "chain"
	}

	return fmt.Sprintf("BlockField(%d)", int(f))
}

func ParseBlockField(name string) (BlockField, error) {
	return parseField(name, AllBlockFields())
}

type TransactionField int

const (
	TxType TransactionField = iota
	TxHash
	TxFrom
	TxTo
	TxData
	TxValue
	TxGasPrice
	TxGas
	TxStatus
	TxChainID
	TxV
	TxR
	TxS
	TxMaxFeePerBlobGas
	TxMaxFeePerGas
	TxMaxPriorityFeePerGas
	TxYParity
	TxNonce
	TxBlockNumber
	TxBlockHash
	TxIndex
	TxChain
)

// AllTransactionFields is the wildcard expansion for transaction queries
func AllTransactionFields() []TransactionField {
	fields := make([]TransactionField, 0, int(TxChain)+1)
	for f := TxType; f <= TxChain; f++ {
		fields = append(fields, f)
	}

	return fields
}

func (f TransactionField) Kind() EntityKind { return TransactionKind }

func (f TransactionField) String() string {
	switch f {
	case TxType:
		return "transaction_type"
	case TxHash:
		return "hash"
	case TxFrom:
		return "from"
	case TxTo:
		return "to"
	case TxData:
		return "data"
	case TxValue:
		return "value"
	case TxGasPrice:
		return "gas_price"
	case TxGas:
		return "gas"
	case TxStatus:
		return "status"
	case TxChainID:
		return "chain_id"
	case TxV:
		return "v"
	case TxR:
		return "r"
	case TxS:
		return "s"
	case TxMaxFeePerBlobGas:
		return "max_fee_per_blob_gas"
	case TxMaxFeePerGas:
		return "max_fee_per_gas"
	case TxMaxPriorityFeePerGas:
		return "max_priority_fee_per_gas"
	case TxYParity:
		return "y_parity"
	case TxNonce:
		return "nonce"
	case TxBlockNumber:
		return "block_number"
	case TxBlockHash:
		return "block_hash"
	case TxIndex:
		return "transaction_index"
	case TxChain:
		return "chain"
	}

	return fmt.Sprintf("TransactionField(%d)", int(f))
}

func ParseTransactionField(name string) (TransactionField, error) {
	return parseField(name, AllTransactionFields())
}

type LogField int

const (
	LogAddress LogField = iota
	LogTopic0
	LogTopic1
	LogTopic2
	LogTopic3
	LogData
	LogBlockHash
	LogBlockNumber
	LogTransactionHash
	LogTransactionIndex
	LogIndex
	LogRemoved
	LogChain
)

// AllLogFields is the wildcard expansion for log queries
func AllLogFields() []LogField {
	fields := make([]LogField, 0, int(LogChain)+1)
	for f := LogAddress; f <= LogChain; f++ {
		fields = append(fields, f)
	}

	return fields
}

func (f LogField) Kind() EntityKind { return LogKind }

func (f LogField) String() string {
	switch f {
	case LogAddress:
		return "address"
	case LogTopic0:
		return "topic0"
	case LogTopic1:
		return "topic1"
	case LogTopic2:
		return "topic2"
	case LogTopic3:
		return "topic3"
	case LogData:
		return "data"
	case LogBlockHash:
		return "block_hash"
	case LogBlockNumber:
		return "block_number"
	case LogTransactionHash:
		return "transaction_hash"
	case LogTransactionIndex:
		return "transaction_index"
	case LogIndex:
		return "log_index"
	case LogRemoved:
		return "removed"
	case LogChain:
		return "chain"
	}

	return fmt.Sprintf("LogField(%d)", int(f))
}

func ParseLogField(name string) (LogField, error) {
	return parseField(name, AllLogFields())
}

func parseField[F Field](name string, all []F) (F, error) {
	needle := strings.ToLower(strings.TrimSpace(name))

	for _, f := range all {
		if f.String() == needle {
			return f, nil
		}
	}

	var zero F

	return zero, &UnknownFieldError{Name: name}
}

// AllFields returns the wildcard expansion of kind as generic fields
func AllFields(kind EntityKind) []Field {
	switch kind {
	case AccountKind:
		return toFields(AllAccountFields())
	case BlockKind:
		return toFields(AllBlockFields())
	case TransactionKind:
		return toFields(AllTransactionFields())
	case LogKind:
		return toFields(AllLogFields())
	}

	return nil
}

func toFields[F Field](fields []F) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = f
	}

	return out
}

// LookupField resolves name against the preferred kind first and then every
// other kind, so a field of the wrong entity survives until semantic analysis
func LookupField(name string, preferred EntityKind) (Field, error) {
	order := []EntityKind{preferred}

	for _, kind := range []EntityKind{AccountKind, BlockKind, TransactionKind, LogKind} {
		if kind != preferred {
			order = append(order, kind)
		}
	}

	for _, kind := range order {
		var (
			f   Field
			err error
		)

		switch kind {
		case AccountKind:
			f, err = ParseAccountField(name)
		case BlockKind:
			f, err = ParseBlockField(name)
		case TransactionKind:
			f, err = ParseTransactionField(name)
		case LogKind:
			f, err = ParseLogField(name)
		}

		if err == nil {
			return f, nil
		}
	}

	return nil, &UnknownFieldError{Name: name}
}
