package provider

import (
	"encoding/json"
	"fmt"

	"github.com/iankressin/eql-sub000/types"
)

// Block is the eth_getBlockByNumber response
type Block struct {
	Number                types.Uint64   `json:"number"`
	Hash                  types.Hash     `json:"hash"`
	ParentHash            types.Hash     `json:"parentHash"`
	Timestamp             types.Uint64   `json:"timestamp"`
	StateRoot             types.Hash     `json:"stateRoot"`
	TransactionsRoot      types.Hash     `json:"transactionsRoot"`
	ReceiptsRoot          types.Hash     `json:"receiptsRoot"`
	LogsBloom             types.Bytes    `json:"logsBloom"`
	ExtraData             types.Bytes    `json:"extraData"`
	MixHash               types.Hash     `json:"mixHash"`
	TotalDifficulty       *types.Big     `json:"totalDifficulty"`
	BaseFeePerGas         *types.Big     `json:"baseFeePerGas"`
	WithdrawalsRoot       *types.Hash    `json:"withdrawalsRoot"`
	BlobGasUsed           *types.Uint64  `json:"blobGasUsed"`
	ExcessBlobGas         *types.Uint64  `json:"excessBlobGas"`
	ParentBeaconBlockRoot *types.Hash    `json:"parentBeaconBlockRoot"`
	Size                  types.Uint64   `json:"size"`
	GasLimit              types.Uint64   `json:"gasLimit"`
	GasUsed               types.Uint64   `json:"gasUsed"`
	Miner                 types.Address  `json:"miner"`

	// TransactionHashes is always filled, Transactions only for full blocks
	TransactionHashes []types.Hash   `json:"-"`
	Transactions      []*Transaction `json:"-"`
}

func (b *Block) UnmarshalJSON(input []byte) error {
	type block Block

	var raw struct {
		block
		Transactions []json.RawMessage `json:"transactions"`
	}

	if err := json.Unmarshal(input, &raw); err != nil {
		return err
	}

	*b = Block(raw.block)

	for i, item := range raw.Transactions {
		if len(item) > 0 && item[0] == '"' {
			var hash types.Hash
			if err := json.Unmarshal(item, &hash); err != nil {
				return fmt.Errorf("transaction %d: %w", i, err)
			}

			b.TransactionHashes = append(b.TransactionHashes, hash)

			continue
		}

		tx := new(Transaction)
		if err := json.Unmarshal(item, tx); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}

		b.Transactions = append(b.Transactions, tx)
		b.TransactionHashes = append(b.TransactionHashes, tx.Hash)
	}

	return nil
}

// Transaction is the eth_getTransactionByHash response and the full block body entry
type Transaction struct {
	Type                 types.Uint64   `json:"type"`
	Hash                 types.Hash     `json:"hash"`
	From                 types.Address  `json:"from"`
	To                   *types.Address `json:"to"`
	Input                types.Bytes    `json:"input"`
	Value                *types.Big     `json:"value"`
	GasPrice             *types.Big     `json:"gasPrice"`
	Gas                  types.Uint64   `json:"gas"`
	ChainID              *types.Uint64  `json:"chainId"`
	V                    *types.Big     `json:"v"`
	R                    *types.Big     `json:"r"`
	S                    *types.Big     `json:"s"`
	MaxFeePerBlobGas     *types.Big     `json:"maxFeePerBlobGas"`
	MaxFeePerGas         *types.Big     `json:"maxFeePerGas"`
	MaxPriorityFeePerGas *types.Big     `json:"maxPriorityFeePerGas"`
	YParity              *types.Uint64  `json:"yParity"`
	Nonce                types.Uint64   `json:"nonce"`
	BlockNumber          *types.Uint64  `json:"blockNumber"`
	BlockHash            *types.Hash    `json:"blockHash"`
	TransactionIndex     *types.Uint64  `json:"transactionIndex"`
}

// Receipt is the subset of eth_getTransactionReceipt the engine reads
type Receipt struct {
	TransactionHash types.Hash     `json:"transactionHash"`
	BlockNumber     *types.Uint64  `json:"blockNumber"`
	Status          *types.Uint64  `json:"status"`
	GasUsed         types.Uint64   `json:"gasUsed"`
	ContractAddress *types.Address `json:"contractAddress"`
}

// Succeeded reports whether the receipt carries a success status. Pre-byzantium
// receipts have no status field and report false.
func (r *Receipt) Succeeded() bool {
	return r != nil && r.Status != nil && *r.Status == 1
}

// Log is one eth_getLogs entry
type Log struct {
	Address          types.Address `json:"address"`
	Topics           []types.Hash  `json:"topics"`
	Data             types.Bytes   `json:"data"`
	BlockHash        *types.Hash   `json:"blockHash"`
	BlockNumber      *types.Uint64 `json:"blockNumber"`
	TransactionHash  *types.Hash   `json:"transactionHash"`
	TransactionIndex *types.Uint64 `json:"transactionIndex"`
	LogIndex         *types.Uint64 `json:"logIndex"`
	Removed          bool          `json:"removed"`
}

// Topic returns topic i, or nil when the log has fewer topics
func (l *Log) Topic(i int) *types.Hash {
	if i < 0 || i >= len(l.Topics) {
		return nil
	}

	topic := l.Topics[i]

	return &topic
}
