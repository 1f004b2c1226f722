package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/ast/filter"
	"github.com/iankressin/eql-sub000/helper/hex"
	"github.com/iankressin/eql-sub000/provider"
	"github.com/iankressin/eql-sub000/types"
)

// transaction is a fetched transaction with its receipt when status is needed
type transaction struct {
	*provider.Transaction
	receipt *provider.Receipt
}

func (e *Engine) resolveTransactions(
	ctx context.Context,
	p provider.Provider,
	chain string,
	entity *ast.Transaction,
) (TransactionResult, error) {
	blockID, hasBlock := entity.BlockFilter()
	if len(entity.Hashes) == 0 && !hasBlock {
		return nil, ErrMissingTransactionHashOrFilter
	}

	var (
		txs []*provider.Transaction
		err error
	)

	if len(entity.Hashes) > 0 {
		txs, err = e.transactionsByHash(ctx, p, entity.Hashes)
		if err == nil && hasBlock {
			txs, err = e.inBlocks(ctx, p, txs, blockID)
		}
	} else {
		txs, err = e.transactionsInBlocks(ctx, p, blockID)
	}

	if err != nil {
		return nil, err
	}

	filters := entity.FieldFilters()
	needed := neededFields(entity.Fields, filters)

	candidates, err := e.withReceipts(ctx, p, txs, needed[ast.TxStatus])
	if err != nil {
		return nil, err
	}

	rows := make(TransactionResult, 0, len(candidates))

	for _, tx := range candidates {
		if !matchTransaction(tx, filters) {
			continue
		}

		rows = append(rows, transactionRow(tx, entity.Fields, chain))
	}

	return rows, nil
}

// transactionsByHash fetches every hash, dropping the ones the node does not know
func (e *Engine) transactionsByHash(
	ctx context.Context,
	p provider.Provider,
	hashes []types.Hash,
) ([]*provider.Transaction, error) {
	fetched, err := collect(ctx, e.concurrency, len(hashes), func(ctx context.Context, i int) (*provider.Transaction, error) {
		tx, err := p.TransactionByHash(ctx, hashes[i])
		if errors.Is(err, provider.ErrNotFound) {
			e.logger.Debug("transaction not found", "hash", hashes[i])

			return nil, nil
		} else if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", hashes[i], err)
		}

		return tx, nil
	})
	if err != nil {
		return nil, err
	}

	txs := make([]*provider.Transaction, 0, len(fetched))

	for _, tx := range fetched {
		if tx != nil {
			txs = append(txs, tx)
		}
	}

	return txs, nil
}

// transactionsInBlocks flattens the bodies of the blocks id selects
func (e *Engine) transactionsInBlocks(
	ctx context.Context,
	p provider.Provider,
	id ast.BlockID,
) ([]*provider.Transaction, error) {
	numbers, err := e.blockNumbers(ctx, p, []ast.BlockID{id})
	if err != nil {
		return nil, err
	}

	blocks, err := e.fetchBlocks(ctx, p, numbers, true)
	if err != nil {
		return nil, err
	}

	var txs []*provider.Transaction
	for _, block := range blocks {
		txs = append(txs, block.Transactions...)
	}

	return txs, nil
}

// inBlocks keeps the transactions mined in one of the blocks id selects
func (e *Engine) inBlocks(
	ctx context.Context,
	p provider.Provider,
	txs []*provider.Transaction,
	id ast.BlockID,
) ([]*provider.Transaction, error) {
	numbers, err := e.blockNumbers(ctx, p, []ast.BlockID{id})
	if err != nil {
		return nil, err
	}

	selected := make(map[uint64]bool, len(numbers))
	for _, n := range numbers {
		selected[n] = true
	}

	kept := txs[:0]

	for _, tx := range txs {
		if tx.BlockNumber != nil && selected[uint64(*tx.BlockNumber)] {
			kept = append(kept, tx)
		}
	}

	return kept, nil
}

// withReceipts pairs every transaction with its receipt when fetch is set.
// A pending transaction has no receipt and keeps a nil one.
func (e *Engine) withReceipts(
	ctx context.Context,
	p provider.Provider,
	txs []*provider.Transaction,
	fetch bool,
) ([]*transaction, error) {
	return collect(ctx, e.concurrency, len(txs), func(ctx context.Context, i int) (*transaction, error) {
		tx := &transaction{Transaction: txs[i]}

		if !fetch {
			return tx, nil
		}

		receipt, err := p.TransactionReceipt(ctx, tx.Hash)
		if errors.Is(err, provider.ErrNotFound) {
			return tx, nil
		} else if err != nil {
			return nil, fmt.Errorf("receipt of %s: %w", tx.Hash, err)
		}

		tx.receipt = receipt

		return tx, nil
	})
}

func matchTransaction(tx *transaction, filters []ast.TransactionFilter) bool {
	results := make([]bool, 0, len(filters))

	for _, f := range filters {
		var ok bool

		switch f := f.(type) {
		case ast.TxUintFilter:
			v := transactionUint(tx, f.Target)
			ok = v != nil && f.Compare(*v)
		case ast.TxAmountFilter:
			v := transactionAmount(tx, f.Target)
			ok = v != nil && f.Compare(v)
		case ast.TxAddressFilter:
			v := transactionAddress(tx, f.Target)
			ok = v != nil && f.Compare(*v)
		case ast.TxDataFilter:
			ok = f.Compare(hex.EncodeToHex(tx.Input))
		case ast.TxStatusFilter:
			ok = tx.receipt != nil && tx.receipt.Status != nil && f.Compare(tx.receipt.Succeeded())
		}

		results = append(results, ok)
	}

	return filter.All(results...)
}

func transactionUint(tx *transaction, f ast.TransactionField) *uint64 {
	switch f {
	case ast.TxType:
		return ptr(uint64(tx.Type))
	case ast.TxGas:
		return ptr(uint64(tx.Gas))
	case ast.TxNonce:
		return ptr(uint64(tx.Nonce))
	case ast.TxChainID:
		return tx.ChainID.Uint64Ptr()
	case ast.TxYParity:
		return tx.YParity.Uint64Ptr()
	case ast.TxBlockNumber:
		return tx.BlockNumber.Uint64Ptr()
	case ast.TxIndex:
		return tx.TransactionIndex.Uint64Ptr()
	}

	return nil
}

func transactionAmount(tx *transaction, f ast.TransactionField) *uint256.Int {
	switch f {
	case ast.TxValue:
		return tx.Value.Int()
	case ast.TxGasPrice:
		return tx.GasPrice.Int()
	case ast.TxMaxFeePerBlobGas:
		return tx.MaxFeePerBlobGas.Int()
	case ast.TxMaxFeePerGas:
		return tx.MaxFeePerGas.Int()
	case ast.TxMaxPriorityFeePerGas:
		return tx.MaxPriorityFeePerGas.Int()
	case ast.TxV:
		return tx.V.Int()
	case ast.TxR:
		return tx.R.Int()
	case ast.TxS:
		return tx.S.Int()
	}

	return nil
}

func transactionAddress(tx *transaction, f ast.TransactionField) *types.Address {
	switch f {
	case ast.TxFrom:
		return ptr(tx.From)
	case ast.TxTo:
		return tx.To
	}

	return nil
}

func transactionRow(tx *transaction, fields []ast.TransactionField, chain string) TransactionRow {
	row := TransactionRow{}

	for _, f := range fields {
		switch f {
		case ast.TxType:
			row.TransactionType = transactionUint(tx, f)
		case ast.TxHash:
			row.Hash = ptr(tx.Hash)
		case ast.TxFrom:
			row.From = transactionAddress(tx, f)
		case ast.TxTo:
			row.To = transactionAddress(tx, f)
		case ast.TxData:
			row.Data = ptr(tx.Input)
		case ast.TxValue:
			row.Value = transactionAmount(tx, f)
		case ast.TxGasPrice:
			row.GasPrice = transactionAmount(tx, f)
		case ast.TxGas:
			row.Gas = transactionUint(tx, f)
		case ast.TxStatus:
			if tx.receipt != nil && tx.receipt.Status != nil {
				row.Status = ptr(tx.receipt.Succeeded())
			}
		case ast.TxChainID:
			row.ChainID = transactionUint(tx, f)
		case ast.TxV:
			row.V = transactionAmount(tx, f)
		case ast.TxR:
			row.R = transactionAmount(tx, f)
		case ast.TxS:
			row.S = transactionAmount(tx, f)
		case ast.TxMaxFeePerBlobGas:
			row.MaxFeePerBlobGas = transactionAmount(tx, f)
		case ast.TxMaxFeePerGas:
			row.MaxFeePerGas = transactionAmount(tx, f)
		case ast.TxMaxPriorityFeePerGas:
			row.MaxPriorityFeePerGas = transactionAmount(tx, f)
		case ast.TxYParity:
			row.YParity = transactionUint(tx, f)
		case ast.TxNonce:
			row.Nonce = transactionUint(tx, f)
		case ast.TxBlockNumber:
			row.BlockNumber = transactionUint(tx, f)
		case ast.TxBlockHash:
			row.BlockHash = tx.BlockHash
		case ast.TxIndex:
			row.TransactionIndex = transactionUint(tx, f)
		case ast.TxChain:
			row.Chain = ptr(chain)
		}
	}

	return row
}
