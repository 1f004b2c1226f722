package engine

import (
	"context"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/ast/filter"
	"github.com/iankressin/eql-sub000/provider"
)

func (e *Engine) resolveBlocks(
	ctx context.Context,
	p provider.Provider,
	chain string,
	entity *ast.Block,
) (BlockResult, error) {
	numbers, err := e.blockNumbers(ctx, p, entity.IDs)
	if err != nil {
		return nil, err
	}

	blocks, err := e.fetchBlocks(ctx, p, numbers, false)
	if err != nil {
		return nil, err
	}

	rows := make(BlockResult, 0, len(blocks))

	for _, block := range blocks {
		if !matchBlock(block, entity.Filters) {
			continue
		}

		rows = append(rows, blockRow(block, entity.Fields, chain))
	}

	return rows, nil
}

func matchBlock(block *provider.Block, filters []ast.BlockFilter) bool {
	results := make([]bool, 0, len(filters))

	for _, f := range filters {
		switch f := f.(type) {
		case ast.BlockUintFilter:
			v, ok := blockUint(block, f.Target)
			results = append(results, ok && f.Compare(v))
		case ast.BlockBaseFeeFilter:
			results = append(results, block.BaseFeePerGas != nil && f.Compare(block.BaseFeePerGas.Int()))
		case ast.BlockMinerFilter:
			results = append(results, f.Compare(block.Miner))
		default:
			results = append(results, false)
		}
	}

	return filter.All(results...)
}

func blockUint(block *provider.Block, f ast.BlockField) (uint64, bool) {
	switch f {
	case ast.BlockNumber:
		return uint64(block.Number), true
	case ast.BlockTimestamp:
		return uint64(block.Timestamp), true
	case ast.BlockSize:
		return uint64(block.Size), true
	case ast.BlockGasLimit:
		return uint64(block.GasLimit), true
	case ast.BlockGasUsed:
		return uint64(block.GasUsed), true
	}

	return 0, false
}

func blockRow(block *provider.Block, fields []ast.BlockField, chain string) BlockRow {
	row := BlockRow{}

	for _, f := range fields {
		switch f {
		case ast.BlockNumber:
			row.Number = ptr(uint64(block.Number))
		case ast.BlockHash:
			row.Hash = ptr(block.Hash)
		case ast.BlockParentHash:
			row.ParentHash = ptr(block.ParentHash)
		case ast.BlockTimestamp:
			row.Timestamp = ptr(uint64(block.Timestamp))
		case ast.BlockStateRoot:
			row.StateRoot = ptr(block.StateRoot)
		case ast.BlockTransactionsRoot:
			row.TransactionsRoot = ptr(block.TransactionsRoot)
		case ast.BlockReceiptsRoot:
			row.ReceiptsRoot = ptr(block.ReceiptsRoot)
		case ast.BlockLogsBloom:
			row.LogsBloom = ptr(block.LogsBloom)
		case ast.BlockExtraData:
			row.ExtraData = ptr(block.ExtraData)
		case ast.BlockMixHash:
			row.MixHash = ptr(block.MixHash)
		case ast.BlockTotalDifficulty:
			row.TotalDifficulty = block.TotalDifficulty.Int()
		case ast.BlockBaseFeePerGas:
			row.BaseFeePerGas = block.BaseFeePerGas.Int()
		case ast.BlockWithdrawalsRoot:
			row.WithdrawalsRoot = block.WithdrawalsRoot
		case ast.BlockBlobGasUsed:
			row.BlobGasUsed = block.BlobGasUsed.Uint64Ptr()
		case ast.BlockExcessBlobGas:
			row.ExcessBlobGas = block.ExcessBlobGas.Uint64Ptr()
		case ast.BlockParentBeaconBlockRoot:
			row.ParentBeaconBlockRoot = block.ParentBeaconBlockRoot
		case ast.BlockSize:
			row.Size = ptr(uint64(block.Size))
		case ast.BlockGasLimit:
			row.GasLimit = ptr(uint64(block.GasLimit))
		case ast.BlockGasUsed:
			row.GasUsed = ptr(uint64(block.GasUsed))
		case ast.BlockMiner:
			row.Miner = ptr(block.Miner)
		case ast.BlockChain:
			row.Chain = ptr(chain)
		}
	}

	return row
}
