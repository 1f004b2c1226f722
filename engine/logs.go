package engine

import (
	"context"
	"fmt"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/provider"
	"github.com/iankressin/eql-sub000/types"
)

func (e *Engine) resolveLogs(
	ctx context.Context,
	p provider.Provider,
	chain string,
	entity *ast.Logs,
) (LogResult, error) {
	query, err := logQuery(entity.Filters)
	if err != nil {
		return nil, err
	}

	logs, err := p.Logs(ctx, query)
	if err != nil {
		return nil, err
	}

	rows := make(LogResult, 0, len(logs))
	for _, log := range logs {
		rows = append(rows, logRow(log, entity.Fields, chain))
	}

	return rows, nil
}

// logQuery folds filters into one provider query. A later filter of the same
// kind replaces an earlier one; block and blockhash share a slot, so do
// event_signature and topic0.
func logQuery(filters []ast.LogFilter) (*provider.LogQuery, error) {
	query := &provider.LogQuery{}

	for _, f := range filters {
		switch f := f.(type) {
		case ast.LogBlockFilter:
			from, to, err := logRange(f.ID)
			if err != nil {
				return nil, err
			}

			query.SetRange(from, to)
		case ast.LogBlockHashFilter:
			query.SetBlockHash(f.Hash)
		case ast.LogAddressFilter:
			query.Addresses = []types.Address{f.Address}
		case ast.LogEventSignatureFilter:
			query.SetTopic(0, f.Topic())
		case ast.LogTopicFilter:
			query.SetTopic(f.Index, f.Topic)
		default:
			return nil, fmt.Errorf("unknown log filter %T", f)
		}
	}

	return query, nil
}

// logRange maps a block id onto fromBlock/toBlock. Tags are left for the node to resolve.
func logRange(id ast.BlockID) (ast.BlockNumberOrTag, ast.BlockNumberOrTag, error) {
	switch id := id.(type) {
	case ast.BlockNumberOrTag:
		return id, id, nil
	case ast.BlockRange:
		if id.End == nil {
			return id.Start, id.Start, nil
		}

		if id.Start.IsNumber() && id.End.IsNumber() && id.Start.Number > id.End.Number {
			return id.Start, *id.End, fmt.Errorf("%w: %d > %d",
				ErrStartBlockGreaterThanEndBlock, id.Start.Number, id.End.Number)
		}

		return id.Start, *id.End, nil
	}

	return ast.BlockNumberOrTag{}, ast.BlockNumberOrTag{}, fmt.Errorf("unknown block id %T", id)
}

func logRow(log *provider.Log, fields []ast.LogField, chain string) LogRow {
	row := LogRow{}

	for _, f := range fields {
		switch f {
		case ast.LogAddress:
			row.Address = ptr(log.Address)
		case ast.LogTopic0:
			row.Topic0 = log.Topic(0)
		case ast.LogTopic1:
			row.Topic1 = log.Topic(1)
		case ast.LogTopic2:
			row.Topic2 = log.Topic(2)
		case ast.LogTopic3:
			row.Topic3 = log.Topic(3)
		case ast.LogData:
			row.Data = ptr(log.Data)
		case ast.LogBlockHash:
			row.BlockHash = log.BlockHash
		case ast.LogBlockNumber:
			row.BlockNumber = log.BlockNumber.Uint64Ptr()
		case ast.LogTransactionHash:
			row.TransactionHash = log.TransactionHash
		case ast.LogTransactionIndex:
			row.TransactionIndex = log.TransactionIndex.Uint64Ptr()
		case ast.LogIndex:
			row.LogIndex = log.LogIndex.Uint64Ptr()
		case ast.LogRemoved:
			row.Removed = ptr(log.Removed)
		case ast.LogChain:
			row.Chain = ptr(chain)
		}
	}

	return row
}
