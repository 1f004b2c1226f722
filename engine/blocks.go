package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/provider"
)

// blockNumber resolves a tag to a concrete height. Numbers need no round trip.
func blockNumber(ctx context.Context, p provider.Provider, id ast.BlockNumberOrTag) (uint64, error) {
	if id.IsNumber() {
		return id.Number, nil
	}

	if id.Tag == ast.TagLatest {
		return p.BlockNumber(ctx)
	}

	block, err := p.BlockByNumber(ctx, id, false)
	if errors.Is(err, provider.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrBlockTagNotFound, id)
	} else if err != nil {
		return 0, err
	}

	return uint64(block.Number), nil
}

// blockNumbers expands ids into heights, in id order and ascending within a
// range. Every id is resolved before the caller fetches anything.
func (e *Engine) blockNumbers(ctx context.Context, p provider.Provider, ids []ast.BlockID) ([]uint64, error) {
	var numbers []uint64

	for _, id := range ids {
		switch id := id.(type) {
		case ast.BlockNumberOrTag:
			n, err := blockNumber(ctx, p, id)
			if err != nil {
				return nil, err
			}

			numbers = append(numbers, n)
		case ast.BlockRange:
			start, end, err := e.blockRange(ctx, p, id)
			if err != nil {
				return nil, err
			}

			for n := start; n <= end; n++ {
				numbers = append(numbers, n)

				if n == end {
					break
				}
			}
		default:
			return nil, fmt.Errorf("unknown block id %T", id)
		}
	}

	return numbers, nil
}

// blockRange resolves both ends of r. A missing end denotes the single block start.
func (e *Engine) blockRange(ctx context.Context, p provider.Provider, r ast.BlockRange) (uint64, uint64, error) {
	start, err := blockNumber(ctx, p, r.Start)
	if err != nil {
		return 0, 0, err
	}

	if r.End == nil {
		return start, start, nil
	}

	end, err := blockNumber(ctx, p, *r.End)
	if err != nil {
		return 0, 0, err
	}

	if start > end {
		return 0, 0, fmt.Errorf("%w: %d > %d", ErrStartBlockGreaterThanEndBlock, start, end)
	}

	if e.blockRangeLimit > 0 && end-start >= e.blockRangeLimit {
		return 0, 0, fmt.Errorf("%w: %d blocks, limit is %d", ErrBlockRangeTooLarge, end-start+1, e.blockRangeLimit)
	}

	return start, end, nil
}

// fetchBlocks fetches the given heights concurrently, preserving their order
func (e *Engine) fetchBlocks(
	ctx context.Context,
	p provider.Provider,
	numbers []uint64,
	full bool,
) ([]*provider.Block, error) {
	return collect(ctx, e.concurrency, len(numbers), func(ctx context.Context, i int) (*provider.Block, error) {
		block, err := p.BlockByNumber(ctx, ast.Number(numbers[i]), full)
		if errors.Is(err, provider.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrBlockNotFound, numbers[i])
		} else if err != nil {
			return nil, err
		}

		return block, nil
	})
}
