package engine

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/ast/filter"
	"github.com/iankressin/eql-sub000/provider"
	"github.com/iankressin/eql-sub000/types"
)

// account holds the fetched state of one address. Unfetched values stay nil.
type account struct {
	address types.Address
	nonce   *uint64
	balance *uint256.Int
	code    []byte
}

func (e *Engine) resolveAccounts(
	ctx context.Context,
	p provider.Provider,
	chain string,
	entity *ast.Account,
) (AccountResult, error) {
	needed := neededFields(entity.Fields, entity.Filters)

	accounts, err := collect(ctx, e.concurrency, len(entity.IDs), func(ctx context.Context, i int) (*account, error) {
		id := entity.IDs[i]

		addr := id.Address
		if id.IsName() {
			resolved, err := p.ResolveName(ctx, id.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrEnsResolution, id.Name, err)
			}

			addr = resolved
		}

		return fetchAccount(ctx, p, addr, needed)
	})
	if err != nil {
		return nil, err
	}

	rows := make(AccountResult, 0, len(accounts))

	for _, acc := range accounts {
		if !matchAccount(acc, entity.Filters) {
			continue
		}

		row := AccountRow{}
		for _, f := range entity.Fields {
			setAccountField(&row, acc, f, chain)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func fetchAccount(
	ctx context.Context,
	p provider.Provider,
	addr types.Address,
	needed map[ast.AccountField]bool,
) (*account, error) {
	acc := &account{address: addr}

	if needed[ast.AccountNonce] {
		nonce, err := p.Nonce(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("nonce of %s: %w", addr, err)
		}

		acc.nonce = &nonce
	}

	if needed[ast.AccountBalance] {
		balance, err := p.Balance(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("balance of %s: %w", addr, err)
		}

		acc.balance = balance
	}

	if needed[ast.AccountCode] {
		code, err := p.Code(ctx, addr)
		if err != nil {
			return nil, fmt.Errorf("code of %s: %w", addr, err)
		}

		acc.code = code
	}

	return acc, nil
}

func matchAccount(acc *account, filters []ast.AccountFilter) bool {
	results := make([]bool, 0, len(filters))

	for _, f := range filters {
		switch f := f.(type) {
		case ast.AccountBalanceFilter:
			results = append(results, acc.balance != nil && f.Compare(acc.balance))
		case ast.AccountNonceFilter:
			results = append(results, acc.nonce != nil && f.Compare(*acc.nonce))
		default:
			results = append(results, false)
		}
	}

	return filter.All(results...)
}

func setAccountField(row *AccountRow, acc *account, f ast.AccountField, chain string) {
	switch f {
	case ast.AccountAddress:
		row.Address = ptr(acc.address)
	case ast.AccountNonce:
		row.Nonce = acc.nonce
	case ast.AccountBalance:
		row.Balance = acc.balance
	case ast.AccountCode:
		row.Code = ptr(types.Bytes(acc.code))
	case ast.AccountChain:
		row.Chain = ptr(chain)
	}
}

type fieldFilter[F comparable] interface {
	Field() F
}

// neededFields is the set of fields to fetch: the requested ones plus every filtered one
func neededFields[F comparable, T fieldFilter[F]](fields []F, filters []T) map[F]bool {
	needed := make(map[F]bool, len(fields)+len(filters))

	for _, f := range fields {
		needed[f] = true
	}

	for _, f := range filters {
		needed[f.Field()] = true
	}

	return needed
}
