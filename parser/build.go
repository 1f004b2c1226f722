package parser

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/ast/filter"
	"github.com/iankressin/eql-sub000/helper/hex"
	"github.com/iankressin/eql-sub000/types"
)

// builder turns raw grammar output into the typed entity model. It keeps the
// whole input around so every error can point at its lexeme.
type builder struct {
	input string
}

func (b *builder) statement(raw *rawStatement, source string) (*ast.Get, error) {
	kind, err := b.entityKind(raw.entity)
	if err != nil {
		return nil, err
	}

	fields, err := b.fields(raw, kind)
	if err != nil {
		return nil, err
	}

	target, err := ast.ParseChainTarget(raw.target.text)
	if err != nil {
		return nil, b.unexpected(raw.target, "chain name or rpc url")
	}

	get := &ast.Get{
		Chain:  target,
		Query:  source,
		Fields: fields,
	}

	if raw.dump != nil {
		if get.Dump, err = ast.ParseDump(raw.dump.text); err != nil {
			return nil, b.unexpected(*raw.dump, "<name>.json, <name>.csv or <name>.parquet")
		}
	}

	switch kind {
	case ast.AccountKind:
		get.Entity, err = b.account(raw, fields)
	case ast.BlockKind:
		get.Entity, err = b.block(raw, fields)
	case ast.TransactionKind:
		get.Entity, err = b.transaction(raw, fields)
	case ast.LogKind:
		get.Entity, err = b.logs(raw, fields)
	}

	if err != nil {
		return nil, err
	}

	return get, nil
}

func (b *builder) unexpected(tok token, expected string) error {
	return unexpectedToken(b.input, tok, expected)
}

func (b *builder) entityKind(tok token) (ast.EntityKind, error) {
	switch strings.ToLower(tok.text) {
	case "account", "accounts":
		return ast.AccountKind, nil
	case "block", "blocks":
		return ast.BlockKind, nil
	case "transaction", "transactions", "tx", "txs":
		return ast.TransactionKind, nil
	case "log", "logs":
		return ast.LogKind, nil
	}

	return 0, b.unexpected(tok, "account, block, transaction or log")
}

func (b *builder) fields(raw *rawStatement, kind ast.EntityKind) ([]ast.Field, error) {
	if raw.wildcard {
		return ast.AllFields(kind), nil
	}

	fields := make([]ast.Field, 0, len(raw.fields))

	for _, tok := range raw.fields {
		f, err := ast.LookupField(tok.text, kind)
		if err != nil {
			return nil, b.unexpected(tok, "field name")
		}

		fields = append(fields, f)
	}

	return fields, nil
}

// kindOnly keeps the fields of the given entity. The others are reported by semantic analysis.
func kindOnly[F ast.Field](fields []ast.Field) []F {
	out := make([]F, 0, len(fields))

	for _, f := range fields {
		if typed, ok := f.(F); ok {
			out = append(out, typed)
		}
	}

	return out
}

func (b *builder) mismatch(tok token, kind ast.EntityKind) error {
	line, col := coordinates(b.input, tok.pos)

	return fmt.Errorf("%w: %q at line %d column %d is not a valid %s id",
		ast.ErrMismatchEntityAndEntityID, tok.text, line, col, kind)
}

// classify reports what a single id token looks like, independent of the entity
type idClass int

const (
	classUnknown idClass = iota
	classAddress
	classHash
	className
	classBlock
)

func classify(id rawID) idClass {
	if id.isRange {
		return classBlock
	}

	text := id.start.text

	switch {
	case types.IsHash(text):
		return classHash
	case types.IsAddress(text):
		return classAddress
	case ast.IsENSName(text):
		return className
	}

	if _, err := ast.ParseBlockNumberOrTag(text); err == nil {
		return classBlock
	}

	return classUnknown
}

func (b *builder) account(raw *rawStatement, fields []ast.Field) (*ast.Account, error) {
	account := &ast.Account{Fields: kindOnly[ast.AccountField](fields)}

	for _, id := range raw.ids {
		switch classify(id) {
		case classAddress:
			addr, _ := types.ParseAddress(id.start.text)
			account.IDs = append(account.IDs, ast.NameOrAddress{Address: addr})
		case className:
			account.IDs = append(account.IDs, ast.NameOrAddress{Name: strings.ToLower(id.start.text)})
		case classUnknown:
			return nil, b.unexpected(id.start, "address or ENS name")
		default:
			return nil, b.mismatch(id.start, ast.AccountKind)
		}
	}

	for _, f := range raw.filters {
		op, err := b.operator(f)
		if err != nil {
			return nil, err
		}

		var built ast.AccountFilter

		switch strings.ToLower(f.key.text) {
		case "balance":
			v, perr := b.amount(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewBigNumeric(op, v)
			built, err = ast.AccountBalanceFilter{Predicate: pred}, perr
		case "nonce":
			v, perr := b.uint(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewNumeric(op, v)
			built, err = ast.AccountNonceFilter{Predicate: pred}, perr
		default:
			return nil, b.unexpected(f.key, "balance or nonce")
		}

		if err != nil {
			return nil, b.filterError(f, err)
		}

		account.Filters = append(account.Filters, built)
	}

	return account, nil
}

func (b *builder) block(raw *rawStatement, fields []ast.Field) (*ast.Block, error) {
	block := &ast.Block{Fields: kindOnly[ast.BlockField](fields)}

	for _, id := range raw.ids {
		switch classify(id) {
		case classBlock:
			blockID, err := b.blockID(id)
			if err != nil {
				return nil, err
			}

			block.IDs = append(block.IDs, blockID)
		case classUnknown:
			return nil, b.unexpected(id.start, "block number, tag or range")
		default:
			return nil, b.mismatch(id.start, ast.BlockKind)
		}
	}

	for _, f := range raw.filters {
		op, err := b.operator(f)
		if err != nil {
			return nil, err
		}

		var built ast.BlockFilter

		key := strings.ToLower(f.key.text)

		switch key {
		case "timestamp", "size", "gas_used", "gas_limit":
			target, _ := ast.ParseBlockField(key)

			v, perr := b.uint(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewNumeric(op, v)
			built, err = ast.BlockUintFilter{Target: target, Predicate: pred}, perr
		case "base_fee_per_gas":
			v, perr := b.amount(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewBigNumeric(op, v)
			built, err = ast.BlockBaseFeeFilter{Predicate: pred}, perr
		case "miner":
			v, perr := b.address(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewEquality(op, v)
			built, err = ast.BlockMinerFilter{Predicate: pred}, perr
		default:
			return nil, b.unexpected(f.key, "timestamp, size, gas_used, gas_limit, base_fee_per_gas or miner")
		}

		if err != nil {
			return nil, b.filterError(f, err)
		}

		block.Filters = append(block.Filters, built)
	}

	return block, nil
}

func (b *builder) transaction(raw *rawStatement, fields []ast.Field) (*ast.Transaction, error) {
	tx := &ast.Transaction{Fields: kindOnly[ast.TransactionField](fields)}

	for _, id := range raw.ids {
		switch classify(id) {
		case classHash:
			hash, _ := types.ParseHash(id.start.text)
			tx.Hashes = append(tx.Hashes, hash)
		case classUnknown:
			return nil, b.unexpected(id.start, "transaction hash")
		default:
			return nil, b.mismatch(id.start, ast.TransactionKind)
		}
	}

	for _, f := range raw.filters {
		op, err := b.operator(f)
		if err != nil {
			return nil, err
		}

		var built ast.TransactionFilter

		key := strings.ToLower(f.key.text)

		switch key {
		case "block":
			if op != filter.Eq {
				return nil, b.filterError(f, &filter.InvalidOperatorError{Operator: f.op, Kind: filter.Equality})
			}

			blockID, perr := b.blockID(f.value)
			if perr != nil {
				return nil, perr
			}

			built = ast.TxBlockFilter{ID: blockID}
		case "type", "transaction_type", "gas", "nonce", "chain_id":
			if key == "type" {
				key = "transaction_type"
			}

			target, _ := ast.ParseTransactionField(key)

			v, perr := b.uint(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewNumeric(op, v)
			built, err = ast.TxUintFilter{Target: target, Predicate: pred}, perr
		case "value", "gas_price", "max_fee_per_gas", "max_priority_fee_per_gas", "max_fee_per_blob_gas":
			target, _ := ast.ParseTransactionField(key)

			v, perr := b.amount(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewBigNumeric(op, v)
			built, err = ast.TxAmountFilter{Target: target, Predicate: pred}, perr
		case "from", "to":
			target, _ := ast.ParseTransactionField(key)

			v, perr := b.address(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewEquality(op, v)
			built, err = ast.TxAddressFilter{Target: target, Predicate: pred}, perr
		case "data":
			if f.value.isRange || !hex.Has0xPrefix(f.value.start.text) ||
				(len(f.value.start.text) > 2 && !hex.IsHex(f.value.start.text)) {
				return nil, b.unexpected(f.value.start, "0x prefixed calldata")
			}

			pred, perr := filter.NewEquality(op, strings.ToLower(f.value.start.text))
			built, err = ast.TxDataFilter{Predicate: pred}, perr
		case "status":
			v, perr := b.boolean(f.value)
			if perr != nil {
				return nil, perr
			}

			pred, perr := filter.NewEquality(op, v)
			built, err = ast.TxStatusFilter{Predicate: pred}, perr
		default:
			return nil, b.unexpected(f.key, "transaction filter")
		}

		if err != nil {
			return nil, b.filterError(f, err)
		}

		tx.Filters = append(tx.Filters, built)
	}

	return tx, nil
}

func (b *builder) logs(raw *rawStatement, fields []ast.Field) (*ast.Logs, error) {
	logs := &ast.Logs{Fields: kindOnly[ast.LogField](fields)}

	if len(raw.ids) > 0 {
		return nil, b.mismatch(raw.ids[0].start, ast.LogKind)
	}

	if len(raw.filters) == 0 {
		return nil, b.unexpected(raw.on, "WHERE")
	}

	for _, f := range raw.filters {
		op, err := b.operator(f)
		if err != nil {
			return nil, err
		}

		if op != filter.Eq {
			return nil, b.filterError(f, &filter.InvalidOperatorError{Operator: f.op, Kind: filter.Equality})
		}

		var built ast.LogFilter

		switch key := strings.ToLower(f.key.text); key {
		case "block":
			blockID, perr := b.blockID(f.value)
			if perr != nil {
				return nil, perr
			}

			built = ast.LogBlockFilter{ID: blockID}
		case "blockhash", "block_hash":
			hash, perr := b.hash(f.value)
			if perr != nil {
				return nil, perr
			}

			built = ast.LogBlockHashFilter{Hash: hash}
		case "address", "emitter":
			addr, perr := b.address(f.value)
			if perr != nil {
				return nil, perr
			}

			built = ast.LogAddressFilter{Address: addr}
		case "event_signature", "event":
			if !strings.HasSuffix(f.value.start.text, ")") || f.value.isRange {
				return nil, b.unexpected(f.value.start, "event signature")
			}

			built = ast.LogEventSignatureFilter{Signature: f.value.start.text}
		case "topic0", "topic1", "topic2", "topic3":
			hash, perr := b.hash(f.value)
			if perr != nil {
				return nil, perr
			}

			built = ast.LogTopicFilter{Index: int(key[len(key)-1] - '0'), Topic: hash}
		default:
			return nil, b.unexpected(f.key, "log filter")
		}

		logs.Filters = append(logs.Filters, built)
	}

	return logs, nil
}

func (b *builder) operator(f rawFilter) (filter.Operator, error) {
	if f.op == "" {
		return filter.Eq, nil
	}

	op, err := filter.ParseOperator(f.op)
	if err != nil {
		return op, b.filterError(f, err)
	}

	return op, nil
}

func (b *builder) filterError(f rawFilter, err error) error {
	line, col := coordinates(b.input, f.key.pos)

	return fmt.Errorf("filter %q at line %d column %d: %w", f.key.text, line, col, err)
}

func (b *builder) blockID(id rawID) (ast.BlockID, error) {
	start, err := ast.ParseBlockNumberOrTag(id.start.text)
	if err != nil {
		return nil, b.unexpected(id.start, "block number or tag")
	}

	if !id.isRange {
		return start, nil
	}

	r := ast.BlockRange{Start: start}

	if id.end != nil {
		end, err := ast.ParseBlockNumberOrTag(id.end.text)
		if err != nil {
			return nil, b.unexpected(*id.end, "block number or tag")
		}

		r.End = &end
	}

	return r, nil
}

func (b *builder) single(id rawID, expected string) (string, error) {
	if id.isRange {
		return "", b.unexpected(id.start, expected)
	}

	return id.start.text, nil
}

func (b *builder) uint(id rawID) (uint64, error) {
	text, err := b.single(id, "number")
	if err != nil {
		return 0, err
	}

	v, err := ast.ParseBlockNumberOrTag(text)
	if err != nil || !v.IsNumber() {
		return 0, b.unexpected(id.start, "number")
	}

	return v.Number, nil
}

// amount parses a 256 bit decimal or 0x quantity
func (b *builder) amount(id rawID) (*uint256.Int, error) {
	text, err := b.single(id, "number")
	if err != nil {
		return nil, err
	}

	if hex.Has0xPrefix(text) {
		var big types.Big
		if err := big.UnmarshalText([]byte(text)); err != nil {
			return nil, b.unexpected(id.start, "number")
		}

		return big.Int(), nil
	}

	v, err := uint256.FromDecimal(text)
	if err != nil {
		return nil, b.unexpected(id.start, "number")
	}

	return v, nil
}

func (b *builder) address(id rawID) (types.Address, error) {
	text, err := b.single(id, "address")
	if err != nil {
		return types.ZeroAddress, err
	}

	addr, err := types.ParseAddress(text)
	if err != nil {
		return types.ZeroAddress, b.unexpected(id.start, "address")
	}

	return addr, nil
}

func (b *builder) hash(id rawID) (types.Hash, error) {
	text, err := b.single(id, "hash")
	if err != nil {
		return types.ZeroHash, err
	}

	hash, err := types.ParseHash(text)
	if err != nil {
		return types.ZeroHash, b.unexpected(id.start, "hash")
	}

	return hash, nil
}

func (b *builder) boolean(id rawID) (bool, error) {
	text, err := b.single(id, "true or false")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(text) {
	case "true", "success", "1":
		return true, nil
	case "false", "fail", "failed", "0":
		return false, nil
	}

	return false, b.unexpected(id.start, "true or false")
}
