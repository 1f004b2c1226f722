package parser

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/ast/filter"
	"github.com/iankressin/eql-sub000/chain"
	"github.com/iankressin/eql-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAddress = "0x1234567890123456789012345678901234567890"
	usdtAddress = "0xdAC17F958D2ee523a2206206994597C13D831ec7"
	testHash    = "0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6"
)

func parseOne(t *testing.T, query string) *ast.Get {
	t.Helper()

	exprs, err := Parse(query)
	require.NoError(t, err, query)
	require.Len(t, exprs, 1)

	get, ok := exprs[0].(*ast.Get)
	require.True(t, ok)

	return get
}

func TestParseAccount(t *testing.T) {
	t.Parallel()

	query := "GET nonce, balance FROM account " + testAddress + " ON eth"
	get := parseOne(t, query)

	account, ok := get.Entity.(*ast.Account)
	require.True(t, ok)

	addr, err := types.ParseAddress(testAddress)
	require.NoError(t, err)

	assert.Equal(t, []ast.NameOrAddress{{Address: addr}}, account.IDs)
	assert.Equal(t, []ast.AccountField{ast.AccountNonce, ast.AccountBalance}, account.Fields)
	assert.Equal(t, []ast.Field{ast.AccountNonce, ast.AccountBalance}, get.Fields)
	assert.Equal(t, chain.Ethereum, get.Chain.Chain)
	assert.Empty(t, get.Chain.RPC)
	assert.Equal(t, query, get.Query)
	assert.Nil(t, get.Dump)
}

func TestParseAccountNamesAndFilters(t *testing.T) {
	t.Parallel()

	get := parseOne(t, "get address, balance from account vitalik.eth, "+testAddress+
		" where balance >= 1000000000000000000, nonce < 0x10 on http://localhost:8545")

	account := get.Entity.(*ast.Account)
	require.Len(t, account.IDs, 2)
	assert.Equal(t, "vitalik.eth", account.IDs[0].Name)
	assert.False(t, account.IDs[1].IsName())
	assert.Equal(t, "http://localhost:8545", get.Chain.RPC)

	require.Len(t, account.Filters, 2)

	balance, ok := account.Filters[0].(ast.AccountBalanceFilter)
	require.True(t, ok)
	assert.Equal(t, filter.Gte, balance.Operator())
	assert.True(t, balance.Compare(uint256.MustFromDecimal("1000000000000000000")))

	nonce, ok := account.Filters[1].(ast.AccountNonceFilter)
	require.True(t, ok)
	assert.True(t, nonce.Compare(15))
	assert.False(t, nonce.Compare(16))
}

func TestParseWildcard(t *testing.T) {
	t.Parallel()

	get := parseOne(t, "GET * FROM block 1 ON eth")
	block := get.Entity.(*ast.Block)

	assert.Equal(t, ast.AllBlockFields(), block.Fields)
	assert.Equal(t, []ast.BlockID{ast.Number(1)}, block.IDs)

	_, err := Parse("GET *, number FROM block 1 ON eth")

	var unexpected *UnexpectedTokenError
	require.ErrorAs(t, err, &unexpected)
	assert.Equal(t, ",", unexpected.Token)

	_, err = Parse("GET number, * FROM block 1 ON eth")
	require.ErrorAs(t, err, &unexpected)
}

func TestParseBlockIDs(t *testing.T) {
	t.Parallel()

	get := parseOne(t, "GET number, timestamp FROM block 1:100, latest, 5 : , 10 : finalized, 7 ON eth")
	block := get.Entity.(*ast.Block)

	end100 := ast.Number(100)
	finalized := ast.Tag(ast.TagFinalized)

	assert.Equal(t, []ast.BlockID{
		ast.BlockRange{Start: ast.Number(1), End: &end100},
		ast.Tag(ast.TagLatest),
		ast.BlockRange{Start: ast.Number(5)},
		ast.BlockRange{Start: ast.Number(10), End: &finalized},
		ast.Number(7),
	}, block.IDs)
}

func TestParseBlockFilters(t *testing.T) {
	t.Parallel()

	get := parseOne(t, "GET number FROM block 1:10 WHERE gas_used > 21000, miner "+testAddress+
		", base_fee_per_gas <= 0x3b9aca00 ON base")
	block := get.Entity.(*ast.Block)

	require.Len(t, block.Filters, 3)
	assert.Equal(t, ast.BlockGasUsed, block.Filters[0].Field())
	assert.Equal(t, ast.BlockMiner, block.Filters[1].Field())
	assert.Equal(t, ast.BlockBaseFeePerGas, block.Filters[2].Field())
	assert.True(t, block.Filters[2].(ast.BlockBaseFeeFilter).Compare(uint256.NewInt(1000000000)))
	assert.Equal(t, chain.Base, get.Chain.Chain)
}

func TestParseTransaction(t *testing.T) {
	t.Parallel()

	get := parseOne(t, "GET hash, value FROM tx "+testHash+" ON eth")
	tx := get.Entity.(*ast.Transaction)

	hash, err := types.ParseHash(testHash)
	require.NoError(t, err)
	assert.Equal(t, []types.Hash{hash}, tx.Hashes)

	get = parseOne(t, "GET hash, from FROM transaction WHERE block 1 : 100, value > 1000000000000000000, "+
		"from = "+testAddress+", status true, type 2, data 0xA9059CBB ON eth")
	tx = get.Entity.(*ast.Transaction)

	id, ok := tx.BlockFilter()
	require.True(t, ok)

	end := ast.Number(100)
	assert.Equal(t, ast.BlockRange{Start: ast.Number(1), End: &end}, id)

	fieldFilters := tx.FieldFilters()
	require.Len(t, fieldFilters, 5)
	assert.Equal(t, ast.TxValue, fieldFilters[0].Field())
	assert.Equal(t, ast.TxFrom, fieldFilters[1].Field())
	assert.Equal(t, ast.TxStatus, fieldFilters[2].Field())
	assert.Equal(t, ast.TxType, fieldFilters[3].Field())
	assert.True(t, fieldFilters[4].(ast.TxDataFilter).Compare("0xa9059cbb"))
}

func TestParseLogs(t *testing.T) {
	t.Parallel()

	get := parseOne(t, "GET address, topic1 FROM logs WHERE block 4638757:4638800, address "+usdtAddress+
		", event_signature Transfer(address,address,uint256), topic2 "+testHash+" ON eth >> transfers.parquet")
	logs := get.Entity.(*ast.Logs)

	require.Len(t, logs.Filters, 4)

	end := ast.Number(4638800)
	assert.Equal(t, ast.LogBlockFilter{ID: ast.BlockRange{Start: ast.Number(4638757), End: &end}}, logs.Filters[0])
	assert.Equal(t, ast.LogEventSignatureFilter{Signature: "Transfer(address,address,uint256)"}, logs.Filters[2])
	assert.Equal(t, 2, logs.Filters[3].(ast.LogTopicFilter).Index)
	assert.Equal(t, &ast.Dump{Name: "transfers", Format: ast.DumpParquet}, get.Dump)
	assert.Equal(t, []ast.LogField{ast.LogAddress, ast.LogTopic1}, logs.Fields)
}

func TestParseMultipleStatements(t *testing.T) {
	t.Parallel()

	first := "GET balance FROM account " + testAddress + " ON eth"
	second := "GET number FROM block latest ON arb"

	exprs, err := Parse("  " + first + ";\n\n" + second + " ;; ")
	require.NoError(t, err)
	require.Len(t, exprs, 2)

	assert.Equal(t, first, exprs[0].Source())
	assert.Equal(t, second, exprs[1].Source())
	assert.Equal(t, chain.Arbitrum, exprs[1].(*ast.Get).Chain.Chain)

	exprs, err = Parse(first + "\n" + second)
	require.NoError(t, err)
	assert.Len(t, exprs, 2)
}

func TestParseKeepsForeignFields(t *testing.T) {
	t.Parallel()

	get := parseOne(t, "GET balance, timestamp FROM account "+testAddress+" ON eth")

	assert.Equal(t, []ast.Field{ast.AccountBalance, ast.BlockTimestamp}, get.Fields)
	assert.Equal(t, []ast.AccountField{ast.AccountBalance}, get.Entity.(*ast.Account).Fields)
}

func TestParseUnexpectedToken(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query  string
		token  string
		line   int
		column int
	}{
		{"GET foo FROM account " + testAddress + " ON eth", "foo", 1, 5},
		{"GET balance FROM acount " + testAddress + " ON eth", "acount", 1, 18},
		{"GET * FROM block 1 ON eth extra", "extra", 1, 27},
		{"GET * FROM block 1 ON solana", "solana", 1, 23},
		{"GET balance FROM account foo.bar ON eth", "foo.bar", 1, 26},
		{"GET balance FROM account " + testAddress + " ON eth\nGET bogus FROM block 1 ON eth", "bogus", 2, 5},
		{"GET * FROM block 1 WHERE color = red ON eth", "color", 1, 26},
		{"GET * FROM tx WHERE value > lots ON eth", "lots", 1, 29},
		{"GET * FROM block 1 ON eth >> out.xml", "out.xml", 1, 30},
		{"SELECT * FROM block 1 ON eth", "SELECT", 1, 1},
		{"GET balance, FROM account " + testAddress + " ON eth", "FROM", 1, 14},
		{"GET number FROM block 1, ON eth", "ON", 1, 26},
		{"GET number FROM block 1,2, ON eth", "ON", 1, 28},
		{"GET * FROM tx WHERE block 1:2, ON eth", "ON", 1, 32},
		{"GET * FROM log ON eth", "ON", 1, 16},
		{"", endOfInput, 1, 1},
	}

	for _, c := range cases {
		_, err := Parse(c.query)

		var unexpected *UnexpectedTokenError
		require.ErrorAs(t, err, &unexpected, c.query)
		assert.Equal(t, c.token, unexpected.Token, c.query)
		assert.Equal(t, c.line, unexpected.Line, c.query)
		assert.Equal(t, c.column, unexpected.Column, c.query)
	}
}

func TestParseIncompleteStatement(t *testing.T) {
	t.Parallel()

	for _, query := range []string{
		"GET",
		"GET balance FROM account " + testAddress,
		"GET balance FROM account " + testAddress + " ONN eth",
		"GET balance, FROM account " + testAddress + " ON eth",
		"GET * FROM block 1 WHERE ON eth",
		"GET * FROM log ON eth",
	} {
		_, err := Parse(query)

		var unexpected *UnexpectedTokenError
		assert.True(t, errors.As(err, &unexpected), "%q: %v", query, err)
	}
}

func TestParseMismatchEntityAndID(t *testing.T) {
	t.Parallel()

	for _, query := range []string{
		"GET balance FROM account 1 ON eth",
		"GET balance FROM account " + testHash + " ON eth",
		"GET number FROM block " + testAddress + " ON eth",
		"GET number FROM block vitalik.eth ON eth",
		"GET hash FROM tx " + testAddress + " ON eth",
		"GET hash FROM tx 1:2 ON eth",
		"GET address FROM logs 1 WHERE block 1 ON eth",
	} {
		_, err := Parse(query)
		assert.ErrorIs(t, err, ast.ErrMismatchEntityAndEntityID, query)
	}
}

func TestParseInvalidOperator(t *testing.T) {
	t.Parallel()

	for _, query := range []string{
		"GET * FROM logs WHERE address > " + usdtAddress + " ON eth",
		"GET * FROM block 1 WHERE miner >= " + testAddress + " ON eth",
		"GET * FROM tx WHERE block > 1 ON eth",
		"GET * FROM tx WHERE block 1, status < true ON eth",
	} {
		_, err := Parse(query)

		var opErr *filter.InvalidOperatorError
		assert.ErrorAs(t, err, &opErr, query)
	}
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParse("GET") })
	assert.Len(t, MustParse("GET * FROM block 1 ON eth"), 1)
}
