package ast

import (
	"testing"

	"github.com/iankressin/eql-sub000/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWildcardExpansionIsComplete(t *testing.T) {
	t.Parallel()

	assert.Len(t, AllAccountFields(), 5)
	assert.Len(t, AllBlockFields(), 21)
	assert.Len(t, AllTransactionFields(), 22)
	assert.Len(t, AllLogFields(), 13)

	for _, kind := range []EntityKind{AccountKind, BlockKind, TransactionKind, LogKind} {
		seen := map[string]bool{}

		for _, f := range AllFields(kind) {
			assert.Equal(t, kind, f.Kind())
			assert.False(t, seen[f.String()], "duplicate field %s", f)
			seen[f.String()] = true

			found, err := LookupField(f.String(), kind)
			require.NoError(t, err)
			assert.Equal(t, f, found)
		}
	}

	assert.Equal(t, BlockNumber, AllBlockFields()[0])
	assert.Equal(t, TxChain, AllTransactionFields()[len(AllTransactionFields())-1])
}

func TestParseFieldCaseInsensitive(t *testing.T) {
	t.Parallel()

	f, err := ParseBlockField("BASE_FEE_PER_GAS")
	require.NoError(t, err)
	assert.Equal(t, BlockBaseFeePerGas, f)

	_, err = ParseAccountField("timestamp")

	var unknown *UnknownFieldError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "timestamp", unknown.Name)
}

func TestLookupFieldPrefersEntity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		preferred EntityKind
		expected  Field
	}{
		{"hash", BlockKind, BlockHash},
		{"hash", TransactionKind, TxHash},
		{"address", LogKind, LogAddress},
		{"nonce", TransactionKind, TxNonce},
		{"timestamp", AccountKind, BlockTimestamp},
		{"topic2", AccountKind, LogTopic2},
	}

	for _, c := range cases {
		f, err := LookupField(c.name, c.preferred)
		require.NoError(t, err)
		assert.Equal(t, c.expected, f, c.name)
	}

	_, err := LookupField("nope", AccountKind)
	assert.Error(t, err)
}

func TestParseBlockNumberOrTag(t *testing.T) {
	t.Parallel()

	cases := map[string]BlockNumberOrTag{
		"1":         Number(1),
		" 100 ":     Number(100),
		"0x10":      Number(16),
		"latest":    Tag(TagLatest),
		"Finalized": Tag(TagFinalized),
		"safe":      Tag(TagSafe),
		"earliest":  Tag(TagEarliest),
		"pending":   Tag(TagPending),
	}

	for token, expected := range cases {
		b, err := ParseBlockNumberOrTag(token)
		require.NoError(t, err, token)
		assert.Equal(t, expected, b, token)
	}

	_, err := ParseBlockNumberOrTag("head")
	assert.Error(t, err)

	assert.Equal(t, "0x10", Number(16).RPCArg())
	assert.Equal(t, "latest", Tag(TagLatest).RPCArg())
}

func TestChainTargetAndDump(t *testing.T) {
	t.Parallel()

	target, err := ParseChainTarget("eth")
	require.NoError(t, err)
	assert.Equal(t, chain.Ethereum, target.Chain)

	target, err = ParseChainTarget("http://localhost:8545")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", target.String())

	dump, err := ParseDump("out.blocks.csv")
	require.NoError(t, err)
	assert.Equal(t, &Dump{Name: "out.blocks", Format: DumpCSV}, dump)
	assert.Equal(t, "out.blocks.csv", dump.Path())

	for _, bad := range []string{"out", "out.xml", ".json", "out."} {
		_, err := ParseDump(bad)
		assert.ErrorIs(t, err, ErrUnknownDumpFormat, bad)
	}
}

func TestTransactionBlockFilter(t *testing.T) {
	t.Parallel()

	tx := &Transaction{
		Filters: []TransactionFilter{
			TxBlockFilter{ID: Number(1)},
			TxStatusFilter{},
			TxBlockFilter{ID: BlockRange{Start: Number(2)}},
		},
	}

	id, ok := tx.BlockFilter()
	require.True(t, ok)
	assert.Equal(t, BlockRange{Start: Number(2)}, id)
	assert.Len(t, tx.FieldFilters(), 1)

	_, ok = (&Transaction{}).BlockFilter()
	assert.False(t, ok)
}

func TestIsENSName(t *testing.T) {
	t.Parallel()

	assert.True(t, IsENSName("vitalik.eth"))
	assert.True(t, IsENSName("Sub.Vitalik.ETH"))
	assert.False(t, IsENSName(".eth"))
	assert.False(t, IsENSName("vitalik.com"))
}
