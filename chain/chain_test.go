package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAliases(t *testing.T) {
	t.Parallel()

	cases := map[string]Chain{
		"eth":      Ethereum,
		"ETHEREUM": Ethereum,
		"mainnet":  Ethereum,
		"arb":      Arbitrum,
		"op":       Optimism,
		"bsc":      Bnb,
		" base ":   Base,
		"ftm":      Fantom,
	}

	for name, expected := range cases {
		c, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, c, name)
	}

	_, err := Parse("solana")
	assert.ErrorIs(t, err, ErrUnknownChain)
}

func TestEveryChainIsComplete(t *testing.T) {
	t.Parallel()

	seen := map[uint64]Chain{}

	for _, c := range All() {
		assert.NotEqual(t, "unknown", c.String())
		assert.NotZero(t, c.ChainID(), c.String())
		assert.True(t, IsRPCURL(c.FallbackRPC()), c.String())

		_, dup := seen[c.ChainID()]
		assert.False(t, dup, "duplicate chain id for %s", c)
		seen[c.ChainID()] = c

		parsed, err := Parse(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestIsRPCURL(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRPCURL("http://localhost:8545"))
	assert.True(t, IsRPCURL("WSS://node.example"))
	assert.False(t, IsRPCURL("eth"))
}
