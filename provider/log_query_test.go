package provider

import (
	"encoding/json"
	"testing"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogQueryArg(t *testing.T) {
	t.Parallel()

	addr := types.MustParseAddress("0xdac17f958d2ee523a2206206994597c13d831ec7")
	topic := types.MustParseHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	blockHash := types.MustParseHash(testTxHash)

	cases := []struct {
		name  string
		query func() *LogQuery
		json  string
	}{
		{
			"empty",
			func() *LogQuery { return &LogQuery{} },
			`{}`,
		},
		{
			"range and address",
			func() *LogQuery {
				q := &LogQuery{Addresses: []types.Address{addr}}
				q.SetRange(ast.Number(16), ast.Tag(ast.TagLatest))

				return q
			},
			`{"address":"` + addr.String() + `","fromBlock":"0x10","toBlock":"latest"}`,
		},
		{
			"block hash replaces range",
			func() *LogQuery {
				q := &LogQuery{}
				q.SetRange(ast.Number(1), ast.Number(2))
				q.SetBlockHash(blockHash)

				return q
			},
			`{"blockHash":"` + testTxHash + `"}`,
		},
		{
			"sparse topics",
			func() *LogQuery {
				q := &LogQuery{}
				q.SetTopic(2, topic)

				return q
			},
			`{"topics":[null,null,"` + topic.String() + `"]}`,
		},
		{
			"topic replaced",
			func() *LogQuery {
				q := &LogQuery{}
				q.SetTopic(0, blockHash)
				q.SetTopic(0, topic)
				q.SetTopic(7, topic)

				return q
			},
			`{"topics":["` + topic.String() + `"]}`,
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			arg, err := c.query().toArg()
			require.NoError(t, err)

			raw, err := json.Marshal(arg)
			require.NoError(t, err)
			assert.JSONEq(t, c.json, string(raw))
		})
	}
}

func TestLogQueryArgConflict(t *testing.T) {
	t.Parallel()

	from := ast.Number(1)
	hash := types.MustParseHash(testTxHash)

	_, err := (&LogQuery{FromBlock: &from, BlockHash: &hash}).toArg()
	assert.ErrorIs(t, err, ErrBlockHashWithRange)
}
