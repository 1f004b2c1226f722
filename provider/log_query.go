package provider

import (
	"errors"

	"github.com/iankressin/eql-sub000/ast"
	"github.com/iankressin/eql-sub000/types"
)

const maxTopics = 4

var ErrBlockHashWithRange = errors.New("cannot specify both BlockHash and FromBlock/ToBlock")

// LogQuery is the eth_getLogs filter object
type LogQuery struct {
	FromBlock *ast.BlockNumberOrTag
	ToBlock   *ast.BlockNumberOrTag
	BlockHash *types.Hash
	Addresses []types.Address

	// Topics holds one set of alternatives per position, an empty set matches anything
	Topics [][]types.Hash
}

// SetTopic pins topic position i to a single value, replacing any earlier value
func (q *LogQuery) SetTopic(i int, topic types.Hash) {
	if i < 0 || i >= maxTopics {
		return
	}

	for len(q.Topics) <= i {
		q.Topics = append(q.Topics, nil)
	}

	q.Topics[i] = []types.Hash{topic}
}

// SetBlockHash restricts the query to one block and drops any range
func (q *LogQuery) SetBlockHash(hash types.Hash) {
	q.BlockHash = &hash
	q.FromBlock = nil
	q.ToBlock = nil
}

// SetRange restricts the query to an inclusive block range and drops any block hash
func (q *LogQuery) SetRange(from, to ast.BlockNumberOrTag) {
	q.FromBlock = &from
	q.ToBlock = &to
	q.BlockHash = nil
}

func (q *LogQuery) toArg() (interface{}, error) {
	arg := map[string]interface{}{}

	if len(q.Addresses) == 1 {
		arg["address"] = q.Addresses[0]
	} else if len(q.Addresses) > 1 {
		arg["address"] = q.Addresses
	}

	if q.BlockHash != nil {
		if q.FromBlock != nil || q.ToBlock != nil {
			return nil, ErrBlockHashWithRange
		}

		arg["blockHash"] = *q.BlockHash
	} else {
		// unset bounds are left to the node, which defaults them to latest
		if q.FromBlock != nil {
			arg["fromBlock"] = q.FromBlock.RPCArg()
		}

		if q.ToBlock != nil {
			arg["toBlock"] = q.ToBlock.RPCArg()
		}
	}

	if topics := q.topicsArg(); len(topics) > 0 {
		arg["topics"] = topics
	}

	return arg, nil
}

func (q *LogQuery) topicsArg() []interface{} {
	last := -1

	for i, set := range q.Topics {
		if len(set) > 0 {
			last = i
		}
	}

	topics := make([]interface{}, last+1)

	for i := 0; i <= last; i++ {
		switch set := q.Topics[i]; len(set) {
		case 0:
			topics[i] = nil
		case 1:
			topics[i] = set[0]
		default:
			topics[i] = set
		}
	}

	return topics
}
