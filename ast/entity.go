package ast

import (
	"strings"

	"github.com/iankressin/eql-sub000/types"
)

// Entity is the closed set of query targets
type Entity interface {
	isEntity()
	Kind() EntityKind
	RequestedFields() []Field
}

// NameOrAddress is an account identifier: an address or an ENS name to resolve
type NameOrAddress struct {
	Address types.Address
	Name    string
}

// IsName reports whether the identifier still needs name resolution
func (n NameOrAddress) IsName() bool {
	return n.Name != ""
}

func (n NameOrAddress) String() string {
	if n.IsName() {
		return n.Name
	}

	return n.Address.String()
}

// IsENSName reports whether token looks like an ENS name
func IsENSName(token string) bool {
	name := strings.ToLower(token)

	return len(name) > len(".eth") && strings.HasSuffix(name, ".eth")
}

type Account struct {
	IDs     []NameOrAddress
	Filters []AccountFilter
	Fields  []AccountField
}

func (*Account) isEntity() {}

func (*Account) Kind() EntityKind { return AccountKind }

func (a *Account) RequestedFields() []Field { return toFields(a.Fields) }

type Block struct {
	IDs     []BlockID
	Filters []BlockFilter
	Fields  []BlockField
}

func (*Block) isEntity() {}

func (*Block) Kind() EntityKind { return BlockKind }

func (b *Block) RequestedFields() []Field { return toFields(b.Fields) }

type Transaction struct {
	Hashes  []types.Hash
	Filters []TransactionFilter
	Fields  []TransactionField
}

func (*Transaction) isEntity() {}

func (*Transaction) Kind() EntityKind { return TransactionKind }

func (t *Transaction) RequestedFields() []Field { return toFields(t.Fields) }

// BlockFilter returns the last block id filter, the one that selects the candidate blocks
func (t *Transaction) BlockFilter() (BlockID, bool) {
	var (
		id    BlockID
		found bool
	)

	for _, f := range t.Filters {
		if bf, ok := f.(TxBlockFilter); ok {
			id, found = bf.ID, true
		}
	}

	return id, found
}

// FieldFilters returns every client side predicate, i.e. all filters but the block id
func (t *Transaction) FieldFilters() []TransactionFilter {
	out := make([]TransactionFilter, 0, len(t.Filters))

	for _, f := range t.Filters {
		if _, ok := f.(TxBlockFilter); !ok {
			out = append(out, f)
		}
	}

	return out
}

type Logs struct {
	Filters []LogFilter
	Fields  []LogField
}

func (*Logs) isEntity() {}

func (*Logs) Kind() EntityKind { return LogKind }

func (l *Logs) RequestedFields() []Field { return toFields(l.Fields) }
