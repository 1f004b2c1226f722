package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/iankressin/eql-sub000/types"
	web3 "github.com/umbracle/go-web3"
	"github.com/umbracle/go-web3/contract/builtin/ens"
)

// ENSRegistry is the registry address shared by mainnet and the public testnets
var ENSRegistry = types.Address{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x0C, 0x2E, 0x07, 0x4e, 0xC6,
	0xA6, 0x9A, 0x0d, 0xFb, 0x29, 0x97, 0xBA, 0x6C, 0x7d, 0x2e,
}

// ensBackend performs the two contract reads of a name lookup at the latest block
type ensBackend interface {
	resolver(ctx context.Context, node types.Hash) (types.Address, error)
	addr(ctx context.Context, resolver types.Address, node types.Hash) (types.Address, error)
}

// NameHash computes the EIP-137 node of name. Names are matched case-insensitively.
func NameHash(name string) types.Hash {
	return types.Hash(ens.NameHash(strings.ToLower(name)))
}

func resolveName(ctx context.Context, b ensBackend, name string) (types.Address, error) {
	node := NameHash(name)

	resolver, err := b.resolver(ctx, node)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("ens resolver of %s: %w", name, err)
	}

	if resolver.IsZero() {
		return types.ZeroAddress, fmt.Errorf("%w: %s has no resolver", ErrNameNotFound, name)
	}

	addr, err := b.addr(ctx, resolver, node)
	if err != nil {
		return types.ZeroAddress, fmt.Errorf("ens address of %s: %w", name, err)
	}

	if addr.IsZero() {
		return types.ZeroAddress, fmt.Errorf("%w: %s", ErrNameNotFound, name)
	}

	return addr, nil
}

func (r *RPC) resolver(ctx context.Context, node types.Hash) (types.Address, error) {
	return r.contractCall(ctx, func() (web3.Address, error) {
		return ens.NewENS(web3.Address(ENSRegistry), r.client).Resolver(node, web3.Latest)
	})
}

func (r *RPC) addr(ctx context.Context, resolver types.Address, node types.Hash) (types.Address, error) {
	return r.contractCall(ctx, func() (web3.Address, error) {
		return ens.NewResolver(web3.Address(resolver), r.client).Addr(node, web3.Latest)
	})
}
