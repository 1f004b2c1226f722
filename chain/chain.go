package chain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownChain = errors.New("unknown chain")

// Chain identifies an EVM network the engine knows how to reach without configuration
type Chain int

const (
	Unknown Chain = iota
	Ethereum
	Sepolia
	Arbitrum
	Base
	Blast
	Optimism
	Polygon
	Mantle
	Zksync
	Taiko
	Celo
	Avalanche
	Scroll
	Bnb
	Linea
	Zora
	Moonbeam
	Moonriver
	Ronin
	Fantom
	Kava
	Gnosis
)

// All returns every known chain in declaration order
func All() []Chain {
	return []Chain{
		Ethereum, Sepolia, Arbitrum, Base, Blast, Optimism, Polygon, Mantle, Zksync, Taiko, Celo,
		Avalanche, Scroll, Bnb, Linea, Zora, Moonbeam, Moonriver, Ronin, Fantom, Kava, Gnosis,
	}
}

// Parse maps a chain name or alias, case-insensitively, onto a Chain
func Parse(name string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "eth", "ethereum", "mainnet":
		return Ethereum, nil
	case "sepolia":
		return Sepolia, nil
	case "arb", "arbitrum":
		return Arbitrum, nil
	case "base":
		return Base, nil
	case "blast":
		return Blast, nil
	case "op", "optimism":
		return Optimism, nil
	case "polygon", "matic":
		return Polygon, nil
	case "mantle":
		return Mantle, nil
	case "zksync":
		return Zksync, nil
	case "taiko":
		return Taiko, nil
	case "celo":
		return Celo, nil
	case "avalanche", "avax":
		return Avalanche, nil
	case "scroll":
		return Scroll, nil
	case "bnb", "bsc":
		return Bnb, nil
	case "linea":
		return Linea, nil
	case "zora":
		return Zora, nil
	case "moonbeam":
		return Moonbeam, nil
	case "moonriver":
		return Moonriver, nil
	case "ronin":
		return Ronin, nil
	case "fantom", "ftm":
		return Fantom, nil
	case "kava":
		return Kava, nil
	case "gnosis":
		return Gnosis, nil
	}

	return Unknown, fmt.Errorf("%w: %q", ErrUnknownChain, name)
}

// String returns the canonical chain name, the key used in config files
func (c Chain) String() string {
	switch c {
	case Ethereum:
		return "eth"
	case Sepolia:
		return "sepolia"
	case Arbitrum:
		return "arb"
	case Base:
		return "base"
	case Blast:
		return "blast"
	case Optimism:
		return "op"
	case Polygon:
		return "polygon"
	case Mantle:
		return "mantle"
	case Zksync:
		return "zksync"
	case Taiko:
		return "taiko"
	case Celo:
		return "celo"
	case Avalanche:
		return "avalanche"
	case Scroll:
		return "scroll"
	case Bnb:
		return "bnb"
	case Linea:
		return "linea"
	case Zora:
		return "zora"
	case Moonbeam:
		return "moonbeam"
	case Moonriver:
		return "moonriver"
	case Ronin:
		return "ronin"
	case Fantom:
		return "fantom"
	case Kava:
		return "kava"
	case Gnosis:
		return "gnosis"
	}

	return "unknown"
}

// ChainID returns the EIP-155 chain id
func (c Chain) ChainID() uint64 {
	switch c {
	case Ethereum:
		return 1
	case Sepolia:
		return 11155111
	case Arbitrum:
		return 42161
	case Base:
		return 8453
	case Blast:
		return 81457
	case Optimism:
		return 10
	case Polygon:
		return 137
	case Mantle:
		return 5000
	case Zksync:
		return 324
	case Taiko:
		return 167000
	case Celo:
		return 42220
	case Avalanche:
		return 43114
	case Scroll:
		return 534352
	case Bnb:
		return 56
	case Linea:
		return 59144
	case Zora:
		return 7777777
	case Moonbeam:
		return 1284
	case Moonriver:
		return 1285
	case Ronin:
		return 2020
	case Fantom:
		return 250
	case Kava:
		return 2222
	case Gnosis:
		return 100
	}

	return 0
}

// FallbackRPC returns the public endpoint used when no configuration overrides the chain
func (c Chain) FallbackRPC() string {
	switch c {
	case Ethereum:
		return "https://ethereum.drpc.org"
	case Sepolia:
		return "https://sepolia.drpc.org"
	case Arbitrum:
		return "https://arbitrum.drpc.org"
	case Base:
		return "https://base.drpc.org"
	case Blast:
		return "https://blast.drpc.org"
	case Optimism:
		return "https://optimism.drpc.org"
	case Polygon:
		return "https://polygon.drpc.org"
	case Mantle:
		return "https://mantle.drpc.org"
	case Zksync:
		return "https://zksync.drpc.org"
	case Taiko:
		return "https://rpc.taiko.xyz"
	case Celo:
		return "https://celo.drpc.org"
	case Avalanche:
		return "https://avalanche.drpc.org"
	case Scroll:
		return "https://scroll.drpc.org"
	case Bnb:
		return "https://bsc.drpc.org"
	case Linea:
		return "https://linea.drpc.org"
	case Zora:
		return "https://zora.drpc.org"
	case Moonbeam:
		return "https://moonbeam.drpc.org"
	case Moonriver:
		return "https://moonriver.drpc.org"
	case Ronin:
		return "https://ronin.drpc.org"
	case Fantom:
		return "https://fantom.drpc.org"
	case Kava:
		return "https://kava.drpc.org"
	case Gnosis:
		return "https://gnosis.drpc.org"
	}

	return ""
}

// IsRPCURL reports whether target looks like a raw endpoint rather than a chain name
func IsRPCURL(target string) bool {
	lower := strings.ToLower(target)

	for _, scheme := range []string{"http://", "https://", "ws://", "wss://"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}

	return false
}
