package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/iankressin/eql-sub000/helper/hex"
	"github.com/iankressin/eql-sub000/helper/keccak"
)

const (
	HashLength    = 32
	AddressLength = 20
)

var (
	ZeroAddress = Address{}
	ZeroHash    = Hash{}
)

var (
	ErrInvalidAddress = errors.New("invalid address")
	ErrInvalidHash    = errors.New("invalid hash")
)

type Hash [HashLength]byte

type Address [AddressLength]byte

func min(i, j int) int {
	if i < j {
		return i
	}

	return j
}

// BytesToHash right aligns b into a hash, cropping from the left if b is too long
func BytesToHash(b []byte) Hash {
	var h Hash

	size := len(b)
	min := min(size, HashLength)

	copy(h[HashLength-min:], b[len(b)-min:])

	return h
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) String() string {
	return hex.EncodeToHex(h[:])
}

// ParseHash strictly parses a 0x prefixed, 64 digit hex string
func ParseHash(str string) (Hash, error) {
	if !IsHash(str) {
		return ZeroHash, fmt.Errorf("%w: %q", ErrInvalidHash, str)
	}

	return BytesToHash(hex.MustDecodeHex(str)), nil
}

// IsHash reports whether str is a 0x prefixed 32 byte hex string
func IsHash(str string) bool {
	return hex.Has0xPrefix(str) && len(str) == 2+2*HashLength && hex.IsHex(str)
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(input []byte) error {
	hash, err := ParseHash(strings.TrimSpace(string(input)))
	if err != nil {
		return err
	}

	*h = hash

	return nil
}

// BytesToAddress right aligns b into an address, cropping from the left if b is too long
func BytesToAddress(b []byte) Address {
	var a Address

	size := len(b)
	min := min(size, AddressLength)

	copy(a[AddressLength-min:], b[len(b)-min:])

	return a
}

// ParseAddress strictly parses a 0x prefixed, 40 digit hex string
func ParseAddress(str string) (Address, error) {
	if !IsAddress(str) {
		return ZeroAddress, fmt.Errorf("%w: %q", ErrInvalidAddress, str)
	}

	return BytesToAddress(hex.MustDecodeHex(str)), nil
}

// MustParseHash parses str like ParseHash and panics on error. Meant for tests.
func MustParseHash(str string) Hash {
	h, err := ParseHash(str)
	if err != nil {
		panic(err)
	}

	return h
}

// MustParseAddress parses str like ParseAddress and panics on error. Meant for tests.
func MustParseAddress(str string) Address {
	a, err := ParseAddress(str)
	if err != nil {
		panic(err)
	}

	return a
}

// IsAddress reports whether str is a 0x prefixed 20 byte hex string
func IsAddress(str string) bool {
	return hex.Has0xPrefix(str) && len(str) == 2+2*AddressLength && hex.IsHex(str)
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// checksumEncode returns the EIP-55 mixed case encoding of the address
func (a Address) checksumEncode() string {
	address := strings.ToLower(hex.EncodeToString(a[:]))
	hash := hex.EncodeToString(keccak.Keccak256([]byte(address)))

	result := make([]rune, 0, len(address)+2)
	result = append(result, '0', 'x')

	for i, c := range address {
		if hash[i] >= '8' {
			result = append(result, unicode.ToUpper(c))
		} else {
			result = append(result, c)
		}
	}

	return string(result)
}

func (a Address) String() string {
	return a.checksumEncode()
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(input []byte) error {
	addr, err := ParseAddress(strings.TrimSpace(string(input)))
	if err != nil {
		return err
	}

	*a = addr

	return nil
}
