package types

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/iankressin/eql-sub000/helper/hex"
)

// Uint64 is a uint64 encoded as a 0x prefixed hex quantity
type Uint64 uint64

func (u Uint64) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeUint64(uint64(u))), nil
}

func (u *Uint64) UnmarshalText(input []byte) error {
	num, err := hex.DecodeUint64(string(input))
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", input, err)
	}

	*u = Uint64(num)

	return nil
}

// Uint64Ptr returns a pointer to the plain value of u, nil when u is nil
func (u *Uint64) Uint64Ptr() *uint64 {
	if u == nil {
		return nil
	}

	v := uint64(*u)

	return &v
}

// Big is a 256 bit unsigned quantity encoded as 0x prefixed hex.
// Unlike uint256.Int it tolerates leading zero digits on input.
type Big uint256.Int

// Int returns a copy of b as a uint256.Int, nil when b is nil
func (b *Big) Int() *uint256.Int {
	if b == nil {
		return nil
	}

	v := uint256.Int(*b)

	return &v
}

func (b Big) MarshalText() ([]byte, error) {
	v := uint256.Int(b)

	return []byte(v.Hex()), nil
}

func (b *Big) UnmarshalText(input []byte) error {
	num, err := hex.DecodeHexToBig(string(input))
	if err != nil {
		return fmt.Errorf("invalid quantity %q: %w", input, err)
	}

	v, overflow := uint256.FromBig(num)
	if overflow {
		return fmt.Errorf("invalid quantity %q: exceeds 256 bits", input)
	}

	*b = Big(*v)

	return nil
}

// BigFromUint64 is a convenience constructor used by tests and mocks
func BigFromUint64(n uint64) *Big {
	v := Big(*uint256.NewInt(n))

	return &v
}
