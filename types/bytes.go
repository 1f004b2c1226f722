package types

import (
	"github.com/iankressin/eql-sub000/helper/hex"
)

// Bytes is a byte slice encoded as 0x prefixed hex text
type Bytes []byte

func (b Bytes) String() string {
	return hex.EncodeToHex(b)
}

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes) UnmarshalText(input []byte) error {
	if len(input) == 0 {
		*b = Bytes{}

		return nil
	}

	if !hex.Has0xPrefix(string(input)) {
		return hex.ErrMissingPrefix
	}

	buf, err := hex.DecodeHex(string(input))
	if err != nil {
		return err
	}

	*b = buf

	return nil
}
