package hex

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

var (
	ErrMissingPrefix = errors.New("hex string without 0x prefix")
	ErrEmptyNumber   = errors.New("hex string \"0x\"")
	ErrUint64Range   = errors.New("hex number > 64 bits")
)

// EncodeToHex generates a hex string based on the byte representation, with the '0x' prefix
func EncodeToHex(str []byte) string {
	return "0x" + hex.EncodeToString(str)
}

// EncodeToString is a wrapper method for hex.EncodeToString
func EncodeToString(str []byte) string {
	return hex.EncodeToString(str)
}

// DecodeString returns the byte representation of the hexadecimal string
func DecodeString(str string) ([]byte, error) {
	return hex.DecodeString(str)
}

// DecodeHex converts a hex string to a byte array. Odd length input is left padded.
func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	if len(str)%2 == 1 {
		str = "0" + str
	}

	return hex.DecodeString(str)
}

// MustDecodeHex type-checks and converts a hex string to a byte array
func MustDecodeHex(str string) []byte {
	buf, err := DecodeHex(str)
	if err != nil {
		panic(fmt.Errorf("could not decode hex: %w", err))
	}

	return buf
}

// Has0xPrefix reports whether str starts with 0x or 0X
func Has0xPrefix(str string) bool {
	return len(str) >= 2 && str[0] == '0' && (str[1] == 'x' || str[1] == 'X')
}

// IsHex reports whether every character of str (after an optional prefix) is a hex digit
func IsHex(str string) bool {
	if Has0xPrefix(str) {
		str = str[2:]
	}

	if len(str) == 0 {
		return false
	}

	for i := 0; i < len(str); i++ {
		c := str[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}

	return true
}

// EncodeUint64 encodes a number as a hex string with 0x prefix.
func EncodeUint64(i uint64) string {
	enc := make([]byte, 2, 10)
	copy(enc, "0x")

	return string(strconv.AppendUint(enc, i, 16))
}

// DecodeUint64 decodes a 0x prefixed hex quantity
func DecodeUint64(str string) (uint64, error) {
	if !Has0xPrefix(str) {
		return 0, ErrMissingPrefix
	}

	str = str[2:]
	if len(str) == 0 {
		return 0, ErrEmptyNumber
	}

	num, err := strconv.ParseUint(str, 16, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, ErrUint64Range
		}

		return 0, err
	}

	return num, nil
}

// EncodeBig encodes bigint as a hex string with 0x prefix.
// The sign of the integer is ignored.
func EncodeBig(bigint *big.Int) string {
	if bigint.BitLen() == 0 {
		return "0x0"
	}

	return fmt.Sprintf("%#x", bigint)
}

// DecodeHexToBig converts a 0x prefixed hex quantity to a big.Int
func DecodeHexToBig(str string) (*big.Int, error) {
	if !Has0xPrefix(str) {
		return nil, ErrMissingPrefix
	}

	str = str[2:]
	if len(str) == 0 {
		return nil, ErrEmptyNumber
	}

	b, ok := new(big.Int).SetString(str, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex number %q", str)
	}

	return b, nil
}
