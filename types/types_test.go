package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	t.Parallel()

	addr, err := ParseAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", addr.String())

	for _, invalid := range []string{
		"",
		"0x1234",
		"5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaeg",
	} {
		_, err := ParseAddress(invalid)
		assert.ErrorIs(t, err, ErrInvalidAddress, invalid)
	}
}

func TestParseHash(t *testing.T) {
	t.Parallel()

	raw := "0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6"

	hash, err := ParseHash(raw)
	require.NoError(t, err)
	assert.Equal(t, raw, hash.String())
	assert.False(t, IsHash("0x1234567890123456789012345678901234567890"))

	_, err = ParseHash("0x1234567890123456789012345678901234567890")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func TestAddressJSON(t *testing.T) {
	t.Parallel()

	var out struct {
		From Address  `json:"from"`
		To   *Address `json:"to"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"from":"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed","to":null}`), &out))
	assert.Nil(t, out.To)
	assert.False(t, out.From.IsZero())

	buf, err := json.Marshal(out.From)
	require.NoError(t, err)
	assert.Equal(t, `"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"`, string(buf))
}

func TestBytesToHash(t *testing.T) {
	t.Parallel()

	h := BytesToHash([]byte{0x01})
	assert.Equal(t, byte(0x01), h[HashLength-1])
	assert.Equal(t, ZeroAddress, BytesToAddress(nil))
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		MustParseAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed").String())
	assert.False(t, MustParseHash("0x88e96d4537bea4d9c05d12549907b32561d3bf31f45aae734cdc119f13406cb6") == ZeroHash)

	assert.Panics(t, func() { MustParseAddress("0xzz") })
	assert.Panics(t, func() { MustParseHash("0x1234") })
}
