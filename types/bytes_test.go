package types

import (
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesJSON(t *testing.T) {
	t.Parallel()

	var b Bytes
	require.NoError(t, json.Unmarshal([]byte(`"0x0102"`), &b))
	assert.Equal(t, Bytes{1, 2}, b)

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, `"0x0102"`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`"0102"`), &b))
}

func TestQuantityJSON(t *testing.T) {
	t.Parallel()

	var payload struct {
		Number   Uint64  `json:"number"`
		Value    *Big    `json:"value"`
		Missing  *Uint64 `json:"missing"`
		Balance  Big     `json:"balance"`
		Overflow *Big    `json:"overflow,omitempty"`
	}

	raw := `{"number":"0x55ba4224","value":"0xde0b6b3a7640000","missing":null,"balance":"0x0"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, Uint64(1438269988), payload.Number)
	assert.Equal(t, uint256.MustFromDecimal("1000000000000000000"), payload.Value.Int())
	assert.Nil(t, payload.Missing.Uint64Ptr())
	assert.True(t, payload.Balance.Int().IsZero())

	var leading Big
	require.NoError(t, leading.UnmarshalText([]byte("0x000a")))
	assert.Equal(t, uint64(10), leading.Int().Uint64())

	var tooBig Big
	assert.Error(t, tooBig.UnmarshalText([]byte("0x1"+"0000000000000000000000000000000000000000000000000000000000000000")))

	var bad Uint64
	assert.Error(t, bad.UnmarshalText([]byte("12")))
}
