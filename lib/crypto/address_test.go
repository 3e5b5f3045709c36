package crypto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewAddressFromString(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		input    string
		error    bool
		expected string
	}{
		{
			name:     "prefixed",
			detail:   "0x prefixed input is accepted and checksummed",
			input:    "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			expected: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:     "unprefixed",
			detail:   "un-prefixed input is accepted",
			input:    "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			expected: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:   "short",
			detail: "19 bytes is not an address",
			input:  "0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea",
			error:  true,
		},
		{
			name:   "not hex",
			detail: "non hex characters are rejected",
			input:  "0xzzaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			error:  true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NewAddressFromString(test.input)
			if test.error {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected, got.String())
		})
	}
}

func TestAddressBytesAndJSON(t *testing.T) {
	_, err := NewAddressFromBytes(make([]byte, 19))
	require.Error(t, err)
	raw := make([]byte, AddressSize)
	raw[19] = 0xa1
	addr, err := NewAddressFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, raw, addr.Bytes())
	require.False(t, addr.IsZero())
	require.True(t, Address{}.IsZero())
	// json round trip keeps the value
	bz, e := json.Marshal(addr)
	require.NoError(t, e)
	var got Address
	require.NoError(t, json.Unmarshal(bz, &got))
	require.True(t, addr.Equals(got))
}
