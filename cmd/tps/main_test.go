package main

import (
	"testing"

	"github.com/canopy-network/omnichain/lib"
	"github.com/stretchr/testify/require"
)

func TestTransferPairs(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		chains   []uint64
		expected [][2]uint64
		error    lib.ErrorI
	}{
		{
			name:     "two chains",
			detail:   "a single path from the funded chain",
			chains:   []uint64{1, 2},
			expected: [][2]uint64{{1, 2}},
		},
		{
			name:     "three chains",
			detail:   "the funded chain pairs with every other chain",
			chains:   []uint64{5, 3, 9},
			expected: [][2]uint64{{5, 3}, {5, 9}},
		},
		{
			name:   "one chain",
			detail: "there is no path to transfer over",
			chains: []uint64{1},
			error:  lib.ErrInvalidArgument(),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := transferPairs(test.chains)
			require.Equal(t, test.error, err)
			require.Equal(t, test.expected, got)
		})
	}
}
