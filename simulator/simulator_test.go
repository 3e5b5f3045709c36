package simulator

import (
	"math/big"
	"testing"

	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/stretchr/testify/require"
)

var sendQty = big.NewInt(1e18)

func TestNew(t *testing.T) {
	s := newTestSimulator(t, lib.SrcChainId, lib.DstChainId)
	require.Equal(t, []uint64{lib.SrcChainId, lib.DstChainId}, s.ChainIds())
	require.Equal(t, []uint64{lib.SrcChainId, lib.DstChainId}, s.Topology().ChainIds())
	supply, err := lib.ParseAmount(lib.DefaultSimulationConfig().GlobalSupply)
	require.NoError(t, err)
	// the supply lives on the first chain
	requireBalance(t, s, lib.SrcChainId, supply)
	requireBalance(t, s, lib.DstChainId, big.NewInt(0))
	// the deployments trust each other both ways
	for _, local := range s.ChainIds() {
		for _, remote := range s.ChainIds() {
			if local == remote {
				continue
			}
			c, err := s.Chain(local)
			require.NoError(t, err)
			trusted, err := c.Endpoint.TrustedRemote(c.Token.Address(), remote)
			require.NoError(t, err)
			expected, err := s.InboundPath(remote, local)
			require.NoError(t, err)
			require.Equal(t, expected, trusted)
		}
	}
	// token addresses differ per chain
	require.NotEqual(t, TokenAddress("OFT", lib.SrcChainId), TokenAddress("OFT", lib.DstChainId))
	_, err = s.Chain(3)
	require.ErrorIs(t, err, endpoint.ErrUnknownEndpoint(0))
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name     string
		detail   string
		modify   func(c *lib.Config)
		expected lib.ErrorI
	}{
		{
			name:     "one chain",
			detail:   "a bridge needs a second chain",
			modify:   func(c *lib.Config) { c.ChainIds = []uint64{1} },
			expected: ErrNotEnoughChains(0),
		},
		{
			name:     "duplicate chain",
			detail:   "chain ids are unique within a topology",
			modify:   func(c *lib.Config) { c.ChainIds = []uint64{1, 2, 1} },
			expected: endpoint.ErrDuplicateChainId(0),
		},
		{
			name:     "invalid owner",
			detail:   "the owner must be a hex address",
			modify:   func(c *lib.Config) { c.Owner = "owner" },
			expected: lib.ErrInvalidAddress(),
		},
		{
			name:     "invalid supply",
			detail:   "the supply must be a base 10 integer",
			modify:   func(c *lib.Config) { c.GlobalSupply = "1e24" },
			expected: lib.ErrInvalidAmountString(""),
		},
		{
			name:     "invalid resume policy",
			detail:   "the endpoint config is validated for every chain",
			modify:   func(c *lib.Config) { c.ResumePolicy = "skip" },
			expected: endpoint.ErrInvalidResumePolicy(""),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := lib.DefaultConfig()
			test.modify(&config)
			_, err := New(config, nil, lib.NewNullLogger())
			require.ErrorIs(t, err, test.expected)
		})
	}
}

func TestTransfer(t *testing.T) {
	s := newTestSimulator(t, 1, 2, 3)
	owner := s.Owner()
	supply, err := lib.ParseAmount(lib.DefaultSimulationConfig().GlobalSupply)
	require.NoError(t, err)
	// 1 -> 3 -> 2
	receipt, err := s.Transfer(1, 3, owner, owner, sendQty)
	require.NoError(t, err)
	require.Equal(t, endpoint.StatusApplied, receipt.Status)
	receipt, err = s.Transfer(3, 2, owner, owner, sendQty)
	require.NoError(t, err)
	require.Equal(t, endpoint.StatusApplied, receipt.Status)
	requireBalance(t, s, 1, new(big.Int).Sub(supply, sendQty))
	requireBalance(t, s, 2, sendQty)
	requireBalance(t, s, 3, big.NewInt(0))
	// the same chain is rejected
	_, err = s.Transfer(2, 2, owner, owner, sendQty)
	require.ErrorIs(t, err, ErrSameChain(0))
	// the adapter params policy is in force
	c, err := s.Chain(1)
	require.NoError(t, err)
	_, err = c.Token.SendFrom(owner, 2, owner.Bytes(), sendQty, owner, crypto.Address{}, nil, big.NewInt(1e9))
	require.ErrorIs(t, err, endpoint.ErrMinGasNotMet(0))
}

// TestBlockedBridge runs the two chain token bridge through a blocked delivery and its operator recovery
func TestBlockedBridge(t *testing.T) {
	s := newTestSimulator(t, lib.SrcChainId, lib.DstChainId)
	owner := s.Owner()
	dst, err := s.Chain(lib.DstChainId)
	require.NoError(t, err)
	path, err := s.InboundPath(lib.SrcChainId, lib.DstChainId)
	require.NoError(t, err)
	// block the destination and send 1 token
	dst.Endpoint.BlockNextMessage()
	receipt, err := s.Transfer(lib.SrcChainId, lib.DstChainId, owner, owner, sendQty)
	require.NoError(t, err)
	require.Equal(t, endpoint.StatusStored, receipt.Status)
	requireBalance(t, s, lib.DstChainId, big.NewInt(0))
	has, err := dst.Endpoint.HasStoredPayload(lib.SrcChainId, path)
	require.NoError(t, err)
	require.True(t, has)
	// a second send waits in the queue
	receipt, err = s.Transfer(lib.SrcChainId, lib.DstChainId, owner, owner, sendQty)
	require.NoError(t, err)
	require.Equal(t, endpoint.StatusQueued, receipt.Status)
	length, err := dst.Endpoint.GetQueueLength(lib.SrcChainId, path)
	require.NoError(t, err)
	require.Equal(t, uint64(1), length)
	blocked, err := dst.Endpoint.BlockedPaths()
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	require.Equal(t, uint64(1), blocked[0].QueueLength)
	// force resume discards the first and delivers the queued one
	require.NoError(t, dst.Token.ForceResumeReceive(lib.SrcChainId, path))
	has, err = dst.Endpoint.HasStoredPayload(lib.SrcChainId, path)
	require.NoError(t, err)
	require.False(t, has)
	requireBalance(t, s, lib.DstChainId, sendQty)
	length, err = dst.Endpoint.GetQueueLength(lib.SrcChainId, path)
	require.NoError(t, err)
	require.Zero(t, length)
	// the source burned both tokens
	supply, err := lib.ParseAmount(lib.DefaultSimulationConfig().GlobalSupply)
	require.NoError(t, err)
	requireBalance(t, s, lib.SrcChainId, new(big.Int).Sub(supply, big.NewInt(2e18)))
	// the operator signals were emitted once each
	events := dst.Endpoint.Events().Events()
	require.Len(t, events.OfType(lib.EventTypeUaForceResumeReceive), 1)
	require.Len(t, events.OfType(lib.EventTypePayloadStored), 2)
	require.Len(t, events.OfType(lib.EventTypePayloadDelivered), 1)
}

func TestDiskStore(t *testing.T) {
	config := lib.DefaultConfig()
	config.InMemory = false
	config.DataDirPath = t.TempDir()
	s, err := New(config, nil, lib.NewNullLogger())
	require.NoError(t, err)
	defer s.Close()
	receipt, err := s.Transfer(lib.SrcChainId, lib.DstChainId, s.Owner(), s.Owner(), sendQty)
	require.NoError(t, err)
	require.Equal(t, endpoint.StatusApplied, receipt.Status)
	requireBalance(t, s, lib.DstChainId, sendQty)
}

func TestNoMinDstGas(t *testing.T) {
	config := lib.DefaultConfig()
	config.MinDstGas = 0
	s, err := New(config, nil, lib.NewNullLogger())
	require.NoError(t, err)
	defer s.Close()
	// default adapter params are accepted when no minimum is configured
	c, err := s.Chain(lib.SrcChainId)
	require.NoError(t, err)
	fee, err := c.Token.EstimateSendFees(lib.DstChainId, s.Owner().Bytes(), sendQty, false, nil)
	require.NoError(t, err)
	receipt, err := c.Token.SendFrom(s.Owner(), lib.DstChainId, s.Owner().Bytes(), sendQty, s.Owner(), crypto.Address{}, nil, fee.NativeFee)
	require.NoError(t, err)
	require.Equal(t, endpoint.StatusApplied, receipt.Status)
	_, err = c.Token.SendFrom(s.Owner(), lib.DstChainId, s.Owner().Bytes(), sendQty, s.Owner(), crypto.Address{}, endpoint.NewAdapterParamsV1(300_000), fee.NativeFee)
	require.ErrorIs(t, err, endpoint.ErrAdapterParamsNotEmpty())
}

func newTestSimulator(t *testing.T, chainIds ...uint64) *Simulator {
	config := lib.DefaultConfig()
	config.ChainIds = chainIds
	s, err := New(config, nil, lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func requireBalance(t *testing.T, s *Simulator, chainId uint64, expected *big.Int) {
	c, err := s.Chain(chainId)
	require.NoError(t, err)
	got, err := c.Token.BalanceOf(s.Owner())
	require.NoError(t, err)
	require.Zero(t, expected.Cmp(got), "chain %d: expected %s got %s", chainId, expected, got)
}
