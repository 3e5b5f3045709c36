package relayer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/canopy-network/omnichain/store"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var (
	srcAppAddr = crypto.Address{0x0a}
	dstAppAddr = crypto.Address{0x0b}
)

func TestRelayOnce(t *testing.T) {
	tests := []struct {
		name            string
		detail          string
		failures        int // how many times the application fails before it recovers
		retries         uint64
		expectedCleared int
		expectedFailed  int
		expectedApplied []uint64
	}{
		{
			name:            "fault injected",
			detail:          "a one shot fault clears on the first retry and the queue drains",
			failures:        0,
			retries:         3,
			expectedCleared: 1,
			expectedApplied: []uint64{1, 2},
		},
		{
			name:            "transient failure",
			detail:          "the application recovers within the retry budget",
			failures:        2,
			retries:         3,
			expectedCleared: 1,
			expectedApplied: []uint64{1, 2},
		},
		{
			name:           "permanent failure",
			detail:         "the application never recovers within the retry budget",
			failures:       100,
			retries:        2,
			expectedFailed: 1,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			n := newTestNetwork(t)
			metrics := lib.NewMetricsServer(lib.MetricsConfig{}, lib.NewNullLogger())
			r := New(n.topology, lib.SimulationConfig{RelayerPollMS: 4, RelayerRetries: test.retries}, metrics, lib.NewNullLogger())
			// block the path and queue one message behind it
			n.dst.BlockNextMessage()
			n.send(t, []byte("one"))
			n.send(t, []byte("two"))
			n.app.failFor(test.failures)
			result, err := r.RelayOnce(context.Background())
			require.NoError(t, err)
			require.Len(t, result.Cleared, test.expectedCleared)
			require.Len(t, result.Failed, test.expectedFailed)
			require.Equal(t, test.expectedApplied, n.app.appliedNonces())
			attempts := testutil.ToFloat64(metrics.RetryAttempts.WithLabelValues("2"))
			if test.expectedFailed != 0 {
				require.Equal(t, float64(test.retries+1), attempts)
				require.Equal(t, float64(1), testutil.ToFloat64(metrics.RetryFailures.WithLabelValues("2")))
				return
			}
			require.Equal(t, float64(test.failures+1), attempts)
			has, err := n.dst.HasStoredPayload(lib.SrcChainId, n.path)
			require.NoError(t, err)
			require.False(t, has)
		})
	}
}

func TestRelayOnceIdle(t *testing.T) {
	n := newTestNetwork(t)
	r := New(n.topology, lib.DefaultSimulationConfig(), nil, lib.NewNullLogger())
	n.send(t, []byte("one"))
	result, err := r.RelayOnce(context.Background())
	require.NoError(t, err)
	require.Empty(t, result.Cleared)
	require.Empty(t, result.Failed)
}

func TestRelayOnceOutOfOrder(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		nonce  uint64
	}{
		{
			name:   "stale nonce",
			detail: "a replay of the delivered nonce is never applied a second time",
			nonce:  1,
		},
		{
			name:   "early nonce",
			detail: "a nonce past the next one is never applied ahead of its predecessor",
			nonce:  3,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			n := newTestNetwork(t)
			metrics := lib.NewMetricsServer(lib.MetricsConfig{}, lib.NewNullLogger())
			r := New(n.topology, lib.SimulationConfig{RelayerPollMS: 4, RelayerRetries: 3}, metrics, lib.NewNullLogger())
			n.send(t, []byte("one"))
			receipt, err := n.dst.Deliver(lib.SrcChainId, n.path, dstAppAddr, test.nonce, []byte("one"))
			require.NoError(t, err)
			require.Equal(t, endpoint.StatusStored, receipt.Status)
			result, err := r.RelayOnce(context.Background())
			require.NoError(t, err)
			require.Empty(t, result.Cleared)
			require.Len(t, result.Failed, 1)
			// rejected once without backing off
			require.Equal(t, float64(1), testutil.ToFloat64(metrics.RetryAttempts.WithLabelValues("2")))
			require.Equal(t, []uint64{1}, n.app.appliedNonces())
			has, err := n.dst.HasStoredPayload(lib.SrcChainId, n.path)
			require.NoError(t, err)
			require.True(t, has)
		})
	}
}

func TestStart(t *testing.T) {
	n := newTestNetwork(t)
	r := New(n.topology, lib.SimulationConfig{RelayerPollMS: 2, RelayerRetries: 1}, nil, lib.NewNullLogger())
	n.dst.BlockNextMessage()
	n.send(t, []byte("one"))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- r.Start(ctx) }()
	// the background scan clears the stored payload
	require.Eventually(t, func() bool {
		has, err := n.dst.HasStoredPayload(lib.SrcChainId, n.path)
		return err == nil && !has
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)
	require.Equal(t, []uint64{1}, n.app.appliedNonces())
}

type testNetwork struct {
	topology *endpoint.NetworkTopology
	src, dst *endpoint.Endpoint
	app      *testApp
	path     []byte
}

func newTestNetwork(t *testing.T) *testNetwork {
	n := &testNetwork{
		topology: endpoint.NewNetworkTopology(),
		src:      newTestEndpoint(t, lib.SrcChainId),
		dst:      newTestEndpoint(t, lib.DstChainId),
		app:      new(testApp),
		path:     endpoint.NewPath(lib.SrcChainId, srcAppAddr, lib.DstChainId, dstAppAddr).Bytes(),
	}
	require.NoError(t, n.topology.Attach(n.src))
	require.NoError(t, n.topology.Attach(n.dst))
	n.dst.RegisterApplication(dstAppAddr, n.app)
	reverse := endpoint.NewPath(lib.DstChainId, dstAppAddr, lib.SrcChainId, srcAppAddr).Bytes()
	require.NoError(t, n.src.SetTrustedRemote(srcAppAddr, lib.DstChainId, reverse))
	require.NoError(t, n.dst.SetTrustedRemote(dstAppAddr, lib.SrcChainId, n.path))
	return n
}

func (n *testNetwork) send(t *testing.T, payload []byte) {
	fee, err := n.src.EstimateFees(lib.DstChainId, dstAppAddr, payload, false, nil)
	require.NoError(t, err)
	_, err = n.src.Send(srcAppAddr, lib.DstChainId, dstAppAddr, payload, srcAppAddr, crypto.Address{}, nil, fee.NativeFee)
	require.NoError(t, err)
}

func newTestEndpoint(t *testing.T, chainId uint64) *endpoint.Endpoint {
	db, err := store.NewStoreInMemory(lib.NewNullLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	e, err := endpoint.New(chainId, lib.DefaultEndpointConfig(), db, nil, lib.NewNullLogger())
	require.NoError(t, err)
	return e
}

// testApp fails a set number of times and then applies everything
type testApp struct {
	mu       sync.Mutex
	failures int
	applied  []uint64
}

func (a *testApp) failFor(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = n
}

func (a *testApp) appliedNonces() []uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]uint64(nil), a.applied...)
}

func (a *testApp) ApplyPayload(_ uint64, _ []byte, nonce uint64, _ []byte) lib.ErrorI {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failures > 0 {
		a.failures--
		return lib.ErrInvalidArgument()
	}
	a.applied = append(a.applied, nonce)
	return nil
}
