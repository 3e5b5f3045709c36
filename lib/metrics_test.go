package lib

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetricsServer(MetricsConfig{Enabled: false}, NewNullLogger())
	m.IncPacketSent(SrcChainId)
	m.IncPacketSent(SrcChainId)
	m.IncPayloadStored(DstChainId)
	m.SetBlockedState(DstChainId, 1, 3)
	require.Equal(t, float64(2), testutil.ToFloat64(m.PacketsSent.WithLabelValues("1")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.PayloadsStored.WithLabelValues("2")))
	require.Equal(t, float64(3), testutil.ToFloat64(m.QueueDepth.WithLabelValues("2")))
	// two servers in one process don't collide
	other := NewMetricsServer(MetricsConfig{Enabled: false}, NewNullLogger())
	require.Zero(t, testutil.ToFloat64(other.PacketsSent.WithLabelValues("1")))
	// disabled servers don't listen
	m.Start()
	m.Stop()
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	// every recorder is a noop on a nil server
	m.IncPacketSent(SrcChainId)
	m.IncPayloadDelivered(SrcChainId)
	m.IncPayloadStored(SrcChainId)
	m.IncPayloadCleared(SrcChainId)
	m.IncPayloadDropped(SrcChainId)
	m.IncForceResume(SrcChainId)
	m.SetBlockedState(SrcChainId, 0, 0)
	m.IncRetryAttempt(SrcChainId)
	m.IncRetryFailure(SrcChainId)
	m.Start()
	m.Stop()
	require.Nil(t, m.Registry())
}
