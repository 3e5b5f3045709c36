package lib

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

/* This file implements dev-ops telemetry for the simulator in the form of prometheus metrics */

const metricsPattern = "/metrics"

// Metrics represents a server that exposes Prometheus metrics
type Metrics struct {
	server   *http.Server         // the http prometheus server
	registry *prometheus.Registry // a private registry so multiple simulators may live in one process
	config   MetricsConfig        // the configuration
	log      LoggerI              // the logger

	EndpointMetrics // messaging endpoint telemetry
	RelayerMetrics  // relayer telemetry
}

// EndpointMetrics represents the telemetry of the messaging endpoints, labeled by the local chain id
type EndpointMetrics struct {
	PacketsSent       *prometheus.CounterVec // how many messages did this chain send?
	PayloadsDelivered *prometheus.CounterVec // how many payloads were applied to a receiving application?
	PayloadsStored    *prometheus.CounterVec // how many payloads were withheld (head or queue)?
	PayloadsCleared   *prometheus.CounterVec // how many stored payloads were cleared by a retry?
	PayloadsDropped   *prometheus.CounterVec // how many deliveries were rejected as untrusted?
	ForceResumes      *prometheus.CounterVec // how many stored payloads were force cleared?
	BlockedPaths      *prometheus.GaugeVec   // how many inbound paths are blocked right now?
	QueueDepth        *prometheus.GaugeVec   // how many messages wait behind stored payloads?
}

// RelayerMetrics represents the telemetry of the automatic retry relayer
type RelayerMetrics struct {
	RetryAttempts *prometheus.CounterVec // how many retry attempts were made?
	RetryFailures *prometheus.CounterVec // how many stuck payloads exhausted their retries?
}

// NewMetricsServer() creates a new telemetry server
func NewMetricsServer(config MetricsConfig, log LoggerI) *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	mux := http.NewServeMux()
	mux.Handle(metricsPattern, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	chainLabel := []string{"chain"}
	return &Metrics{
		server:   &http.Server{Addr: config.PrometheusAddress, Handler: mux},
		registry: registry,
		config:   config,
		log:      log,
		EndpointMetrics: EndpointMetrics{
			PacketsSent: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_packets_sent",
				Help: "Number of messages sent by the endpoint",
			}, chainLabel),
			PayloadsDelivered: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_payloads_delivered",
				Help: "Number of payloads applied to a receiving application",
			}, chainLabel),
			PayloadsStored: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_payloads_stored",
				Help: "Number of payloads withheld because the path was or became blocked",
			}, chainLabel),
			PayloadsCleared: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_payloads_cleared",
				Help: "Number of stored payloads cleared by a successful retry",
			}, chainLabel),
			PayloadsDropped: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_payloads_dropped",
				Help: "Number of deliveries rejected because the path is not trusted",
			}, chainLabel),
			ForceResumes: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_force_resumes",
				Help: "Number of stored payloads discarded by a forced resume",
			}, chainLabel),
			BlockedPaths: factory.NewGaugeVec(prometheus.GaugeOpts{
				Name: "omnichain_blocked_paths",
				Help: "Number of inbound paths currently blocked by a stored payload",
			}, chainLabel),
			QueueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
				Name: "omnichain_queue_depth",
				Help: "Number of messages queued behind stored payloads",
			}, chainLabel),
		},
		RelayerMetrics: RelayerMetrics{
			RetryAttempts: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_relayer_retry_attempts",
				Help: "Number of payload retries attempted by the relayer",
			}, chainLabel),
			RetryFailures: factory.NewCounterVec(prometheus.CounterOpts{
				Name: "omnichain_relayer_retry_failures",
				Help: "Number of stuck payloads the relayer gave up on",
			}, chainLabel),
		},
	}
}

// Start() starts the telemetry server
func (m *Metrics) Start() {
	// exit if empty or not enabled
	if m == nil || !m.config.Enabled {
		return
	}
	go func() {
		m.log.Infof("Starting metrics server on %s", m.server.Addr)
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Errorf("Metrics server failed with err: %s", err.Error())
		}
	}()
}

// Stop() gracefully stops the telemetry server
func (m *Metrics) Stop() {
	// exit if empty or not enabled
	if m == nil || !m.config.Enabled {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		m.log.Error(err.Error())
	}
}

// Registry() exposes the private registry (used by tests and embedders)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// chain() converts a chain id to its label value
func chain(chainId uint64) string { return strconv.FormatUint(chainId, 10) }

// IncPacketSent() records an outbound message
func (m *Metrics) IncPacketSent(chainId uint64) {
	if m == nil {
		return
	}
	m.PacketsSent.WithLabelValues(chain(chainId)).Inc()
}

// IncPayloadDelivered() records a payload applied to a receiving application
func (m *Metrics) IncPayloadDelivered(chainId uint64) {
	if m == nil {
		return
	}
	m.PayloadsDelivered.WithLabelValues(chain(chainId)).Inc()
}

// IncPayloadStored() records a withheld payload
func (m *Metrics) IncPayloadStored(chainId uint64) {
	if m == nil {
		return
	}
	m.PayloadsStored.WithLabelValues(chain(chainId)).Inc()
}

// IncPayloadCleared() records a stored payload cleared by a retry
func (m *Metrics) IncPayloadCleared(chainId uint64) {
	if m == nil {
		return
	}
	m.PayloadsCleared.WithLabelValues(chain(chainId)).Inc()
}

// IncPayloadDropped() records an untrusted delivery
func (m *Metrics) IncPayloadDropped(chainId uint64) {
	if m == nil {
		return
	}
	m.PayloadsDropped.WithLabelValues(chain(chainId)).Inc()
}

// IncForceResume() records a forced clear
func (m *Metrics) IncForceResume(chainId uint64) {
	if m == nil {
		return
	}
	m.ForceResumes.WithLabelValues(chain(chainId)).Inc()
}

// SetBlockedState() updates the blocked path and queue depth gauges of a chain
func (m *Metrics) SetBlockedState(chainId uint64, blockedPaths, queueDepth int) {
	if m == nil {
		return
	}
	m.BlockedPaths.WithLabelValues(chain(chainId)).Set(float64(blockedPaths))
	m.QueueDepth.WithLabelValues(chain(chainId)).Set(float64(queueDepth))
}

// IncRetryAttempt() records a relayer retry
func (m *Metrics) IncRetryAttempt(chainId uint64) {
	if m == nil {
		return
	}
	m.RetryAttempts.WithLabelValues(chain(chainId)).Inc()
}

// IncRetryFailure() records a stuck payload the relayer gave up on
func (m *Metrics) IncRetryFailure(chainId uint64) {
	if m == nil {
		return
	}
	m.RetryFailures.WithLabelValues(chain(chainId)).Inc()
}
