package relayer

import (
	"context"
	"time"

	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/cenkalti/backoff/v4"
)

/* This file implements an operator process that periodically retries the stored payloads of every endpoint in a topology */

// Relayer retries stuck payloads with exponential backoff
type Relayer struct {
	topology *endpoint.NetworkTopology
	poll     time.Duration // time between scans of the topology
	retries  uint64        // backoff attempts per stored payload per scan
	metrics  *lib.Metrics
	log      lib.LoggerI
}

// Result is the outcome of a single scan
type Result struct {
	Cleared []*endpoint.BlockedPath `json:"cleared"` // the paths whose stored payload was applied
	Failed  []*endpoint.BlockedPath `json:"failed"`  // the paths that are still blocked
}

// New() creates a relayer over a topology
func New(topology *endpoint.NetworkTopology, config lib.SimulationConfig, metrics *lib.Metrics, log lib.LoggerI) *Relayer {
	poll := time.Duration(config.RelayerPollMS) * time.Millisecond
	if poll <= 0 {
		poll = time.Second
	}
	return &Relayer{
		topology: topology,
		poll:     poll,
		retries:  config.RelayerRetries,
		metrics:  metrics,
		log:      log,
	}
}

// Start() scans the topology every poll interval until the context is cancelled
func (r *Relayer) Start(ctx context.Context) error {
	r.log.Infof("Starting relayer with a %s poll interval", r.poll)
	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.log.Info("Stopping relayer")
			return nil
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil {
				r.log.Errorf("Relayer scan failed with err: %s", err.Error())
			}
		}
	}
}

// RelayOnce() retries the stored payload of every blocked path once, with backoff
func (r *Relayer) RelayOnce(ctx context.Context) (result *Result, err lib.ErrorI) {
	result = new(Result)
	for _, chainId := range r.topology.ChainIds() {
		e := r.topology.Endpoint(chainId)
		if e == nil {
			continue
		}
		blocked, err := e.BlockedPaths()
		if err != nil {
			return nil, err
		}
		for _, bp := range blocked {
			if ctx.Err() != nil {
				return result, nil
			}
			if er := r.retry(ctx, e, bp); er != nil {
				r.log.Warn(er.Error())
				result.Failed = append(result.Failed, bp)
				continue
			}
			result.Cleared = append(result.Cleared, bp)
		}
	}
	return
}

// retry() re-applies a stored payload until it succeeds, the attempts run out or the context ends
func (r *Relayer) retry(ctx context.Context, e *endpoint.Endpoint, bp *endpoint.BlockedPath) lib.ErrorI {
	operation := func() error {
		r.metrics.IncRetryAttempt(e.ChainId())
		err := e.RetryPayload(bp.SrcChainId, bp.Path, bp.StoredPayload.Payload)
		switch {
		case err == nil:
			return nil
		case lib.IsCode(err, lib.EndpointModule, lib.CodeNoStoredPayload),
			lib.IsCode(err, lib.EndpointModule, lib.CodePayloadHashMismatch):
			// the path changed underneath the relayer
			return backoff.Permanent(err)
		case lib.IsCode(err, lib.EndpointModule, lib.CodeOutOfOrderNonce):
			// only a force resume can clear a stale or early nonce
			return backoff.Permanent(err)
		default:
			return err
		}
	}
	if err := backoff.Retry(operation, r.newBackOff(ctx)); err != nil {
		r.metrics.IncRetryFailure(e.ChainId())
		return ErrRetryExhausted(e.ChainId(), bp.StoredPayload.Nonce, err)
	}
	r.log.Infof("Relayer cleared nonce %d on path %s of chain %d", bp.StoredPayload.Nonce, bp.Path, e.ChainId())
	return nil
}

// newBackOff() returns an exponential backoff bounded by the poll interval and the retry budget
func (r *Relayer) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.poll / 4
	b.MaxInterval = r.poll
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, r.retries), ctx)
}
