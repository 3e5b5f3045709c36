package endpoint

import (
	"bytes"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
)

/*
	The Endpoint is the messaging endpoint of a single simulated chain.

	Outbound: an application calls Send(); after validation the endpoint assigns the next nonce of the
	path and synchronously calls Deliver() on the destination endpoint found in the NetworkTopology.

	Inbound: every (srcChainId, path) is either Idle or Blocked. A Blocked path holds exactly one
	StoredPayload (the message that could not be applied) and an InboundQueue of the messages that
	arrived after it. Nothing is applied on a Blocked path until an operator retries the stored payload
	or the destination application force resumes the path.
*/

// PathState is the inbound state of a path
type PathState string

const (
	PathStateIdle    PathState = "idle"
	PathStateBlocked PathState = "blocked"
)

// DeliveryStatus is the outcome of a single delivery
type DeliveryStatus string

const (
	StatusApplied DeliveryStatus = "applied" // the application consumed the payload
	StatusStored  DeliveryStatus = "stored"  // the payload is now the stored payload of the path
	StatusQueued  DeliveryStatus = "queued"  // the payload waits behind a stored payload
	StatusDropped DeliveryStatus = "dropped" // the payload was rejected and nothing was kept
)

// ReceivingApplication is the destination of delivered payloads
// a returned error (or a panic) is an application failure: the payload is stored and the path blocks
type ReceivingApplication interface {
	ApplyPayload(srcChainId uint64, srcPath []byte, nonce uint64, payload []byte) lib.ErrorI
}

// Receipt is the informational outcome of a Send() or Deliver()
type Receipt struct {
	SrcChainId    uint64         `json:"srcChainId"`
	DstChainId    uint64         `json:"dstChainId"`
	Path          lib.HexBytes   `json:"path"`
	Nonce         uint64         `json:"nonce"`
	Status        DeliveryStatus `json:"status"`
	Reason        string         `json:"reason,omitempty"`
	Fee           *Fee           `json:"fee,omitempty"`
	Refund        *big.Int       `json:"refund,omitempty"`
	RefundAddress crypto.Address `json:"refundAddress"`
}

// Endpoint is the messaging endpoint of a simulated chain
type Endpoint struct {
	chainId uint64
	store   lib.StoreI

	configMu sync.RWMutex
	config   lib.EndpointConfig
	apps     map[crypto.Address]ReceivingApplication
	topology *NetworkTopology

	blockNext atomic.Bool // one shot fault injection consumed by the next applicable delivery

	pathMu    sync.Mutex
	pathLocks map[string]*sync.Mutex // one lock per inbound (srcChainId, path) and per outbound (dstChainId, path)

	events  *lib.EventsTracker
	metrics *lib.Metrics
	log     lib.LoggerI
}

// New() creates the endpoint of a chain over its own store
func New(chainId uint64, config lib.EndpointConfig, store lib.StoreI, metrics *lib.Metrics, log lib.LoggerI) (*Endpoint, lib.ErrorI) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return &Endpoint{
		chainId:   chainId,
		store:     store,
		config:    config,
		apps:      make(map[crypto.Address]ReceivingApplication),
		pathLocks: make(map[string]*sync.Mutex),
		events:    new(lib.EventsTracker),
		metrics:   metrics,
		log:       log,
	}, nil
}

// ChainId() returns the chain of the endpoint
func (e *Endpoint) ChainId() uint64 { return e.chainId }

// Config() returns a copy of the endpoint configuration
func (e *Endpoint) Config() lib.EndpointConfig {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.config
}

// SetConfig() replaces the endpoint configuration
func (e *Endpoint) SetConfig(config lib.EndpointConfig) lib.ErrorI {
	if err := validateConfig(config); err != nil {
		return err
	}
	e.configMu.Lock()
	defer e.configMu.Unlock()
	e.config = config
	return nil
}

// RegisterApplication() registers the receiving application at an address
func (e *Endpoint) RegisterApplication(addr crypto.Address, app ReceivingApplication) {
	e.configMu.Lock()
	defer e.configMu.Unlock()
	e.apps[addr] = app
}

// SetTrustedRemote() sets the only path bytes the application accepts from a remote chain
func (e *Endpoint) SetTrustedRemote(app crypto.Address, remoteChainId uint64, path []byte) lib.ErrorI {
	return NewTrustedRemoteRegistry(e.store).Set(app, remoteChainId, path)
}

// TrustedRemote() returns the trusted path of the application for a remote chain; nil if none
func (e *Endpoint) TrustedRemote(app crypto.Address, remoteChainId uint64) ([]byte, lib.ErrorI) {
	return NewTrustedRemoteRegistry(e.store).Get(app, remoteChainId)
}

// SetMinDstGas() sets the minimum destination gas of an application for a packet type
func (e *Endpoint) SetMinDstGas(app crypto.Address, dstChainId uint64, packetType uint16, gas uint64) lib.ErrorI {
	return NewUAConfig(e.store).SetMinDstGas(app, dstChainId, packetType, gas)
}

// SetUseCustomAdapterParams() toggles custom adapter params for an application
func (e *Endpoint) SetUseCustomAdapterParams(app crypto.Address, useCustom bool) lib.ErrorI {
	return NewUAConfig(e.store).SetUseCustomAdapterParams(app, useCustom)
}

// CheckAdapterParams() enforces the sending policy of an application
func (e *Endpoint) CheckAdapterParams(app crypto.Address, dstChainId uint64, packetType uint16, adapterParams []byte) lib.ErrorI {
	return NewUAConfig(e.store).CheckAdapterParams(app, dstChainId, packetType, adapterParams)
}

// BlockNextMessage() forces the next applicable delivery to be stored instead of applied
func (e *Endpoint) BlockNextMessage() {
	e.blockNext.Store(true)
	e.log.Debug("The next message will be blocked")
}

// Events() returns the endpoint event tracker
func (e *Endpoint) Events() *lib.EventsTracker { return e.events }

// EstimateFees() prices a message to a destination chain
func (e *Endpoint) EstimateFees(dstChainId uint64, dstApp crypto.Address, payload []byte, useZro bool, adapterParams []byte) (*Fee, lib.ErrorI) {
	config := e.Config()
	params, err := ParseAdapterParams(adapterParams, config.DefaultGas)
	if err != nil {
		return nil, err
	}
	return estimateFee(config, dstChainId, len(payload), useZro, params), nil
}

// Send() validates and sends a message from a local application to a remote application
// validation failures reject the message before a nonce is assigned; the remote outcome is informational
func (e *Endpoint) Send(srcApp crypto.Address, dstChainId uint64, dstApp crypto.Address, payload []byte,
	refundAddress, zroPaymentAddress crypto.Address, adapterParams []byte, fee *big.Int) (*Receipt, lib.ErrorI) {
	config := e.Config()
	// check the payload size
	if uint64(len(payload)) > config.MaxPayloadBytes {
		return nil, ErrPayloadTooLarge(len(payload), config.MaxPayloadBytes)
	}
	// price the message
	estimate, err := e.EstimateFees(dstChainId, dstApp, payload, !zroPaymentAddress.IsZero(), adapterParams)
	if err != nil {
		return nil, err
	}
	if fee == nil {
		fee = new(big.Int)
	}
	if fee.Cmp(estimate.NativeFee) < 0 {
		return nil, ErrInsufficientFee(fee, estimate.NativeFee)
	}
	// the sender must trust the destination application on the destination chain
	trusted, err := e.TrustedRemote(srcApp, dstChainId)
	if err != nil {
		return nil, err
	}
	if expected := NewPath(dstChainId, dstApp, e.chainId, srcApp).Bytes(); !bytes.Equal(trusted, expected) {
		return nil, ErrPathNotTrusted(dstChainId, expected)
	}
	remote := e.getTopology().Endpoint(dstChainId)
	if remote == nil {
		return nil, ErrPathNotTrusted(dstChainId, trusted)
	}
	// the outbound path stays locked until the remote endpoint has the message so nonces arrive in order
	path := NewPath(e.chainId, srcApp, dstChainId, dstApp).Bytes()
	unlock := e.lockKey(KeyForOutboundNonce(dstChainId, path))
	defer unlock()
	nonce, err := e.nextOutboundNonce(dstChainId, path)
	if err != nil {
		return nil, err
	}
	e.emit(&lib.Event{EventType: lib.EventTypePacketSent, DstChainId: dstChainId, Path: path, Nonce: nonce, PayloadHash: crypto.Hash(payload)})
	e.metrics.IncPacketSent(e.chainId)
	e.log.Debugf("Sent nonce %d on path %s to chain %d", nonce, lib.HexBytes(path), dstChainId)
	// deliver synchronously
	receipt, err := remote.Deliver(e.chainId, path, dstApp, nonce, payload)
	if err != nil {
		e.log.Warnf("Delivery of nonce %d to chain %d failed: %s", nonce, dstChainId, err.Error())
		receipt = &Receipt{SrcChainId: e.chainId, DstChainId: dstChainId, Path: path, Nonce: nonce, Status: StatusDropped, Reason: err.Error()}
	}
	receipt.Fee, receipt.Refund, receipt.RefundAddress = estimate, new(big.Int).Sub(fee, estimate.NativeFee), refundAddress
	return receipt, nil
}

// Deliver() receives a message from a remote endpoint
func (e *Endpoint) Deliver(srcChainId uint64, srcPath []byte, dstApp crypto.Address, nonce uint64, payload []byte) (*Receipt, lib.ErrorI) {
	if _, err := ParsePath(srcPath); err != nil {
		return nil, err
	}
	receipt := &Receipt{SrcChainId: srcChainId, DstChainId: e.chainId, Path: srcPath, Nonce: nonce}
	unlock := e.lockPath(srcChainId, srcPath)
	defer unlock()
	// the destination application must trust the path
	trusted, err := e.TrustedRemote(dstApp, srcChainId)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(trusted, srcPath) {
		err = ErrPathNotTrusted(srcChainId, srcPath)
		e.emit(&lib.Event{EventType: lib.EventTypePayloadDropped, SrcChainId: srcChainId, Path: srcPath, Nonce: nonce, PayloadHash: crypto.Hash(payload), Reason: err.Error()})
		e.metrics.IncPayloadDropped(e.chainId)
		e.log.Warnf("Dropped nonce %d from chain %d: untrusted path %s", nonce, srcChainId, lib.HexBytes(srcPath))
		return nil, err
	}
	// a blocked path queues everything behind the stored payload
	blocked, err := e.isBlocked(srcChainId, srcPath)
	if err != nil {
		return nil, err
	}
	if blocked {
		if err = e.store.Update(func(rw lib.RWStoreI) lib.ErrorI {
			return NewInboundQueue(rw).Append(srcChainId, srcPath, &QueueEntry{Nonce: nonce, Payload: payload, DstApp: dstApp})
		}); err != nil {
			return nil, err
		}
		e.emit(&lib.Event{EventType: lib.EventTypePayloadStored, SrcChainId: srcChainId, Path: srcPath, Nonce: nonce, PayloadHash: crypto.Hash(payload), Queued: true})
		e.metrics.IncPayloadStored(e.chainId)
		e.updateGauges()
		receipt.Status = StatusQueued
		return receipt, nil
	}
	// an idle path applies in order
	last, err := e.InboundNonce(srcChainId, srcPath)
	if err != nil {
		return nil, err
	}
	var failure lib.ErrorI
	switch {
	case nonce != last+1:
		failure = ErrOutOfOrderNonce(last+1, nonce)
	case e.blockNext.CompareAndSwap(true, false):
		failure = ErrApplyPayload(errBlockedMessage)
	default:
		failure = e.apply(dstApp, srcChainId, srcPath, nonce, payload)
	}
	if failure != nil {
		sp := &StoredPayload{Nonce: nonce, Payload: payload, PayloadHash: crypto.Hash(payload), DstApp: dstApp}
		if err = e.storePayload(srcChainId, srcPath, sp, failure, nil); err != nil {
			return nil, err
		}
		receipt.Status, receipt.Reason = StatusStored, failure.Error()
		return receipt, nil
	}
	if err = e.store.Set(KeyForInboundNonce(srcChainId, srcPath), lib.Uint64ToBytes(nonce)); err != nil {
		return nil, err
	}
	e.emit(&lib.Event{EventType: lib.EventTypePayloadDelivered, SrcChainId: srcChainId, Path: srcPath, Nonce: nonce, PayloadHash: crypto.Hash(payload)})
	e.metrics.IncPayloadDelivered(e.chainId)
	receipt.Status = StatusApplied
	return receipt, nil
}

// RetryPayload() applies the stored payload of a path; the payload must match the stored hash
// on success the path resumes and the queue is drained; on failure nothing changes
func (e *Endpoint) RetryPayload(srcChainId uint64, srcPath []byte, payload []byte) lib.ErrorI {
	unlock := e.lockPath(srcChainId, srcPath)
	defer unlock()
	sp, err := e.StoredPayload(srcChainId, srcPath)
	if err != nil {
		return err
	}
	if sp == nil {
		return ErrNoStoredPayload()
	}
	if !bytes.Equal(crypto.Hash(payload), sp.PayloadHash) {
		return ErrPayloadHashMismatch()
	}
	// a stale or early nonce can only leave through ForceResumeReceive()
	last, err := e.InboundNonce(srcChainId, srcPath)
	if err != nil {
		return err
	}
	if sp.Nonce != last+1 {
		return ErrOutOfOrderNonce(last+1, sp.Nonce)
	}
	if err = e.apply(sp.DstApp, srcChainId, srcPath, sp.Nonce, payload); err != nil {
		return err
	}
	if err = e.clearStoredPayload(srcChainId, srcPath, sp.Nonce); err != nil {
		return err
	}
	e.emit(&lib.Event{EventType: lib.EventTypePayloadCleared, SrcChainId: srcChainId, Path: srcPath, Nonce: sp.Nonce, PayloadHash: sp.PayloadHash})
	e.metrics.IncPayloadCleared(e.chainId)
	e.log.Infof("Retried nonce %d from chain %d", sp.Nonce, srcChainId)
	return e.drain(srcChainId, srcPath)
}

// ForceResumeReceive() discards the stored payload of a path without applying it and resumes the path
// only the destination application of the stored payload may force resume
func (e *Endpoint) ForceResumeReceive(dstApp crypto.Address, srcChainId uint64, srcPath []byte) lib.ErrorI {
	unlock := e.lockPath(srcChainId, srcPath)
	defer unlock()
	sp, err := e.StoredPayload(srcChainId, srcPath)
	if err != nil {
		return err
	}
	if sp == nil {
		return ErrNoStoredPayload()
	}
	if sp.DstApp != dstApp {
		return ErrUnauthorizedResume()
	}
	if err = e.clearStoredPayload(srcChainId, srcPath, sp.Nonce); err != nil {
		return err
	}
	e.emit(&lib.Event{EventType: lib.EventTypeUaForceResumeReceive, SrcChainId: srcChainId, Path: srcPath, Nonce: sp.Nonce})
	e.metrics.IncForceResume(e.chainId)
	e.log.Infof("Force resumed path %s from chain %d, discarding nonce %d", lib.HexBytes(srcPath), srcChainId, sp.Nonce)
	if e.Config().ResumePolicy == lib.ResumePolicyPromote {
		return e.promote(srcChainId, srcPath)
	}
	return e.drain(srcChainId, srcPath)
}

// HasStoredPayload() returns true if the path is Blocked
func (e *Endpoint) HasStoredPayload(srcChainId uint64, srcPath []byte) (bool, lib.ErrorI) {
	return NewPayloadStore(e.store).Has(srcChainId, srcPath)
}

// StoredPayload() returns the stored payload of the path or nil
func (e *Endpoint) StoredPayload(srcChainId uint64, srcPath []byte) (*StoredPayload, lib.ErrorI) {
	return NewPayloadStore(e.store).Get(srcChainId, srcPath)
}

// GetQueueLength() returns the number of messages queued behind the stored payload of the path
func (e *Endpoint) GetQueueLength(srcChainId uint64, srcPath []byte) (uint64, lib.ErrorI) {
	return NewInboundQueue(e.store).Len(srcChainId, srcPath)
}

// QueuedMessages() returns the queue of the path from head to tail
func (e *Endpoint) QueuedMessages(srcChainId uint64, srcPath []byte) ([]*QueueEntry, lib.ErrorI) {
	return NewInboundQueue(e.store).Entries(srcChainId, srcPath)
}

// PathState() returns whether the path is Idle or Blocked
func (e *Endpoint) PathState(srcChainId uint64, srcPath []byte) (PathState, lib.ErrorI) {
	blocked, err := e.HasStoredPayload(srcChainId, srcPath)
	if err != nil {
		return "", err
	}
	if blocked {
		return PathStateBlocked, nil
	}
	return PathStateIdle, nil
}

// InboundNonce() returns the last delivered nonce of an inbound path
func (e *Endpoint) InboundNonce(srcChainId uint64, srcPath []byte) (uint64, lib.ErrorI) {
	bz, err := e.store.Get(KeyForInboundNonce(srcChainId, srcPath))
	return lib.BytesToUint64(bz), err
}

// OutboundNonce() returns the last assigned nonce of an outbound path
func (e *Endpoint) OutboundNonce(dstChainId uint64, path []byte) (uint64, lib.ErrorI) {
	bz, err := e.store.Get(KeyForOutboundNonce(dstChainId, path))
	return lib.BytesToUint64(bz), err
}

// BlockedPaths() lists every Blocked inbound path with its queue length
func (e *Endpoint) BlockedPaths() ([]*BlockedPath, lib.ErrorI) {
	blocked, err := NewPayloadStore(e.store).All()
	if err != nil {
		return nil, err
	}
	for _, b := range blocked {
		if b.QueueLength, err = e.GetQueueLength(b.SrcChainId, b.Path); err != nil {
			return nil, err
		}
	}
	return blocked, nil
}

// drain() applies the queue head-first until it is empty or an entry fails
// the failing entry becomes the new stored payload so the path never idles with a non-empty queue
// NOTE: the caller must hold the path lock
func (e *Endpoint) drain(srcChainId uint64, srcPath []byte) lib.ErrorI {
	defer e.updateGauges()
	queue := NewInboundQueue(e.store)
	for {
		entry, key, err := queue.Head(srcChainId, srcPath)
		if err != nil || entry == nil {
			return err
		}
		last, err := e.InboundNonce(srcChainId, srcPath)
		if err != nil {
			return err
		}
		var failure lib.ErrorI
		if entry.Nonce != last+1 {
			failure = ErrOutOfOrderNonce(last+1, entry.Nonce)
		} else {
			failure = e.apply(entry.DstApp, srcChainId, srcPath, entry.Nonce, entry.Payload)
		}
		if failure != nil {
			return e.storePayload(srcChainId, srcPath, entry.ToStoredPayload(), failure, key)
		}
		if err = e.store.Update(func(rw lib.RWStoreI) lib.ErrorI {
			if rmErr := NewInboundQueue(rw).Remove(key); rmErr != nil {
				return rmErr
			}
			return rw.Set(KeyForInboundNonce(srcChainId, srcPath), lib.Uint64ToBytes(entry.Nonce))
		}); err != nil {
			return err
		}
		e.emit(&lib.Event{EventType: lib.EventTypePayloadDelivered, SrcChainId: srcChainId, Path: srcPath, Nonce: entry.Nonce, PayloadHash: crypto.Hash(entry.Payload)})
		e.metrics.IncPayloadDelivered(e.chainId)
	}
}

// promote() moves the queue head into the stored payload slot without applying it
// NOTE: the caller must hold the path lock
func (e *Endpoint) promote(srcChainId uint64, srcPath []byte) lib.ErrorI {
	defer e.updateGauges()
	entry, key, err := NewInboundQueue(e.store).Head(srcChainId, srcPath)
	if err != nil || entry == nil {
		return err
	}
	return e.storePayload(srcChainId, srcPath, entry.ToStoredPayload(), errPromoted, key)
}

// storePayload() blocks the path with the stored payload, optionally removing the queue entry it came from
func (e *Endpoint) storePayload(srcChainId uint64, srcPath []byte, sp *StoredPayload, reason error, queueKey []byte) lib.ErrorI {
	if err := e.store.Update(func(rw lib.RWStoreI) lib.ErrorI {
		if queueKey != nil {
			if err := NewInboundQueue(rw).Remove(queueKey); err != nil {
				return err
			}
		}
		return NewPayloadStore(rw).Set(srcChainId, srcPath, sp)
	}); err != nil {
		return err
	}
	e.emit(&lib.Event{EventType: lib.EventTypePayloadStored, SrcChainId: srcChainId, Path: srcPath, Nonce: sp.Nonce, PayloadHash: sp.PayloadHash, Reason: reason.Error()})
	e.metrics.IncPayloadStored(e.chainId)
	e.updateGauges()
	e.log.Warnf("Stored nonce %d from chain %d: %s", sp.Nonce, srcChainId, reason.Error())
	return nil
}

// clearStoredPayload() removes the stored payload and advances the inbound nonce to it in one batch
// the inbound nonce never moves backwards, even when a stale nonce is cleared
func (e *Endpoint) clearStoredPayload(srcChainId uint64, srcPath []byte, nonce uint64) lib.ErrorI {
	return e.store.Update(func(rw lib.RWStoreI) lib.ErrorI {
		if err := NewPayloadStore(rw).Delete(srcChainId, srcPath); err != nil {
			return err
		}
		key := KeyForInboundNonce(srcChainId, srcPath)
		bz, err := rw.Get(key)
		if err != nil {
			return err
		}
		if lib.BytesToUint64(bz) >= nonce {
			return nil
		}
		return rw.Set(key, lib.Uint64ToBytes(nonce))
	})
}

// isBlocked() returns true if the path has a stored payload or anything queued
func (e *Endpoint) isBlocked(srcChainId uint64, srcPath []byte) (bool, lib.ErrorI) {
	blocked, err := e.HasStoredPayload(srcChainId, srcPath)
	if err != nil || blocked {
		return blocked, err
	}
	n, err := e.GetQueueLength(srcChainId, srcPath)
	return n != 0, err
}

// apply() hands the payload to the registered application, converting errors and panics into ErrApplyPayload
func (e *Endpoint) apply(dstApp crypto.Address, srcChainId uint64, srcPath []byte, nonce uint64, payload []byte) (err lib.ErrorI) {
	e.configMu.RLock()
	app, found := e.apps[dstApp]
	e.configMu.RUnlock()
	if !found {
		return ErrApplyPayload(ErrApplicationNotFound(dstApp))
	}
	defer func() {
		if r := recover(); r != nil {
			err = ErrApplyPayload(lib.ErrPanic(r))
		}
	}()
	if err = app.ApplyPayload(srcChainId, srcPath, nonce, payload); err != nil {
		return ErrApplyPayload(err)
	}
	return nil
}

// nextOutboundNonce() assigns and persists the next nonce of an outbound path
// NOTE: the caller must hold the outbound path lock
func (e *Endpoint) nextOutboundNonce(dstChainId uint64, path []byte) (nonce uint64, err lib.ErrorI) {
	err = e.store.Update(func(rw lib.RWStoreI) lib.ErrorI {
		key := KeyForOutboundNonce(dstChainId, path)
		bz, getErr := rw.Get(key)
		if getErr != nil {
			return getErr
		}
		nonce = lib.BytesToUint64(bz) + 1
		return rw.Set(key, lib.Uint64ToBytes(nonce))
	})
	return
}

// lockPath() acquires the lock of an inbound path and returns its release
func (e *Endpoint) lockPath(srcChainId uint64, srcPath []byte) (unlock func()) {
	return e.lockKey(KeyForStoredPayload(srcChainId, srcPath))
}

// lockKey() acquires the lock identified by a store key and returns its release
func (e *Endpoint) lockKey(key []byte) (unlock func()) {
	e.pathMu.Lock()
	l, found := e.pathLocks[string(key)]
	if !found {
		l = new(sync.Mutex)
		e.pathLocks[string(key)] = l
	}
	e.pathMu.Unlock()
	l.Lock()
	return l.Unlock
}

// emit() adds an event emitted by this endpoint to its log
func (e *Endpoint) emit(event *lib.Event) {
	event.ChainId = e.chainId
	if err := e.events.Add(event); err != nil {
		e.log.Error(err.Error())
	}
}

// updateGauges() refreshes the blocked path and queue depth telemetry
func (e *Endpoint) updateGauges() {
	if e.metrics == nil {
		return
	}
	blocked, err := NewPayloadStore(e.store).All()
	if err != nil {
		e.log.Error(err.Error())
		return
	}
	depth, err := NewInboundQueue(e.store).TotalLen()
	if err != nil {
		e.log.Error(err.Error())
		return
	}
	e.metrics.SetBlockedState(e.chainId, len(blocked), depth)
}

func (e *Endpoint) setTopology(n *NetworkTopology) {
	e.configMu.Lock()
	defer e.configMu.Unlock()
	e.topology = n
}

func (e *Endpoint) getTopology() *NetworkTopology {
	e.configMu.RLock()
	defer e.configMu.RUnlock()
	return e.topology
}

// validateConfig() checks the endpoint configuration
func validateConfig(config lib.EndpointConfig) lib.ErrorI {
	switch config.ResumePolicy {
	case lib.ResumePolicyDrain, lib.ResumePolicyPromote:
		return nil
	default:
		return ErrInvalidResumePolicy(config.ResumePolicy)
	}
}
