package lib

import (
	"sync"
)

type EventType string

const (
	EventTypePacketSent           EventType = "packet-sent"
	EventTypePayloadDelivered     EventType = "payload-delivered"
	EventTypePayloadStored        EventType = "payload-stored"
	EventTypePayloadCleared       EventType = "payload-cleared"
	EventTypeUaForceResumeReceive EventType = "ua-force-resume-receive"
	EventTypePayloadDropped       EventType = "payload-dropped"
)

// Event is an observable signal emitted by a messaging endpoint
type Event struct {
	EventType   EventType `json:"eventType"`             // the kind of signal
	ChainId     uint64    `json:"chainId"`               // the chain of the emitting endpoint
	SrcChainId  uint64    `json:"srcChainId,omitempty"`  // the sending chain of an inbound path
	DstChainId  uint64    `json:"dstChainId,omitempty"`  // the receiving chain of an outbound path
	Path        HexBytes  `json:"path"`                  // the source ++ destination path bytes
	Nonce       uint64    `json:"nonce,omitempty"`       // the message nonce (zero for path level signals)
	PayloadHash HexBytes  `json:"payloadHash,omitempty"` // keccak256 of the payload
	Queued      bool      `json:"queued,omitempty"`      // a stored signal for a queue entry instead of the head
	Reason      string    `json:"reason,omitempty"`      // why a payload was stored or dropped
	Index       uint64    `json:"index"`                 // the position of the event in the endpoint log
}

type Events []*Event

// OfType() filters the events by type
func (e Events) OfType(t EventType) (res Events) {
	for _, ev := range e {
		if ev.EventType == t {
			res = append(res, ev)
		}
	}
	return
}

// EventsTracker is an append only, concurrency safe event log with optional listeners
type EventsTracker struct {
	mu        sync.RWMutex
	events    Events
	listeners []func(*Event)
}

// Add() adds an event to the tracker and notifies listeners
func (t *EventsTracker) Add(event *Event) (e ErrorI) {
	if t == nil {
		return ErrEmptyEventsTracker()
	}
	t.mu.Lock()
	event.Index = uint64(len(t.events))
	t.events = append(t.events, event)
	listeners := t.listeners
	t.mu.Unlock()
	// listeners run outside the lock so they may read the tracker
	for _, l := range listeners {
		l(event)
	}
	return
}

// Subscribe() registers a callback invoked for every future event
func (t *EventsTracker) Subscribe(listener func(*Event)) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, listener)
}

// Events() returns a copy of all tracked events
func (t *EventsTracker) Events() (e Events) {
	if t == nil {
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append(e, t.events...)
}

// Since() returns a copy of the events at or after the index
func (t *EventsTracker) Since(index uint64) (e Events) {
	if t == nil {
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if index >= uint64(len(t.events)) {
		return
	}
	return append(e, t.events[index:]...)
}

// Reset() resets the event tracker and returns the captured events
func (t *EventsTracker) Reset() (e Events) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	// save
	e = t.events
	// reset
	t.events = nil
	// exit
	return
}
