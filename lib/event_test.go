package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventsTracker(t *testing.T) {
	tracker := new(EventsTracker)
	// subscribe a listener
	var heard []EventType
	tracker.Subscribe(func(e *Event) { heard = append(heard, e.EventType) })
	// add a few events
	require.NoError(t, tracker.Add(&Event{EventType: EventTypePacketSent, Nonce: 1}))
	require.NoError(t, tracker.Add(&Event{EventType: EventTypePayloadStored, Nonce: 1}))
	require.NoError(t, tracker.Add(&Event{EventType: EventTypePayloadStored, Nonce: 2, Queued: true}))
	// validate the log
	events := tracker.Events()
	require.Len(t, events, 3)
	for i, e := range events {
		require.Equal(t, uint64(i), e.Index)
	}
	require.Len(t, events.OfType(EventTypePayloadStored), 2)
	require.Equal(t, []EventType{EventTypePacketSent, EventTypePayloadStored, EventTypePayloadStored}, heard)
	// validate since
	require.Len(t, tracker.Since(1), 2)
	require.Empty(t, tracker.Since(3))
	// validate reset
	require.Len(t, tracker.Reset(), 3)
	require.Empty(t, tracker.Events())
}

func TestNilEventsTracker(t *testing.T) {
	var tracker *EventsTracker
	require.Error(t, tracker.Add(&Event{}))
	require.Nil(t, tracker.Events())
}
