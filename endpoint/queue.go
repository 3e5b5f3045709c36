package endpoint

import (
	"github.com/canopy-network/omnichain/lib"
)

// InboundQueue is the FIFO backlog of messages that arrived on a Blocked path
// entries are keyed by a per path sequence so lexicographical order is arrival order
type InboundQueue struct {
	db lib.RWStoreI
}

// NewInboundQueue() creates an inbound queue over the endpoint state
func NewInboundQueue(db lib.RWStoreI) InboundQueue { return InboundQueue{db: db} }

// Append() adds an entry to the tail of the path queue
func (q InboundQueue) Append(srcChainId uint64, path []byte, entry *QueueEntry) lib.ErrorI {
	sequence, err := q.nextSequence(srcChainId, path)
	if err != nil {
		return err
	}
	return q.db.Set(KeyForQueueEntry(srcChainId, path, sequence), entry.Marshal())
}

// Head() returns the oldest entry of the path queue and its key; nil if the queue is empty
func (q InboundQueue) Head(srcChainId uint64, path []byte) (entry *QueueEntry, key []byte, err lib.ErrorI) {
	it, err := q.db.Iterator(QueuePrefix(srcChainId, path))
	if err != nil {
		return
	}
	defer it.Close()
	if !it.Valid() {
		return
	}
	entry, key = new(QueueEntry), it.Key()
	if err = entry.Unmarshal(it.Value()); err != nil {
		return nil, nil, err
	}
	return
}

// Remove() deletes a queue entry by key
func (q InboundQueue) Remove(key []byte) lib.ErrorI { return q.db.Delete(key) }

// Len() returns the number of entries in the path queue
func (q InboundQueue) Len(srcChainId uint64, path []byte) (n uint64, err lib.ErrorI) {
	it, err := q.db.Iterator(QueuePrefix(srcChainId, path))
	if err != nil {
		return
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		n++
	}
	return
}

// Entries() returns the path queue from head to tail
func (q InboundQueue) Entries(srcChainId uint64, path []byte) (entries []*QueueEntry, err lib.ErrorI) {
	it, err := q.db.Iterator(QueuePrefix(srcChainId, path))
	if err != nil {
		return
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		entry := new(QueueEntry)
		if err = entry.Unmarshal(it.Value()); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return
}

// TotalLen() returns the number of queued entries across every path
func (q InboundQueue) TotalLen() (n int, err lib.ErrorI) {
	it, err := q.db.Iterator(lib.JoinLenPrefix(queuePrefix))
	if err != nil {
		return
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		n++
	}
	return
}

// nextSequence() returns one past the sequence of the tail entry
func (q InboundQueue) nextSequence(srcChainId uint64, path []byte) (uint64, lib.ErrorI) {
	prefix := QueuePrefix(srcChainId, path)
	it, err := q.db.RevIterator(prefix)
	if err != nil {
		return 0, err
	}
	defer it.Close()
	if !it.Valid() {
		return 0, nil
	}
	segments, err := decodeKey(it.Key()[len(prefix):])
	if err != nil || len(segments) != 1 {
		return 0, lib.ErrInvalidArgument()
	}
	return lib.BytesToUint64(segments[0]) + 1, nil
}
