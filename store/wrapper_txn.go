package store

import (
	"bytes"

	"github.com/canopy-network/omnichain/lib"
	"github.com/dgraph-io/badger/v4"
)

// RWStoreI interface enforcement
var _ lib.RWStoreI = &TxnWrapper{}

// TxnWrapper is a wrapper over the badgerDB Txn object that conforms to the RWStoreI interface
type TxnWrapper struct {
	logger lib.LoggerI
	db     *badger.Txn
	prefix []byte
}

// NewTxnWrapper() creates a new TxnWrapper with the provided params
func NewTxnWrapper(db *badger.Txn, logger lib.LoggerI, prefix []byte) *TxnWrapper {
	return &TxnWrapper{
		logger: logger,
		db:     db,
		prefix: prefix,
	}
}

// Get() retrieves the value associated with the key from the BadgerDB transaction
func (t *TxnWrapper) Get(k []byte) ([]byte, lib.ErrorI) {
	item, err := t.db.Get(lib.Append(t.prefix, k))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, ErrStoreGet(err)
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, ErrStoreGet(err)
	}
	return val, nil
}

// Set() stores the key-value pair in the BadgerDB transaction
func (t *TxnWrapper) Set(k, v []byte) lib.ErrorI {
	if len(k) == 0 && len(t.prefix) == 0 {
		return ErrInvalidKey()
	}
	if err := t.db.Set(lib.Append(t.prefix, k), v); err != nil {
		return ErrStoreSet(err)
	}
	return nil
}

// Delete() removes the key-value pair from the BadgerDB transaction
func (t *TxnWrapper) Delete(k []byte) lib.ErrorI {
	if err := t.db.Delete(lib.Append(t.prefix, k)); err != nil {
		return ErrStoreDelete(err)
	}
	return nil
}

// Iterator() creates a new iterator for the given prefix in the BadgerDB transaction
func (t *TxnWrapper) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	parent := t.db.NewIterator(badger.IteratorOptions{
		Prefix: lib.Append(t.prefix, prefix),
	})
	parent.Rewind()
	return &Iterator{
		logger: t.logger,
		parent: parent,
		prefix: t.prefix,
	}, nil
}

// RevIterator() creates a new reverse iterator for the given prefix in the BadgerDB transaction
func (t *TxnWrapper) RevIterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	newPrefix := lib.Append(t.prefix, prefix)
	parent := t.db.NewIterator(badger.IteratorOptions{
		Reverse: true,
		Prefix:  newPrefix,
	})
	seekLast(parent, newPrefix)
	return &Iterator{
		logger: t.logger,
		parent: parent,
		prefix: t.prefix,
	}, nil
}

// seekLast() positions a reverse iterator at the last key for the given prefix
func seekLast(it *badger.Iterator, prefix []byte) {
	end := prefixEnd(prefix)
	// an empty or all 0xFF prefix has no upper bound
	if end == nil {
		it.Rewind()
		return
	}
	it.Seek(end)
	// the upper bound itself is outside the prefix
	if it.Valid() && bytes.Equal(it.Item().Key(), end) {
		it.Next()
	}
}

// prefixEnd() returns the smallest key that is greater than every key with the prefix
func prefixEnd(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// IteratorI interface enforcement
var _ lib.IteratorI = &Iterator{}

// Iterator implements a wrapper around BadgerDB's iterator but satisfies the IteratorI interface
type Iterator struct {
	logger lib.LoggerI
	parent *badger.Iterator
	prefix []byte
	txn    *badger.Txn // set when the iterator owns its read transaction
}

// Valid() returns if the iterator is pointing at an item under its prefix
func (i *Iterator) Valid() bool { return i.parent.Valid() }

// Next() moves the iterator to the next item
func (i *Iterator) Next() { i.parent.Next() }

// Key() returns the key of the current item with the store prefix removed
func (i *Iterator) Key() []byte {
	return bytes.Clone(bytes.TrimPrefix(i.parent.Item().Key(), i.prefix))
}

// Value() returns a copy of the value of the current item
func (i *Iterator) Value() []byte {
	value, err := i.parent.Item().ValueCopy(nil)
	if err != nil {
		i.logger.Error(ErrStoreGet(err).Error())
	}
	return value
}

// Close() closes the iterator and releases its read transaction if it owns one
func (i *Iterator) Close() {
	i.parent.Close()
	if i.txn != nil {
		i.txn.Discard()
	}
}
