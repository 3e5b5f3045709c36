package store

import (
	"path/filepath"

	"github.com/canopy-network/omnichain/lib"
	"github.com/dgraph-io/badger/v4"
)

var _ lib.StoreI = &Store{} // enforce the Store interface

/*
The Store is the key value persistence of a single simulated chain, built on top of a BadgerDB instance.

Every component of the chain (the messaging endpoint and the token application) writes to its own
prefixed view of the Store (see WithPrefix) so a single database holds the whole chain state.

Writes made inside Update() are committed atomically by a single badger transaction; a failing
callback discards every write it made. This is what lets the endpoint persist a delivery decision
(nonce, stored payload, queue entry) as one unit.
*/

type Store struct {
	db     *badger.DB  // underlying database
	prefix []byte      // the key prefix of this view
	owner  bool        // only the owning view closes the database
	log    lib.LoggerI // logger
}

// New() creates a new instance of a StoreI either in memory or an actual disk DB
func New(config lib.StoreConfig, l lib.LoggerI) (lib.StoreI, lib.ErrorI) {
	if config.InMemory {
		return NewStoreInMemory(l)
	}
	return NewStore(filepath.Join(config.DataDirPath, config.DBName), l)
}

// NewStore() creates a new instance of a disk DB
func NewStore(path string, log lib.LoggerI) (lib.StoreI, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions(path).
		WithNumVersionsToKeep(1).
		WithLoggingLevel(badger.ERROR).
		WithLogger(badgerLogger{log}))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return NewStoreWithDB(db, log), nil
}

// NewStoreInMemory() creates a new instance of a mem DB
func NewStoreInMemory(log lib.LoggerI) (lib.StoreI, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR).
		WithLogger(badgerLogger{log}))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return NewStoreWithDB(db, log), nil
}

// NewStoreWithDB() returns a Store object given a DB and a logger
func NewStoreWithDB(db *badger.DB, log lib.LoggerI) *Store {
	return &Store{db: db, owner: true, log: log}
}

// Get() returns the value bytes blob from the db; nil if the key is missing
func (s *Store) Get(key []byte) (value []byte, err lib.ErrorI) {
	err = s.View(func(r lib.RStoreI) (e lib.ErrorI) {
		value, e = r.Get(key)
		return
	})
	return
}

// Set() sets the value bytes blob in the db in its own transaction
func (s *Store) Set(key, value []byte) lib.ErrorI {
	return s.Update(func(rw lib.RWStoreI) lib.ErrorI { return rw.Set(key, value) })
}

// Delete() removes the key from the db in its own transaction
func (s *Store) Delete(key []byte) lib.ErrorI {
	return s.Update(func(rw lib.RWStoreI) lib.ErrorI { return rw.Delete(key) })
}

// Iterator() returns a snapshot iterator over every key under the prefix in lexicographical order
// NOTE: the caller must close the iterator to release the underlying read transaction
func (s *Store) Iterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	txn := s.db.NewTransaction(false)
	it, err := NewTxnWrapper(txn, s.log, s.prefix).Iterator(prefix)
	if err != nil {
		txn.Discard()
		return nil, err
	}
	it.(*Iterator).txn = txn
	return it, nil
}

// RevIterator() returns a snapshot iterator over every key under the prefix in reverse lexicographical order
func (s *Store) RevIterator(prefix []byte) (lib.IteratorI, lib.ErrorI) {
	txn := s.db.NewTransaction(false)
	it, err := NewTxnWrapper(txn, s.log, s.prefix).RevIterator(prefix)
	if err != nil {
		txn.Discard()
		return nil, err
	}
	it.(*Iterator).txn = txn
	return it, nil
}

// Update() executes fn inside a read-write transaction, committing all of its writes or none of them
func (s *Store) Update(fn func(rw lib.RWStoreI) lib.ErrorI) lib.ErrorI {
	var fnErr lib.ErrorI
	err := s.db.Update(func(txn *badger.Txn) error {
		if fnErr = fn(NewTxnWrapper(txn, s.log, s.prefix)); fnErr != nil {
			// returning an error discards the transaction
			return fnErr
		}
		return nil
	})
	// if the callback failed, surface its error unchanged
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return ErrCommitDB(err)
	}
	return nil
}

// View() executes fn inside a consistent read-only snapshot
func (s *Store) View(fn func(r lib.RStoreI) lib.ErrorI) lib.ErrorI {
	var fnErr lib.ErrorI
	err := s.db.View(func(txn *badger.Txn) error {
		if fnErr = fn(NewTxnWrapper(txn, s.log, s.prefix)); fnErr != nil {
			return fnErr
		}
		return nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return ErrStoreGet(err)
	}
	return nil
}

// WithPrefix() returns a view of the store where every key is scoped under the prefix
// NOTE: closing a prefixed view is a noop; only the root store closes the database
func (s *Store) WithPrefix(prefix []byte) lib.StoreI {
	return &Store{db: s.db, prefix: lib.Append(s.prefix, prefix), log: s.log}
}

// Close() gracefully stops the database
func (s *Store) Close() lib.ErrorI {
	if !s.owner {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return ErrCloseDB(err)
	}
	return nil
}

// badgerLogger adapts the project logger to badger's logging interface
type badgerLogger struct{ lib.LoggerI }

// Warningf() satisfies the badger.Logger interface
func (b badgerLogger) Warningf(format string, args ...interface{}) { b.Warnf(format, args...) }
