package lib

/* This file contains persistence module interfaces that are used throughout the simulator */

// StoreI defines the interface for interacting with the key value storage of a simulated chain
type StoreI interface {
	RWStoreI                                   // reading and writing outside of a batch
	Update(fn func(rw RWStoreI) ErrorI) ErrorI // atomically apply every write made by fn, or none of them
	View(fn func(r RStoreI) ErrorI) ErrorI     // consistent read only snapshot
	WithPrefix(prefix []byte) StoreI           // a view of the store scoped to a key prefix
	Close() ErrorI                             // gracefully stop the database
}

// RWStoreI defines the Read/Write interface for basic db CRUD operations
type RWStoreI interface {
	RStoreI
	WStoreI
}

// WStoreI defines an interface for basic write operations
type WStoreI interface {
	Set(key, value []byte) ErrorI // set value bytes referenced by key bytes
	Delete(key []byte) ErrorI     // delete value referenced by key
}

// RStoreI defines an interface for basic read operations
type RStoreI interface {
	Get(key []byte) ([]byte, ErrorI)               // access value bytes using key bytes; nil if missing
	Iterator(prefix []byte) (IteratorI, ErrorI)    // iterate through the data one KV pair at a time in lexicographical order
	RevIterator(prefix []byte) (IteratorI, ErrorI) // iterate through the data one KV pair at a time in reverse lexicographical order
}

// IteratorI defines an interface for iterating over key-value pairs in a data store
type IteratorI interface {
	Valid() bool   // if the item the iterator is pointing at is valid
	Next()         // move to next item
	Key() []byte   // retrieve key
	Value() []byte // retrieve value
	Close()        // close the iterator when done, ensuring proper resource management
}
