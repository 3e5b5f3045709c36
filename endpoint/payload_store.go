package endpoint

import (
	"github.com/canopy-network/omnichain/lib"
)

// PayloadStore holds at most one stored payload per inbound (srcChainId, path)
// a path is Blocked exactly while it has a stored payload
type PayloadStore struct {
	db lib.RWStoreI
}

// NewPayloadStore() creates a payload store over the endpoint state
func NewPayloadStore(db lib.RWStoreI) PayloadStore { return PayloadStore{db: db} }

// Get() returns the stored payload of the path or nil if the path is Idle
func (p PayloadStore) Get(srcChainId uint64, path []byte) (*StoredPayload, lib.ErrorI) {
	bz, err := p.db.Get(KeyForStoredPayload(srcChainId, path))
	if err != nil || bz == nil {
		return nil, err
	}
	sp := new(StoredPayload)
	if err = sp.Unmarshal(bz); err != nil {
		return nil, err
	}
	return sp, nil
}

// Has() returns true if the path is Blocked
func (p PayloadStore) Has(srcChainId uint64, path []byte) (bool, lib.ErrorI) {
	sp, err := p.Get(srcChainId, path)
	return sp != nil, err
}

// Set() stores the payload of the path, overwriting any existing one
func (p PayloadStore) Set(srcChainId uint64, path []byte, sp *StoredPayload) lib.ErrorI {
	return p.db.Set(KeyForStoredPayload(srcChainId, path), sp.Marshal())
}

// Delete() clears the stored payload of the path
func (p PayloadStore) Delete(srcChainId uint64, path []byte) lib.ErrorI {
	return p.db.Delete(KeyForStoredPayload(srcChainId, path))
}

// BlockedPath describes an inbound path waiting on a stored payload
type BlockedPath struct {
	SrcChainId    uint64         `json:"srcChainId"`
	Path          lib.HexBytes   `json:"path"`
	StoredPayload *StoredPayload `json:"storedPayload"`
	QueueLength   uint64         `json:"queueLength"`
}

// All() lists every blocked path in key order
func (p PayloadStore) All() (blocked []*BlockedPath, err lib.ErrorI) {
	it, err := p.db.Iterator(lib.JoinLenPrefix(storedPayloadPrefix))
	if err != nil {
		return nil, err
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		chainId, path, e := chainAndPathFromKey(it.Key())
		if e != nil {
			return nil, e
		}
		sp := new(StoredPayload)
		if err = sp.Unmarshal(it.Value()); err != nil {
			return nil, err
		}
		blocked = append(blocked, &BlockedPath{SrcChainId: chainId, Path: path, StoredPayload: sp})
	}
	return
}
