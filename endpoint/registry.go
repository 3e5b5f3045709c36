package endpoint

import (
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
)

// TrustedRemoteRegistry maps (localApp, remoteChainId) to the only path bytes the app accepts
// the registered bytes are remoteApp ++ localApp: exactly what the remote endpoint delivers
type TrustedRemoteRegistry struct {
	db lib.RWStoreI
}

// NewTrustedRemoteRegistry() creates a registry over the endpoint state
func NewTrustedRemoteRegistry(db lib.RWStoreI) TrustedRemoteRegistry {
	return TrustedRemoteRegistry{db: db}
}

// Set() registers the trusted path, overwriting any previous registration
func (t TrustedRemoteRegistry) Set(app crypto.Address, remoteChainId uint64, path []byte) lib.ErrorI {
	if len(path) != PathLength {
		return ErrInvalidPathLength(len(path))
	}
	return t.db.Set(KeyForTrustedRemote(app, remoteChainId), path)
}

// Get() returns the trusted path or nil if none is registered
func (t TrustedRemoteRegistry) Get(app crypto.Address, remoteChainId uint64) ([]byte, lib.ErrorI) {
	return t.db.Get(KeyForTrustedRemote(app, remoteChainId))
}
