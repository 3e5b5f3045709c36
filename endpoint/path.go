package endpoint

import (
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
)

// PathLength is the size of the encoded path: source ++ destination address
const PathLength = 2 * crypto.AddressSize

// Path identifies a directional channel between a sending and a receiving application
type Path struct {
	SrcChainId  uint64         `json:"srcChainId"`
	Source      crypto.Address `json:"source"`
	DstChainId  uint64         `json:"dstChainId"`
	Destination crypto.Address `json:"destination"`
}

// NewPath() creates a path between two applications on two chains
func NewPath(srcChainId uint64, source crypto.Address, dstChainId uint64, destination crypto.Address) Path {
	return Path{SrcChainId: srcChainId, Source: source, DstChainId: dstChainId, Destination: destination}
}

// Bytes() returns the packed source ++ destination encoding used as the delivery key
func (p Path) Bytes() []byte {
	return lib.Append(p.Source[:], p.Destination[:])
}

// Reverse() returns the path in the opposite direction
func (p Path) Reverse() Path {
	return Path{SrcChainId: p.DstChainId, Source: p.Destination, DstChainId: p.SrcChainId, Destination: p.Source}
}

// String() returns the hex encoding of the path bytes
func (p Path) String() string { return lib.HexBytes(p.Bytes()).String() }

// ParsePath() decodes packed path bytes into the source and destination addresses
// NOTE: the chain ids are not part of the encoding and are left zero
func ParsePath(bz []byte) (p Path, err lib.ErrorI) {
	if len(bz) != PathLength {
		return p, ErrInvalidPathLength(len(bz))
	}
	copy(p.Source[:], bz[:crypto.AddressSize])
	copy(p.Destination[:], bz[crypto.AddressSize:])
	return
}
