package endpoint

import (
	"encoding/binary"

	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/holiman/uint256"
)

/* This file implements the relayer adapter params: the packed options a sender passes to describe destination execution */

const (
	AdapterParamsV1 uint16 = 1 // uint16 version ++ uint256 gas
	AdapterParamsV2 uint16 = 2 // v1 ++ uint256 nativeForDst ++ address dstNativeAddr

	adapterParamsV1Length = 2 + 32
	adapterParamsV2Length = adapterParamsV1Length + 32 + crypto.AddressSize
)

// AdapterParams are the decoded destination execution options of a message
type AdapterParams struct {
	Version       uint16         `json:"version"`
	Gas           *uint256.Int   `json:"gas"`                     // the destination gas hint
	NativeForDst  *uint256.Int   `json:"nativeForDst,omitempty"`  // the native airdrop amount (v2)
	DstNativeAddr crypto.Address `json:"dstNativeAddr,omitempty"` // the airdrop recipient (v2)
}

// ParseAdapterParams() decodes the packed adapter params
// empty params are version 1 with the default gas
func ParseAdapterParams(bz []byte, defaultGas uint64) (*AdapterParams, lib.ErrorI) {
	if len(bz) == 0 {
		return &AdapterParams{Version: AdapterParamsV1, Gas: uint256.NewInt(defaultGas), NativeForDst: new(uint256.Int)}, nil
	}
	if len(bz) < 2 {
		return nil, ErrUnsupportedAdapterVersion(0, len(bz))
	}
	version := binary.BigEndian.Uint16(bz[:2])
	switch {
	case version == AdapterParamsV1 && len(bz) == adapterParamsV1Length:
		return &AdapterParams{
			Version:      version,
			Gas:          new(uint256.Int).SetBytes(bz[2:34]),
			NativeForDst: new(uint256.Int),
		}, nil
	case version == AdapterParamsV2 && len(bz) == adapterParamsV2Length:
		ap := &AdapterParams{
			Version:      version,
			Gas:          new(uint256.Int).SetBytes(bz[2:34]),
			NativeForDst: new(uint256.Int).SetBytes(bz[34:66]),
		}
		copy(ap.DstNativeAddr[:], bz[66:])
		return ap, nil
	default:
		return nil, ErrUnsupportedAdapterVersion(version, len(bz))
	}
}

// Bytes() packs the adapter params
func (a *AdapterParams) Bytes() []byte {
	bz := make([]byte, 2, adapterParamsV2Length)
	binary.BigEndian.PutUint16(bz, a.Version)
	gas := orZero(a.Gas).Bytes32()
	bz = append(bz, gas[:]...)
	if a.Version == AdapterParamsV2 {
		airdrop := orZero(a.NativeForDst).Bytes32()
		bz = append(append(bz, airdrop[:]...), a.DstNativeAddr[:]...)
	}
	return bz
}

// NewAdapterParamsV1() packs version 1 params carrying only a gas hint
func NewAdapterParamsV1(gas uint64) []byte {
	return (&AdapterParams{Version: AdapterParamsV1, Gas: uint256.NewInt(gas)}).Bytes()
}

// NewAdapterParamsV2() packs version 2 params carrying a gas hint and a native airdrop
func NewAdapterParamsV2(gas uint64, nativeForDst *uint256.Int, dstNativeAddr crypto.Address) []byte {
	return (&AdapterParams{Version: AdapterParamsV2, Gas: uint256.NewInt(gas), NativeForDst: nativeForDst, DstNativeAddr: dstNativeAddr}).Bytes()
}

func orZero(i *uint256.Int) *uint256.Int {
	if i == nil {
		return new(uint256.Int)
	}
	return i
}
