package endpoint

import (
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
)

/* This file defines the key layout of the endpoint state in its store */

var (
	trustedRemotePrefix = []byte{1} // (localApp, remoteChainId) -> path bytes
	inboundNoncePrefix  = []byte{2} // (srcChainId, path) -> last delivered nonce
	outboundNoncePrefix = []byte{3} // (dstChainId, path) -> last assigned nonce
	storedPayloadPrefix = []byte{4} // (srcChainId, path) -> stored payload
	queuePrefix         = []byte{5} // (srcChainId, path, sequence) -> queue entry
	minDstGasPrefix     = []byte{6} // (app, dstChainId, packetType) -> min gas
	customAdapterPrefix = []byte{7} // (app) -> custom adapter params flag
)

func KeyForTrustedRemote(app crypto.Address, remoteChainId uint64) []byte {
	return lib.JoinLenPrefix(trustedRemotePrefix, app[:], lib.Uint64ToBytes(remoteChainId))
}

func KeyForInboundNonce(srcChainId uint64, path []byte) []byte {
	return lib.JoinLenPrefix(inboundNoncePrefix, lib.Uint64ToBytes(srcChainId), path)
}

func KeyForOutboundNonce(dstChainId uint64, path []byte) []byte {
	return lib.JoinLenPrefix(outboundNoncePrefix, lib.Uint64ToBytes(dstChainId), path)
}

func KeyForStoredPayload(srcChainId uint64, path []byte) []byte {
	return lib.JoinLenPrefix(storedPayloadPrefix, lib.Uint64ToBytes(srcChainId), path)
}

func QueuePrefix(srcChainId uint64, path []byte) []byte {
	return lib.JoinLenPrefix(queuePrefix, lib.Uint64ToBytes(srcChainId), path)
}

func KeyForQueueEntry(srcChainId uint64, path []byte, sequence uint64) []byte {
	return lib.Append(QueuePrefix(srcChainId, path), lib.JoinLenPrefix(lib.Uint64ToBytes(sequence)))
}

func KeyForMinDstGas(app crypto.Address, dstChainId uint64, packetType uint16) []byte {
	return lib.JoinLenPrefix(minDstGasPrefix, app[:], lib.Uint64ToBytes(dstChainId), lib.Uint64ToBytes(uint64(packetType)))
}

func KeyForCustomAdapterParams(app crypto.Address) []byte {
	return lib.JoinLenPrefix(customAdapterPrefix, app[:])
}

// chainAndPathFromKey() extracts the chain id and path segments of a (prefix, chainId, path, ...) key
func chainAndPathFromKey(key []byte) (chainId uint64, path []byte, err lib.ErrorI) {
	segments, err := decodeKey(key)
	if err != nil {
		return
	}
	if len(segments) < 3 {
		return 0, nil, lib.ErrInvalidArgument()
	}
	return lib.BytesToUint64(segments[1]), segments[2], nil
}

// decodeKey() decodes a length prefixed key without panicking on corrupt input
func decodeKey(key []byte) (segments [][]byte, err lib.ErrorI) {
	defer func() {
		if r := recover(); r != nil {
			segments, err = nil, lib.ErrPanic(r)
		}
	}()
	return lib.DecodeLengthPrefixed(key), nil
}
