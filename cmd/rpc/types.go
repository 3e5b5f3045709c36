package rpc

import (
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
)

// =====================================================
// Query Request Types
// =====================================================

type chainRequest struct {
	ChainId uint64 `json:"chainId"`
}

// pathRequest identifies an inbound path on the destination chain
// an empty path means the token path from the source chain
type pathRequest struct {
	SrcChainId uint64       `json:"srcChainId"`
	DstChainId uint64       `json:"dstChainId"`
	Path       lib.HexBytes `json:"path,omitempty"`
}

type eventsRequest struct {
	chainRequest
	Since uint64 `json:"since"`
}

type balanceRequest struct {
	chainRequest
	Address crypto.Address `json:"address"`
}

type transferRequest struct {
	SrcChainId uint64         `json:"srcChainId"`
	DstChainId uint64         `json:"dstChainId"`
	From       crypto.Address `json:"from"`
	To         crypto.Address `json:"to"`
	Amount     string         `json:"amount"` // base 10
}

type feesRequest struct {
	transferRequest
	UseZro        bool         `json:"useZro"`
	AdapterParams lib.HexBytes `json:"adapterParams,omitempty"`
}

// =====================================================
// Admin Request Types
// =====================================================

// retryRequest re-applies a stored payload; an empty payload means the stored payload itself
type retryRequest struct {
	pathRequest
	Payload lib.HexBytes `json:"payload,omitempty"`
}

// =====================================================
// Response Types
// =====================================================

type noncesResponse struct {
	Inbound  uint64 `json:"inbound"`
	Outbound uint64 `json:"outbound"`
}

type amountResponse struct {
	Amount string `json:"amount"`
}
