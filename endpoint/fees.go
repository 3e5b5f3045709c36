package endpoint

import (
	"math/big"

	"github.com/canopy-network/omnichain/lib"
)

// basisPoints is the denominator of a fee multiplier
const basisPoints = 10_000

// Fee is the cost of sending a message
type Fee struct {
	NativeFee *big.Int `json:"nativeFee"` // paid with the call
	ZroFee    *big.Int `json:"zroFee"`    // the protocol fee when paid in the alternate token
}

// estimateFee() prices a message with the deterministic config driven formula
// nativeFee = (BaseFee + FeePerByte*len(payload) + GasPrice*gas) * multiplier / 10000 + nativeForDst [+ ProtocolFee]
func estimateFee(config lib.EndpointConfig, dstChainId uint64, payloadSize int, useZro bool, params *AdapterParams) *Fee {
	// relayer execution cost
	execution := new(big.Int).SetUint64(config.BaseFee)
	execution.Add(execution, new(big.Int).Mul(new(big.Int).SetUint64(config.FeePerByte), big.NewInt(int64(payloadSize))))
	execution.Add(execution, new(big.Int).Mul(new(big.Int).SetUint64(config.GasPrice), params.Gas.ToBig()))
	// destination chain pricing
	multiplier, ok := config.ChainFeeMultiplierBps[dstChainId]
	if !ok {
		multiplier = basisPoints
	}
	execution.Mul(execution, new(big.Int).SetUint64(multiplier))
	execution.Quo(execution, big.NewInt(basisPoints))
	// native airdrop
	fee := &Fee{NativeFee: execution.Add(execution, orZero(params.NativeForDst).ToBig()), ZroFee: new(big.Int)}
	// protocol fee
	protocol := new(big.Int).SetUint64(config.ProtocolFee)
	if useZro {
		fee.ZroFee = protocol
	} else {
		fee.NativeFee.Add(fee.NativeFee, protocol)
	}
	return fee
}
