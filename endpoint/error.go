package endpoint

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/canopy-network/omnichain/lib"
)

var (
	errBlockedMessage = errors.New("message blocked by blockNextMessage")
	errPromoted       = errors.New("promoted from the inbound queue after a forced resume")
)

func ErrPathNotTrusted(chainId uint64, path []byte) lib.ErrorI {
	return lib.NewError(lib.CodePathNotTrusted, lib.EndpointModule, fmt.Sprintf("path %s from chain %d is not a trusted remote", lib.HexBytes(path), chainId))
}

func ErrInsufficientFee(paid, required *big.Int) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientFee, lib.EndpointModule, fmt.Sprintf("fee %s is less than the required %s", paid, required))
}

func ErrUnsupportedAdapterVersion(version uint16, length int) lib.ErrorI {
	return lib.NewError(lib.CodeUnsupportedAdapterVersion, lib.EndpointModule, fmt.Sprintf("unsupported adapter params version %d with length %d", version, length))
}

func ErrPayloadHashMismatch() lib.ErrorI {
	return lib.NewError(lib.CodePayloadHashMismatch, lib.EndpointModule, "payload does not match the stored payload hash")
}

func ErrOutOfOrderNonce(expected, got uint64) lib.ErrorI {
	return lib.NewError(lib.CodeOutOfOrderNonce, lib.EndpointModule, fmt.Sprintf("expected nonce %d but got %d", expected, got))
}

func ErrNoStoredPayload() lib.ErrorI {
	return lib.NewError(lib.CodeNoStoredPayload, lib.EndpointModule, "no stored payload")
}

func ErrUnauthorizedResume() lib.ErrorI {
	return lib.NewError(lib.CodeUnauthorizedResume, lib.EndpointModule, "caller is not the destination of the stored payload")
}

func ErrApplyPayload(err error) lib.ErrorI {
	return lib.NewError(lib.CodeApplyPayload, lib.EndpointModule, fmt.Sprintf("applyPayload() failed with err: %s", err.Error()))
}

func ErrPayloadTooLarge(size int, max uint64) lib.ErrorI {
	return lib.NewError(lib.CodePayloadTooLarge, lib.EndpointModule, fmt.Sprintf("payload size %d exceeds the max of %d bytes", size, max))
}

func ErrInvalidPathLength(length int) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidPathLength, lib.EndpointModule, fmt.Sprintf("path length %d is not %d", length, PathLength))
}

func ErrUnknownEndpoint(chainId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownEndpoint, lib.EndpointModule, fmt.Sprintf("no endpoint for chain %d", chainId))
}

func ErrMinGasNotMet(min uint64) lib.ErrorI {
	return lib.NewError(lib.CodeMinGasNotMet, lib.EndpointModule, fmt.Sprintf("gas limit is below the minimum of %d", min))
}

func ErrMinGasNotSet() lib.ErrorI {
	return lib.NewError(lib.CodeMinGasNotSet, lib.EndpointModule, "min destination gas is not set")
}

func ErrAdapterParamsNotEmpty() lib.ErrorI {
	return lib.NewError(lib.CodeAdapterParamsNotEmpty, lib.EndpointModule, "custom adapter params are disabled so adapter params must be empty")
}

func ErrApplicationNotFound(app fmt.Stringer) lib.ErrorI {
	return lib.NewError(lib.CodeApplicationNotFound, lib.EndpointModule, fmt.Sprintf("no receiving application registered at %s", app))
}

func ErrDuplicateChainId(chainId uint64) lib.ErrorI {
	return lib.NewError(lib.CodeDuplicateChainId, lib.EndpointModule, fmt.Sprintf("an endpoint for chain %d is already attached", chainId))
}

func ErrInvalidResumePolicy(policy string) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidResumePolicy, lib.EndpointModule, fmt.Sprintf("resume policy %q is not one of [%s, %s]", policy, lib.ResumePolicyDrain, lib.ResumePolicyPromote))
}

func ErrDecodePayload(err error) lib.ErrorI {
	return lib.NewError(lib.CodeDecodePayload, lib.EndpointModule, fmt.Sprintf("decoding a stored payload failed with err: %s", err.Error()))
}
