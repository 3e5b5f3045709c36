package oft

import (
	"fmt"
	"math/big"

	"github.com/canopy-network/omnichain/lib"
)

func ErrInsufficientBalance(balance, amount *big.Int) lib.ErrorI {
	return lib.NewError(lib.CodeInsufficientBalance, lib.TokenModule, fmt.Sprintf("balance %s is less than the amount %s", balance, amount))
}

func ErrInvalidAmount() lib.ErrorI {
	return lib.NewError(lib.CodeInvalidAmount, lib.TokenModule, "amount must be greater than zero")
}

func ErrUnknownPacketType(packetType uint16) lib.ErrorI {
	return lib.NewError(lib.CodeUnknownPacketType, lib.TokenModule, fmt.Sprintf("unknown packet type %d", packetType))
}

func ErrInvalidTransferPayload(err error) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidTransferPayload, lib.TokenModule, fmt.Sprintf("decoding the transfer payload failed with err: %s", err.Error()))
}

func ErrInvalidRecipient(length int) lib.ErrorI {
	return lib.NewError(lib.CodeInvalidRecipient, lib.TokenModule, fmt.Sprintf("recipient of %d bytes is not an address", length))
}
