package oft

import (
	"errors"
	"math/big"

	"github.com/canopy-network/omnichain/lib"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// PTSend is the packet type of a token transfer
const PTSend uint16 = 0

// transferArgs is the abi layout of a transfer payload: abi.encode(uint16 packetType, bytes toAddress, uint256 amount)
var transferArgs = func() abi.Arguments {
	uint16Ty, _ := abi.NewType("uint16", "", nil)
	bytesTy, _ := abi.NewType("bytes", "", nil)
	uint256Ty, _ := abi.NewType("uint256", "", nil)
	return abi.Arguments{{Name: "packetType", Type: uint16Ty}, {Name: "toAddress", Type: bytesTy}, {Name: "amount", Type: uint256Ty}}
}()

// Transfer is a decoded token transfer payload
type Transfer struct {
	PacketType uint16       `json:"packetType"`
	ToAddress  lib.HexBytes `json:"toAddress"`
	Amount     *big.Int     `json:"amount"`
}

// EncodeTransfer() abi encodes a transfer payload
func EncodeTransfer(toAddress []byte, amount *big.Int) ([]byte, lib.ErrorI) {
	bz, err := transferArgs.Pack(PTSend, toAddress, amount)
	if err != nil {
		return nil, lib.ErrMarshal(err)
	}
	return bz, nil
}

// DecodeTransfer() abi decodes a transfer payload
func DecodeTransfer(payload []byte) (*Transfer, lib.ErrorI) {
	values, err := transferArgs.Unpack(payload)
	if err != nil {
		return nil, ErrInvalidTransferPayload(err)
	}
	packetType, ok1 := values[0].(uint16)
	toAddress, ok2 := values[1].([]byte)
	amount, ok3 := values[2].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return nil, ErrInvalidTransferPayload(errors.New("unexpected argument types"))
	}
	return &Transfer{PacketType: packetType, ToAddress: toAddress, Amount: amount}, nil
}
