package crypto

import (
	"encoding/json"
	"strings"

	"github.com/canopy-network/omnichain/lib"
	"github.com/ethereum/go-ethereum/common"
)

const (
	AddressSize = 20
)

// Address is a 20 byte evm style account or contract address
// NOTE: a fixed size array so addresses may be used as map keys
type Address [AddressSize]byte

// NewAddressFromBytes() converts exactly 20 bytes into an Address
func NewAddressFromBytes(bz []byte) (a Address, err lib.ErrorI) {
	if len(bz) != AddressSize {
		return a, lib.ErrInvalidAddress()
	}
	copy(a[:], bz)
	return
}

// NewAddressFromString() converts a hex string (with or without a 0x prefix) into an Address
func NewAddressFromString(s string) (a Address, err lib.ErrorI) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return a, lib.ErrInvalidAddress()
	}
	return Address(common.HexToAddress(s)), nil
}

// Bytes() returns a copy of the address bytes
func (a Address) Bytes() []byte { return append([]byte(nil), a[:]...) }

// String() returns the EIP-55 checksum encoding of the address
func (a Address) String() string { return common.Address(a).Hex() }

// Equals() compares two addresses
func (a Address) Equals(b Address) bool { return a == b }

// IsZero() returns true for the zero address
func (a Address) IsZero() bool { return a == Address{} }

// Common() converts the address to the go-ethereum representation used by the abi codec
func (a Address) Common() common.Address { return common.Address(a) }

// MarshalJSON() satisfies the json.Marshaller interface
func (a Address) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

// UnmarshalJSON() satisfies the json.Unmarshaler interface
func (a *Address) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		return err
	}
	addr, err := NewAddressFromString(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
