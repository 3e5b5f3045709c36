package endpoint

import (
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/holiman/uint256"
)

// UAConfig is the per application sending policy: minimum destination gas and custom adapter params
type UAConfig struct {
	db lib.RWStoreI
}

// NewUAConfig() creates the application config over the endpoint state
func NewUAConfig(db lib.RWStoreI) UAConfig { return UAConfig{db: db} }

// SetMinDstGas() sets the minimum destination gas of an application for a packet type
func (u UAConfig) SetMinDstGas(app crypto.Address, dstChainId uint64, packetType uint16, gas uint64) lib.ErrorI {
	return u.db.Set(KeyForMinDstGas(app, dstChainId, packetType), lib.Uint64ToBytes(gas))
}

// MinDstGas() returns the minimum destination gas; zero means not set
func (u UAConfig) MinDstGas(app crypto.Address, dstChainId uint64, packetType uint16) (uint64, lib.ErrorI) {
	bz, err := u.db.Get(KeyForMinDstGas(app, dstChainId, packetType))
	return lib.BytesToUint64(bz), err
}

// SetUseCustomAdapterParams() toggles custom adapter params for an application
func (u UAConfig) SetUseCustomAdapterParams(app crypto.Address, useCustom bool) lib.ErrorI {
	if !useCustom {
		return u.db.Delete(KeyForCustomAdapterParams(app))
	}
	return u.db.Set(KeyForCustomAdapterParams(app), []byte{1})
}

// UseCustomAdapterParams() returns true if the application sends custom adapter params
func (u UAConfig) UseCustomAdapterParams(app crypto.Address) (bool, lib.ErrorI) {
	bz, err := u.db.Get(KeyForCustomAdapterParams(app))
	return len(bz) != 0, err
}

// CheckAdapterParams() enforces the application policy on the adapter params of an outgoing message
func (u UAConfig) CheckAdapterParams(app crypto.Address, dstChainId uint64, packetType uint16, adapterParams []byte) lib.ErrorI {
	useCustom, err := u.UseCustomAdapterParams(app)
	if err != nil {
		return err
	}
	if !useCustom {
		if len(adapterParams) != 0 {
			return ErrAdapterParamsNotEmpty()
		}
		return nil
	}
	minGas, err := u.MinDstGas(app, dstChainId, packetType)
	if err != nil {
		return err
	}
	if minGas == 0 {
		return ErrMinGasNotSet()
	}
	// the default gas doesn't apply to explicitly custom params
	params, err := ParseAdapterParams(adapterParams, 0)
	if err != nil {
		return err
	}
	if params.Gas.Lt(uint256.NewInt(minGas)) {
		return ErrMinGasNotMet(minGas)
	}
	return nil
}
