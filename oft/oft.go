package oft

import (
	"math/big"
	"sync"

	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
)

/* This file implements the omnichain fungible token: a balance ledger that moves supply between chains by burning on the source and minting on the destination */

// Decimals is the display precision of the token
const Decimals = 18

var (
	balancePrefix = []byte{1} // store prefix for account balances
	supplyKey     = []byte{2} // store key for the chain local total supply
)

var _ endpoint.ReceivingApplication = &OFT{} // ensure the token can receive payloads

// OFT is the token deployment on a single chain
type OFT struct {
	name     string
	symbol   string
	address  crypto.Address     // the application address of the token on its chain
	endpoint *endpoint.Endpoint // the messaging endpoint of the chain
	store    lib.StoreI         // the token ledger
	mu       sync.Mutex         // serializes ledger read-modify-writes
	log      lib.LoggerI
}

// New() deploys the token on a chain and registers it with the chain's endpoint
func New(name, symbol string, address crypto.Address, ep *endpoint.Endpoint, store lib.StoreI, log lib.LoggerI) *OFT {
	o := &OFT{
		name:     name,
		symbol:   symbol,
		address:  address,
		endpoint: ep,
		store:    store,
		log:      log,
	}
	ep.RegisterApplication(address, o)
	return o
}

func (o *OFT) Name() string { return o.name }
func (o *OFT) Symbol() string { return o.symbol }
func (o *OFT) Address() crypto.Address { return o.address }
func (o *OFT) ChainId() uint64 { return o.endpoint.ChainId() }
func (o *OFT) Endpoint() *endpoint.Endpoint { return o.endpoint }

// Mint() creates new supply for an account
func (o *OFT) Mint(to crypto.Address, amount *big.Int) lib.ErrorI {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount()
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.store.Update(func(rw lib.RWStoreI) lib.ErrorI {
		return credit(rw, to, amount)
	})
}

// BalanceOf() returns the balance of an account
func (o *OFT) BalanceOf(addr crypto.Address) (*big.Int, lib.ErrorI) {
	return getAmount(o.store, keyForBalance(addr))
}

// TotalSupply() returns the supply that lives on this chain
func (o *OFT) TotalSupply() (*big.Int, lib.ErrorI) {
	return getAmount(o.store, supplyKey)
}

// SetTrustedRemote() trusts the token deployment on a remote chain
func (o *OFT) SetTrustedRemote(remoteChainId uint64, remote crypto.Address) lib.ErrorI {
	path := endpoint.NewPath(remoteChainId, remote, o.ChainId(), o.address)
	return o.endpoint.SetTrustedRemote(o.address, remoteChainId, path.Bytes())
}

// SetMinDstGas() sets the minimum destination gas of a packet type
func (o *OFT) SetMinDstGas(dstChainId uint64, packetType uint16, gas uint64) lib.ErrorI {
	return o.endpoint.SetMinDstGas(o.address, dstChainId, packetType, gas)
}

// SetUseCustomAdapterParams() toggles custom adapter params for transfers
func (o *OFT) SetUseCustomAdapterParams(useCustom bool) lib.ErrorI {
	return o.endpoint.SetUseCustomAdapterParams(o.address, useCustom)
}

// EstimateSendFees() prices a transfer to a remote chain
func (o *OFT) EstimateSendFees(dstChainId uint64, toAddress []byte, amount *big.Int, useZro bool, adapterParams []byte) (*endpoint.Fee, lib.ErrorI) {
	if amount == nil {
		amount = new(big.Int)
	}
	payload, err := EncodeTransfer(toAddress, amount)
	if err != nil {
		return nil, err
	}
	remote, err := o.remote(dstChainId)
	if err != nil {
		return nil, err
	}
	return o.endpoint.EstimateFees(dstChainId, remote, payload, useZro, adapterParams)
}

// SendFrom() burns tokens from an account and sends them to an address on a remote chain
// if the endpoint rejects the message the burn is reverted
func (o *OFT) SendFrom(from crypto.Address, dstChainId uint64, toAddress []byte, amount *big.Int,
	refundAddress, zroPaymentAddress crypto.Address, adapterParams []byte, fee *big.Int) (*endpoint.Receipt, lib.ErrorI) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount()
	}
	// enforce the application adapter params policy
	if err := o.endpoint.CheckAdapterParams(o.address, dstChainId, PTSend, adapterParams); err != nil {
		return nil, err
	}
	remote, err := o.remote(dstChainId)
	if err != nil {
		return nil, err
	}
	payload, err := EncodeTransfer(toAddress, amount)
	if err != nil {
		return nil, err
	}
	// burn
	if err = o.debit(from, amount); err != nil {
		return nil, err
	}
	receipt, err := o.endpoint.Send(o.address, dstChainId, remote, payload, refundAddress, zroPaymentAddress, adapterParams, fee)
	if err != nil {
		// revert the burn
		if e := o.Mint(from, amount); e != nil {
			o.log.Errorf("Re-crediting %s to %s failed: %s", amount, from, e.Error())
		}
		return nil, err
	}
	o.log.Infof("Sent %s %s from %s to chain %d with status %s", amount, o.symbol, from, dstChainId, receipt.Status)
	return receipt, nil
}

// ApplyPayload() credits an inbound transfer
func (o *OFT) ApplyPayload(srcChainId uint64, _ []byte, nonce uint64, payload []byte) lib.ErrorI {
	transfer, err := DecodeTransfer(payload)
	if err != nil {
		return err
	}
	if transfer.PacketType != PTSend {
		return ErrUnknownPacketType(transfer.PacketType)
	}
	to, err := recipient(transfer.ToAddress)
	if err != nil {
		return err
	}
	if err = o.Mint(to, transfer.Amount); err != nil {
		return err
	}
	o.log.Infof("Received %s %s for %s from chain %d (nonce %d)", transfer.Amount, o.symbol, to, srcChainId, nonce)
	return nil
}

// ForceResumeReceive() discards the stuck transfer on the path from a remote token deployment
func (o *OFT) ForceResumeReceive(srcChainId uint64, srcPath []byte) lib.ErrorI {
	return o.endpoint.ForceResumeReceive(o.address, srcChainId, srcPath)
}

// RetryPayload() re-applies the stuck transfer on the path from a remote token deployment
func (o *OFT) RetryPayload(srcChainId uint64, srcPath []byte, payload []byte) lib.ErrorI {
	return o.endpoint.RetryPayload(srcChainId, srcPath, payload)
}

// remote() returns the token address trusted on a remote chain
func (o *OFT) remote(remoteChainId uint64) (remote crypto.Address, err lib.ErrorI) {
	trusted, err := o.endpoint.TrustedRemote(o.address, remoteChainId)
	if err != nil {
		return
	}
	path, err := endpoint.ParsePath(trusted)
	if err != nil {
		return remote, endpoint.ErrPathNotTrusted(remoteChainId, trusted)
	}
	return path.Source, nil
}

// debit() burns tokens from an account
func (o *OFT) debit(from crypto.Address, amount *big.Int) lib.ErrorI {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.store.Update(func(rw lib.RWStoreI) lib.ErrorI {
		balance, err := getAmount(rw, keyForBalance(from))
		if err != nil {
			return err
		}
		if balance.Cmp(amount) < 0 {
			return ErrInsufficientBalance(balance, amount)
		}
		if err = rw.Set(keyForBalance(from), balance.Sub(balance, amount).Bytes()); err != nil {
			return err
		}
		supply, err := getAmount(rw, supplyKey)
		if err != nil {
			return err
		}
		return rw.Set(supplyKey, supply.Sub(supply, amount).Bytes())
	})
}

// credit() mints tokens to an account within a batch
func credit(rw lib.RWStoreI, to crypto.Address, amount *big.Int) lib.ErrorI {
	balance, err := getAmount(rw, keyForBalance(to))
	if err != nil {
		return err
	}
	if err = rw.Set(keyForBalance(to), balance.Add(balance, amount).Bytes()); err != nil {
		return err
	}
	supply, err := getAmount(rw, supplyKey)
	if err != nil {
		return err
	}
	return rw.Set(supplyKey, supply.Add(supply, amount).Bytes())
}

// recipient() reads the 20 byte address from a transfer's destination bytes
func recipient(toAddress []byte) (crypto.Address, lib.ErrorI) {
	if len(toAddress) != crypto.AddressSize {
		return crypto.Address{}, ErrInvalidRecipient(len(toAddress))
	}
	return crypto.NewAddressFromBytes(toAddress)
}

func getAmount(r lib.RStoreI, key []byte) (*big.Int, lib.ErrorI) {
	bz, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(bz), nil
}

func keyForBalance(addr crypto.Address) []byte {
	return lib.JoinLenPrefix(balancePrefix, addr.Bytes())
}
