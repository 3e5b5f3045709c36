package simulator

import (
	"fmt"
	"math/big"

	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/lib/crypto"
	"github.com/canopy-network/omnichain/oft"
	"github.com/canopy-network/omnichain/store"
)

/*
The Simulator builds a network of simulated chains inside one process.

Each chain owns a single store. The messaging endpoint and the token deployment of the chain write to
their own prefixed views of it. Every endpoint is attached to one topology and every token deployment
trusts every other deployment, so any chain may send to any other chain.

The initial supply is minted to the owner on the first configured chain.
*/

var (
	endpointPrefix = []byte("endpoint/") // store prefix of the messaging endpoint
	tokenPrefix    = []byte("oft/")      // store prefix of the token ledger
)

// Chain is a single simulated chain
type Chain struct {
	ChainId  uint64
	Store    lib.StoreI
	Endpoint *endpoint.Endpoint
	Token    *oft.OFT
}

// Simulator is the in-process network of chains
type Simulator struct {
	config   lib.Config
	topology *endpoint.NetworkTopology
	chains   map[uint64]*Chain
	chainIds []uint64
	owner    crypto.Address
	metrics  *lib.Metrics
	log      lib.LoggerI
}

// New() builds and wires every configured chain
func New(config lib.Config, metrics *lib.Metrics, log lib.LoggerI) (*Simulator, lib.ErrorI) {
	if len(config.ChainIds) < 2 {
		return nil, ErrNotEnoughChains(len(config.ChainIds))
	}
	owner, err := crypto.NewAddressFromString(config.Owner)
	if err != nil {
		return nil, err
	}
	supply, err := lib.ParseAmount(config.GlobalSupply)
	if err != nil {
		return nil, err
	}
	s := &Simulator{
		config:   config,
		topology: endpoint.NewNetworkTopology(),
		chains:   make(map[uint64]*Chain),
		owner:    owner,
		metrics:  metrics,
		log:      log,
	}
	if err = s.build(supply); err != nil {
		// close whatever was opened
		s.Close()
		return nil, err
	}
	log.Infof("Simulating chains %v with %s %s minted to %s on chain %d", s.chainIds, supply, config.TokenSymbol, owner, s.chainIds[0])
	return s, nil
}

// build() deploys every chain, wires the trusted remotes and mints the supply
func (s *Simulator) build(supply *big.Int) lib.ErrorI {
	config := s.config.SimulationConfig
	for _, chainId := range config.ChainIds {
		if err := s.addChain(chainId); err != nil {
			return err
		}
	}
	// every token deployment trusts every other deployment
	for _, local := range s.chains {
		for _, remote := range s.chains {
			if local.ChainId == remote.ChainId {
				continue
			}
			if err := local.Token.SetTrustedRemote(remote.ChainId, remote.Token.Address()); err != nil {
				return err
			}
			if config.MinDstGas == 0 {
				continue
			}
			if err := local.Token.SetMinDstGas(remote.ChainId, oft.PTSend, config.MinDstGas); err != nil {
				return err
			}
		}
		if err := local.Token.SetUseCustomAdapterParams(config.MinDstGas != 0); err != nil {
			return err
		}
	}
	if supply.Sign() == 0 {
		return nil
	}
	return s.chains[s.chainIds[0]].Token.Mint(s.owner, supply)
}

// addChain() opens the store of a chain and deploys its endpoint and token
func (s *Simulator) addChain(chainId uint64) lib.ErrorI {
	storeConfig := s.config.StoreConfig
	storeConfig.DBName = fmt.Sprintf("%s-%d", storeConfig.DBName, chainId)
	db, err := store.New(storeConfig, s.log)
	if err != nil {
		return err
	}
	ep, err := endpoint.New(chainId, s.config.EndpointConfig, db.WithPrefix(endpointPrefix), s.metrics, s.log.WithTag(fmt.Sprintf("chain-%d", chainId)))
	if err != nil {
		db.Close()
		return err
	}
	if err = s.topology.Attach(ep); err != nil {
		db.Close()
		return err
	}
	sim := s.config.SimulationConfig
	token := oft.New(sim.TokenName, sim.TokenSymbol, TokenAddress(sim.TokenSymbol, chainId), ep, db.WithPrefix(tokenPrefix), s.log)
	s.chains[chainId] = &Chain{ChainId: chainId, Store: db, Endpoint: ep, Token: token}
	s.chainIds = append(s.chainIds, chainId)
	return nil
}

// TokenAddress() is the deterministic address of the token deployment on a chain
func TokenAddress(symbol string, chainId uint64) (a crypto.Address) {
	copy(a[:], crypto.Hash(lib.JoinLenPrefix([]byte(symbol), lib.Uint64ToBytes(chainId)))[crypto.HashSize-crypto.AddressSize:])
	return
}

// Chain() returns a chain by id
func (s *Simulator) Chain(chainId uint64) (*Chain, lib.ErrorI) {
	c, ok := s.chains[chainId]
	if !ok {
		return nil, endpoint.ErrUnknownEndpoint(chainId)
	}
	return c, nil
}

// ChainIds() returns the chains in configuration order
func (s *Simulator) ChainIds() []uint64 { return append([]uint64(nil), s.chainIds...) }

func (s *Simulator) Topology() *endpoint.NetworkTopology { return s.topology }

func (s *Simulator) Owner() crypto.Address { return s.owner }

// InboundPath() returns the path bytes of token transfers from srcChainId as seen on dstChainId
func (s *Simulator) InboundPath(srcChainId, dstChainId uint64) ([]byte, lib.ErrorI) {
	if srcChainId == dstChainId {
		return nil, ErrSameChain(srcChainId)
	}
	src, err := s.Chain(srcChainId)
	if err != nil {
		return nil, err
	}
	dst, err := s.Chain(dstChainId)
	if err != nil {
		return nil, err
	}
	return endpoint.NewPath(srcChainId, src.Token.Address(), dstChainId, dst.Token.Address()).Bytes(), nil
}

// Transfer() sends tokens between chains paying exactly the estimated fee
func (s *Simulator) Transfer(srcChainId, dstChainId uint64, from, to crypto.Address, amount *big.Int) (*endpoint.Receipt, lib.ErrorI) {
	if srcChainId == dstChainId {
		return nil, ErrSameChain(srcChainId)
	}
	src, err := s.Chain(srcChainId)
	if err != nil {
		return nil, err
	}
	var adapterParams []byte
	if s.config.MinDstGas != 0 {
		adapterParams = endpoint.NewAdapterParamsV1(s.config.MinDstGas)
	}
	fee, err := src.Token.EstimateSendFees(dstChainId, to.Bytes(), amount, false, adapterParams)
	if err != nil {
		return nil, err
	}
	return src.Token.SendFrom(from, dstChainId, to.Bytes(), amount, from, crypto.Address{}, adapterParams, fee.NativeFee)
}

// Close() closes every chain store
func (s *Simulator) Close() {
	for _, c := range s.chains {
		if err := c.Store.Close(); err != nil {
			s.log.Errorf("Closing the store of chain %d failed with err: %s", c.ChainId, err.Error())
		}
	}
}
