package rpc

import (
	"net/http"

	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/simulator"
	"github.com/julienschmidt/httprouter"
)

// Version writes the software version
func (s *Server) Version(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, SoftwareVersion, http.StatusOK)
}

// Chains responds with the simulated chain ids
func (s *Server) Chains(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, s.sim.ChainIds(), http.StatusOK)
}

// HasStoredPayload responds with true if the path is blocked by a stored payload
func (s *Server) HasStoredPayload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(pathRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		return dst.Endpoint.HasStoredPayload(req.SrcChainId, path)
	})
}

// StoredPayload responds with the stored payload of a path (null if idle)
func (s *Server) StoredPayload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(pathRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		return dst.Endpoint.StoredPayload(req.SrcChainId, path)
	})
}

// QueueLength responds with the number of messages waiting behind the stored payload of a path
func (s *Server) QueueLength(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(pathRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		return dst.Endpoint.GetQueueLength(req.SrcChainId, path)
	})
}

// Queue responds with the messages waiting behind the stored payload of a path
func (s *Server) Queue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(pathRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		return dst.Endpoint.QueuedMessages(req.SrcChainId, path)
	})
}

// PathState responds with idle or blocked
func (s *Server) PathState(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(pathRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		return dst.Endpoint.PathState(req.SrcChainId, path)
	})
}

// Nonces responds with the last delivered nonce of a path and the last nonce the source assigned to it
func (s *Server) Nonces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(pathRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		inbound, err := dst.Endpoint.InboundNonce(req.SrcChainId, path)
		if err != nil {
			return nil, err
		}
		src, err := s.sim.Chain(req.SrcChainId)
		if err != nil {
			return nil, err
		}
		outbound, err := src.Endpoint.OutboundNonce(req.DstChainId, path)
		if err != nil {
			return nil, err
		}
		return &noncesResponse{Inbound: inbound, Outbound: outbound}, nil
	})
}

// BlockedPaths responds with every blocked inbound path of a chain
func (s *Server) BlockedPaths(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.chainParams(w, r, new(chainRequest), func(c *simulator.Chain) (any, lib.ErrorI) {
		return c.Endpoint.BlockedPaths()
	})
}

// Events responds with the endpoint events of a chain starting at an index
func (s *Server) Events(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(eventsRequest)
	s.chainParams(w, r, req, func(c *simulator.Chain) (any, lib.ErrorI) {
		events := c.Endpoint.Events().Since(req.Since)
		if events == nil {
			events = lib.Events{}
		}
		return events, nil
	})
}

// Balance responds with the token balance of an address on a chain
func (s *Server) Balance(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(balanceRequest)
	s.chainParams(w, r, req, func(c *simulator.Chain) (any, lib.ErrorI) {
		balance, err := c.Token.BalanceOf(req.Address)
		if err != nil {
			return nil, err
		}
		return &amountResponse{Amount: balance.String()}, nil
	})
}

// Supply responds with the token supply that lives on a chain
func (s *Server) Supply(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.chainParams(w, r, new(chainRequest), func(c *simulator.Chain) (any, lib.ErrorI) {
		supply, err := c.Token.TotalSupply()
		if err != nil {
			return nil, err
		}
		return &amountResponse{Amount: supply.String()}, nil
	})
}

// EstimateFees responds with the fee of a token transfer
func (s *Server) EstimateFees(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(feesRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	src, err := s.sim.Chain(req.SrcChainId)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	amount, err := lib.ParseAmount(req.Amount)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	fee, err := src.Token.EstimateSendFees(req.DstChainId, req.To.Bytes(), amount, req.UseZro, req.AdapterParams)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	write(w, fee, http.StatusOK)
}
