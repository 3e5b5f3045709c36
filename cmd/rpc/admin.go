package rpc

import (
	"net/http"

	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/simulator"
	"github.com/julienschmidt/httprouter"
)

// Send transfers tokens between two simulated chains paying the estimated fee
func (s *Server) Send(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(transferRequest)
	if ok := unmarshal(w, r, req); !ok {
		return
	}
	amount, err := lib.ParseAmount(req.Amount)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	receipt, err := s.sim.Transfer(req.SrcChainId, req.DstChainId, req.From, req.To, amount)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	write(w, receipt, http.StatusOK)
}

// RetryPayload re-applies the stored payload of a path
func (s *Server) RetryPayload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(retryRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		payload := []byte(req.Payload)
		// without an explicit payload the relayer behavior is mirrored
		if len(payload) == 0 {
			sp, err := dst.Endpoint.StoredPayload(req.SrcChainId, path)
			if err != nil {
				return nil, err
			}
			if sp != nil {
				payload = sp.Payload
			}
		}
		if err := dst.Token.RetryPayload(req.SrcChainId, path, payload); err != nil {
			return nil, err
		}
		return dst.Endpoint.PathState(req.SrcChainId, path)
	})
}

// ForceResume discards the stored payload of a path on behalf of the destination token
func (s *Server) ForceResume(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	req := new(pathRequest)
	s.pathParams(w, r, req, func(dst *simulator.Chain, path []byte) (any, lib.ErrorI) {
		if err := dst.Token.ForceResumeReceive(req.SrcChainId, path); err != nil {
			return nil, err
		}
		return dst.Endpoint.PathState(req.SrcChainId, path)
	})
}

// BlockNext makes the next delivery on a chain fail once
func (s *Server) BlockNext(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.chainParams(w, r, new(chainRequest), func(c *simulator.Chain) (any, lib.ErrorI) {
		c.Endpoint.BlockNextMessage()
		return true, nil
	})
}

// Relay runs a single relayer pass over every blocked path
func (s *Server) Relay(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if s.relayer == nil {
		write(w, ErrRelayerDisabled(), http.StatusBadRequest)
		return
	}
	result, err := s.relayer.RelayOnce(r.Context())
	if err != nil {
		write(w, err, http.StatusInternalServerError)
		return
	}
	write(w, result, http.StatusOK)
}

// Config responds with the simulator configuration
func (s *Server) Config(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	write(w, s.config, http.StatusOK)
}
