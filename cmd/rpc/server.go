package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/alecthomas/units"
	"github.com/canopy-network/omnichain/endpoint"
	"github.com/canopy-network/omnichain/lib"
	"github.com/canopy-network/omnichain/relayer"
	"github.com/canopy-network/omnichain/simulator"
	"github.com/rs/cors"
)

const (
	colon = ":"

	SoftwareVersion = "0.1.0"
	ContentType     = "Content-Type"
	ApplicationJSON = "application/json; charset=utf-8"
)

// Server is the operator RPC of a running simulator
type Server struct {
	// the simulated network
	sim *simulator.Simulator

	// the relayer that the relay route triggers on demand
	relayer *relayer.Relayer

	// simulator configuration
	config lib.Config

	server *http.Server
	logger lib.LoggerI
}

// NewServer constructs and returns a new simulator RPC server
func NewServer(sim *simulator.Simulator, relayer *relayer.Relayer, config lib.Config, logger lib.LoggerI) *Server {
	s := &Server{
		sim:     sim,
		relayer: relayer,
		config:  config,
		logger:  logger,
	}
	// Create CORS policy
	cor := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS", "POST"},
	})
	// Create a default timeout for HTTP requests
	timeout := time.Duration(config.TimeoutS) * time.Second
	s.server = &http.Server{
		Addr:    colon + config.AdminPort,
		Handler: cor.Handler(http.TimeoutHandler(createRouter(s), timeout, lib.ErrServerTimeout().Error())),
	}
	return s
}

// Handler returns the http handler of the server
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Start serves the RPC until Stop is called
func (s *Server) Start() error {
	s.logger.Infof("Starting RPC server at 0.0.0.0:%s", s.config.AdminPort)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the RPC down
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping RPC server")
	return s.server.Shutdown(ctx)
}

// chainParams unmarshals a chain request and calls the callback with the chain
func (s *Server) chainParams(w http.ResponseWriter, r *http.Request, ptr interface{ chainId() uint64 }, callback func(c *simulator.Chain) (any, lib.ErrorI)) {
	if ok := unmarshal(w, r, ptr); !ok {
		return
	}
	c, err := s.sim.Chain(ptr.chainId())
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	p, err := callback(c)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	write(w, p, http.StatusOK)
}

// pathParams unmarshals a path request and calls the callback with the destination endpoint and path
func (s *Server) pathParams(w http.ResponseWriter, r *http.Request, ptr interface{ path() *pathRequest }, callback func(dst *simulator.Chain, path []byte) (any, lib.ErrorI)) {
	if ok := unmarshal(w, r, ptr); !ok {
		return
	}
	req := ptr.path()
	dst, err := s.sim.Chain(req.DstChainId)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	path := []byte(req.Path)
	if len(path) == 0 {
		if path, err = s.sim.InboundPath(req.SrcChainId, req.DstChainId); err != nil {
			write(w, err, http.StatusBadRequest)
			return
		}
	}
	if _, err = endpoint.ParsePath(path); err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	p, err := callback(dst, path)
	if err != nil {
		write(w, err, http.StatusBadRequest)
		return
	}
	write(w, p, http.StatusOK)
}

func (c *chainRequest) chainId() uint64 { return c.ChainId }
func (p *pathRequest) path() *pathRequest { return p }

// unmarshal the request body into ptr
func unmarshal(w http.ResponseWriter, r *http.Request, ptr interface{}) bool {
	bz, err := io.ReadAll(io.LimitReader(r.Body, int64(units.MB)))
	if err != nil {
		write(w, ErrInvalidParams(err), http.StatusBadRequest)
		return false
	}
	defer func() { _ = r.Body.Close() }()
	if len(bz) == 0 {
		return true
	}
	if err = json.Unmarshal(bz, ptr); err != nil {
		write(w, ErrInvalidParams(err), http.StatusBadRequest)
		return false
	}
	return true
}

// write marshaled payload to w
func write(w http.ResponseWriter, payload interface{}, code int) {
	w.Header().Set(ContentType, ApplicationJSON)
	w.WriteHeader(code)

	// Marshal and indent the payload
	bz, _ := json.MarshalIndent(payload, "", "  ")
	_, _ = w.Write(bz)
}
