package rpc

import (
	"net/http"

	"github.com/canopy-network/omnichain/lib"
	"github.com/julienschmidt/httprouter"
)

// Simulator RPC Paths
const (
	VersionRoutePath          = "/v1/"
	ChainsRoutePath           = "/v1/query/chains"
	HasStoredPayloadRoutePath = "/v1/query/has-stored-payload"
	StoredPayloadRoutePath    = "/v1/query/stored-payload"
	QueueLengthRoutePath      = "/v1/query/queue-length"
	QueueRoutePath            = "/v1/query/queue"
	PathStateRoutePath        = "/v1/query/path-state"
	NoncesRoutePath           = "/v1/query/nonces"
	BlockedPathsRoutePath     = "/v1/query/blocked-paths"
	EventsRoutePath           = "/v1/query/events"
	BalanceRoutePath          = "/v1/query/balance"
	SupplyRoutePath           = "/v1/query/supply"
	EstimateFeesRoutePath     = "/v1/query/estimate-fees"
	// admin
	SendRoutePath         = "/v1/admin/send"
	RetryPayloadRoutePath = "/v1/admin/retry-payload"
	ForceResumeRoutePath  = "/v1/admin/force-resume"
	BlockNextRoutePath    = "/v1/admin/block-next"
	RelayRoutePath        = "/v1/admin/relay"
	ConfigRoutePath       = "/v1/admin/config"
)

// Simulator RPC Route Names
const (
	VersionRouteName          = "version"
	ChainsRouteName           = "chains"
	HasStoredPayloadRouteName = "has-stored-payload"
	StoredPayloadRouteName    = "stored-payload"
	QueueLengthRouteName      = "queue-length"
	QueueRouteName            = "queue"
	PathStateRouteName        = "path-state"
	NoncesRouteName           = "nonces"
	BlockedPathsRouteName     = "blocked-paths"
	EventsRouteName           = "events"
	BalanceRouteName          = "balance"
	SupplyRouteName           = "supply"
	EstimateFeesRouteName     = "estimate-fees"
	// admin
	SendRouteName         = "send"
	RetryPayloadRouteName = "retry-payload"
	ForceResumeRouteName  = "force-resume"
	BlockNextRouteName    = "block-next"
	RelayRouteName        = "relay"
	ConfigRouteName       = "config"
)

// routes contains the method and path for a simulator RPC route
type routes map[string]struct {
	Method string
	Path   string
}

// routePaths is a mapping from route names to their corresponding HTTP methods and paths
var routePaths = routes{
	VersionRouteName:          {Method: http.MethodGet, Path: VersionRoutePath},
	ChainsRouteName:           {Method: http.MethodPost, Path: ChainsRoutePath},
	HasStoredPayloadRouteName: {Method: http.MethodPost, Path: HasStoredPayloadRoutePath},
	StoredPayloadRouteName:    {Method: http.MethodPost, Path: StoredPayloadRoutePath},
	QueueLengthRouteName:      {Method: http.MethodPost, Path: QueueLengthRoutePath},
	QueueRouteName:            {Method: http.MethodPost, Path: QueueRoutePath},
	PathStateRouteName:        {Method: http.MethodPost, Path: PathStateRoutePath},
	NoncesRouteName:           {Method: http.MethodPost, Path: NoncesRoutePath},
	BlockedPathsRouteName:     {Method: http.MethodPost, Path: BlockedPathsRoutePath},
	EventsRouteName:           {Method: http.MethodPost, Path: EventsRoutePath},
	BalanceRouteName:          {Method: http.MethodPost, Path: BalanceRoutePath},
	SupplyRouteName:           {Method: http.MethodPost, Path: SupplyRoutePath},
	EstimateFeesRouteName:     {Method: http.MethodPost, Path: EstimateFeesRoutePath},
	SendRouteName:             {Method: http.MethodPost, Path: SendRoutePath},
	RetryPayloadRouteName:     {Method: http.MethodPost, Path: RetryPayloadRoutePath},
	ForceResumeRouteName:      {Method: http.MethodPost, Path: ForceResumeRoutePath},
	BlockNextRouteName:        {Method: http.MethodPost, Path: BlockNextRoutePath},
	RelayRouteName:            {Method: http.MethodPost, Path: RelayRoutePath},
	ConfigRouteName:           {Method: http.MethodGet, Path: ConfigRoutePath},
}

// httpRouteHandlers is a custom type that maps strings to httprouter handle functions
type httpRouteHandlers map[string]httprouter.Handle

// createRouter initializes and returns a new HTTP router with predefined route handlers.
func createRouter(s *Server) *httprouter.Router {
	var r = httpRouteHandlers{
		VersionRouteName:          s.Version,
		ChainsRouteName:           s.Chains,
		HasStoredPayloadRouteName: s.HasStoredPayload,
		StoredPayloadRouteName:    s.StoredPayload,
		QueueLengthRouteName:      s.QueueLength,
		QueueRouteName:            s.Queue,
		PathStateRouteName:        s.PathState,
		NoncesRouteName:           s.Nonces,
		BlockedPathsRouteName:     s.BlockedPaths,
		EventsRouteName:           s.Events,
		BalanceRouteName:          s.Balance,
		SupplyRouteName:           s.Supply,
		EstimateFeesRouteName:     s.EstimateFees,
		SendRouteName:             s.Send,
		RetryPayloadRouteName:     s.RetryPayload,
		ForceResumeRouteName:      s.ForceResume,
		BlockNextRouteName:        s.BlockNext,
		RelayRouteName:            s.Relay,
		ConfigRouteName:           s.Config,
	}

	// Initialize a new router using the httprouter package.
	router := httprouter.New()

	for name, handler := range r {
		// Retrieve the path configuration for the current route name.
		path := routePaths[name]

		// Add the handler for the specific path and HTTP method to the router.
		router.Handle(path.Method, path.Path, logHandler{path.Path, handler, s.logger}.Handle)
	}

	return router
}

// logHandler serves as a middleware that logs incoming RPC calls
type logHandler struct {
	path   string
	h      httprouter.Handle
	logger lib.LoggerI
}

// Handle logs the path and calls the handler
func (h logHandler) Handle(resp http.ResponseWriter, req *http.Request, p httprouter.Params) {
	h.logger.Debug(h.path)
	h.h(resp, req, p)
}
