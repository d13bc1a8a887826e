package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"netmonitor/internal/auth"
	"netmonitor/internal/logging"
	"netmonitor/internal/screen"
)

const defaultHeartbeat = 15 * time.Second

// Server exposes the HTTP transport for the monitor screen.
type Server struct {
	router chi.Router
}

type options struct {
	logger    *logging.Logger
	verifier  *auth.Verifier
	metrics   http.Handler
	wrap      func(http.Handler) http.Handler
	heartbeat time.Duration
}

type Option func(*options)

func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithVerifier protects the telemetry ingest route.
func WithVerifier(v *auth.Verifier) Option {
	return func(o *options) { o.verifier = v }
}

// WithMetrics mounts handler on /metrics and instruments every route with mw.
func WithMetrics(handler http.Handler, mw func(http.Handler) http.Handler) Option {
	return func(o *options) {
		o.metrics = handler
		o.wrap = mw
	}
}

// WithHeartbeat sets the interval of keep-alive comments on the event stream.
func WithHeartbeat(d time.Duration) Option {
	return func(o *options) { o.heartbeat = d }
}

// NewServer constructs a chi based HTTP server that forwards requests to the screen.
func NewServer(svc screen.Service, opts ...Option) *Server {
	o := options{heartbeat: defaultHeartbeat}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}
	if o.verifier == nil {
		o.verifier = auth.NewVerifier("")
	}

	router := chi.NewRouter()
	router.Use(traceMiddleware(o.logger))
	if o.wrap != nil {
		router.Use(o.wrap)
	}

	h := &handler{
		screen:    svc,
		logger:    o.logger,
		heartbeat: o.heartbeat,
	}
	registerRoutes(router, h, o)

	return &Server{router: router}
}

// Router returns the configured chi router for reuse in tests or external HTTP servers.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
