package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dgallion1/menushare/internal/config"
	"github.com/dgallion1/menushare/internal/menuimport"
	"github.com/dgallion1/menushare/internal/menustore"
	"github.com/dgallion1/menushare/internal/metric"
)

// MenuService is the document store the handlers serve.
type MenuService interface {
	Create(ctx context.Context, payload []byte) (menustore.Created, error)
	Read(ctx context.Context, id string) (json.RawMessage, error)
	Update(ctx context.Context, id, token string, payload []byte) error
}

// Server is the HTTP API server for menushare.
type Server struct {
	router   chi.Router
	menus    MenuService
	importer menuimport.Importer
	log      *slog.Logger
	cfg      config.Config

	metrics  http.Handler
	requests metric.IncrementalCounter
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics counts requests on reg and serves it at /metrics.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.requests = metric.NewCounterWithRegistry(reg, "menushare_http_requests_total",
			"HTTP requests by method, route and status.", "method", "route", "status")
		s.metrics = metric.HandlerForRegistry(reg)
	}
}

// NewServer creates and configures the HTTP server.
func NewServer(menus MenuService, log *slog.Logger, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		menus:    menus,
		importer: menuimport.Importer{PDFFallback: cfg.PDFFallbackPdftotext},
		log:      log,
		cfg:      cfg,
		requests: metric.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log, s.requests))
	r.Use(CORS)

	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/api/menus", func(r chi.Router) {
		r.Post("/", s.handleCreateMenu)
		r.Post("/import", s.handleImportMenu)
		r.Get("/{id}", s.handleReadMenu)
		r.Put("/{id}", s.handleUpdateMenu)
	})

	r.Get("/m/", s.handleMenuPage)
	r.Get("/m/{id}", s.handleMenuPage)

	if s.cfg.ViewerAssetsDir != "" {
		r.Method(http.MethodGet, assetsPrefix+"*",
			http.StripPrefix(assetsPrefix, http.FileServer(http.Dir(s.cfg.ViewerAssetsDir))))
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	jsonError(w, msgNotFound, http.StatusNotFound)
}
