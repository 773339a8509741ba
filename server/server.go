// SPDX-License-Identifier: MIT

// Package server exposes a Navigator over HTTP.
//
// Routes:
//
//	POST /v1/route      compute a route for a spoken request
//	POST /v1/parse      parse and standardize without routing
//	GET  /v1/locations  list known locations
//	POST /v1/reload     rebuild the graph from the configured source
//	GET  /healthz       liveness and graph summary
//	GET  /metrics       Prometheus metrics
//
// Every request gets an X-Request-ID, a request-scoped slog logger in its
// context, an OpenTelemetry span and a rate-limit check.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/navigator"
)

// Defaults for Server options.
const (
	DefaultRate        = rate.Limit(50)
	DefaultBurst       = 100
	DefaultServiceName = "navd"
)

// SnapshotSource supplies the congestion snapshot for requests that carry
// none. *congestion.Feed implements it.
type SnapshotSource interface {
	Current() congestion.Snapshot
}

type staticSnapshot struct{}

func (staticSnapshot) Current() congestion.Snapshot { return congestion.Snapshot{} }

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSnapshots sets the live congestion source. Default is no congestion.
func WithSnapshots(src SnapshotSource) Option {
	return func(s *Server) {
		if src != nil {
			s.snapshots = src
		}
	}
}

// WithReloadSource enables POST /v1/reload from src.
func WithReloadSource(src building.Source) Option {
	return func(s *Server) { s.reload = src }
}

// WithRateLimit sets the request rate and burst. Panics if burst < 1.
func WithRateLimit(r rate.Limit, burst int) Option {
	if burst < 1 {
		panic("server: WithRateLimit burst must be at least 1")
	}
	return func(s *Server) { s.limiter = rate.NewLimiter(r, burst) }
}

// WithAllowOrigins restricts CORS to origins. Default allows all.
func WithAllowOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	if reg == nil {
		panic("server: WithRegistry(nil)")
	}
	return func(s *Server) { s.registry = reg }
}

// WithServiceName sets the service name used for spans.
func WithServiceName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.service = name
		}
	}
}

// Server is the HTTP front of a Navigator.
type Server struct {
	nav       *navigator.Navigator
	snapshots SnapshotSource
	reload    building.Source
	logger    *slog.Logger
	limiter   *rate.Limiter
	origins   []string
	registry  *prometheus.Registry
	service   string
	metrics   *metrics

	engine *gin.Engine
}

// New builds a Server for nav.
func New(nav *navigator.Navigator, opts ...Option) *Server {
	s := &Server{
		nav:       nav,
		snapshots: staticSnapshot{},
		logger:    slog.Default(),
		limiter:   rate.NewLimiter(DefaultRate, DefaultBurst),
		service:   DefaultServiceName,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.engine = s.routes()
	return s
}

// Handler returns the instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, s.service)
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	cfg := cors.DefaultConfig()
	if len(s.origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}

	r.Use(
		s.recoverer(),
		cors.New(cfg),
		s.requestID(),
		s.observe(),
	)

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/v1", s.rateLimit())
	v1.POST("/route", s.handleRoute)
	v1.POST("/parse", s.handleParse)
	v1.GET("/locations", s.handleLocations)
	v1.POST("/reload", s.handleReload)

	return r
}
