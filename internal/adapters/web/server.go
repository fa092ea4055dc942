// Package web serves sentimeter over HTTP: an HTML page with the analysis
// form and result chart, a JSON API, a health check and Prometheus metrics.
// Analysis routes can be rate limited per client IP.
package web

import (
	"context"
	"embed"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/logx"
	"sentimeter/internal/platform/metrics"
	"sentimeter/internal/platform/rate"
)

//go:embed templates/*.html
var templateFS embed.FS

// Default server settings.
const (
	DefaultAddr            = "127.0.0.1:8501"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 64 << 10
)

// Config configures the HTTP server.
type Config struct {
	Addr            string
	Version         string
	Classifier      string
	MaxRunes        int
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// RateLimit is the per-client budget for analysis requests in requests
	// per second; 0 disables it.
	RateLimit float64
	RateBurst int

	// Registry enables /metrics and HTTP instrumentation when set.
	Registry *prometheus.Registry
}

// Server wraps a gin engine and its http.Server.
type Server struct {
	cfg        Config
	engine     *gin.Engine
	httpServer *http.Server
	analyzer   ports.Analyzer
	logger     logx.Logger
	startTime  time.Time
}

// New builds the server and its routes. The caller owns gin's global mode.
func New(cfg Config, analyzer ports.Analyzer, logger logx.Logger) (*Server, error) {
	if analyzer == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "web server needs an analyzer")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = logx.New()
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}

	s := &Server{
		cfg:       cfg,
		engine:    gin.New(),
		analyzer:  analyzer,
		logger:    logger.With("component", "web"),
		startTime: time.Now(),
	}
	// ClientIP keys the rate limiter; without a proxy in front only RemoteAddr counts.
	if err := s.engine.SetTrustedProxies(nil); err != nil {
		return nil, errors.Wrap(err, "trusted proxies")
	}
	s.engine.SetHTMLTemplate(tmpl)
	s.routes()

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() {
	s.engine.Use(requestID(), recovery(s.logger), requestLogger(s.logger), bodyLimit(s.cfg.MaxBodyBytes))

	if s.cfg.Registry != nil {
		s.engine.Use(metrics.NewHTTPMetrics(s.cfg.Registry).Middleware())
		s.engine.GET("/metrics", gin.WrapH(metrics.Handler(s.cfg.Registry)))
	}

	var limit []gin.HandlerFunc
	if s.cfg.RateLimit > 0 {
		limit = append(limit, s.clientRateLimit(rate.New(s.cfg.RateLimit, s.cfg.RateBurst)))
	}

	s.engine.GET("/", s.handleIndex)
	s.engine.POST("/", append(limit, s.handleForm)...)
	s.engine.GET("/healthz", s.handleHealth)

	api := s.engine.Group("/api/v1", limit...)
	{
		api.POST("/analyze", s.handleAnalyze)
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// Run listens until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("web server listening", "addr", ln.Addr().String(), "classifier", s.cfg.Classifier)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down web server", "timeout", s.cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}
	return nil
}
