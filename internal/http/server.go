// Package http provides the HTTP server, router wiring and operational endpoints.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/hawkpair/internal/config"
	credentialHTTP "github.com/allisson/hawkpair/internal/credential/http"
	credentialUseCase "github.com/allisson/hawkpair/internal/credential/usecase"
	"github.com/allisson/hawkpair/internal/metrics"
)

const readinessTimeout = 2 * time.Second

var errNoBackend = errors.New("backend not configured")

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server.
type Server struct {
	db              *sql.DB
	credentialStore Pinger
	server          *http.Server
	router          *gin.Engine
	logger          *slog.Logger
}

// NewServer creates a new HTTP server. The router is attached by SetupRouter.
func NewServer(
	db *sql.DB,
	credentialStore Pinger,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:              db,
		credentialStore: credentialStore,
		logger:          logger,
		server:          newHTTPServer(host, port, nil),
	}
}

func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// SetupRouter builds the gin engine with the session endpoints.
//
// ctx bounds the lifetime of the rate limiter cleanup goroutines.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	sessionHandler *credentialHTTP.SessionHandler,
	credentialUC credentialUseCase.CredentialUseCase,
	macVerifier credentialHTTP.MACVerifier,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authMiddleware := credentialHTTP.AuthenticationMiddleware(credentialUC, macVerifier, s.logger)

	v1 := router.Group("/v1")
	users := v1.Group("/users")
	{
		login := []gin.HandlerFunc{}
		if cfg.RateLimitLoginEnabled {
			login = append(login, credentialHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				s.logger,
			))
		}
		login = append(login, sessionHandler.LoginHandler)
		users.POST("/login", login...)

		authenticated := users.Group("")
		authenticated.Use(authMiddleware)
		if cfg.RateLimitEnabled {
			authenticated.Use(credentialHTTP.RateLimitMiddleware(
				ctx,
				cfg.RateLimitRequestsPerSec,
				cfg.RateLimitBurst,
				s.logger,
			))
		}
		authenticated.GET("/logout", sessionHandler.LogoutHandler)
		authenticated.GET("/me", sessionHandler.MeHandler)
	}

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler pings the database and the credential store.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	components := gin.H{
		"database":         componentStatus(s.pingDatabase(ctx)),
		"credential_store": componentStatus(s.pingCredentialStore(ctx)),
	}

	for _, status := range components {
		if status != "ok" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

func (s *Server) pingDatabase(ctx context.Context) error {
	if s.db == nil {
		return errNoBackend
	}
	return s.db.PingContext(ctx)
}

func (s *Server) pingCredentialStore(ctx context.Context) error {
	if s.credentialStore == nil {
		return errNoBackend
	}
	return s.credentialStore.Ping(ctx)
}

func componentStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
